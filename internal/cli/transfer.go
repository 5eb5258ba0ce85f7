package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	import_parser "github.com/badjano/favtree/internal/import"
)

func (c *CLI) importCommand() *cobra.Command {
	var (
		format   string
		parentID int
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an indented text or markdown outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			importFormat := import_parser.ImportFormat(format)
			if importFormat == import_parser.FormatAuto {
				importFormat = import_parser.DetectFormat(args[0])
			}

			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			count, err := a.Import(string(content), importFormat, parentID)
			if err != nil {
				return err
			}
			if err := a.Save(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Imported %d elements from %s", count, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "as", string(import_parser.FormatAuto), "outline format: auto, markdown or indented")
	cmd.Flags().IntVarP(&parentID, "parent", "p", 0, "element to import below (0 for the top level)")
	return cmd
}

func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <markdown|text> [out]",
		Short: "Write the favourites as an outline",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return a.Export(cmd.OutOrStdout(), args[0])
			}

			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[1], err)
			}
			w := bufio.NewWriter(f)
			if err := a.Export(w, args[0]); err != nil {
				f.Close()
				return err
			}
			if err := w.Flush(); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Exported to %s", args[1])
			return nil
		},
	}
}
