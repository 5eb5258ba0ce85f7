package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *CLI) backupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List backups of the favourites file, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}

			backups, err := a.Backups()
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				printInfo(cmd.ErrOrStderr(), "No backups of %s", a.FilePath())
				return nil
			}
			for i, b := range backups {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  %s\n", i+1, b.Timestamp.Format("2006-01-02 15:04:05"), b.FilePath)
			}
			return nil
		},
	}
}

func (c *CLI) restoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <n>",
		Short: "Restore the n-th backup listed by backups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid backup number %q", args[0])
			}

			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			backups, err := a.Backups()
			if err != nil {
				return err
			}
			if n < 1 || n > len(backups) {
				return fmt.Errorf("backup %d does not exist (%d available)", n, len(backups))
			}

			if err := a.RestoreBackup(cmd.Context(), backups[n-1]); err != nil {
				return err
			}
			if err := a.Save(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Restored backup from %s", backups[n-1].Timestamp.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}
