package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/badjano/favtree/internal/config"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the [settings] table of the config file",
		Args:  cobra.NoArgs,
		RunE:  c.listSettings,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List settings, including --set overrides",
		Args:  cobra.NoArgs,
		RunE:  c.listSettings,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.KnownSetting(args[0]) {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			value, ok := c.cfg.Setting(args[0])
			if !ok {
				printInfo(cmd.ErrOrStderr(), "%s is not set", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A fresh load keeps --file, --format and --set out of the saved file
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Store(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Set %s = %q in %s", args[0], args[1], cfg.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Unset(args[0]) {
				printInfo(cmd.ErrOrStderr(), "%s is not set", args[0])
				return nil
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed %s from %s", args[0], cfg.Path())
			return nil
		},
	})

	return cmd
}

func (c *CLI) listSettings(cmd *cobra.Command, args []string) error {
	all := c.cfg.AllSettings()
	if len(all) == 0 {
		printInfo(cmd.ErrOrStderr(), "No settings")
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(all)) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %q\n", key, all[key])
	}
	return nil
}
