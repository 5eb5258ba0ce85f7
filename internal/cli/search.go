package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *CLI) searchCommand() *cobra.Command {
	var (
		fuzzy bool
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search favourites by name and keywords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}

			rows, err := a.Search(args[0], fuzzy)
			if err != nil {
				return err
			}
			if save {
				saved, err := a.SaveSearch("", args[0])
				if err != nil {
					return err
				}
				printInfo(cmd.ErrOrStderr(), "Saved search #%d %q", saved.ID, saved.Name)
			}
			if len(rows) == 0 {
				printInfo(cmd.ErrOrStderr(), "No matches for %q", args[0])
				return nil
			}
			writeMatches(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "match query characters in order instead of as a substring")
	cmd.Flags().BoolVar(&save, "save", false, "keep the query as a saved search")
	return cmd
}

func (c *CLI) savedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "List and run saved searches",
		Args:  cobra.NoArgs,
		RunE:  c.listSaved,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved searches",
		Args:  cobra.NoArgs,
		RunE:  c.listSaved,
	})

	var name string
	addCmd := &cobra.Command{
		Use:   "add <query>",
		Short: "Save a search query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			saved, err := a.SaveSearch(name, args[0])
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved search #%d %q", saved.ID, saved.Name)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&name, "name", "n", "", "name of the saved search (default the query)")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a saved search",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid saved search id %q", args[0])
			}
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			if err := a.RemoveSavedSearch(id); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed saved search #%d", id)
			return nil
		},
	})

	var fuzzy bool
	runCmd := &cobra.Command{
		Use:   "run <name|id>",
		Short: "Run a saved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			saved, rows, err := a.RunSavedSearch(args[0], fuzzy)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				printInfo(cmd.ErrOrStderr(), "No matches for %q", saved.Query)
				return nil
			}
			writeMatches(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	runCmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "match query characters in order instead of as a substring")
	cmd.AddCommand(runCmd)

	return cmd
}

func (c *CLI) listSaved(cmd *cobra.Command, args []string) error {
	a, err := c.openApp(cmd)
	if err != nil {
		return err
	}
	searches, err := a.SavedSearches()
	if err != nil {
		return err
	}
	if len(searches) == 0 {
		printInfo(cmd.ErrOrStderr(), "No saved searches")
		return nil
	}
	for _, s := range searches {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %q\n", styleID.Render(fmt.Sprintf("#%d", s.ID)), s.Name, s.Query)
	}
	return nil
}

func (c *CLI) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent search queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}

			entries, err := a.SearchHistory()
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}
}
