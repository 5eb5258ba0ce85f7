package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/badjano/favtree/internal/config"
	"github.com/badjano/favtree/internal/model"
	"github.com/badjano/favtree/internal/tree"
)

// parseIDs converts command arguments to element ids
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid element id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *CLI) showCommand() *cobra.Command {
	var collapsed []int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the favourites tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}

			closed := make(map[int]bool, len(collapsed))
			for _, id := range collapsed {
				closed[id] = true
			}

			rows := a.Model().VisibleRows(func(id int) bool { return !closed[id] })
			if len(rows) == 0 {
				printInfo(cmd.ErrOrStderr(), "No favourites in %s", a.FilePath())
				return nil
			}
			writeRows(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&collapsed, "collapsed", nil, "ids of elements to show collapsed")
	return cmd
}

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the depth encoding of the favourites file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			if err := tree.ValidateDepths(a.Model().Data()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "%s is valid (%d elements)", a.FilePath(), a.Model().Len())
			return nil
		},
	}
}

func (c *CLI) addCommand() *cobra.Command {
	var (
		parentID int
		index    int
		icon     string
		keywords string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a favourite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			parent, err := a.Element(parentID)
			if err != nil {
				return err
			}

			if index < 0 {
				index = len(parent.Children)
			}
			if icon == "" {
				icon, _ = c.cfg.Setting(config.SettingDefaultIcon)
			}
			element := model.NewElement(args[0])
			element.Icon = icon
			element.Keywords = keywords

			if err := a.Model().AddElement(element, parent, index); err != nil {
				return err
			}
			if err := a.Save(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Added %q as #%d", element.Name, element.ID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&parentID, "parent", "p", 0, "parent element id (0 for the top level)")
	cmd.Flags().IntVarP(&index, "index", "i", -1, "position among the parent's children (default last)")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name (default from the default_icon setting)")
	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "extra search keywords")
	return cmd
}

func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a favourite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:1])
			if err != nil {
				return err
			}

			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			if err := a.Rename(ids[0], args[1]); err != nil {
				return err
			}
			if err := a.Save(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Renamed #%d to %q", ids[0], a.Model().Find(ids[0]).Name)
			return nil
		},
	}
}

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove favourites and everything below them",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			before := a.Model().Len()
			if err := a.Model().RemoveElementsByID(ids); err != nil {
				return err
			}
			if err := a.Save(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Removed %d elements", before-a.Model().Len())
			return nil
		},
	}
}

func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "mv <parent> <index> <id>...",
		Aliases: []string{"move"},
		Short:   "Move favourites below a new parent",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			parent, err := a.Element(ids[0])
			if err != nil {
				return err
			}
			elements, err := a.Elements(ids[2:])
			if err != nil {
				return err
			}

			if err := a.Model().MoveElements(parent, ids[1], elements); err != nil {
				return err
			}
			if err := a.Save(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Moved %d elements below #%d", len(elements), parent.ID)
			return nil
		},
	}
}

func (c *CLI) ancestorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors <id>",
		Short: "List the ancestors of a favourite, nearest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			if _, err := a.Element(ids[0]); err != nil {
				return err
			}

			for _, id := range a.Model().Ancestors(ids[0]) {
				e := a.Model().Find(id)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", e.Name, styleID.Render(fmt.Sprintf("#%d", id)))
			}
			return nil
		},
	}
}
