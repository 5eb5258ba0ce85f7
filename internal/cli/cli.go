// Package cli implements the favtree command-line interface.
//
// Commands load the favourites file named by the config (or --file), run one
// operation on its tree and save it back when the tree changed. Loggers are
// passed through context.Context; --verbose (-v) switches to debug output.
package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/badjano/favtree/internal/app"
	"github.com/badjano/favtree/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
)

// SetVersion sets the version information displayed by --version
func SetVersion(v, c string) {
	version = v
	commit = c
}

// CLI holds shared state for all commands.
type CLI struct {
	cfg *config.Config
	log io.Writer

	configPath string
	dataFile   string
	format     string
	verbose    bool
	overrides  map[string]string
}

// New creates a CLI whose log output goes to w
func New(w io.Writer) *CLI {
	return &CLI{log: w}
}

// Execute runs the favtree CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return New(os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "favtree",
		Short:             "favtree manages a tree of favourites",
		Long:              `favtree keeps favourites as a flat, depth-encoded list on disk and edits them as a tree: add, move, remove, search, import and export.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(fmt.Sprintf("favtree %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/favtree/config.toml)")
	root.PersistentFlags().StringVarP(&c.dataFile, "file", "f", "", "favourites file")
	root.PersistentFlags().StringVar(&c.format, "format", "", "storage format: auto, json, yaml, text or sqlite")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringToStringVar(&c.overrides, "set", nil, "override a setting for this run (key=value)")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.ancestorsCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.savedCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.backupsCommand())
	root.AddCommand(c.restoreCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default one
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.LoadFromFile(c.configPath)
	}
	return config.Load()
}

// setup loads the config, applies flag overrides and attaches the logger
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(c.overrides)) {
		if err := cfg.Override(key, c.overrides[key]); err != nil {
			return fmt.Errorf("invalid --set: %w", err)
		}
	}
	if c.dataFile != "" {
		cfg.DataFile = c.dataFile
	}
	if c.format != "" {
		cfg.Format = c.format
	}

	level, err := parseLevel(cfg.LogLevel, c.verbose)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	c.cfg = cfg
	cmd.SetContext(withLogger(cmd.Context(), newLogger(c.log, level)))
	return nil
}

// openApp loads the favourites file for a command
func (c *CLI) openApp(cmd *cobra.Command) (*app.App, error) {
	ctx := cmd.Context()
	return app.NewApp(ctx, c.cfg, loggerFromContext(ctx))
}
