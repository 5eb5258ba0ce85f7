// Package app ties a favourites file to a tree model for one session
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/badjano/favtree/internal/config"
	"github.com/badjano/favtree/internal/history"
	"github.com/badjano/favtree/internal/model"
	"github.com/badjano/favtree/internal/storage"
	"github.com/badjano/favtree/internal/tree"
)

// DefaultRootName names the hidden root of a new favourites file
const DefaultRootName = "Favourites"

const searchHistoryFile = "search.toml"

// App is the main application controller
type App struct {
	cfg     *config.Config
	store   storage.Store
	model   *tree.Model
	compare tree.Comparer
	backups *storage.BackupManager
	history *history.Manager
	logger  *log.Logger
	dirty   bool
}

// NewApp opens the favourites file named by cfg and loads it into a model.
// A missing file yields a model holding only a root.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	format, err := storage.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.DataFile, format)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	tag := language.Und
	if cfg.Collation != "" {
		if tag, err = language.Parse(cfg.Collation); err != nil {
			return nil, fmt.Errorf("invalid collation %q: %w", cfg.Collation, err)
		}
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = config.DataDir()
	}

	a := &App{
		cfg:     cfg,
		store:   store,
		compare: tree.NaturalComparer(tag),
		logger:  logger,
	}

	if cfg.Backups {
		a.backups, err = storage.NewBackupManager(filepath.Join(dataDir, "backups"), logger)
		if err != nil {
			return nil, err
		}
	}

	a.history, err = history.NewManager(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	elements, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favourites: %w", err)
	}
	if err := a.replaceModel(elements); err != nil {
		return nil, err
	}
	a.dirty = false

	logger.Debug("loaded favourites", "file", store.Path(), "elements", a.model.Len())
	return a, nil
}

// replaceModel builds a fresh model from a depth-encoded sequence
func (a *App) replaceModel(elements []*model.Element) error {
	m, err := tree.New(elements, tree.WithComparer(a.compare), tree.WithObserver(a.markDirty))
	if err != nil {
		return fmt.Errorf("failed to build tree: %w", err)
	}
	if m.Root() == nil {
		if err := m.AddRoot(model.NewRoot(DefaultRootName)); err != nil {
			return err
		}
	}

	a.model = m
	a.dirty = true
	return nil
}

func (a *App) markDirty() {
	a.dirty = true
}

// Model returns the loaded tree model
func (a *App) Model() *tree.Model {
	return a.model
}

// Dirty reports whether the model changed since it was loaded or saved
func (a *App) Dirty() bool {
	return a.dirty
}

// FilePath returns the path of the favourites file
func (a *App) FilePath() string {
	return a.store.Path()
}

// Save writes the model back to its file when it has changed. When backups
// are enabled the previous file is copied aside first.
func (a *App) Save(ctx context.Context) error {
	if !a.dirty {
		return nil
	}

	if a.backups != nil && a.store.Exists() {
		if _, err := a.backups.CreateBackup(a.store.Path()); err != nil {
			return fmt.Errorf("failed to back up %s: %w", a.store.Path(), err)
		}
	}

	if err := a.store.Save(ctx, a.model.Data()); err != nil {
		return fmt.Errorf("failed to save favourites: %w", err)
	}

	a.dirty = false
	a.logger.Info("saved favourites", "file", a.store.Path(), "elements", a.model.Len())
	return nil
}

// Element returns the element with the given id; id 0 selects the root
func (a *App) Element(id int) (*model.Element, error) {
	if id == 0 {
		return a.model.Root(), nil
	}
	e := a.model.Find(id)
	if e == nil {
		return nil, fmt.Errorf("no element with id %d", id)
	}
	return e, nil
}

// Elements resolves a list of ids
func (a *App) Elements(ids []int) ([]*model.Element, error) {
	elements := make([]*model.Element, 0, len(ids))
	for _, id := range ids {
		e := a.model.Find(id)
		if e == nil {
			return nil, fmt.Errorf("no element with id %d", id)
		}
		elements = append(elements, e)
	}
	return elements, nil
}
