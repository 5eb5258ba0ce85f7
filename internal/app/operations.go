package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/badjano/favtree/internal/config"
	"github.com/badjano/favtree/internal/export"
	"github.com/badjano/favtree/internal/history"
	import_parser "github.com/badjano/favtree/internal/import"
	"github.com/badjano/favtree/internal/tree"
)

// Rename gives the element with the given id a new name. The root cannot be
// renamed and the name must not be blank.
func (a *App) Rename(id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("empty name: %w", tree.ErrInvalidArgument)
	}
	e := a.model.Find(id)
	if e == nil {
		return fmt.Errorf("no element with id %d", id)
	}
	if e == a.model.Root() {
		return fmt.Errorf("the root cannot be renamed: %w", tree.ErrInvalidArgument)
	}
	if e.Name == name {
		return nil
	}

	a.logger.Debug("renamed element", "id", id, "from", e.Name, "to", name)
	e.Name = name
	a.markDirty()
	return nil
}

// Search runs query over every element and records it in the search
// history. Fuzzy matching is used when fuzzy is set or the configured
// search mode is fuzzy.
func (a *App) Search(query string, fuzzy bool) ([]tree.Row, error) {
	var rows []tree.Row
	var err error
	if fuzzy || a.cfg.SearchMode == config.SearchFuzzy {
		rows, err = a.model.FuzzySearch(query)
	} else {
		rows, err = a.model.Search(query)
	}
	if err != nil {
		return nil, err
	}

	if _, err := a.history.Record(searchHistoryFile, query, a.cfg.HistoryLimit(history.DefaultMax)); err != nil {
		a.logger.Warn("failed to record search history", "err", err)
	}
	return rows, nil
}

// SearchHistory returns recent queries, most recent first
func (a *App) SearchHistory() ([]string, error) {
	return a.history.Load(searchHistoryFile)
}

// SaveSearch keeps query under name for later runs. An empty name uses the
// query itself.
func (a *App) SaveSearch(name, query string) (history.SavedSearch, error) {
	saved, err := a.history.AddSaved(name, query)
	if err != nil {
		return history.SavedSearch{}, err
	}
	a.logger.Debug("saved search", "id", saved.ID, "name", saved.Name, "query", saved.Query)
	return saved, nil
}

// SavedSearches returns the saved searches in the order they were saved
func (a *App) SavedSearches() ([]history.SavedSearch, error) {
	return a.history.LoadSaved()
}

// RemoveSavedSearch deletes the saved search with the given id
func (a *App) RemoveSavedSearch(id int) error {
	return a.history.RemoveSaved(id)
}

// RunSavedSearch runs the saved search named ref, or numbered ref
func (a *App) RunSavedSearch(ref string, fuzzy bool) (history.SavedSearch, []tree.Row, error) {
	saved, err := a.history.FindSaved(ref)
	if err != nil {
		return history.SavedSearch{}, nil, err
	}
	rows, err := a.Search(saved.Query, fuzzy)
	if err != nil {
		return history.SavedSearch{}, nil, err
	}
	return saved, rows, nil
}

// Import parses an outline and appends its top-level entries, with their
// subtrees, below the element with id parentID. It returns the number of
// elements added.
func (a *App) Import(content string, format import_parser.ImportFormat, parentID int) (int, error) {
	parent, err := a.Element(parentID)
	if err != nil {
		return 0, err
	}

	sequence, err := import_parser.ImportFile(content, format)
	if err != nil {
		return 0, err
	}
	if len(sequence) < 2 {
		return 0, nil
	}

	imported, err := tree.SequenceToTree(sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to build imported tree: %w", err)
	}
	entries := imported.Children
	imported.Children = nil
	for _, e := range entries {
		e.Parent = nil
	}
	// Parser ids only number the outline; the model issues the real ones
	for _, e := range sequence {
		e.ID = 0
	}

	if err := a.model.AddElements(entries, parent, len(parent.Children)); err != nil {
		return 0, err
	}

	a.logger.Debug("imported outline", "format", format, "elements", len(sequence)-1, "parent", parent.ID)
	return len(sequence) - 1, nil
}

// Export writes the whole tree as an outline. Supported formats are
// "markdown" and "text".
func (a *App) Export(w io.Writer, format string) error {
	switch format {
	case "markdown", "md":
		return export.Markdown(w, a.model.Root())
	case "text", "txt", "indented":
		return export.IndentedText(w, a.model.Root())
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
