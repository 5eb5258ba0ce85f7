package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const savedFile = "saved.toml"

// ErrNoSavedSearch is returned when a saved search cannot be found
var ErrNoSavedSearch = errors.New("no such saved search")

// SavedSearch is a named query kept across sessions
type SavedSearch struct {
	ID    int    `toml:"id"`
	Name  string `toml:"name"`
	Query string `toml:"query"`
}

// SavedFile represents the structure of the saved searches TOML file
type SavedFile struct {
	Searches []SavedSearch `toml:"searches"`
}

// LoadSaved returns saved searches in the order they were first saved
func (m *Manager) LoadSaved() ([]SavedSearch, error) {
	data, err := os.ReadFile(filepath.Join(m.historyDir, savedFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []SavedSearch{}, nil
		}
		return nil, err
	}

	var file SavedFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse saved searches: %w", err)
	}
	if file.Searches == nil {
		return []SavedSearch{}, nil
	}
	return file.Searches, nil
}

func (m *Manager) saveSaved(searches []SavedSearch) error {
	data, err := toml.Marshal(SavedFile{Searches: searches})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.historyDir, savedFile), data, 0o644)
}

// AddSaved stores query under name; an empty name uses the query itself.
// A search with the same name or query is replaced in place and keeps its id.
func (m *Manager) AddSaved(name, query string) (SavedSearch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SavedSearch{}, errors.New("cannot save an empty query")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = query
	}

	searches, err := m.LoadSaved()
	if err != nil {
		return SavedSearch{}, err
	}

	search := SavedSearch{Name: name, Query: query}
	i := slices.IndexFunc(searches, func(s SavedSearch) bool {
		return s.Name == name || s.Query == query
	})
	if i >= 0 {
		search.ID = searches[i].ID
		searches[i] = search
		// A second entry may still share the other field
		searches = slices.DeleteFunc(searches, func(s SavedSearch) bool {
			return s.ID != search.ID && (s.Name == name || s.Query == query)
		})
	} else {
		for _, s := range searches {
			search.ID = max(search.ID, s.ID)
		}
		search.ID++
		searches = append(searches, search)
	}

	if err := m.saveSaved(searches); err != nil {
		return SavedSearch{}, err
	}
	return search, nil
}

// FindSaved looks a saved search up by name, or by id when ref is a number
func (m *Manager) FindSaved(ref string) (SavedSearch, error) {
	searches, err := m.LoadSaved()
	if err != nil {
		return SavedSearch{}, err
	}
	i := slices.IndexFunc(searches, func(s SavedSearch) bool {
		return s.Name == ref || fmt.Sprint(s.ID) == ref
	})
	if i < 0 {
		return SavedSearch{}, fmt.Errorf("%w: %q", ErrNoSavedSearch, ref)
	}
	return searches[i], nil
}

// RemoveSaved deletes the saved search with the given id
func (m *Manager) RemoveSaved(id int) error {
	searches, err := m.LoadSaved()
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(searches), func(s SavedSearch) bool { return s.ID == id })
	if len(kept) == len(searches) {
		return fmt.Errorf("%w: id %d", ErrNoSavedSearch, id)
	}
	return m.saveSaved(kept)
}
