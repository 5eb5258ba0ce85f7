// Package history persists recent and saved search queries
package history

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// DefaultMax caps the number of entries kept per history file
const DefaultMax = 50

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager storing files in dir
func NewManager(dir string) (*Manager, error) {
	historyDir := filepath.Join(dir, "history")

	// Create directory if it doesn't exist
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return nil, err
	}

	return &Manager{
		historyDir: historyDir,
	}, nil
}

// Load loads history entries from a TOML file, most recent first
func (m *Manager) Load(filename string) ([]string, error) {
	filePath := filepath.Join(m.historyDir, filename)

	// If file doesn't exist, return empty slice
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		// A corrupted history file is treated as empty
		return []string{}, nil
	}

	return histFile.Entries, nil
}

// Save saves history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	filePath := filepath.Join(m.historyDir, filename)

	histFile := HistoryFile{
		Entries: entries,
	}

	data, err := toml.Marshal(histFile)
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, data, 0o644)
}

// Record loads a history file, adds entry at the front and saves it back,
// keeping at most limit entries.
func (m *Manager) Record(filename, entry string, limit int) ([]string, error) {
	entries, err := m.Load(filename)
	if err != nil {
		return nil, err
	}

	entries = Add(entries, entry, limit)
	if err := m.Save(filename, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add returns entries with entry moved or inserted at the front, keeping at
// most limit entries. Empty entries are ignored.
func Add(entries []string, entry string, limit int) []string {
	if entry == "" {
		return entries
	}

	out := make([]string, 0, len(entries)+1)
	out = append(out, entry)
	for _, e := range entries {
		if e != entry {
			out = append(out, e)
		}
	}

	if limit > 0 && len(out) > limit {
		out = slices.Clip(out[:limit])
	}
	return out
}
