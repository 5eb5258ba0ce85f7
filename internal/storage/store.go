// Package storage loads and saves depth-encoded element sequences.
//
// Only the stored fields of each element (id, name, depth, icon, keywords and
// payload) are written. Parent and children links are rebuilt from the depths
// by the tree package after loading.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/badjano/favtree/internal/model"
)

// Format identifies an on-disk representation
type Format string

const (
	FormatAuto   Format = "auto" // Detect from the file extension
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatText   Format = "text"
	FormatSQLite Format = "sqlite"
)

// Store persists a flat element sequence
type Store interface {
	// Load returns the stored sequence, or nil when nothing has been saved yet.
	Load(ctx context.Context) ([]*model.Element, error)
	// Save replaces the stored sequence.
	Save(ctx context.Context, elements []*model.Element) error
	// Exists reports whether the backing file exists.
	Exists() bool
	// Path returns the backing file path.
	Path() string
}

// ParseFormat converts a user supplied format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML, FormatText, FormatSQLite:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	case "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported storage format: %s", name)
	}
}

// DetectFormat picks a format from the file extension, defaulting to JSON
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".fav":
		return FormatText
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Open returns the store for path in the given format
func Open(path string, format Format) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("no data file given")
	}
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}

	switch format {
	case FormatJSON:
		return NewJSONStore(path), nil
	case FormatYAML:
		return NewYAMLStore(path), nil
	case FormatText:
		return NewTextStore(path), nil
	case FormatSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported storage format: %s", format)
	}
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureDir creates the parent directory of path if needed
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// records strips the tree links from elements
func records(elements []*model.Element) []*model.Element {
	out := make([]*model.Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}
