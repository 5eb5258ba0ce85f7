package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/badjano/favtree/internal/model"
)

// document is the JSON and YAML file layout
type document struct {
	Version  int              `json:"version" yaml:"version"`
	Elements []*model.Element `json:"elements" yaml:"elements"`
}

const documentVersion = 1

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load loads a sequence from a JSON file
func (s *JSONStore) Load(ctx context.Context) ([]*model.Element, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc document
	if err := json.UnmarshalContext(ctx, data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}

	return doc.Elements, nil
}

// Save saves a sequence to a JSON file
func (s *JSONStore) Save(ctx context.Context, elements []*model.Element) error {
	if err := ensureDir(s.FilePath); err != nil {
		return err
	}

	doc := document{Version: documentVersion, Elements: records(elements)}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Exists checks if the file exists
func (s *JSONStore) Exists() bool {
	return fileExists(s.FilePath)
}

// Path returns the file path
func (s *JSONStore) Path() string {
	return s.FilePath
}
