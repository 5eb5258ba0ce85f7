package storage

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/badjano/favtree/internal/model"
)

// YAMLStore handles YAML file persistence. It uses the same document layout
// as JSONStore.
type YAMLStore struct {
	FilePath string
}

// NewYAMLStore creates a new YAML store for the given file path
func NewYAMLStore(filePath string) *YAMLStore {
	return &YAMLStore{FilePath: filePath}
}

// Load loads a sequence from a YAML file
func (s *YAMLStore) Load(_ context.Context) ([]*model.Element, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}

	return doc.Elements, nil
}

// Save saves a sequence to a YAML file
func (s *YAMLStore) Save(_ context.Context, elements []*model.Element) error {
	if err := ensureDir(s.FilePath); err != nil {
		return err
	}

	data, err := yaml.Marshal(document{Version: documentVersion, Elements: records(elements)})
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Exists checks if the file exists
func (s *YAMLStore) Exists() bool {
	return fileExists(s.FilePath)
}

// Path returns the file path
func (s *YAMLStore) Path() string {
	return s.FilePath
}
