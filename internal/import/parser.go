// Package import_parser turns outline text into depth-encoded element sequences
package import_parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/badjano/favtree/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
	FormatAuto         ImportFormat = "auto" // Auto-detect from extension
)

// Parser interface for different import formats. Parse returns a valid
// depth-encoded sequence: a root with depth -1 followed by the parsed
// elements, numbered from 1.
type Parser interface {
	Parse(content string) ([]*model.Element, error)
	Name() string
}

// ImportFile parses content in the given format
func ImportFile(content string, format ImportFormat) ([]*model.Element, error) {
	var parser Parser

	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatIndentedText:
		parser = &IndentedTextParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	elements, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return elements, nil
}

// DetectFormat attempts to detect the file format from extension
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatIndentedText
	}
}

// levelStack assigns depths from nesting ranks. An entry with a higher rank
// nests below the entries before it; an entry closes every open entry whose
// rank is not lower than its own. Depth therefore never grows by more than
// one per element, however far a line is indented.
type levelStack struct {
	ranks    []int
	elements []*model.Element
}

func newLevelStack() *levelStack {
	return &levelStack{elements: []*model.Element{model.NewRoot("Root")}}
}

// push adds an element that later entries can nest under
func (s *levelStack) push(name string, rank int) {
	for len(s.ranks) > 0 && s.ranks[len(s.ranks)-1] >= rank {
		s.ranks = s.ranks[:len(s.ranks)-1]
	}
	s.add(name, len(s.ranks))
	s.ranks = append(s.ranks, rank)
}

// leaf adds an element below the innermost open entry
func (s *levelStack) leaf(name string) {
	s.add(name, len(s.ranks))
}

func (s *levelStack) add(name string, depth int) {
	s.elements = append(s.elements, &model.Element{
		ID:    len(s.elements),
		Name:  name,
		Depth: depth,
	})
}

// getIndentLevel counts leading indentation columns (tab = 2 spaces)
func getIndentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent
}
