// Package export writes element trees as human-readable outlines
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/badjano/favtree/internal/model"
)

// Markdown writes the tree below root as an unordered markdown list.
// Items are bullets indented two spaces per depth; the root is omitted.
func Markdown(w io.Writer, root *model.Element) error {
	return writeOutline(w, root, "- ")
}

// IndentedText writes the tree below root as plain indented text, two
// spaces per depth. The output imports back into the same shape.
func IndentedText(w io.Writer, root *model.Element) error {
	return writeOutline(w, root, "")
}

// ExportToMarkdown exports the tree to a markdown file
func ExportToMarkdown(root *model.Element, filePath string) error {
	return exportToFile(root, filePath, Markdown)
}

// ExportToText exports the tree to an indented text file
func ExportToText(root *model.Element, filePath string) error {
	return exportToFile(root, filePath, IndentedText)
}

func exportToFile(root *model.Element, filePath string, write func(io.Writer, *model.Element) error) error {
	var sb strings.Builder
	if err := write(&sb, root); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

func writeOutline(w io.Writer, root *model.Element, marker string) error {
	if root == nil {
		return nil
	}

	bw := bufio.NewWriter(w)
	for _, child := range root.Children {
		writeElement(bw, child, 0, marker)
	}
	return bw.Flush()
}

// writeElement recursively writes an element and its children.
// depth determines the indentation level (2 spaces per level).
func writeElement(w *bufio.Writer, element *model.Element, depth int, marker string) {
	if element == nil {
		return
	}

	// Skip unnamed elements but keep their children in place
	name := strings.TrimSpace(element.Name)
	if name == "" {
		for _, child := range element.Children {
			writeElement(w, child, depth, marker)
		}
		return
	}

	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(marker)
	w.WriteString(strings.ReplaceAll(name, "\n", " "))
	w.WriteString("\n")

	for _, child := range element.Children {
		writeElement(w, child, depth+1, marker)
	}
}
