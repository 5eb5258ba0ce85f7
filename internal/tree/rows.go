package tree

import (
	"github.com/badjano/favtree/internal/model"
)

// Row is one line of a tree widget
type Row struct {
	ID        int
	Depth     int
	Name      string
	Element   *model.Element
	Collapsed bool // Element has children that are not part of the rows
}

// VisibleRows returns the rows a tree widget shows: every element below the
// hidden root in pre-order, skipping the descendants of elements for which
// expanded returns false. A nil expanded shows everything.
func VisibleRows(root *model.Element, expanded func(id int) bool) []Row {
	rows := []Row{}
	if root == nil {
		return rows
	}
	appendVisible(&rows, root.Children, expanded)
	return rows
}

func appendVisible(rows *[]Row, elements []*model.Element, expanded func(id int) bool) {
	for _, element := range elements {
		open := expanded == nil || expanded(element.ID)
		*rows = append(*rows, Row{
			ID:        element.ID,
			Depth:     element.Depth,
			Name:      element.Name,
			Element:   element,
			Collapsed: element.HasChildren() && !open,
		})
		if element.HasChildren() && open {
			appendVisible(rows, element.Children, expanded)
		}
	}
}

// VisibleRows returns the visible rows of the model's tree.
func (m *Model) VisibleRows(expanded func(id int) bool) []Row {
	return VisibleRows(m.root, expanded)
}

// Rows returns search results when query is not empty and the visible rows
// otherwise.
func (m *Model) Rows(query string, expanded func(id int) bool) ([]Row, error) {
	if query == "" {
		return m.VisibleRows(expanded), nil
	}
	return m.Search(query)
}
