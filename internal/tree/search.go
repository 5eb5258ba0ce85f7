package tree

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/badjano/favtree/internal/model"
)

// searchDepth is the depth of every search result: searching flattens the tree
const searchDepth = 0

// Comparer orders two elements, returning a negative number when a sorts
// before b, zero when they are equal and a positive number otherwise.
type Comparer func(a, b *model.Element) int

// NaturalComparer orders elements by display name using the collation rules
// of tag, with runs of digits compared by numeric value ("item 2" sorts
// before "item 10").
func NaturalComparer(tag language.Tag) Comparer {
	c := collate.New(tag, collate.Numeric)
	return func(a, b *model.Element) int {
		return c.CompareString(a.Name, b.Name)
	}
}

// Search returns every element below root whose search text contains query,
// ignoring case. Results are flattened to depth 0 and sorted with order, or by
// natural name order when order is nil.
func Search(root *model.Element, query string, order Comparer) ([]Row, error) {
	if query == "" {
		return nil, ErrInvalidArgument
	}

	fold := cases.Fold()
	needle := fold.String(query)
	return collectMatches(root, order, func(text string) bool {
		return strings.Contains(fold.String(text), needle)
	}), nil
}

// FuzzySearch is like Search but matches when the characters of query appear
// in order in the search text, ignoring case and diacritics.
func FuzzySearch(root *model.Element, query string, order Comparer) ([]Row, error) {
	if query == "" {
		return nil, ErrInvalidArgument
	}

	return collectMatches(root, order, func(text string) bool {
		return fuzzy.MatchNormalizedFold(query, text)
	}), nil
}

// Search runs Search from the model's root with the model's comparer.
func (m *Model) Search(query string) ([]Row, error) {
	return Search(m.root, query, m.compare)
}

// FuzzySearch runs FuzzySearch from the model's root with the model's comparer.
func (m *Model) FuzzySearch(query string) ([]Row, error) {
	return FuzzySearch(m.root, query, m.compare)
}

func collectMatches(root *model.Element, order Comparer, match func(string) bool) []Row {
	rows := []Row{}
	if root == nil {
		return rows
	}

	stack := slices.Clone(root.Children)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if match(current.SearchText()) {
			rows = append(rows, Row{
				ID:      current.ID,
				Depth:   searchDepth,
				Name:    current.Name,
				Element: current,
			})
		}
		stack = append(stack, current.Children...)
	}

	if order == nil {
		order = NaturalComparer(language.Und)
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := order(a.Element, b.Element); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return rows
}
