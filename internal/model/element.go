// Package model contains the element type shared by the tree engine and its stores
package model

import (
	"slices"
	"strings"
)

// RootDepth is the depth of the hidden root element
const RootDepth = -1

// Element represents a single node of a depth-encoded tree
type Element struct {
	ID       int               `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Depth    int               `json:"depth" yaml:"depth"`
	Icon     string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Keywords string            `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Payload  map[string]string `json:"payload,omitempty" yaml:"payload,omitempty"`

	Parent   *Element   `json:"-" yaml:"-"` // Not persisted, rebuilt from depths
	Children []*Element `json:"-" yaml:"-"` // Not persisted, rebuilt from depths
}

// NewElement creates an element with the given name. The ID is assigned by the
// tree model when the element is added.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// NewRoot creates the hidden root element
func NewRoot(name string) *Element {
	return &Element{Name: name, Depth: RootDepth}
}

// HasChildren reports whether the element has at least one child
func (e *Element) HasChildren() bool {
	return len(e.Children) > 0
}

// IsRoot reports whether the element carries the root depth
func (e *Element) IsRoot() bool {
	return e.Depth == RootDepth
}

// SearchText returns the text matched by searches: the name, followed by the
// keywords when present.
func (e *Element) SearchText() string {
	if e.Keywords == "" {
		return e.Name
	}
	return e.Name + " " + e.Keywords
}

// AddChild appends a child to this element
func (e *Element) AddChild(child *Element) {
	child.Parent = e
	child.Depth = e.Depth + 1
	e.Children = append(e.Children, child)
}

// InsertChildren inserts children at index, clamped to the valid range
func (e *Element) InsertChildren(index int, children ...*Element) {
	if index < 0 {
		index = 0
	}
	if index > len(e.Children) {
		index = len(e.Children)
	}
	for _, child := range children {
		child.Parent = e
	}
	e.Children = slices.Insert(e.Children, index, children...)
}

// RemoveChild removes a child element from this element
func (e *Element) RemoveChild(child *Element) bool {
	for idx, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:idx], e.Children[idx+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// IndexOf returns the position of child among the element's children, or -1
func (e *Element) IndexOf(child *Element) int {
	for idx, c := range e.Children {
		if c == child {
			return idx
		}
	}
	return -1
}

// Path returns the names from the first non-root ancestor down to e, joined by sep
func (e *Element) Path(sep string) string {
	var names []string
	for cur := e; cur != nil && !cur.IsRoot(); cur = cur.Parent {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, sep)
}

// Clone returns a copy of the element's stored fields without tree links
func (e *Element) Clone() *Element {
	c := &Element{
		ID:       e.ID,
		Name:     e.Name,
		Depth:    e.Depth,
		Icon:     e.Icon,
		Keywords: e.Keywords,
	}
	if e.Payload != nil {
		c.Payload = make(map[string]string, len(e.Payload))
		for k, v := range e.Payload {
			c.Payload[k] = v
		}
	}
	return c
}
