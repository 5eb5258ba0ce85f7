package tree

import (
	"fmt"
	"slices"

	"github.com/badjano/favtree/internal/model"
)

// Model owns a depth-encoded sequence and the tree built from it. The tree
// structure (parent and children links) is derived from the depth values of
// the sequence. After every exported mutating call returns, the sequence is
// the pre-order traversal of the tree again.
//
// A Model is not safe for concurrent use.
type Model struct {
	data     []*model.Element
	root     *model.Element
	index    map[int]*model.Element
	maxID    int
	observer func()
	compare  Comparer
}

// Option configures a Model.
type Option func(*Model)

// WithObserver registers fn to be called once after each structural change.
func WithObserver(fn func()) Option {
	return func(m *Model) { m.observer = fn }
}

// WithComparer sets the ordering used for search results.
func WithComparer(cmp Comparer) Option {
	return func(m *Model) { m.compare = cmp }
}

// New builds a model from a depth-encoded sequence. An empty sequence yields
// an empty model that accepts AddRoot. The model takes ownership of the
// elements; their Parent and Children fields are rebuilt.
func New(initial []*model.Element, opts ...Option) (*Model, error) {
	m := &Model{index: make(map[int]*model.Element)}
	for _, opt := range opts {
		opt(m)
	}

	if len(initial) == 0 {
		return m, nil
	}

	root, err := SequenceToTree(initial)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]int, len(initial))
	for i, element := range initial {
		if prev, dup := seen[element.ID]; dup {
			return nil, &StructureError{Index: i, Depth: element.Depth, Reason: fmt.Sprintf("duplicate id %d (first at index %d)", element.ID, prev)}
		}
		seen[element.ID] = i
	}

	m.root = root
	m.data = slices.Clone(initial)
	m.maxID = initial[0].ID
	for _, element := range initial {
		m.maxID = max(m.maxID, element.ID)
	}
	m.reindex()
	return m, nil
}

// SetObserver replaces the change observer. A nil fn disables notifications.
func (m *Model) SetObserver(fn func()) {
	m.observer = fn
}

// Root returns the hidden root element, or nil for an empty model.
func (m *Model) Root() *model.Element {
	return m.root
}

// Data returns a copy of the flat sequence. Callers must not change the
// structural fields of the returned elements.
func (m *Model) Data() []*model.Element {
	return slices.Clone(m.data)
}

// Len returns the number of elements in the flat sequence, root included.
func (m *Model) Len() int {
	return len(m.data)
}

// Find returns the element with the given id, or nil.
func (m *Model) Find(id int) *model.Element {
	return m.index[id]
}

// NewID returns an id that has never been returned or loaded before.
func (m *Model) NewID() int {
	m.maxID++
	return m.maxID
}

// AddRoot installs root as the hidden root of an empty model.
func (m *Model) AddRoot(root *model.Element) error {
	if root == nil {
		return fmt.Errorf("root is nil: %w", ErrInvalidArgument)
	}
	if len(m.data) != 0 {
		return ErrNotEmpty
	}

	root.ID = m.NewID()
	root.Depth = model.RootDepth
	root.Parent = nil
	root.Children = nil
	m.root = root
	m.data = []*model.Element{root}
	m.reindex()
	m.changed()
	return nil
}

// AddElement inserts element below parent at index, clamped to the range of
// valid positions.
func (m *Model) AddElement(element *model.Element, parent *model.Element, index int) error {
	if element == nil {
		return fmt.Errorf("element is nil: %w", ErrInvalidArgument)
	}
	return m.AddElements([]*model.Element{element}, parent, index)
}

// AddElements inserts elements, in order, below parent starting at index.
// Each element may carry its own subtree in Children. Elements without an id,
// or whose id the model has already issued, get a fresh one.
func (m *Model) AddElements(elements []*model.Element, parent *model.Element, index int) error {
	if parent == nil {
		return ErrNullParent
	}
	if len(elements) == 0 {
		return fmt.Errorf("no elements to add: %w", ErrInvalidArgument)
	}
	if m.index[parent.ID] != parent {
		return fmt.Errorf("parent %d is not part of this model: %w", parent.ID, ErrInvalidArgument)
	}
	batch := make(map[*model.Element]struct{}, len(elements))
	for _, element := range elements {
		if element == nil {
			return fmt.Errorf("element is nil: %w", ErrInvalidArgument)
		}
		if m.index[element.ID] == element {
			return fmt.Errorf("element %d is already part of this model: %w", element.ID, ErrInvalidArgument)
		}
		if _, dup := batch[element]; dup {
			return fmt.Errorf("element %d appears twice: %w", element.ID, ErrInvalidArgument)
		}
		batch[element] = struct{}{}
	}

	m.assignIDs(elements)
	parent.InsertChildren(index, elements...)
	for _, element := range elements {
		element.Depth = parent.Depth + 1
		RepairDepths(element)
	}

	m.rebuild()
	m.changed()
	return nil
}

// QuickAddElement appends element below parent with a fresh id and the
// correct depth, without rebuilding the flat sequence or notifying the
// observer. It exists for bulk loading: until RebuildSequence is called,
// Data, Len and Find do not see elements added this way.
func (m *Model) QuickAddElement(element *model.Element, parent *model.Element) error {
	if parent == nil {
		return ErrNullParent
	}
	if element == nil {
		return fmt.Errorf("element is nil: %w", ErrInvalidArgument)
	}

	parent.Children = append(parent.Children, element)
	element.Parent = parent
	element.ID = m.NewID()
	element.Depth = parent.Depth + 1
	RepairDepths(element)
	return nil
}

// RebuildSequence re-flattens the sequence from the tree. Call it once after
// a batch of QuickAddElement calls.
func (m *Model) RebuildSequence() {
	m.rebuild()
	m.changed()
}

// RemoveElementsByID removes the elements with the given ids and their
// subtrees. Unknown ids are ignored.
func (m *Model) RemoveElementsByID(ids []int) error {
	elements := make([]*model.Element, 0, len(ids))
	for _, id := range ids {
		if element := m.index[id]; element != nil {
			elements = append(elements, element)
		}
	}
	return m.RemoveElements(elements)
}

// RemoveElements removes elements and their subtrees. Elements already
// covered by a selected ancestor are removed once, with that ancestor.
func (m *Model) RemoveElements(elements []*model.Element) error {
	for _, element := range elements {
		if element != nil && element == m.root {
			return ErrRootRemovalForbidden
		}
	}

	var owned []*model.Element
	for _, element := range elements {
		if element != nil && m.index[element.ID] == element {
			owned = append(owned, element)
		}
	}

	removed := 0
	for _, element := range CommonRoots(owned) {
		if element.Parent != nil && element.Parent.RemoveChild(element) {
			removed++
		}
	}
	if removed == 0 {
		return nil
	}

	m.rebuild()
	m.changed()
	return nil
}

// MoveElements reparents elements below newParent at index. index counts
// positions in newParent's children before the move; it is adjusted for moved
// elements that already sit in front of it. A nil newParent is ignored.
func (m *Model) MoveElements(newParent *model.Element, index int, elements []*model.Element) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInsertIndex, index)
	}
	if newParent == nil {
		return nil
	}
	if m.index[newParent.ID] != newParent {
		return fmt.Errorf("parent %d is not part of this model: %w", newParent.ID, ErrInvalidArgument)
	}

	moving := make([]*model.Element, 0, len(elements))
	set := make(map[*model.Element]struct{}, len(elements))
	for _, element := range elements {
		if element == nil {
			continue
		}
		if _, dup := set[element]; dup {
			continue
		}
		if element == m.root {
			return ErrRootRemovalForbidden
		}
		if m.index[element.ID] != element {
			return fmt.Errorf("element %d is not part of this model: %w", element.ID, ErrInvalidArgument)
		}
		set[element] = struct{}{}
		moving = append(moving, element)
	}
	if len(moving) == 0 {
		return nil
	}
	if !m.CanMove(newParent, moving) {
		return ErrCycleDetected
	}

	index = min(index, len(newParent.Children))
	for _, child := range newParent.Children[:index] {
		if _, ok := set[child]; ok {
			index--
		}
	}

	for _, element := range moving {
		if element.Parent != nil {
			element.Parent.RemoveChild(element)
		}
	}
	newParent.InsertChildren(index, moving...)

	RepairDepths(m.root)
	m.rebuild()
	m.changed()
	return nil
}

// CanMove reports whether elements may be moved below newParent, which is
// false when newParent is one of them or lies in one of their subtrees.
func (m *Model) CanMove(newParent *model.Element, elements []*model.Element) bool {
	if newParent == nil {
		return false
	}
	for _, element := range elements {
		if element == nil {
			continue
		}
		if element == newParent || IsDescendantOf(newParent, element) {
			return false
		}
	}
	return true
}

// Ancestors returns the ids of the ancestors of the element with the given
// id, nearest first. Unknown ids yield an empty slice.
func (m *Model) Ancestors(id int) []int {
	return AncestorsOf(m.index[id])
}

// DescendantsWithChildren returns the ids of the element with the given id
// and every descendant that has children.
func (m *Model) DescendantsWithChildren(id int) []int {
	return IDsWithChildrenBelow(m.index[id])
}

// assignIDs keeps an element's id only if the model has never issued it;
// every other element, including one with id 0, gets a fresh id.
func (m *Model) assignIDs(elements []*model.Element) {
	issued := m.maxID
	taken := make(map[int]struct{})
	for _, element := range elements {
		for _, node := range TreeToSequence(element) {
			_, used := taken[node.ID]
			if node.ID <= issued || used {
				node.ID = m.NewID()
			}
			m.maxID = max(m.maxID, node.ID)
			taken[node.ID] = struct{}{}
		}
	}
}

func (m *Model) rebuild() {
	m.data = TreeToSequence(m.root)
	m.reindex()
}

func (m *Model) reindex() {
	clear(m.index)
	for _, element := range m.data {
		m.index[element.ID] = element
	}
}

func (m *Model) changed() {
	if m.observer != nil {
		m.observer()
	}
}
