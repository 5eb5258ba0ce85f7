package tree

import (
	"github.com/badjano/favtree/internal/model"
)

// ValidateDepths checks that flat is a well formed depth-encoded sequence:
// no element is nil, element 0 is the root with depth -1, element 1 (if any)
// has depth 0, no other element has a negative depth, and depth never grows
// by more than one between neighbours.
func ValidateDepths(flat []*model.Element) error {
	if len(flat) == 0 {
		return &StructureError{Index: -1, Reason: "sequence is empty"}
	}

	for i, element := range flat {
		if element == nil {
			return &StructureError{Index: i, Reason: "element is nil"}
		}
	}

	if flat[0].Depth != model.RootDepth {
		return &StructureError{Index: 0, Depth: flat[0].Depth, Reason: "the root must have depth -1"}
	}

	for i := 1; i < len(flat); i++ {
		if flat[i].Depth < 0 {
			return &StructureError{Index: i, Depth: flat[i].Depth, Reason: "only the root may have a negative depth"}
		}
	}

	if len(flat) > 1 && flat[1].Depth != 0 {
		return &StructureError{Index: 1, Depth: flat[1].Depth, Reason: "the first element after the root must have depth 0"}
	}

	for i := 0; i < len(flat)-1; i++ {
		if flat[i+1].Depth-flat[i].Depth > 1 {
			return &StructureError{Index: i + 1, Depth: flat[i+1].Depth, Reason: "depth cannot increase by more than one per element"}
		}
	}

	return nil
}

// SequenceToTree links the elements of flat into a tree using their depths and
// returns the root (element 0). Existing Parent and Children fields are
// discarded first. The order of children follows the order of flat.
func SequenceToTree(flat []*model.Element) (*model.Element, error) {
	if err := ValidateDepths(flat); err != nil {
		return nil, err
	}

	for _, element := range flat {
		element.Parent = nil
		element.Children = nil
	}

	// stack holds the chain from the root to the previous element
	root := flat[0]
	stack := []*model.Element{root}
	for _, element := range flat[1:] {
		for stack[len(stack)-1].Depth >= element.Depth {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		element.Parent = parent
		parent.Children = append(parent.Children, element)
		stack = append(stack, element)
	}

	return root, nil
}

// TreeToSequence returns the pre-order traversal of the tree below root,
// root first.
func TreeToSequence(root *model.Element) []*model.Element {
	if root == nil {
		return nil
	}

	var result []*model.Element
	stack := []*model.Element{root}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, current)

		for i := len(current.Children) - 1; i >= 0; i-- {
			stack = append(stack, current.Children[i])
		}
	}
	return result
}

// RepairDepths sets the depth of every descendant of node to its parent's
// depth plus one. The depth of node itself is left unchanged.
func RepairDepths(node *model.Element) {
	if node == nil {
		return
	}

	stack := []*model.Element{node}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range current.Children {
			child.Depth = current.Depth + 1
			stack = append(stack, child)
		}
	}
}

// AncestorsOf returns the IDs of every ancestor of element, nearest first and
// ending with the root.
func AncestorsOf(element *model.Element) []int {
	ancestors := []int{}
	if element == nil {
		return ancestors
	}
	for parent := element.Parent; parent != nil; parent = parent.Parent {
		ancestors = append(ancestors, parent.ID)
	}
	return ancestors
}

// IDsWithChildrenBelow returns the IDs of element and of each of its
// descendants that has at least one child, in pre-order. These are the rows a
// tree widget must be able to expand or collapse.
func IDsWithChildrenBelow(element *model.Element) []int {
	ids := []int{}
	if element == nil {
		return ids
	}

	stack := []*model.Element{element}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !current.HasChildren() {
			continue
		}
		ids = append(ids, current.ID)
		for i := len(current.Children) - 1; i >= 0; i-- {
			stack = append(stack, current.Children[i])
		}
	}
	return ids
}

// CommonRoots reduces elements to those that have no ancestor in the same
// set, keeping the input order. Duplicates are dropped.
func CommonRoots(elements []*model.Element) []*model.Element {
	set := make(map[*model.Element]struct{}, len(elements))
	for _, element := range elements {
		if element != nil {
			set[element] = struct{}{}
		}
	}

	result := make([]*model.Element, 0, len(set))
	seen := make(map[*model.Element]struct{}, len(set))
	for _, element := range elements {
		if element == nil {
			continue
		}
		if _, dup := seen[element]; dup {
			continue
		}
		seen[element] = struct{}{}
		if hasAncestorIn(element, set) {
			continue
		}
		result = append(result, element)
	}
	return result
}

func hasAncestorIn(element *model.Element, set map[*model.Element]struct{}) bool {
	for parent := element.Parent; parent != nil; parent = parent.Parent {
		if _, ok := set[parent]; ok {
			return true
		}
	}
	return false
}

// IsDescendantOf reports whether element lies strictly below ancestor.
func IsDescendantOf(element, ancestor *model.Element) bool {
	if element == nil || ancestor == nil {
		return false
	}
	for parent := element.Parent; parent != nil; parent = parent.Parent {
		if parent == ancestor {
			return true
		}
	}
	return false
}
