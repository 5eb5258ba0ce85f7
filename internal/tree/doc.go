// Package tree maintains a tree stored as an ordered, flat sequence of
// elements where each element carries its nesting depth.
//
// The sequence is the pre-order traversal of the tree. Element 0 is a hidden
// root with depth -1, its children have depth 0, and depth can only grow by
// one from one element to the next:
//
//	Root    -1
//	Fruit    0
//	Apple    1
//	Banana   1
//	Veg      0
//
// SequenceToTree and TreeToSequence convert between the two forms. Model
// keeps both in step while elements are added, removed, moved and searched.
package tree
