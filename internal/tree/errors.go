package tree

import (
	"errors"
	"fmt"
)

// Structure errors
var (
	// ErrInvalidStructure indicates a malformed depth-encoded sequence.
	ErrInvalidStructure = errors.New("invalid tree structure")

	// ErrCycleDetected indicates a move that would place an element below itself.
	ErrCycleDetected = errors.New("move would create a cycle")
)

// Mutation errors
var (
	// ErrNotEmpty indicates AddRoot was called on a model that already has elements.
	ErrNotEmpty = errors.New("model is not empty")

	// ErrRootRemovalForbidden indicates an attempt to remove or move the root.
	ErrRootRemovalForbidden = errors.New("the root element cannot be removed")

	// ErrNullParent indicates a mutation that requires a parent was given none.
	ErrNullParent = errors.New("parent is nil")

	// ErrInvalidInsertIndex indicates a negative insertion index.
	ErrInvalidInsertIndex = errors.New("invalid insert index")

	// ErrInvalidArgument indicates an empty search query or empty element batch.
	ErrInvalidArgument = errors.New("invalid argument")
)

// StructureError describes where a depth-encoded sequence is malformed.
type StructureError struct {
	Index  int    // Position of the offending element, -1 when the sequence is empty
	Depth  int    // Depth found at Index
	Reason string // Human readable description
}

func (e *StructureError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidStructure, e.Reason)
	}
	return fmt.Sprintf("%s: index %d (depth %d): %s", ErrInvalidStructure, e.Index, e.Depth, e.Reason)
}

// Unwrap returns ErrInvalidStructure so errors.Is matches.
func (e *StructureError) Unwrap() error { return ErrInvalidStructure }
