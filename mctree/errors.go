package mctree

import "errors"

var (
	// ErrLength is returned when the arrays of a Record differ in length.
	ErrLength = errors.New("mctree: inconsistent array lengths")
	// ErrParentIndex is returned for a parent index outside [-1, n).
	ErrParentIndex = errors.New("mctree: parent index out of range")
	// ErrCycle is returned when following parent links does not reach a root.
	ErrCycle = errors.New("mctree: cyclic parent links")
	// ErrNodeCount is returned when the built tree does not hold every particle.
	ErrNodeCount = errors.New("mctree: tree does not contain all particles")
)
