package catalog

import "errors"

var (
	// ErrNotFound is returned when a slug or id matches no row at the expected level.
	ErrNotFound = errors.New("catalog: not found")
	// ErrBrokenHierarchy is returned when a parent reference points at a missing row.
	ErrBrokenHierarchy = errors.New("catalog: broken hierarchy")
	// ErrInvalidPlacement is returned when a product is assigned to more than one level
	// or to a node that does not exist.
	ErrInvalidPlacement = errors.New("catalog: invalid product placement")
	// ErrHasDependents blocks deleting a node that still has children or products.
	ErrHasDependents = errors.New("catalog: node has dependents")
)
