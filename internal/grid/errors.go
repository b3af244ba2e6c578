package grid

import "errors"

// Structural errors (spec.md §7 category 1): raised, not recovered, and
// aborting the operation that raised them.
var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrCircularDependency = errors.New("circular dependency")
)
