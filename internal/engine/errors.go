package engine

import "errors"

// Failure kinds returned by list operations. Callers match with
// errors.Is; operation errors wrap these with the offending ids.
var (
	// ErrNotFound is returned when a referenced task id does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrSelfDependency is returned when a task is added as its own
	// dependency.
	ErrSelfDependency = errors.New("task cannot depend on itself")

	// ErrDependencyCycle is returned when a new dependency edge would
	// close a cycle. The list is left unchanged.
	ErrDependencyCycle = errors.New("dependency would create a cycle")

	// ErrFilterConflict is returned when a filter criterion is set a
	// second time.
	ErrFilterConflict = errors.New("filter criterion already set")
)
