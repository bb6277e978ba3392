package crud

import "fmt"

// Error wraps a store failure with the operation and the entity id it
// concerned. ID is zero for collection-wide operations.
type Error struct {
	Entity string
	Op     string
	ID     int64
	Err    error
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("failed to %s %s %d: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
