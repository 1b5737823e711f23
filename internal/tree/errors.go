package tree

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/nt/internal/model"
)

var (
	// ErrNotFound is returned when a rename or delete target does not exist.
	ErrNotFound = model.ErrNotFound

	// ErrCycle is returned when a move would place an item under itself or one of its descendants.
	ErrCycle = errors.New("cannot move an item into its own subtree")
)

// PersistenceError wraps a failed storage call.
// The store is left at its prior state when this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
