package engine

import (
	"errors"
	"fmt"
)

// Sentinel conditions wrapped by InvariantError.
var (
	ErrNotFound    = errors.New("engine: token not found")
	ErrColumnFull  = errors.New("engine: column is full")
	ErrColumnRange = errors.New("engine: column out of range")
)

// ErrNoGame is returned as is by Engine calls made before NewGame.
var ErrNoGame = errors.New("engine: no game in progress")

// InvariantError reports a caller or engine bug: a token id that is not on
// the board, a spawn into a full column and similar. These are never caused
// by ordinary pointer noise and must not be swallowed.
type InvariantError struct {
	Op     string  // Board or selection operation that failed
	ID     TokenID // Token involved, -1 when not applicable
	Column int     // Column involved, -1 when not applicable
	Err    error   // One of the sentinel errors above
}

func (e *InvariantError) Error() string {
	switch {
	case e.ID >= 0 && e.Column >= 0:
		return fmt.Sprintf("engine: %s token %d column %d: %v", e.Op, e.ID, e.Column, e.Err)
	case e.ID >= 0:
		return fmt.Sprintf("engine: %s token %d: %v", e.Op, e.ID, e.Err)
	case e.Column >= 0:
		return fmt.Sprintf("engine: %s column %d: %v", e.Op, e.Column, e.Err)
	default:
		return fmt.Sprintf("engine: %s: %v", e.Op, e.Err)
	}
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

func notFound(op string, id TokenID) error {
	return &InvariantError{Op: op, ID: id, Column: -1, Err: ErrNotFound}
}

func columnError(op string, column int, err error) error {
	return &InvariantError{Op: op, ID: -1, Column: column, Err: err}
}
