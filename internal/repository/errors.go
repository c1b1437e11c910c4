package repository

import "errors"

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a uniqueness constraint was violated. Constraint
// returns which column collided so the boundary can name the field.
var ErrConflict = errors.New("repository: conflict")

// ConflictError wraps ErrConflict with the violated constraint.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return "repository: conflict on " + e.Constraint
}

// Unwrap lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Unwrap() error { return ErrConflict }
