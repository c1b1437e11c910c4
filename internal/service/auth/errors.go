package auth

import "errors"

// ErrInvalidCredentials is returned for every login failure. The message is
// deliberately generic: callers must not learn whether the username exists.
var ErrInvalidCredentials = errors.New("Invalid username or password")

// ErrNotAuthenticated indicates no valid session accompanied the request.
var ErrNotAuthenticated = errors.New("Not authenticated")

// FieldError names a single violated input constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates malformed or missing input fields.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "Validation failed"
	}
	return e.Errors[0].Message
}

func (e *ValidationError) add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ConflictError indicates a duplicate username or email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
