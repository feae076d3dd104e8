package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStaleSelection is returned when a catalog response arrives after
	// the user has moved on to another selection; the response is dropped.
	ErrStaleSelection = errors.New("selection changed while loading")
	// ErrUnknownCategory is returned for a category id not in the loaded list.
	ErrUnknownCategory = errors.New("unknown category")
)

// FieldError is one failed client-side precondition.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

// ValidationError lists every failed precondition of an operation. It is
// returned before any network call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// AuthError wraps the gateway error of a failed login.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("login failed: %v", e.Err) }

func (e *AuthError) Unwrap() error { return e.Err }
