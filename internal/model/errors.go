package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. User-facing failures wrap one of these in a UserError.
var (
	// ErrNotFound indicates a requested vendor or condition does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or unsupported user input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists indicates a vendor directory already exists.
	ErrAlreadyExists = errors.New("already exists")
)

// UserError is a caller mistake (unknown filter, bad flag value). The CLI
// prints it as a plain message and exits 1 without logging it as a failure.
type UserError struct {
	Title   string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Title == "" {
		return e.Message
	}
	return e.Title + ": " + e.Message
}

func (e *UserError) Unwrap() error { return e.Err }

// NewUserError builds a UserError wrapping kind.
func NewUserError(kind error, title, format string, args ...any) *UserError {
	return &UserError{Title: title, Message: fmt.Sprintf(format, args...), Err: kind}
}

// IsUserError reports whether err carries a UserError anywhere in its chain.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
