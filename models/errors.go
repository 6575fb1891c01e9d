package models

import (
	"errors"
	"fmt"
)

// Every failure a create/update path can produce has a known kind, so the
// HTTP boundary never has to guess at an error's shape.
var (
	ErrInvalidDateFormat  = errors.New("Invalid date format. Use YYYY-MM-DD.")
	ErrInvalidTimeFormat  = errors.New("Invalid time format. Use HH:MM in 24-hour format.")
	ErrInvalidEmailFormat = errors.New("Invalid email format.")
	ErrEventNotFound      = errors.New("Referenced event does not exist.")
)

// RequiredFieldError names the first required field found empty.
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("Field '%s' is required and cannot be empty.", e.Field)
}

// StorageError wraps a connection or write fault from the document store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FailureMessage maps a failure to the message exposed to clients. Kinds
// outside the taxonomy collapse to "Unknown" so internals never leak.
func FailureMessage(err error) string {
	var rf *RequiredFieldError
	var se *StorageError
	switch {
	case errors.Is(err, ErrInvalidDateFormat):
		return ErrInvalidDateFormat.Error()
	case errors.Is(err, ErrInvalidTimeFormat):
		return ErrInvalidTimeFormat.Error()
	case errors.Is(err, ErrInvalidEmailFormat):
		return ErrInvalidEmailFormat.Error()
	case errors.Is(err, ErrEventNotFound):
		return ErrEventNotFound.Error()
	case errors.As(err, &rf):
		return rf.Error()
	case errors.As(err, &se):
		return se.Error()
	default:
		return "Unknown"
	}
}
