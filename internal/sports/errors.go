package sports

import (
	"errors"
	"fmt"
)

// ValidationError rejects input before any write reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// StoreError wraps a failure returned by the backing store.
type StoreError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
