package gui

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds          = errors.New("out of bounds")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrCallback             = errors.New("click callback failed")
)

// CallbackError wraps an error returned from a click or close callback.
// It matches both ErrCallback and the underlying error.
type CallbackError struct {
	Slot int
	Err  error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("callback for slot %d: %v", e.Slot, e.Err)
}

func (e *CallbackError) Unwrap() []error {
	return []error{ErrCallback, e.Err}
}

func callbackErr(slot int, err error) error {
	if err == nil {
		return nil
	}
	return &CallbackError{Slot: slot, Err: err}
}
