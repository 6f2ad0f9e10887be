package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned when an identifier is not a valid ObjectID hex string
	ErrInvalidID = errors.New("invalid user id")
	// ErrNotFound is returned when no document matches the identifier
	ErrNotFound = errors.New("user not found")
)

// StoreError wraps a failure reported by the database driver
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
