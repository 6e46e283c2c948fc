package store

import (
	"errors"
	"fmt"
)

// Error kinds returned by the store. Match them with errors.Is.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("task not found")
	ErrParse      = errors.New("malformed task file")
	ErrIO         = errors.New("task file i/o error")
)

// ParseError describes why a task file could not be loaded.
type ParseError struct {
	Path string // JSON path to the error location, e.g. "[2].status"
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", ErrParse, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrParse, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
