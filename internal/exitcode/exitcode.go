// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"context"
	"errors"

	"github.com/nibzard/task-cli/internal/store"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty description, unknown id).
	UserError = 1

	// StorageError indicates the task file could not be read, parsed, or written.
	StorageError = 2

	// Interrupted indicates the process was cancelled by a signal.
	Interrupted = 130
)

// For maps an error returned by the CLI to a process exit code.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, context.Canceled):
		return Interrupted
	case errors.Is(err, store.ErrParse), errors.Is(err, store.ErrIO):
		return StorageError
	default:
		return UserError
	}
}
