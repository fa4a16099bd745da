package shell

import (
	"fmt"
)

// ExitError carries the exit code of a shell run, and the error that
// caused it, if any.
type ExitError struct {
	ExitCode int
	Err      error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shell exited with %d: %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("shell exited with %d", e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(exitCode int) *ExitError {
	return &ExitError{ExitCode: exitCode}
}

func exitWithError(err error) *ExitError {
	return &ExitError{ExitCode: 1, Err: err}
}
