// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"foxcheck-cli/pkg/types"
)

// ExitError carries the process status out of a RunE handler. Whatever the
// user needs to see has already been written by the time it is returned, so
// the error handler stays silent for it.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the wrapped message, or the exit status when there is none.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitStatus maps the error returned by the command tree to a process status.
// Codes outside the POSIX range collapse to ExitFailure.
func exitStatus(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return types.ExitFailure
	}
	if exitErr.Code.Validate() != nil {
		return types.ExitFailure
	}
	return exitErr.Code
}
