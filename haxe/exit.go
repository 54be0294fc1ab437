package haxe

import (
	"errors"
	"fmt"
)

// ExitError is returned when the compiler ran but did not exit with 0.
type ExitError struct {
	Cmd  string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit code %d", e.Cmd, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the compiler's exit code carried by err or -1, if err does
// not come from a failed compiler run.
func ExitCode(err error) int {
	var xerr *ExitError
	if errors.As(err, &xerr) {
		return xerr.Code
	}
	return -1
}
