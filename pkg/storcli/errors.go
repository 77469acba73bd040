package storcli

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingKey is returned (wrapped in a *KeyError) when a response value
// does not contain the requested key or index.
var ErrMissingKey = errors.New("missing key")

// BinaryNotFoundError is returned at construction when the storcli binary
// cannot be resolved on the search path.
type BinaryNotFoundError struct {
	Binary     string
	SearchPath string
	Err        error
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("cannot find storcli binary %q in path: %s", e.Binary, e.SearchPath)
}

func (e *BinaryNotFoundError) Unwrap() error { return e.Err }

// TimeoutError is returned by a Runner when the process outlived its timeout.
// Stdout and Stderr hold whatever the process wrote before it was killed.
type TimeoutError struct {
	Timeout time.Duration
	Stdout  string
	Stderr  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("process timed out after %s", e.Timeout)
}

// ProcessError is returned by a Runner for any spawn or wait failure other
// than a timeout.
type ProcessError struct {
	Err error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process failed: %v", e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// MalformedOutputError is returned by the parser when the output is neither
// JSON nor recoverable key = value text.
type MalformedOutputError struct {
	Message string
	Err     error
}

func (e *MalformedOutputError) Error() string {
	return "malformed storcli output: " + e.Message
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// RunTimeoutError reports a storcli invocation that exceeded its timeout.
type RunTimeoutError struct {
	Command []string
	Timeout time.Duration
	Stdout  string
	Stderr  string
}

func (e *RunTimeoutError) Error() string {
	return fmt.Sprintf("command '%s' timeout after %s: %s, %s",
		strings.Join(e.Command, " "), e.Timeout, e.Stdout, e.Stderr)
}

// RunTimeError reports a storcli invocation that could not be spawned or
// waited for.
type RunTimeError struct {
	Command []string
	Err     error
}

func (e *RunTimeError) Error() string {
	return fmt.Sprintf("command '%s' failed to run: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *RunTimeError) Unwrap() error { return e.Err }

// CmdError reports a command that storcli executed but that failed without
// a resolvable, allowed error code.
type CmdError struct {
	Command []string
	Message string
	Err     error
}

func (e *CmdError) Error() string {
	return fmt.Sprintf("command '%s' error: %s", strings.Join(e.Command, " "), strings.TrimSpace(e.Message))
}

func (e *CmdError) Unwrap() error { return e.Err }

// CmdErrorCode reports a command that failed with an error code the caller
// did not allow. Code is the raw number storcli reported; Entry is its
// table description.
type CmdErrorCode struct {
	Command []string
	Code    int
	Entry   ErrorCode
}

func (e *CmdErrorCode) Error() string {
	return fmt.Sprintf("command '%s' error code %d: %s", strings.Join(e.Command, " "), e.Code, e.Entry.Description())
}

// ExitCodeError reports a non-zero process exit code that was not already
// explained by the command status.
type ExitCodeError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command '%s' returned with non-zero exit status %d: %s",
		strings.Join(e.Command, " "), e.ExitCode, strings.TrimSpace(e.Stderr))
}

// KeyError reports a failed lookup while navigating a response value.
type KeyError struct {
	Path []string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingKey, strings.Join(e.Path, " > "))
}

func (e *KeyError) Unwrap() error { return ErrMissingKey }

// TypeError reports a response value of an unexpected kind.
type TypeError struct {
	Path []string
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value at %q is %s, not %s", strings.Join(e.Path, " > "), e.Got, e.Want)
}
