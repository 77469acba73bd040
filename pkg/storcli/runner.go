package storcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Output is what a Runner captured from a finished process.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner resolves and spawns the storcli binary. Implementations must make
// a single attempt per call and must not retry.
//
// Run returns a *TimeoutError (carrying partial output) when the process
// exceeds a positive timeout and a *ProcessError for any other spawn or
// wait failure. A non-zero exit status is not an error at this level.
type Runner interface {
	LookPath(binary string) (string, error)
	Run(binary string, args []string, timeout time.Duration) (*Output, error)
}

// Ensure ExecRunner implements Runner
var _ Runner = (*ExecRunner)(nil)

// ExecRunner runs storcli through os/exec.
type ExecRunner struct {
	// WaitDelay bounds how long Run waits for the output pipes to close
	// after a timed out process has been killed.
	WaitDelay time.Duration
}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{WaitDelay: time.Second}
}

// LookPath resolves binary on PATH (or checks an explicit path) and returns
// the absolute path.
func (r *ExecRunner) LookPath(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", &BinaryNotFoundError{Binary: binary, SearchPath: os.Getenv("PATH"), Err: err}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// Run executes binary with args and captures both output streams.
func (r *ExecRunner) Run(binary string, args []string, timeout time.Duration) (*Output, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.WaitDelay = r.WaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{
				Timeout: timeout,
				Stdout:  stdout.String(),
				Stderr:  stderr.String(),
			}
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Output{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}, nil
		}

		return nil, &ProcessError{Err: err}
	}

	return &Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}
