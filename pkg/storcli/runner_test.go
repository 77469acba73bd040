package storcli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerLookPath(t *testing.T) {
	r := NewExecRunner()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path), "path %q should be absolute", path)

	_, err = r.LookPath("storcli-definitely-not-installed")
	var notFound *BinaryNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "storcli-definitely-not-installed", notFound.Binary)
	assert.Error(t, notFound.Unwrap())
}

func TestExecRunnerRun(t *testing.T) {
	r := NewExecRunner()
	sh, err := r.LookPath("sh")
	require.NoError(t, err)

	tests := []struct {
		name     string
		script   string
		stdout   string
		stderr   string
		exitCode int
	}{
		{name: "stdout", script: "echo hello", stdout: "hello\n"},
		{name: "stderr", script: "echo oops >&2", stderr: "oops\n"},
		{name: "exit code", script: "echo out; exit 3", stdout: "out\n", exitCode: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Run(sh, []string{"-c", tt.script}, 5*time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.stdout, out.Stdout)
			assert.Equal(t, tt.stderr, out.Stderr)
			assert.Equal(t, tt.exitCode, out.ExitCode)
		})
	}
}

func TestExecRunnerTimeout(t *testing.T) {
	r := NewExecRunner()
	sh, err := r.LookPath("sh")
	require.NoError(t, err)

	start := time.Now()
	_, err = r.Run(sh, []string{"-c", "echo partial; exec sleep 5"}, 300*time.Millisecond)
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 300*time.Millisecond, timeoutErr.Timeout)
	assert.Equal(t, "partial\n", timeoutErr.Stdout)
	assert.Less(t, elapsed, 3*time.Second)
}

func TestExecRunnerProcessError(t *testing.T) {
	r := NewExecRunner()

	_, err := r.Run(filepath.Join(t.TempDir(), "missing-binary"), nil, time.Second)
	var procErr *ProcessError
	require.ErrorAs(t, err, &procErr)
}
