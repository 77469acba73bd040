package storcli

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// fakeResponse is the canned outcome for one command line.
type fakeResponse struct {
	stdout   string
	stderr   string
	exitCode int
	err      error
	// sleep simulates a slow process; when it exceeds the timeout the fake
	// stops at the timeout and reports the output as partial.
	sleep time.Duration
}

// fakeRunner returns canned output keyed by the argument vector, never
// spawning anything.
type fakeRunner struct {
	mu        sync.Mutex
	known     map[string]bool
	responses map[string]fakeResponse
	calls     [][]string

	running    atomic.Int32
	maxRunning atomic.Int32
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		known:     map[string]bool{"storcli64": true},
		responses: make(map[string]fakeResponse),
	}
}

// on registers output for args given as a space separated string, without
// the trailing JSON flag.
func (f *fakeRunner) on(args string, resp fakeResponse) *fakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[args+" "+JSONFlag] = resp
	return f
}

func (f *fakeRunner) onJSON(args, stdout string) *fakeRunner {
	return f.on(args, fakeResponse{stdout: stdout})
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) LookPath(binary string) (string, error) {
	if strings.HasPrefix(binary, "/") {
		return binary, nil
	}
	if !f.known[binary] {
		return "", &BinaryNotFoundError{Binary: binary, SearchPath: "/usr/sbin:/usr/bin"}
	}
	return "/usr/sbin/" + binary, nil
}

func (f *fakeRunner) Run(binary string, args []string, timeout time.Duration) (*Output, error) {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		peak := f.maxRunning.Load()
		if n <= peak || f.maxRunning.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, append([]string{binary}, args...))
	resp, ok := f.responses[strings.Join(args, " ")]
	f.mu.Unlock()

	if !ok {
		return &Output{Stdout: "", ExitCode: 1}, nil
	}
	if resp.sleep > 0 {
		if timeout > 0 && resp.sleep > timeout {
			time.Sleep(timeout)
			return nil, &TimeoutError{Timeout: timeout, Stdout: resp.stdout, Stderr: resp.stderr}
		}
		time.Sleep(resp.sleep)
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return &Output{Stdout: resp.stdout, Stderr: resp.stderr, ExitCode: resp.exitCode}, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestStorCLI(f *fakeRunner, opts ...Option) (*StorCLI, error) {
	base := []Option{WithRunner(f), WithLogger(quietLogger())}
	return NewRegistry().New(append(base, opts...)...)
}

const (
	showSuccessJSON = `{"Controllers":[{"Command Status":{"Status":"Success"},"Response Data":{"Number of Controllers":1}}]}`

	foreignFailureJSON = `{"Controllers":[{"Command Status":{"CLI Version":"007.1907.0000.0000 Sep 13, 2021","Controller":0,` +
		`"Status":"Failure","Description":"None","Detailed Status":[{"Ctrl":0,"Status":"Failure","ErrMsg":"Incomplete foreign configuration","ErrCd":59}]},` +
		`"Response Data":{"Number of Controllers":1}}]}`
)
