// Package storcli wraps the Broadcom storcli utility: it builds command
// lines, runs the binary, parses its JSON (or plain text) output and turns
// the reported command status into typed errors.
package storcli

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// JSONFlag is appended to every command line to request JSON output.
const JSONFlag = "J"

// DefaultBinaries are tried in order when no binary is configured.
var DefaultBinaries = []string{"storcli64", "storcli"}

// Option configures a StorCLI at construction.
type Option func(*options)

type options struct {
	binary string
	runner Runner
	logger *log.Logger
	cache  bool
}

// WithBinary sets the binary name or path. Empty means auto-detect.
func WithBinary(binary string) Option {
	return func(o *options) {
		o.binary = binary
	}
}

// WithRunner sets the process runner, typically a test double.
func WithRunner(r Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCache enables or disables response caching from the start.
func WithCache(enabled bool) Option {
	return func(o *options) {
		o.cache = enabled
	}
}

// StorCLI runs storcli commands. It is safe for concurrent use: command
// execution is serialized on a per-instance mutex.
type StorCLI struct {
	binary string
	logger *log.Logger

	// runMu serializes spawn, parse and cache write.
	runMu  sync.Mutex
	runner Runner

	cacheEnabled atomic.Bool
	cacheMu      sync.RWMutex
	cache        map[string]*Response
}

func newStorCLI(o options) (*StorCLI, error) {
	runner := o.runner
	if runner == nil {
		runner = NewExecRunner()
	}

	binary, err := resolveBinary(runner, o.binary)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "storcli"})
	}

	s := &StorCLI{
		binary: binary,
		logger: logger,
		runner: runner,
		cache:  make(map[string]*Response),
	}
	s.cacheEnabled.Store(o.cache)
	return s, nil
}

func resolveBinary(r Runner, binary string) (string, error) {
	if binary != "" {
		return r.LookPath(binary)
	}

	var firstErr error
	for _, candidate := range DefaultBinaries {
		path, err := r.LookPath(candidate)
		if err == nil {
			return path, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

// Binary returns the resolved binary path.
func (s *StorCLI) Binary() string { return s.binary }

// SetRunner replaces the process runner. The binary is not re-resolved.
func (s *StorCLI) SetRunner(r Runner) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.runner = r
}

// CacheEnabled reports whether successful responses are cached.
func (s *StorCLI) CacheEnabled() bool { return s.cacheEnabled.Load() }

// SetCacheEnabled toggles response caching. Disabling does not clear
// entries already cached.
func (s *StorCLI) SetCacheEnabled(enabled bool) {
	s.cacheEnabled.Store(enabled)
}

// ClearCache drops every cached response. Call it after commands that
// change controller state.
func (s *StorCLI) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = make(map[string]*Response)
}

// CacheLen returns the number of cached responses.
func (s *StorCLI) CacheLen() int {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return len(s.cache)
}

func (s *StorCLI) cached(key string) (*Response, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	resp, ok := s.cache[key]
	return resp, ok
}

func (s *StorCLI) store(key string, resp *Response) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache[key] = resp
}

// RunOption tunes a single Run call.
type RunOption func(*runOptions)

type runOptions struct {
	allowed map[int]struct{}
	timeout time.Duration
}

// AllowErrorCodes makes a failure whose error codes are all listed here
// return a soft-failure Result instead of an error.
func AllowErrorCodes(codes ...int) RunOption {
	return func(o *runOptions) {
		if o.allowed == nil {
			o.allowed = make(map[int]struct{}, len(codes))
		}
		for _, c := range codes {
			o.allowed[c] = struct{}{}
		}
	}
}

// WithTimeout bounds the process run time. Zero means no timeout.
func WithTimeout(d time.Duration) RunOption {
	return func(o *runOptions) {
		o.timeout = d
	}
}

func (o runOptions) isAllowed(code int) bool {
	_, ok := o.allowed[code]
	return ok
}

// Result is the outcome of a successful (or softly failed) Run.
type Result struct {
	// Response is the structured output; nil for a fallback result.
	Response *Response
	// Fallback holds "key = value" output when storcli did not print JSON.
	Fallback map[string]string
	// SoftFailure is set when the command failed with allowed codes only.
	SoftFailure bool
	// Tolerated lists the allowed error codes behind a soft failure.
	Tolerated []ErrorCode
	// Cached is set when the result came from the response cache.
	Cached bool
}

// Data returns the first controller's "Response Data".
func (r *Result) Data() (Value, error) {
	if r.Response == nil {
		return Value{}, &KeyError{Path: []string{"Controllers"}}
	}
	first, err := r.Response.First()
	if err != nil {
		return Value{}, err
	}
	if first.Data.IsNull() {
		return Value{}, &KeyError{Path: []string{"Controllers", "[0]", "Response Data"}}
	}
	return first.Data, nil
}

// Status returns the first controller's "Command Status".
func (r *Result) Status() (CommandStatus, error) {
	if r.Response == nil {
		return CommandStatus{}, &KeyError{Path: []string{"Controllers"}}
	}
	first, err := r.Response.First()
	if err != nil {
		return CommandStatus{}, err
	}
	return first.Status, nil
}

// Command returns the full argument vector Run would execute for args.
func (s *StorCLI) Command(args []string) []string {
	cmd := make([]string, 0, len(args)+2)
	cmd = append(cmd, s.binary)
	cmd = append(cmd, args...)
	return append(cmd, JSONFlag)
}

// Run executes storcli with args (without the binary and without the JSON
// flag) and interprets the command status.
//
// With caching enabled a previously successful identical command is served
// from the cache without spawning a process. Concurrent misses for the same
// command may both spawn; results are plain reads of controller state.
func (s *StorCLI) Run(args []string, opts ...RunOption) (*Result, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}

	cmd := s.Command(args)
	key := strings.Join(cmd, " ")

	if s.CacheEnabled() {
		if resp, ok := s.cached(key); ok {
			s.logger.Debug("cache hit", "cmd", key)
			return &Result{Response: resp, Cached: true}, nil
		}
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.logger.Debug("running command", "cmd", key, "timeout", ro.timeout)
	out, err := s.runner.Run(cmd[0], cmd[1:], ro.timeout)
	if err != nil {
		var timeoutErr *TimeoutError
		if errors.As(err, &timeoutErr) {
			return nil, &RunTimeoutError{
				Command: cmd,
				Timeout: timeoutErr.Timeout,
				Stdout:  timeoutErr.Stdout,
				Stderr:  timeoutErr.Stderr,
			}
		}
		return nil, &RunTimeError{Command: cmd, Err: err}
	}

	parsed, err := ParseOutput(out.Stdout)
	if err != nil {
		msg := err.Error()
		var malformed *MalformedOutputError
		if errors.As(err, &malformed) {
			msg = malformed.Message
		}
		return nil, &CmdError{Command: cmd, Message: msg, Err: err}
	}
	if parsed.Fallback != nil {
		s.logger.Debug("plain text response", "cmd", key, "status", parsed.Fallback["Status"])
		return &Result{Fallback: parsed.Fallback}, nil
	}

	result, err := checkResponse(cmd, parsed.Response, ro)
	if err != nil {
		return nil, err
	}

	if out.ExitCode != 0 && !(result.SoftFailure && ro.isAllowed(out.ExitCode)) {
		return nil, &ExitCodeError{Command: cmd, ExitCode: out.ExitCode, Stderr: out.Stderr}
	}

	if result.SoftFailure {
		s.logger.Debug("command failed with allowed codes", "cmd", key, "codes", result.Tolerated)
		return result, nil
	}

	if s.CacheEnabled() {
		s.store(key, parsed.Response)
	}
	return result, nil
}

// checkResponse interprets the first controller's command status.
func checkResponse(cmd []string, resp *Response, ro runOptions) (*Result, error) {
	first, err := resp.First()
	if err != nil {
		return nil, &CmdError{Command: cmd, Message: "response has no controllers", Err: err}
	}

	status := first.Status
	switch status.Status {
	case "":
		return nil, &CmdError{Command: cmd, Message: "response has no command status: " + first.Raw.Text()}
	case StatusFailure:
	default:
		return &Result{Response: resp}, nil
	}

	if status.HasDetails {
		return checkDetails(cmd, resp, status, ro)
	}

	if status.HasDescription {
		entry := LookupErrorCode(status.Description)
		if entry.IsInvalid() {
			return nil, &CmdError{Command: cmd, Message: status.Text()}
		}
		if !ro.isAllowed(entry.Code) {
			return nil, &CmdErrorCode{Command: cmd, Code: entry.Code, Entry: entry}
		}
		return &Result{Response: resp, SoftFailure: true, Tolerated: []ErrorCode{entry}}, nil
	}

	return nil, &CmdError{Command: cmd, Message: status.Text()}
}

func checkDetails(cmd []string, resp *Response, status CommandStatus, ro runOptions) (*Result, error) {
	if len(status.Details) == 0 {
		return nil, &CmdError{Command: cmd, Message: status.Text()}
	}

	tolerated := make([]ErrorCode, 0, len(status.Details))
	for _, detail := range status.Details {
		code := detail.Code
		entry := DescribeErrorCode(code)
		if !detail.HasCode {
			entry = LookupErrorCode(detail.Message)
			if entry.IsInvalid() {
				return nil, &CmdError{Command: cmd, Message: status.DetailsText()}
			}
			code = entry.Code
		}
		if !ro.isAllowed(code) {
			return nil, &CmdErrorCode{Command: cmd, Code: code, Entry: entry}
		}
		tolerated = append(tolerated, entry)
	}

	return &Result{Response: resp, SoftFailure: true, Tolerated: tolerated}, nil
}

var zeroRuns = regexp.MustCompile(`0+`)

// FullVersion returns the "CLI Version" string reported by `storcli show`.
// opts apply to the underlying Run, e.g. WithTimeout.
func (s *StorCLI) FullVersion(opts ...RunOption) (string, error) {
	opts = append([]RunOption{AllowErrorCodes(CodeIncompleteForeignConfiguration)}, opts...)
	res, err := s.Run([]string{"show"}, opts...)
	if err != nil {
		return "", err
	}
	status, err := res.Status()
	if err != nil {
		return "", err
	}
	return Field(status.Raw, "CLI Version")
}

// Version returns the CLI version without padding zeros, e.g.
// "007.1907.0000.0000 Sep 13, 2021" becomes "7.1907.0.0".
func (s *StorCLI) Version(opts ...RunOption) (string, error) {
	full, err := s.FullVersion(opts...)
	if err != nil {
		return "", err
	}
	v := zeroRuns.ReplaceAllString(FirstWord(full), "0")
	return strings.TrimLeft(v, "0"), nil
}
