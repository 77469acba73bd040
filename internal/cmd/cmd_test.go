package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storcli-exporter/internal/config"
	"storcli-exporter/pkg/storcli"
)

// cannedRunner answers commands keyed by their arguments without the JSON
// flag. Unknown commands get storcli's "invalid input" banner.
type cannedRunner map[string]string

func (c cannedRunner) LookPath(binary string) (string, error) { return binary, nil }

func (c cannedRunner) Run(binary string, args []string, timeout time.Duration) (*storcli.Output, error) {
	if out, ok := c[strings.Join(args[:len(args)-1], " ")]; ok {
		return &storcli.Output{Stdout: out}, nil
	}
	return &storcli.Output{Stdout: "Invalid input\nStorage Command Line Tool Ver 007.1907\n", ExitCode: 1}, nil
}

const (
	showJSON = `{"Controllers":[{"Command Status":{"CLI Version":"007.1907.0000.0000 Sep 13, 2021","Status":"Success"},` +
		`"Response Data":{"Number of Controllers":1,"System Overview":[{"Ctl":0,"Model":"PERC H730P Mini"}]}}]}`
	foreignJSON = `{"Controllers":[{"Command Status":{"Status":"Failure","Description":"None",` +
		`"Detailed Status":[{"Ctrl":0,"Status":"Failure","ErrMsg":"Incomplete foreign configuration","ErrCd":59}]}}]}`
)

func useRunner(t *testing.T, r storcli.Runner) {
	t.Helper()
	prevRunner, prevRegistry := newRunner, registry
	newRunner = func() storcli.Runner { return r }
	registry = storcli.NewRegistry()
	t.Cleanup(func() {
		newRunner, registry = prevRunner, prevRegistry
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "METRICS_PATH", "COLLECT_INTERVAL", "LOG_LEVEL",
		"STORCLI_BINARY", "COMMAND_TIMEOUT", "RESPONSE_CACHE", "SINGLETON",
	} {
		t.Setenv(name, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(BuildInfo{Version: "1.2.3", Commit: "abc123", BuildTime: "2026-01-01", BuildBy: "ci"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCmd(BuildInfo{})

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "query", "errcode", "version"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("storcli-binary"))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "storcli-exporter 1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "ci")
}

func TestErrcodeByNumber(t *testing.T) {
	out, err := execute(t, "errcode", "59")
	require.NoError(t, err)
	assert.Contains(t, out, "59")
	assert.Contains(t, out, "Incomplete foreign configuration")
	assert.Contains(t, out, "foreign configurations are incomplete")
}

func TestErrcodeByDescription(t *testing.T) {
	out, err := execute(t, "errcode", "Invalid command.")
	require.NoError(t, err)
	assert.Contains(t, out, "Code:")
	assert.Regexp(t, `Code:\s+1\n`, out)
}

func TestErrcodeUnknown(t *testing.T) {
	_, err := execute(t, "errcode", "999")
	assert.Error(t, err)

	_, err = execute(t, "errcode", "no such thing")
	assert.Error(t, err)
}

func TestErrcodeList(t *testing.T) {
	out, err := execute(t, "errcode")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(storcli.ErrorCodes())+1)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.True(t, strings.HasPrefix(lines[1], "0 "))
}

func TestQueryJSON(t *testing.T) {
	clearEnv(t)
	useRunner(t, cannedRunner{"show": showJSON})

	out, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "show")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Number of Controllers":1,"System Overview":[{"Ctl":0,"Model":"PERC H730P Mini"}]}`, out)
	assert.Less(t, strings.Index(out, "Number of Controllers"), strings.Index(out, "System Overview"))
}

func TestQueryYAML(t *testing.T) {
	clearEnv(t)
	useRunner(t, cannedRunner{"show": showJSON})

	out, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "show", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "Number of Controllers: 1\nSystem Overview:\n  - Ctl: 0\n    Model: PERC H730P Mini\n", out)
}

func TestQueryStatus(t *testing.T) {
	clearEnv(t)
	useRunner(t, cannedRunner{"show": showJSON})

	out, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "show", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, `"CLI Version": "007.1907.0000.0000 Sep 13, 2021"`)
}

func TestQueryAllowedCode(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "error")
	useRunner(t, cannedRunner{"/c0 show": foreignJSON})

	_, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "/c0", "show")
	var codeErr *storcli.CmdErrorCode
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, 59, codeErr.Code)

	out, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "/c0", "show", "--allow", "59")
	require.NoError(t, err)
	assert.Contains(t, out, "Incomplete foreign configuration")
}

func TestQueryDrives(t *testing.T) {
	clearEnv(t)
	drive := func(slot string) string {
		return `{"Controllers":[{"Command Status":{"Status":"Success"},"Response Data":{"Drive /c0/e32/s` + slot +
			`":[{"EID:Slt":"32:` + slot + `","State":"Onln"}]}}]}`
	}
	useRunner(t, cannedRunner{"/c0/e32/s0 show": drive("0"), "/c0/e32/s1 show": drive("1")})

	out, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "show", "--drives", "32:0-1")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"drive":"/c0/e32/s0","data":{"Drive /c0/e32/s0":[{"EID:Slt":"32:0","State":"Onln"}]}},
		{"drive":"/c0/e32/s1","data":{"Drive /c0/e32/s1":[{"EID:Slt":"32:1","State":"Onln"}]}}
	]`, out)
}

func TestQueryDrivesErrors(t *testing.T) {
	clearEnv(t)
	useRunner(t, cannedRunner{})

	_, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "show", "--drives", "0-3")
	assert.ErrorContains(t, err, "missing enclosure")

	_, err = execute(t, "--storcli-binary", "/opt/storcli64", "query", "show", "--controller", "1", "--drives", "32:4")
	var cmdErr *storcli.CmdError
	require.ErrorAs(t, err, &cmdErr)
	assert.ErrorContains(t, err, "/c1/e32/s4")
}

func TestQueryInvalidOutput(t *testing.T) {
	_, err := execute(t, "query", "show", "--output", "xml")
	assert.ErrorContains(t, err, "xml")
}

func TestQueryBanner(t *testing.T) {
	clearEnv(t)
	useRunner(t, cannedRunner{})

	_, err := execute(t, "--storcli-binary", "/opt/storcli64", "query", "/c9", "show")
	var cmdErr *storcli.CmdError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "Invalid input", cmdErr.Message)
}

func TestExporterRoutes(t *testing.T) {
	useRunner(t, cannedRunner{"show": showJSON, "/c0 show": foreignJSON})

	cfg := &config.Config{
		Port:            "0",
		MetricsPath:     "/metrics",
		CollectInterval: time.Hour,
		StorCLIBinary:   "/opt/storcli64",
		ResponseCache:   true,
		Singleton:       true,
	}
	e, err := newExporter(cfg, BuildInfo{Version: "1.2.3", Commit: "abc123"}, log.New(io.Discard))
	require.NoError(t, err)
	_ = e.collector.Collect()

	srv := httptest.NewServer(e.routes())
	defer srv.Close()

	get := func(path string) (int, string) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	code, body := get("/health")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","service":"storcli-exporter"}`, body)

	code, body = get("/health/json")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"binary": "/opt/storcli64"`)
	assert.Contains(t, body, `"version": "7.1907.0.0"`)
	assert.Contains(t, body, `"singleton": true`)

	code, body = get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "storcli_commands_total")
	assert.Contains(t, body, "go_goroutines")

	code, body = get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "v1.2.3 (abc123)")
	assert.Contains(t, body, "/opt/storcli64")

	code, _ = get("/missing")
	assert.Equal(t, http.StatusNotFound, code)
}

// timeoutRunner records the timeout every command was started with.
type timeoutRunner struct {
	cannedRunner
	timeouts map[string]time.Duration
}

func (r *timeoutRunner) Run(binary string, args []string, timeout time.Duration) (*storcli.Output, error) {
	r.timeouts[strings.Join(args, " ")] = timeout
	return r.cannedRunner.Run(binary, args, timeout)
}

func TestExporterVersionUsesCommandTimeout(t *testing.T) {
	r := &timeoutRunner{cannedRunner: cannedRunner{"show": showJSON}, timeouts: make(map[string]time.Duration)}
	useRunner(t, r)

	cfg := &config.Config{
		MetricsPath:     "/metrics",
		CollectInterval: time.Hour,
		StorCLIBinary:   "/opt/storcli64",
		CommandTimeout:  7 * time.Second,
	}
	_, err := newExporter(cfg, BuildInfo{}, log.New(io.Discard))
	require.NoError(t, err)

	require.Contains(t, r.timeouts, "show J")
	assert.Equal(t, cfg.CommandTimeout, r.timeouts["show J"])
}

func TestRootPageEscapesValues(t *testing.T) {
	useRunner(t, cannedRunner{})

	cfg := &config.Config{
		MetricsPath:     "/metrics",
		CollectInterval: time.Hour,
		StorCLIBinary:   "/opt/<script>storcli64",
	}
	e, err := newExporter(cfg, BuildInfo{Version: "1<b>"}, log.New(io.Discard))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "/opt/&lt;script&gt;storcli64")
	assert.Contains(t, body, "v1&lt;b&gt;")
}

func TestExporterBinaryNotFound(t *testing.T) {
	useRunner(t, storcli.NewExecRunner())

	cfg := &config.Config{StorCLIBinary: "storcli-exporter-no-such-binary"}
	_, err := newExporter(cfg, BuildInfo{}, log.New(io.Discard))
	var notFound *storcli.BinaryNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
