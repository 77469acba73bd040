package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storcli-exporter/pkg/storcli"
)

// timeoutRecorder captures the timeout each command ran with.
type timeoutRecorder struct {
	timeouts []time.Duration
}

func (r *timeoutRecorder) LookPath(binary string) (string, error) { return binary, nil }

func (r *timeoutRecorder) Run(binary string, args []string, timeout time.Duration) (*storcli.Output, error) {
	r.timeouts = append(r.timeouts, timeout)
	return &storcli.Output{Stdout: `{"Controllers":[{"Command Status":{"Status":"Success"}}]}`}, nil
}

func TestWithTimeout(t *testing.T) {
	rec := &timeoutRecorder{}
	cli, err := storcli.NewRegistry().New(storcli.WithRunner(rec), storcli.WithBinary("/opt/storcli64"))
	assert.NoError(t, err)

	src := WithTimeout(cli, 5*time.Second)
	_, err = src.Run([]string{"show"})
	assert.NoError(t, err)
	_, err = src.Run([]string{"show"}, storcli.WithTimeout(time.Second))
	assert.NoError(t, err)

	assert.Equal(t, []time.Duration{5 * time.Second, time.Second}, rec.timeouts)
}

func TestWithTimeoutZero(t *testing.T) {
	cli, err := storcli.NewRegistry().New(storcli.WithRunner(&timeoutRecorder{}), storcli.WithBinary("/opt/storcli64"))
	assert.NoError(t, err)

	assert.Same(t, Source(cli), WithTimeout(cli, 0))
}
