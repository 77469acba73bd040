package metrics

import (
	"errors"
	"time"

	"storcli-exporter/pkg/storcli"
)

// Command outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeExitCode = "exit_code"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
)

// instrumentedRunner counts and times every process a Runner spawns
type instrumentedRunner struct {
	next    storcli.Runner
	metrics *Metrics
	now     func() time.Time
}

// InstrumentRunner wraps r so each Run is recorded in commands_total and
// command_duration_seconds.
func InstrumentRunner(r storcli.Runner, m *Metrics) storcli.Runner {
	return &instrumentedRunner{next: r, metrics: m, now: time.Now}
}

func (r *instrumentedRunner) LookPath(binary string) (string, error) {
	return r.next.LookPath(binary)
}

func (r *instrumentedRunner) Run(binary string, args []string, timeout time.Duration) (*storcli.Output, error) {
	start := r.now()
	out, err := r.next.Run(binary, args, timeout)
	r.metrics.CommandDuration.Observe(r.now().Sub(start).Seconds())
	r.metrics.CommandsTotal.WithLabelValues(outcome(out, err)).Inc()
	return out, err
}

func outcome(out *storcli.Output, err error) string {
	var timeoutErr *storcli.TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		return OutcomeTimeout
	case err != nil:
		return OutcomeError
	case out.ExitCode != 0:
		return OutcomeExitCode
	default:
		return OutcomeSuccess
	}
}
