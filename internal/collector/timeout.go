package collector

import (
	"time"

	"storcli-exporter/pkg/storcli"
)

type timeoutSource struct {
	Source
	timeout time.Duration
}

// WithTimeout bounds every command run through s by d unless the call sets
// its own timeout. A zero d returns s unchanged.
func WithTimeout(s Source, d time.Duration) Source {
	if d <= 0 {
		return s
	}
	return &timeoutSource{Source: s, timeout: d}
}

func (t *timeoutSource) Run(args []string, opts ...storcli.RunOption) (*storcli.Result, error) {
	return t.Source.Run(args, append([]storcli.RunOption{storcli.WithTimeout(t.timeout)}, opts...)...)
}
