package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the given level. An unknown level
// falls back to info and is reported with a warning.
func New(level string, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "storcli-exporter",
		ReportTimestamp: true,
	})

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		logger.SetLevel(log.InfoLevel)
		logger.Warn("unknown log level, using info", "level", level)
		return logger
	}
	logger.SetLevel(lvl)
	return logger
}

// Component returns a child logger whose prefix names a subsystem.
func Component(parent *log.Logger, name string) *log.Logger {
	child := parent.With()
	child.SetPrefix(name)
	return child
}
