package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{" DEBUG ", log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.level, &buf)
			assert.Equal(t, tt.want, logger.GetLevel())
			assert.Empty(t, buf.String())
		})
	}
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("chatty", &buf)

	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
	assert.Contains(t, buf.String(), "chatty")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", &buf)

	Component(logger, "collector").Info("collected")
	assert.Contains(t, buf.String(), "collector")
	assert.Contains(t, buf.String(), "collected")
}
