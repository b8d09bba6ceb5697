package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LogLevelError,
		"WARN":    LogLevelWarn,
		" info ":  LogLevelInfo,
		"debug":   LogLevelDebug,
		"TRACE":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for input, expected := range tests {
		assert.Equal(t, expected, ParseLogLevel(input), "input %q", input)
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn)

	logger.Info("hidden %d", 1)
	logger.Debug("hidden")
	logger.Warn("visible %s", "warning")
	logger.Error("visible error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "visible error")
	assert.Equal(t, LogLevelWarn, logger.GetLevel())
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelInfo)

	logger.With(map[string]interface{}{"sample": "heights", "n": 12}).Info("described")

	out := buf.String()
	assert.Contains(t, out, "sample=heights")
	assert.Contains(t, out, "n=12")
	assert.Contains(t, out, "described")
}
