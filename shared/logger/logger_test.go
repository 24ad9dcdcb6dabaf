package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, level, format string, enableSource bool) (*Logger, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	logger, err := New(&Config{
		Level:        level,
		Format:       format,
		Output:       "stdout",
		EnableSource: enableSource,
		TimeFormat:   time.RFC3339,
		writer:       output,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	return logger, output
}

func TestNew(t *testing.T) {
	t.Run("json format with debug level", func(t *testing.T) {
		logger, output := newTestLogger(t, "debug", "json", false)
		logger.Debug("test debug message", slog.String("key", "value"))

		var logEntry map[string]interface{}
		err := json.Unmarshal(output.Bytes(), &logEntry)
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", logEntry["level"])
		assert.Equal(t, "test debug message", logEntry["msg"])
		assert.Equal(t, "value", logEntry["key"])
		assert.Contains(t, logEntry, "time")
	})

	t.Run("info level filters debug", func(t *testing.T) {
		logger, output := newTestLogger(t, "info", "json", false)
		logger.Debug("debug message")
		logger.Info("info message", slog.String("type", "test"))

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		assert.Len(t, lines, 1)

		var logEntry map[string]interface{}
		err := json.Unmarshal([]byte(lines[0]), &logEntry)
		require.NoError(t, err)

		assert.Equal(t, "INFO", logEntry["level"])
		assert.Equal(t, "info message", logEntry["msg"])
		assert.Equal(t, "test", logEntry["type"])
	})

	t.Run("error level filters warn", func(t *testing.T) {
		logger, output := newTestLogger(t, "error", "json", false)
		logger.Warn("warn message")
		logger.Error("error message", slog.String("code", "500"))

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		assert.Len(t, lines, 1)

		var logEntry map[string]interface{}
		err := json.Unmarshal([]byte(lines[0]), &logEntry)
		require.NoError(t, err)

		assert.Equal(t, "ERROR", logEntry["level"])
		assert.Equal(t, "error message", logEntry["msg"])
		assert.Equal(t, "500", logEntry["code"])
	})

	t.Run("console format", func(t *testing.T) {
		logger, output := newTestLogger(t, "info", "console", false)
		logger.Info("console test")

		// tint writes "INF" rather than "INFO"
		logOutput := output.String()
		assert.Contains(t, logOutput, "INF")
		assert.Contains(t, logOutput, "console test")
	})

	t.Run("with source location enabled", func(t *testing.T) {
		logger, output := newTestLogger(t, "info", "json", true)
		logger.Info("message with source")

		var logEntry map[string]interface{}
		err := json.Unmarshal(output.Bytes(), &logEntry)
		require.NoError(t, err)

		assert.Contains(t, logEntry, "source")
		source := logEntry["source"].(map[string]interface{})
		assert.Contains(t, source, "function")
		assert.Contains(t, source, "file")
		assert.Contains(t, source, "line")
	})
}

func TestNewDefault(t *testing.T) {
	logger := NewDefault()
	require.NotNil(t, logger)
	assert.NotNil(t, logger.Logger)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{name: "debug level", level: "debug", expected: slog.LevelDebug},
		{name: "info level", level: "info", expected: slog.LevelInfo},
		{name: "warn level", level: "warn", expected: slog.LevelWarn},
		{name: "warning alias", level: "warning", expected: slog.LevelWarn},
		{name: "error level", level: "error", expected: slog.LevelError},
		{name: "invalid level defaults to info", level: "invalid", expected: slog.LevelInfo},
		{name: "empty string defaults to info", level: "", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseLevel(tt.level)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLogger_WithGroup(t *testing.T) {
	logger, output := newTestLogger(t, "info", "json", false)

	groupLogger := logger.WithGroup(
		"pipeline",
	)
	require.NotNil(t, groupLogger)

	groupLogger.Info("test message", slog.String("key", "value"))

	var logEntry map[string]interface{}
	err := json.Unmarshal(output.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Contains(t, logEntry, "pipeline")
	group := logEntry["pipeline"].(map[string]interface{})
	assert.Equal(t, "value", group["key"])
}

func TestLogger_WithAttrs(t *testing.T) {
	logger, output := newTestLogger(t, "info", "json", false)

	attrLogger := logger.WithAttrs(
		slog.String("job_id", "12345"),
		slog.String("worker_id", "worker-1"),
	)
	require.NotNil(t, attrLogger)

	attrLogger.Info("test message")

	var logEntry map[string]interface{}
	err := json.Unmarshal(output.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "12345", logEntry["job_id"])
	assert.Equal(t, "worker-1", logEntry["worker_id"])
	assert.Equal(t, "test message", logEntry["msg"])
}

func TestLogger_With(t *testing.T) {
	logger, output := newTestLogger(t, "info", "json", false)

	contextLogger := logger.With(
		slog.String("service", "api"),
		slog.Int("version", 1),
	)
	require.NotNil(t, contextLogger)

	contextLogger.Info("operation complete")

	var logEntry map[string]interface{}
	err := json.Unmarshal(output.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "api", logEntry["service"])
	assert.Equal(t, float64(1), logEntry["version"]) // JSON numbers are float64
	assert.Equal(t, "operation complete", logEntry["msg"])
}
