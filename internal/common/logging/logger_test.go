package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level LogLevel) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := NewZapLogger(LogConfig{Level: level, Output: &buf})
	require.NoError(t, err)
	return logger, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"WARN", WarnLevel},
		{"WARNING", WarnLevel},
		{"ERROR", ErrorLevel},
		{"garbage", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestZapAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestZapAdapter_Fields(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	logger.Info("fetch complete",
		String("platform", "twitter"),
		Int("posts", 120),
	)

	out := buf.String()
	assert.Contains(t, out, "fetch complete")
	assert.Contains(t, out, "twitter")
	assert.Contains(t, out, "120")
}

func TestZapAdapter_ErrorAppendsError(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	logger.Error("fetch failed", assert.AnError, String("platform", "twitter"))

	out := buf.String()
	assert.Contains(t, out, "fetch failed")
	assert.Contains(t, out, assert.AnError.Error())
}

func TestZapAdapter_WithFields(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	child := logger.WithFields(String("component", "coordinator"))
	child.Info("request served")

	assert.Contains(t, buf.String(), "coordinator")

	// No fields returns the same logger
	assert.Equal(t, logger, logger.WithFields())
}

func TestZapAdapter_WithContext(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	ctx := context.WithValue(context.Background(), ContextKeyTopic, "#ai")
	ctx = context.WithValue(ctx, ContextKeyJobID, "job-123")

	logger.WithContext(ctx).Info("job picked up")

	out := buf.String()
	assert.Contains(t, out, "#ai")
	assert.Contains(t, out, "job-123")

	// A bare context adds nothing and returns the same logger
	assert.Equal(t, logger, logger.WithContext(context.Background()))
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	logger, buf := newBufferLogger(t, InfoLevel)
	SetGlobalLogger(logger)

	Info("global info")
	Warn("global warn")
	Error("global error", assert.AnError)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
}
