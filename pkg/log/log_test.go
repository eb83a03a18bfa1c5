package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_SplitsStreamsBySeverity(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := New(Config{Level: DebugLevel, JSONOutput: true, Stdout: &stdout, Stderr: &stderr})

	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warning message")
	logger.Error().Msg("error message")

	assert.Contains(t, stdout.String(), "debug message")
	assert.Contains(t, stdout.String(), "info message")
	assert.NotContains(t, stdout.String(), "warning message")
	assert.NotContains(t, stdout.String(), "error message")

	assert.Contains(t, stderr.String(), "warning message")
	assert.Contains(t, stderr.String(), "error message")
	assert.NotContains(t, stderr.String(), "info message")
}

func TestNew_DebugIsOptIn(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := New(Config{Level: InfoLevel, JSONOutput: true, Stdout: &stdout, Stderr: &stderr})

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "shown")
}

func TestNew_Timestamped(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := New(Config{Level: InfoLevel, JSONOutput: true, Stdout: &stdout, Stderr: &stderr})

	logger.Info().Msg("hello")
	logger.Warn().Msg("careful")

	assert.Contains(t, stdout.String(), `"time":`)
	assert.Contains(t, stderr.String(), `"time":`)
}

func TestNew_ConsoleFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := New(Config{Level: InfoLevel, Stdout: &stdout, Stderr: &stderr})

	logger.Info().Msg("check result: ok")
	logger.Warn().Msg("ping attempt has failed")

	assert.Contains(t, stdout.String(), "check result: ok")
	assert.NotContains(t, stdout.String(), "INF")
	assert.Contains(t, stderr.String(), "WRN")
	assert.Contains(t, stderr.String(), "ping attempt has failed")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   Level
		want string
	}{
		{DebugLevel, "debug"},
		{InfoLevel, "info"},
		{WarnLevel, "warn"},
		{ErrorLevel, "error"},
		{Level("bogus"), "info"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in).String())
		})
	}
}

func TestWithComponent(t *testing.T) {
	var stdout bytes.Buffer
	Init(Config{Level: InfoLevel, JSONOutput: true, Stdout: &stdout, Stderr: &bytes.Buffer{}})
	defer Init(Config{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	l := WithComponent("monitor")
	l.Info().Msg("started")

	assert.Contains(t, stdout.String(), `"component":"monitor"`)
}
