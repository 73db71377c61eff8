package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

// captureLog sets up the logger to write to a buffer and returns the buffer.
func captureLog(cfg LogConfig) *bytes.Buffer {
	var buf bytes.Buffer
	cfg.Writer = &buf
	SetupLogging(cfg)
	return &buf
}

func TestSetupLogging_TimestampDefaultOn(t *testing.T) {
	buf := captureLog(LogConfig{})
	Info("test")
	assert.Regexp(t, `\d{2}:\d{2}:\d{2}`, buf.String(), "default output should contain a timestamp")
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(LogConfig{Timestamps: BoolPtr(false)})
	Info("hello")
	out := buf.String()
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(out),
		"output should not start with a timestamp")
	assert.Contains(t, out, "hello")
}

func TestSetupLogging_VerboseForcesTimestampsOn(t *testing.T) {
	buf := captureLog(LogConfig{Verbose: true, Timestamps: BoolPtr(false)})
	Debug("verbose-msg")
	out := buf.String()
	assert.Contains(t, out, "verbose-msg", "debug message should appear in verbose mode")
	assert.Regexp(t, `\d{2}:\d{2}:\d{2}`, out, "verbose should force timestamps on")
}

func TestSetupLogging_DebugHiddenByDefault(t *testing.T) {
	buf := captureLog(LogConfig{})
	Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	SetupLogging(LogConfig{Verbose: true})
	assert.Equal(t, log.DebugLevel, logger.GetLevel(), "verbose should set debug level")
}

func TestSetupLogging_DefaultInfoLevel(t *testing.T) {
	SetupLogging(LogConfig{})
	assert.Equal(t, log.InfoLevel, logger.GetLevel(), "default should be info level")
}

func TestScopedLogger_HasPrefix(t *testing.T) {
	SetupLogging(LogConfig{})
	scoped := ScopedLogger("loader")
	assert.NotNil(t, scoped)
	assert.Contains(t, scoped.GetPrefix(), "loader", "prefix should contain scope name")
}

func TestScopedLogger_InheritsLevel(t *testing.T) {
	SetupLogging(LogConfig{Verbose: true})
	scoped := ScopedLogger("loader")
	assert.Equal(t, log.DebugLevel, scoped.GetLevel(), "scoped logger should inherit debug level")
}

func TestBoolPtr(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))
}
