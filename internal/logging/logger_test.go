package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogger(debug, noColor bool) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(debug, noColor)
	logger.out = &buf
	return logger, &buf
}

// TestLoggerGlyphs tests the per-level prefixes in no-color mode
func TestLoggerGlyphs(t *testing.T) {
	t.Parallel()

	logger, buf := captureLogger(true, true)

	logger.Info("fetched %d secrets", 3)
	logger.Warn("slow store")
	logger.Error("fetch failed")
	logger.Debug("building client")

	expected := "✓ fetched 3 secrets\n" +
		"⚠ slow store\n" +
		"✗ fetch failed\n" +
		"[DEBUG] building client\n"
	assert.Equal(t, expected, buf.String())
}

// TestLoggerColor tests that colored prefixes carry ANSI escapes
func TestLoggerColor(t *testing.T) {
	t.Parallel()

	logger, buf := captureLogger(false, false)
	logger.Info("ok")
	assert.Contains(t, buf.String(), "\033[32m✓\033[0m ok")
}

// TestLoggerDebugSuppressed tests that debug lines need the debug flag
func TestLoggerDebugSuppressed(t *testing.T) {
	t.Parallel()

	logger, buf := captureLogger(false, true)
	logger.Debug("should not appear")
	assert.Empty(t, buf.String())
}

// TestSecretRedaction tests that Secret never leaks through formatting verbs
func TestSecretRedaction(t *testing.T) {
	t.Parallel()

	secret := Secret("hunter2hunter2")
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", secret))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", secret))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", secret))
}

// TestRedact tests replacement of known sensitive values
func TestRedact(t *testing.T) {
	t.Parallel()

	out := Redact("password=secret123 again secret123", []string{"secret123"})
	assert.Equal(t, "password=[REDACTED] again [REDACTED]", out)

	// Short fragments are left alone to avoid mangling unrelated text.
	out = Redact("abc is fine", []string{"abc"})
	assert.Equal(t, "abc is fine", out)
}
