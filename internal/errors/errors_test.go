package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserError tests message assembly with details and suggestion
func TestUserError(t *testing.T) {
	t.Parallel()

	t.Run("message only", func(t *testing.T) {
		err := UserError{Message: "No secret identifiers given"}
		assert.Equal(t, "No secret identifiers given", err.Error())
	})

	t.Run("full formatting", func(t *testing.T) {
		err := UserError{
			Message:    "Failed to read configuration file",
			Details:    "permission denied",
			Suggestion: "Check file permissions and path",
		}
		expected := "Failed to read configuration file" +
			"\n  Details: permission denied" +
			"\n  💡 Try: Check file permissions and path"
		assert.Equal(t, expected, err.Error())
	})

	t.Run("falls back to the wrapped error", func(t *testing.T) {
		cause := stderrors.New("root cause")
		err := UserError{Err: cause}
		assert.Equal(t, "root cause", err.Error())
		assert.True(t, stderrors.Is(err, cause))
	})
}

// TestConfigError tests field and value context in the message
func TestConfigError(t *testing.T) {
	t.Parallel()

	err := ConfigError{
		Field:      "format",
		Value:      "xml",
		Message:    "unknown output format",
		Suggestion: "Use --format plain or --format json",
	}
	assert.Contains(t, err.Error(), "Configuration error in field 'format' (value: xml)")
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Contains(t, err.Error(), "💡 Use --format plain or --format json")
}

// TestPayloadError tests the message for each reason
func TestPayloadError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		reason   PayloadReason
		expected string
	}{
		{"not textual", PayloadNotTextual, "secret 'blob': payload has no textual content"},
		{"not parseable", PayloadNotParseable, "secret 'blob': payload is not valid JSON"},
		{"not an object", PayloadNotAnObject, "secret 'blob': payload is not a JSON object of key-value pairs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &PayloadError{Identifier: "blob", Reason: tt.reason}
			assert.Equal(t, tt.expected, err.Error())
		})
	}

	t.Run("cause is appended and unwrapped", func(t *testing.T) {
		cause := stderrors.New("unexpected end of JSON input")
		err := &PayloadError{Identifier: "blob", Reason: PayloadNotParseable, Err: cause}
		assert.Contains(t, err.Error(), "unexpected end of JSON input")
		assert.True(t, stderrors.Is(err, cause))
	})
}

// TestFetchError tests fetch failure formatting and unwrapping
func TestFetchError(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection reset")
	err := &FetchError{Identifier: "s2", Err: cause}
	assert.Equal(t, "failed to fetch secret 's2': connection reset", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

// TestListError tests listing failure formatting and unwrapping
func TestListError(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("timeout")
	err := &ListError{Err: cause}
	assert.Equal(t, "failed to list secrets: timeout", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

// TestNoMatchesError tests both message templates
func TestNoMatchesError(t *testing.T) {
	t.Parallel()

	multi := &NoMatchesError{Pattern: "xyz"}
	assert.Equal(t, "No secrets or keys found matching pattern 'xyz'", multi.Error())

	single := &NoMatchesError{Pattern: "xyz", KeysOnly: true}
	assert.Equal(t, "No keys found matching pattern 'xyz'", single.Error())

	var target *NoMatchesError
	require.True(t, stderrors.As(error(multi), &target))
	assert.Equal(t, "xyz", target.Pattern)
}
