package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// PayloadReason classifies why a fetched payload could not be turned into a
// record. All three reasons are terminal for that identifier.
type PayloadReason int

const (
	// PayloadNotTextual means the store returned no textual content for
	// the secret (binary-only or empty).
	PayloadNotTextual PayloadReason = iota
	// PayloadNotParseable means the text is not valid JSON.
	PayloadNotParseable
	// PayloadNotAnObject means the text parsed, but the top level is not
	// a key-value object.
	PayloadNotAnObject
)

// PayloadError is a fetch-time parse failure for one identifier.
type PayloadError struct {
	Identifier string
	Reason     PayloadReason
	Err        error
}

func (e *PayloadError) Error() string {
	var what string
	switch e.Reason {
	case PayloadNotTextual:
		what = "has no textual content"
	case PayloadNotParseable:
		what = "is not valid JSON"
	case PayloadNotAnObject:
		what = "is not a JSON object of key-value pairs"
	default:
		what = "could not be parsed"
	}
	msg := fmt.Sprintf("secret '%s': payload %s", e.Identifier, what)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// FetchError wraps a remote-store failure for one identifier. Any FetchError
// is terminal for the whole aggregate operation.
type FetchError struct {
	Identifier string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch secret '%s': %v", e.Identifier, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ListError wraps a failure while enumerating the store's identifiers.
type ListError struct {
	Err error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("failed to list secrets: %v", e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// NoMatchesError reports an empty search result. It is not a system fault;
// it is surfaced as an error so the CLI exits non-zero with a clear message.
type NoMatchesError struct {
	Pattern string
	// KeysOnly selects the single-secret message, where only keys were
	// candidates for matching.
	KeysOnly bool
}

func (e *NoMatchesError) Error() string {
	if e.KeysOnly {
		return fmt.Sprintf("No keys found matching pattern '%s'", e.Pattern)
	}
	return fmt.Sprintf("No secrets or keys found matching pattern '%s'", e.Pattern)
}
