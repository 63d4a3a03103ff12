// Package render turns the core's three result shapes (identifier lists,
// single records, match lists) into structured (JSON) or line-oriented
// (plain) output. Renderers preserve the order they are given; they never
// re-sort.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/kv"
)

// Format selects the output rendering.
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPlain, FormatJSON:
		return Format(s), nil
	default:
		return "", dserrors.ConfigError{
			Field:      "format",
			Value:      s,
			Message:    "unknown output format",
			Suggestion: "Use --format plain or --format json",
		}
	}
}

// Identifiers renders a secret identifier list.
func Identifiers(w io.Writer, format Format, identifiers []string) error {
	if format == FormatJSON {
		if identifiers == nil {
			identifiers = []string{}
		}
		return encodeJSON(w, identifiers)
	}
	for _, id := range identifiers {
		fmt.Fprintln(w, id)
	}
	return nil
}

// Record renders one secret's key-value contents. Plain output is one
// "<key> = <value>" line per key in the record's lexicographic key order;
// JSON output is the record's original object shape.
func Record(w io.Writer, format Format, record *kv.Record) error {
	if format == FormatJSON {
		return encodeJSON(w, record)
	}
	for _, key := range record.Keys() {
		value, _ := record.Value(key)
		fmt.Fprintf(w, "%s = %s\n", key, value.Display())
	}
	return nil
}

// Store renders several secrets' contents. JSON output is an object keyed
// by identifier; plain output qualifies each key with its identifier.
func Store(w io.Writer, format Format, st *kv.Store) error {
	if format == FormatJSON {
		byID := make(map[string]*kv.Record, st.Len())
		for _, identifier := range st.Identifiers() {
			record, _ := st.Record(identifier)
			byID[identifier] = record
		}
		return encodeJSON(w, byID)
	}
	for _, identifier := range st.Identifiers() {
		record, _ := st.Record(identifier)
		for _, key := range record.Keys() {
			value, _ := record.Value(key)
			fmt.Fprintf(w, "%s/%s = %s\n", identifier, key, value.Display())
		}
	}
	return nil
}

// matchEntry is the JSON shape of one search hit.
type matchEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Matches renders an ordered match list.
func Matches(w io.Writer, format Format, matches []kv.Match) error {
	if format == FormatJSON {
		entries := make([]matchEntry, len(matches))
		for i, m := range matches {
			entries[i] = matchEntry{Label: m.Label, Value: m.Display}
		}
		return encodeJSON(w, entries)
	}
	for _, m := range matches {
		fmt.Fprintf(w, "%s = %s\n", m.Label, m.Display)
	}
	return nil
}

func encodeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
