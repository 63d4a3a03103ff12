// Package kv implements secretgrep's retrieval core: the in-memory record
// and store model, the single-secret fetcher, the concurrent aggregator, and
// the two-level pattern-search engine. Nothing in this package performs I/O
// except through the pkg/store.Client contract.
package kv

import (
	"encoding/json"
	"errors"
	"sort"

	dserrors "github.com/systmms/secretgrep/internal/errors"
)

// Record is the parsed, immutable form of one secret's key-value contents.
// Keys are unique and iterated in lexicographic order.
type Record struct {
	identifier string
	keys       []string
	values     map[string]Value
}

// NewRecord builds a record from already-parsed values. Used by tests and by
// NewRecordFromJSON; the key order is derived, not supplied.
func NewRecord(identifier string, values map[string]Value) *Record {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	copied := make(map[string]Value, len(values))
	for k, v := range values {
		copied[k] = v
	}

	return &Record{
		identifier: identifier,
		keys:       keys,
		values:     copied,
	}
}

// NewRecordFromJSON parses a raw payload into a record. The payload must be
// a JSON object at the top level; a scalar, array, or null is a terminal
// PayloadNotAnObject error, invalid JSON is PayloadNotParseable.
func NewRecordFromJSON(identifier string, payload []byte) (*Record, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil {
		reason := dserrors.PayloadNotParseable
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			reason = dserrors.PayloadNotAnObject
		}
		return nil, &dserrors.PayloadError{
			Identifier: identifier,
			Reason:     reason,
			Err:        err,
		}
	}

	// A top-level "null" unmarshals into a nil map without error; it is not
	// a key-value object and must not pass as an empty record.
	if top == nil {
		return nil, &dserrors.PayloadError{
			Identifier: identifier,
			Reason:     dserrors.PayloadNotAnObject,
		}
	}

	values := make(map[string]Value, len(top))
	for key, raw := range top {
		value, err := parseValue(raw)
		if err != nil {
			return nil, &dserrors.PayloadError{
				Identifier: identifier,
				Reason:     dserrors.PayloadNotParseable,
				Err:        err,
			}
		}
		values[key] = value
	}

	return NewRecord(identifier, values), nil
}

// Identifier returns the secret's identifier.
func (r *Record) Identifier() string {
	return r.identifier
}

// Keys returns the record's keys in lexicographic order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Value returns the value for a key.
func (r *Record) Value(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// MarshalJSON renders the record as a JSON object with keys in lexicographic
// order and values in their original serialized form.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.values)
}

// Store is an in-memory collection of records keyed by identifier, iterated
// in lexicographic identifier order. It is built by the aggregator and
// treated as immutable once handed to the search engine; a single-record
// store and a multi-record store are the same type.
type Store struct {
	records map[string]*Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Add inserts a record, replacing any record with the same identifier.
func (s *Store) Add(r *Record) {
	s.records[r.identifier] = r
}

// Identifiers returns the store's identifiers in lexicographic order.
func (s *Store) Identifiers() []string {
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Record returns the record for an identifier.
func (s *Store) Record(identifier string) (*Record, bool) {
	r, ok := s.records[identifier]
	return r, ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}
