package kv

import (
	"fmt"
	"strings"

	dserrors "github.com/systmms/secretgrep/internal/errors"
)

// secretLabelPrefix marks a secret-level match in search output.
const secretLabelPrefix = "[Secret] "

// LabelMode selects how key-level match labels are formed. The engine is
// parameterized by mode rather than by store size; callers pick the mode
// explicitly.
type LabelMode int

const (
	// LabelQualified prefixes each key with its secret identifier
	// ("<identifier>/<key>"), for searches across many secrets.
	LabelQualified LabelMode = iota
	// LabelBare uses the key alone, for searches within a single secret.
	LabelBare
)

// Match is one search hit: either a secret-level match (label
// "[Secret] <identifier>", display "<N> keys") or a key-level match (label
// per LabelMode, display the value's rendered text).
type Match struct {
	Label   string
	Display string
}

// Search runs a literal, case-sensitive substring search over the store at
// two granularities: secret identifiers and the keys inside each record. The
// empty pattern matches everything.
//
// Output order is deterministic: identifiers in lexicographic order; within
// one identifier the secret-level match (if any) first, then key-level
// matches in lexicographic key order. An empty result is an error, never an
// empty slice.
func Search(st *Store, pattern string, mode LabelMode) ([]Match, error) {
	var matches []Match

	for _, identifier := range st.Identifiers() {
		record, _ := st.Record(identifier)

		if strings.Contains(identifier, pattern) {
			matches = append(matches, Match{
				Label:   secretLabelPrefix + identifier,
				Display: fmt.Sprintf("%d keys", record.Len()),
			})
		}

		for _, key := range record.Keys() {
			if !strings.Contains(key, pattern) {
				continue
			}
			label := key
			if mode == LabelQualified {
				label = identifier + "/" + key
			}
			value, _ := record.Value(key)
			matches = append(matches, Match{
				Label:   label,
				Display: value.Display(),
			})
		}
	}

	if len(matches) == 0 {
		return nil, &dserrors.NoMatchesError{
			Pattern:  pattern,
			KeysOnly: mode == LabelBare,
		}
	}
	return matches, nil
}
