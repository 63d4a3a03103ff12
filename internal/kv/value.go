package kv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindArray
	KindObject
)

// Value is one secret value: a tagged union over the JSON scalar kinds plus
// opaque composites. Arrays and objects keep their compacted serialized form
// and are never inspected or flattened; numbers keep their literal text so
// rendering never reformats them.
type Value struct {
	kind    Kind
	str     string
	num     string
	boolean bool
	raw     json.RawMessage
}

// StringValue builds a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue builds a number Value from its literal text (e.g. "5432",
// "3.14").
func NumberValue(literal string) Value {
	return Value{kind: KindNumber, num: literal}
}

// BoolValue builds a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// NullValue builds a null Value.
func NullValue() Value {
	return Value{kind: KindNull}
}

// parseValue converts one raw JSON value into its tagged variant. The input
// must be a single valid JSON value, as produced by decoding an object into
// map[string]json.RawMessage.
func parseValue(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Value{}, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		return StringValue(s), nil

	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return Value{}, err
		}
		kind := KindObject
		if trimmed[0] == '[' {
			kind = KindArray
		}
		return Value{kind: kind, raw: json.RawMessage(buf.Bytes())}, nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil

	case 'n':
		var v interface{}
		if err := json.Unmarshal(trimmed, &v); err != nil || v != nil {
			return Value{}, fmt.Errorf("invalid literal %q", trimmed)
		}
		return NullValue(), nil

	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return Value{}, err
		}
		return NumberValue(n.String()), nil
	}
}

// Kind returns the variant this Value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Display renders the value for line-oriented output and key-level matches:
// strings as themselves (never re-escaped), numbers as their literal text,
// booleans as true/false, null as the literal "null", and composites as one
// opaque compact JSON string.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNull:
		return "null"
	default:
		return string(v.raw)
	}
}

// MarshalJSON re-serializes the value exactly as it was parsed, so a record
// round-trips through the JSON renderer without mutation.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.num), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.boolean)), nil
	case KindNull:
		return []byte("null"), nil
	default:
		return v.raw, nil
	}
}
