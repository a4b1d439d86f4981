package yamlsubset

import (
	"bytes"
	"encoding/json"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindList
	KindMap
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a parsed metadata value: null, number, string, a list of strings,
// or a single-level mapping whose values are numbers or strings.
// The zero Value is Null. Values are immutable once built.
type Value struct {
	kind   Kind
	num    float64
	str    string
	items  []string
	fields map[string]Value
}

// Document maps top-level keys to their values.
type Document map[string]Value

// Null returns the null Value.
func Null() Value { return Value{} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List returns a sequence Value. List() is the empty sequence.
func List(items ...string) Value { return Value{kind: KindList, items: items} }

// Map returns a mapping Value. Nested values must be numbers or strings;
// anything else is stored as its string form.
func Map(fields map[string]Value) Value {
	out := make(map[string]Value, len(fields))
	for k, f := range fields {
		if f.kind != KindNumber && f.kind != KindString {
			f = String(f.Text())
		}
		out[k] = f
	}
	return Value{kind: KindMap, fields: out}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the number held by v.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Items returns a copy of the list held by v, or nil for other kinds.
func (v Value) Items() []string {
	if v.kind != KindList {
		return nil
	}
	return append([]string{}, v.items...)
}

// Fields returns a copy of the mapping held by v, or nil for other kinds.
func (v Value) Fields() map[string]Value {
	if v.kind != KindMap {
		return nil
	}
	out := make(map[string]Value, len(v.fields))
	for k, f := range v.fields {
		out[k] = f
	}
	return out
}

// Truthy mirrors loose truthiness: null, zero, and the empty string are false.
// Lists and maps are always true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// Text renders scalar values as display text. Lists and maps render as JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	default:
		b, err := marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// MarshalJSON encodes v as the matching JSON type. HTML characters in
// strings are left unescaped.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return marshal(v.str)
	case KindList:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return marshal(v.items)
	case KindMap:
		if v.fields == nil {
			return []byte("{}"), nil
		}
		return marshal(v.fields)
	default:
		return []byte("null"), nil
	}
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
