package jolokia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies the runtime shape of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is one key/value pair of a mapping Value.
type Entry struct {
	Key   string
	Value Value
}

// Value is the loosely-typed result of a remote invocation. Mappings keep
// their entries in document order, because the rendered output must follow
// the order the agent produced.
//
// The zero Value is null.
type Value struct {
	kind    Kind
	num     json.Number
	str     string
	boolean bool
	entries []Entry
	items   []Value
}

// Constructors, mainly for tests and callers that build values directly.

func NumberValue(literal string) Value { return Value{kind: KindNumber, num: json.Number(literal)} }
func StringValue(s string) Value       { return Value{kind: KindString, str: s} }
func BoolValue(b bool) Value           { return Value{kind: KindBool, boolean: b} }
func MappingValue(entries ...Entry) Value {
	return Value{kind: KindMapping, entries: entries}
}
func SequenceValue(items ...Value) Value { return Value{kind: KindSequence, items: items} }

// Kind returns the runtime shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Entries returns the mapping's key/value pairs in document order.
// It returns nil for non-mapping values.
func (v Value) Entries() []Entry {
	if v.kind != KindMapping {
		return nil
	}
	return v.entries
}

// Get looks up a mapping entry by key. The second return is false when the
// value is not a mapping or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Items returns the sequence's elements; nil for non-sequence values.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.items
}

// Text renders the value in its natural textual form: numbers and strings
// verbatim, booleans as true/false, mappings as {key=value, ...} and
// sequences as [a, b].
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindMapping:
		var b strings.Builder
		b.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key)
			b.WriteByte('=')
			b.WriteString(e.Value.Text())
		}
		b.WriteByte('}')
		return b.String()
	case KindSequence:
		var b strings.Builder
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(item.Text())
		}
		b.WriteByte(']')
		return b.String()
	default:
		return ""
	}
}

// UnmarshalJSON decodes a JSON document into a Value, preserving object key
// order. encoding/json's map decoding would lose it, so objects are walked
// through the token stream instead. Numbers stay as their source literals.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var entries []Entry
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				entries = append(entries, Entry{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return Value{}, err
			}
			return Value{kind: KindMapping, entries: entries}, nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return Value{}, err
			}
			return Value{kind: KindSequence, items: items}, nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
	case json.Number:
		return Value{kind: KindNumber, num: t}, nil
	case string:
		return Value{kind: KindString, str: t}, nil
	case bool:
		return Value{kind: KindBool, boolean: t}, nil
	case nil:
		return Value{}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}
