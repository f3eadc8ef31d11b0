package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the scalar type stored at a settings path.
type Kind int

const (
	KindAbsent Kind = iota // No value; always falsy
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "absent"
	}
}

// Value is a tagged scalar read from or written to the settings tree.
// The zero Value is absent.
type Value struct {
	kind Kind
	b    bool
	s    string
}

// Bool wraps a boolean preference value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// String wraps a textual preference value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Absent returns the value of a path that does not resolve.
func Absent() Value {
	return Value{}
}

// ValueOf converts a decoded JSON scalar into a Value.
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case nil:
		return Absent(), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrTypeMismatch, x)
	}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value did not resolve.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Truthy reports whether the value satisfies a field dependency.
// Absent values, false and the empty string are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s != ""
	default:
		return false
	}
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// Text returns the value formatted for display; absent values are empty.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	default:
		return true
	}
}

// Interface returns the underlying Go value (bool, string or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s
	default:
		return nil
	}
}

func (v Value) String() string {
	if v.kind == KindAbsent {
		return "<absent>"
	}
	return v.Text()
}

// MarshalJSON encodes the bare scalar, or null when absent.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts a JSON boolean, string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseValue interprets command-line text for a path of the given kind.
func ParseValue(kind Kind, text string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a boolean", ErrTypeMismatch, text)
		}
		return Bool(b), nil
	case KindString:
		return String(text), nil
	default:
		return Value{}, fmt.Errorf("%w: cannot parse into %s", ErrTypeMismatch, kind)
	}
}
