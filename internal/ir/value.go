package ir

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrWrongType is returned by the typed Value accessors when the stored
// value does not have the requested shape.
var ErrWrongType = errors.New("value has wrong type")

// Value is a sealed interface representing a rule payload.
// Only String, Number, StringList and Bool implement it.
type Value interface {
	irValue() // Sealed - only these types implement it
	fmt.Stringer
}

// String is a scalar string payload.
type String string

func (String) irValue() {}

func (s String) String() string { return string(s) }

// Number is a numeric payload. Rule files are authored by hand and use
// fractional multipliers freely, so numbers are float64.
type Number float64

func (Number) irValue() {}

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'f', -1, 64) }

// StringList is an ordered list of strings (e.g. several match keys).
type StringList []string

func (StringList) irValue() {}

func (l StringList) String() string { return "[" + strings.Join(l, ", ") + "]" }

// Bool is a boolean flag payload.
type Bool bool

func (Bool) irValue() {}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// AsString returns v as a string. Numbers are not coerced.
func AsString(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", fmt.Errorf("%w: want string, got %s", ErrWrongType, typeName(v))
}

// AsNumber returns v as a float64. A string holding a number is accepted,
// matching how hand-written rule files quote numbers.
func AsNumber(v Value) (float64, error) {
	switch val := v.(type) {
	case Number:
		return float64(val), nil
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: want number, got string %q", ErrWrongType, string(val))
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: want number, got %s", ErrWrongType, typeName(v))
}

// AsStrings returns v as a list of strings. A scalar string becomes a
// one-element list.
func AsStrings(v Value) ([]string, error) {
	switch val := v.(type) {
	case StringList:
		return []string(val), nil
	case String:
		return []string{string(val)}, nil
	}
	return nil, fmt.Errorf("%w: want string or list, got %s", ErrWrongType, typeName(v))
}

// AsBool returns v as a bool.
func AsBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return bool(b), nil
	}
	return false, fmt.Errorf("%w: want bool, got %s", ErrWrongType, typeName(v))
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case String:
		return "string"
	case Number:
		return "number"
	case StringList:
		return "list"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ValueFromAny converts a decoded JSON value into a Value.
// Objects, nulls and lists holding non-strings are rejected.
func ValueFromAny(raw any) (Value, error) {
	switch val := raw.(type) {
	case string:
		return String(val), nil
	case float64:
		return Number(val), nil
	case int:
		return Number(val), nil
	case int64:
		return Number(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case bool:
		return Bool(val), nil
	case []string:
		return StringList(val), nil
	case []any:
		list := make(StringList, 0, len(val))
		for i, elem := range val {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("list index %d: %w: want string, got %T", i, ErrWrongType, elem)
			}
			list = append(list, s)
		}
		return list, nil
	case nil:
		return nil, fmt.Errorf("null is not a valid rule value")
	default:
		return nil, fmt.Errorf("unsupported rule value type %T", raw)
	}
}
