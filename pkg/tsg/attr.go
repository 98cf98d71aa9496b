package tsg

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tsg/pkg/errors"
)

// AttrType is the single-character type tag of an attribute value.
type AttrType byte

const (
	// TypeString values are taken verbatim and may contain ':'.
	TypeString AttrType = 'Z'
	// TypeInt values are base-10 signed 64-bit integers.
	TypeInt AttrType = 'i'
	// TypeFloat values are decimal or scientific 64-bit floats.
	TypeFloat AttrType = 'f'
)

// String returns the tag character.
func (t AttrType) String() string { return string(t) }

// Value is a typed attribute value. Exactly one of the string, integer or
// float payloads is meaningful, selected by [Value.Type].
//
// The zero value is an empty string value.
type Value struct {
	typ AttrType
	s   string
	i   int64
	f   float64
}

// StringValue returns a Z-typed value.
func StringValue(s string) Value { return Value{typ: TypeString, s: s} }

// IntValue returns an i-typed value.
func IntValue(i int64) Value { return Value{typ: TypeInt, i: i} }

// FloatValue returns an f-typed value.
func FloatValue(f float64) Value { return Value{typ: TypeFloat, f: f} }

// Type returns the value's type tag.
func (v Value) Type() AttrType {
	if v.typ == 0 {
		return TypeString
	}
	return v.typ
}

// Str returns the string payload. It is empty for non-string values.
func (v Value) Str() string { return v.s }

// Int returns the integer payload. It is 0 for non-integer values.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. It is 0 for non-float values.
func (v Value) Float() float64 { return v.f }

// Any returns the payload as a Go value (string, int64 or float64).
func (v Value) Any() any {
	switch v.Type() {
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	default:
		return v.s
	}
}

// String returns the canonical text of the value: strings verbatim,
// integers in base 10 without leading zeros, floats in the shortest form
// that parses back to the same float64.
func (v Value) String() string {
	switch v.Type() {
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(o Value) bool {
	if v.Type() != o.Type() {
		return false
	}
	switch v.Type() {
	case TypeInt:
		return v.i == o.i
	case TypeFloat:
		return v.f == o.f
	default:
		return v.s == o.s
	}
}

// ParseValue coerces text into a value of the given type.
//
// It returns an INVALID_ATTRIBUTE_TYPE error for tags other than Z, i and f,
// and an INVALID_ATTRIBUTE_VALUE error when text cannot be coerced.
// Floats must be finite; hexadecimal notation is rejected.
func ParseValue(typ AttrType, text string) (Value, error) {
	switch typ {
	case TypeString:
		return StringValue(text), nil
	case TypeInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeInvalidAttributeValue, err, "value %q is not an integer", text)
		}
		return IntValue(i), nil
	case TypeFloat:
		if strings.ContainsAny(text, "xX_") {
			return Value{}, errors.New(errors.ErrCodeInvalidAttributeValue, "value %q is not a decimal float", text)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeInvalidAttributeValue, err, "value %q is not a float", text)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, errors.New(errors.ErrCodeInvalidAttributeValue, "value %q is not finite", text)
		}
		return FloatValue(f), nil
	default:
		return Value{}, errors.New(errors.ErrCodeInvalidAttributeType, "unknown attribute type %q", string(typ))
	}
}

// Attribute is a typed key/value annotation.
type Attribute struct {
	Key   string
	Value Value
}

// Attr is shorthand for building an attribute from a Go value. Supported
// payloads are string, int, int64 and float64; anything else panics.
func Attr(key string, v any) Attribute {
	switch x := v.(type) {
	case string:
		return Attribute{Key: key, Value: StringValue(x)}
	case int:
		return Attribute{Key: key, Value: IntValue(int64(x))}
	case int64:
		return Attribute{Key: key, Value: IntValue(x)}
	case float64:
		return Attribute{Key: key, Value: FloatValue(x)}
	default:
		panic("tsg: unsupported attribute payload")
	}
}

// ParseAttribute parses a field of shape key:type:value.
//
// The value is everything after the second ':' and may itself contain ':'.
// A field without two separators, or with an empty key or type, is a
// MALFORMED_LINE error.
//
//	a, _ := tsg.ParseAttribute("ptc:i:10")   // a.Value.Int() == 10
//	a, _ := tsg.ParseAttribute("note:Z:a:b") // a.Value.Str() == "a:b"
func ParseAttribute(field string) (Attribute, error) {
	key, rest, ok := strings.Cut(field, ":")
	if !ok || key == "" {
		return Attribute{}, errors.New(errors.ErrCodeMalformedLine, "attribute %q is not key:type:value", field)
	}
	typ, text, ok := strings.Cut(rest, ":")
	if !ok || typ == "" {
		return Attribute{}, errors.New(errors.ErrCodeMalformedLine, "attribute %q is not key:type:value", field)
	}
	if len(typ) != 1 {
		return Attribute{}, errors.New(errors.ErrCodeInvalidAttributeType, "unknown attribute type %q", typ)
	}
	v, err := ParseValue(AttrType(typ[0]), text)
	if err != nil {
		return Attribute{}, err
	}
	return Attribute{Key: key, Value: v}, nil
}

// String renders the attribute as key:type:value.
func (a Attribute) String() string {
	return a.Key + ":" + a.Value.Type().String() + ":" + a.Value.String()
}

// Equal reports whether two attributes have the same key and value.
func (a Attribute) Equal(o Attribute) bool {
	return a.Key == o.Key && a.Value.Equal(o.Value)
}

// Last returns the value of the last attribute named key. Storage keeps
// every occurrence of a key; Last is the last-wins view used by encoders.
func Last(attrs []Attribute, key string) (Value, bool) {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == key {
			return attrs[i].Value, true
		}
	}
	return Value{}, false
}
