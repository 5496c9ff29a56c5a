package convert

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex accepts decimal integers, decimals and scientific notation.
// Hex literals, digit separators, Infinity and NaN fall through to strings.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ValueKind is the JSON type a cell was coerced to.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindBool
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single coerced cell.
type Value struct {
	Kind ValueKind
	Num  float64
	Bool bool
	Str  string
}

// Null is the value of empty and "null" cells.
var Null = Value{Kind: KindNull}

// Number returns a numeric Value. Negative zero is normalised to zero.
func Number(f float64) Value {
	if f == 0 {
		f = 0
	}
	return Value{Kind: KindNumber, Num: f}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// String returns a string Value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Coerce infers the JSON type of one cell. The cell is trimmed first.
//
// The numeric check runs before the null check but never matches the empty
// string, so blank cells become null rather than 0.
func Coerce(cell string) Value {
	cell = strings.TrimSpace(cell)

	if f, ok := parseNumber(cell); ok {
		return Number(f)
	}

	switch strings.ToLower(cell) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null", "":
		return Null
	}

	return String(cell)
}

// parseNumber reports whether s is entirely a finite decimal literal.
func parseNumber(s string) (float64, bool) {
	if s == "" || !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of float64 range.
		return 0, false
	}
	return f, true
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		if v.Bool {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindString:
		return encodeString(v.Str)
	default:
		return []byte("null"), nil
	}
}

// encodeString quotes s without escaping <, > and &.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
