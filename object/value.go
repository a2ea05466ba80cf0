// Package object defines the runtime datum type that flows through the
// Ember value stack and constant pools.
package object

import (
	"encoding/json"
	"strconv"
)

// Type identifies the variant held by a Value.
type Type string

const (
	// NUMBER is a double-precision floating-point number. It is the only
	// variant at this stage; booleans, nil, and heap object references
	// will be added as new tags without changing existing call sites.
	NUMBER Type = "number"
)

// Value is a tagged runtime datum. Values are copied by value and have no
// lifecycle of their own beyond the container holding them.
type Value struct {
	typ Type
	num float64
}

// NewNumber returns a numeric Value.
func NewNumber(v float64) Value {
	return Value{typ: NUMBER, num: v}
}

// Type returns the variant tag.
func (v Value) Type() Type {
	return v.typ
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.typ == NUMBER
}

// Number returns the numeric payload. Calling it on a non-number variant
// is a caller bug; the tag must be checked first once more variants exist.
func (v Value) Number() float64 {
	return v.num
}

// Inspect returns the printable form of the value, using the shortest
// decimal representation that round-trips the number.
func (v Value) Inspect() string {
	switch v.typ {
	case NUMBER:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return "<invalid>"
	}
}

func (v Value) String() string {
	return v.Inspect()
}

// Equals reports whether two values hold the same variant and payload.
func (v Value) Equals(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case NUMBER:
		return v.num == other.num
	default:
		return false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case NUMBER:
		return json.Marshal(v.num)
	default:
		return json.Marshal(nil)
	}
}
