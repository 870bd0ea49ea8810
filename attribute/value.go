// value.go defines Value, the tagged union stored in attribute sets.

// Package attribute provides the key-value metadata containers used to describe
// media types and to reconfigure running stages out of band.
package attribute

import (
	"bytes"
	"fmt"
	"math"
)

type Kind int

const (
	KindUndefined = Kind(iota)
	KindInt
	KindFloat
	KindString
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged union; only the field matching Kind is meaningful.
//
// Callers convert to their own enums at the boundary, e.g.
// `FlipMode(v.Int())`, the store itself knows nothing about them.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// Blob copies the input, so the caller may reuse its slice.
func Blob(v []byte) Value {
	return Value{kind: KindBlob, b: bytes.Clone(v)}
}

func Bool(v bool) Value {
	if v {
		return Int(1)
	}
	return Int(0)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsDefined() bool {
	return v.kind != KindUndefined
}

func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsBlob returns a copy of the blob.
func (v Value) AsBlob() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return bytes.Clone(v.b), true
}

func (v Value) AsBool() (bool, bool) {
	i, ok := v.AsInt()
	return i != 0, ok
}

// Int returns the integer or zero if the value is not an integer.
func (v Value) Int() int64 {
	i, _ := v.AsInt()
	return i
}

func (v Value) Float() float64 {
	f, _ := v.AsFloat()
	return f
}

func (v Value) Str() string {
	s, _ := v.AsString()
	return s
}

func (v Value) Clone() Value {
	if v.kind == KindBlob {
		v.b = bytes.Clone(v.b)
	}
	return v
}

// Equal compares kinds and payloads. Two NaN floats are considered equal, so
// that a cloned value always equals its origin.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUndefined:
		return true
	case KindInt:
		return v.i == other.i
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(other.f) {
			return true
		}
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindBlob:
		return bytes.Equal(v.b, other.b)
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindUndefined:
		return "<undefined>"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindBlob:
		return fmt.Sprintf("blob[%d]", len(v.b))
	}
	return fmt.Sprintf("<%s>", v.kind)
}
