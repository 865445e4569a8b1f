package core

import (
	"math"
	"strconv"
)

type Value interface {
	String() string
	Eq(v Value) bool
	Truthy() bool
	Type() string
}

type NilValue struct{}

func (v NilValue) String() string {
	return "nil"
}

func (v NilValue) Eq(other Value) bool {
	_, ok := other.(NilValue)
	return ok
}

func (v NilValue) Truthy() bool {
	return false
}

func (v NilValue) Type() string {
	return "nil"
}

var null = NilValue{}

type BoolValue bool

func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (v BoolValue) Eq(other Value) bool {
	if w, ok := other.(BoolValue); ok {
		return v == w
	}
	return false
}

func (v BoolValue) Truthy() bool {
	return bool(v)
}

func (v BoolValue) Type() string {
	return "boolean"
}

type NumberValue float64

// String drops the fractional part of integral values so that they print as
// integers; very large and very small magnitudes use exponent notation.
func (v NumberValue) String() string {
	f := float64(v)

	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v NumberValue) Eq(other Value) bool {
	if w, ok := other.(NumberValue); ok {
		return v == w
	}
	return false
}

func (v NumberValue) Truthy() bool {
	return true
}

func (v NumberValue) Type() string {
	return "number"
}

type StringValue string

func (v StringValue) String() string {
	return string(v)
}

func (v StringValue) Eq(other Value) bool {
	if w, ok := other.(StringValue); ok {
		return v == w
	}
	return false
}

// Truthy is true even for the empty string.
func (v StringValue) Truthy() bool {
	return true
}

func (v StringValue) Type() string {
	return "string"
}
