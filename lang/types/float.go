package types

import (
	"math"
	"strconv"
)

// Float is the type of a floating point number.
type Float float64

var (
	_ Value   = Float(0)
	_ Ordered = Float(0)
)

func (f Float) String() string {
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return strconv.FormatFloat(float64(f), 'g', -1, 64)
	}
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' {
			return s
		}
	}
	// keep floats distinguishable from ints when printed
	return s + ".0"
}

func (f Float) Type() string { return "float" }
func (f Float) Truth() Bool  { return f != 0.0 && f == f }

// Cmp implements comparison of two Float values.
func (f Float) Cmp(v Value) (int, error) {
	g := v.(Float)
	return floatCmp(f, g), nil
}

// floatCmp performs a three-valued comparison on floats, which are totally
// ordered with NaN > +Inf.
func floatCmp(x, y Float) int {
	if x > y {
		return +1
	} else if x < y {
		return -1
	} else if x == y {
		return 0
	}

	// At least one operand is NaN.
	if x == x {
		return -1 // y is NaN
	} else if y == y {
		return +1 // x is NaN
	}
	return 0 // both NaN
}

// AsFloat converts a number to a Float. It reports false if v is not a
// number.
func AsFloat(v Value) (Float, bool) {
	switch v := v.(type) {
	case Int:
		return Float(v), true
	case Float:
		return v, true
	}
	return 0, false
}
