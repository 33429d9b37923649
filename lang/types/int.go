package types

import (
	"fmt"
	"math"
	"strconv"
)

// Int is the type of an integer value.
type Int int64

var (
	_ Value   = Int(0)
	_ Ordered = Int(0)
)

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i Int) Type() string { return "int" }
func (i Int) Truth() Bool  { return i != 0 }

func (i Int) Cmp(v Value) (int, error) {
	j := v.(Int)
	if i > j {
		return +1, nil
	} else if i < j {
		return -1, nil
	}
	return 0, nil
}

// AsExactInt enforces the type conversion rules for a value to an integer.
// Only Int and Float may convert to Int, and Float conversion is valid only if
// its value can be exactly represented by an integer.
func AsExactInt(v Value) (int, error) {
	switch v := v.(type) {
	case Int:
		return int(v), nil
	case Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("no exact integer representation possible for %s value %v", v.Type(), v)
		}
		// -float64(math.MinInt) is the first float past math.MaxInt
		if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
			return 0, fmt.Errorf("%s value %v out of integer range", v.Type(), v)
		}
		i := Int(v)
		if Float(i) != v {
			return 0, fmt.Errorf("no exact integer representation possible for %s value %v", v.Type(), v)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%s cannot be converted to integer", v.Type())
	}
}
