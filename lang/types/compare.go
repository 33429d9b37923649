package types

import (
	"fmt"
	"math"
	"reflect"
)

// MaxCompareDepth limits the recursion of Equal on nested lists and maps.
const MaxCompareDepth = 256

// Compare performs a three-way comparison of x and y. It returns an error if
// the values are not of the same ordered type (Int and Float values may be
// compared with each other).
func Compare(x, y Value) (int, error) {
	if sameType(x, y) {
		if xcomp, ok := x.(Ordered); ok {
			return xcomp.Cmp(y)
		}
		return 0, fmt.Errorf("%s values are not ordered", x.Type())
	}

	// int/float ordered comparisons
	switch x := x.(type) {
	case Int:
		if y, ok := y.(Float); ok {
			return -floatIntCmp(y, x), nil
		}
	case Float:
		if y, ok := y.(Int); ok {
			return floatIntCmp(x, y), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s with %s", typeOf(x), typeOf(y))
}

func floatIntCmp(x Float, y Int) int {
	if x != x {
		return +1 // x is NaN
	} else if !math.IsInf(float64(x), 0) {
		if yf := float64(y); float64(x) == yf {
			return 0
		} else if yf < float64(x) {
			return +1
		}
		return -1
	} else if x > 0 {
		return +1 // x is +Inf
	}
	return -1 // x is -Inf
}

// Equal reports whether x and y are structurally equal. Numbers are equal if
// their values are equal regardless of Int or Float type, lists and maps are
// compared element-wise, and all other values (e.g. callables) are compared
// by identity.
func Equal(x, y Value) (bool, error) {
	return equalDepth(x, y, MaxCompareDepth)
}

func equalDepth(x, y Value, depth int) (bool, error) {
	if depth < 1 {
		return false, fmt.Errorf("comparison exceeded maximum recursion depth")
	}

	switch x := x.(type) {
	case Int, Float:
		if _, ok := AsFloat(y); !ok {
			return false, nil
		}
		c, err := Compare(x, y)
		return c == 0 && err == nil, err

	case *List:
		yl, ok := y.(*List)
		if !ok || x.Len() != yl.Len() {
			return false, nil
		}
		for i, xv := range x.elems {
			eq, err := equalDepth(xv, yl.elems[i], depth-1)
			if !eq || err != nil {
				return eq, err
			}
		}
		return true, nil

	case *Map:
		ym, ok := y.(*Map)
		if !ok || x.Len() != ym.Len() {
			return false, nil
		}
		for _, k := range x.keys {
			xv, _ := x.Get(k)
			yv, found := ym.Get(k)
			if !found {
				return false, nil
			}
			eq, err := equalDepth(xv, yv, depth-1)
			if !eq || err != nil {
				return eq, err
			}
		}
		return true, nil
	}

	if sameType(x, y) {
		if xcomp, ok := x.(Ordered); ok {
			c, err := xcomp.Cmp(y)
			return c == 0 && err == nil, err
		}
	}
	// use identity comparison
	return x == y, nil
}

func sameType(x, y Value) bool {
	return reflect.TypeOf(x) == reflect.TypeOf(y)
}
