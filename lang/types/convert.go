package types

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// FromGo converts a Go value to a Value. It supports nil, booleans, integers,
// floats, strings, slices of any and maps of strings to any (recursively), as
// well as values that already implement Value. Go maps have no order, so the
// keys of the resulting Map are sorted.
func FromGo(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Nil, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case float64:
		return Float(v), nil
	case string:
		return String(v), nil
	case []any:
		elems := make([]Value, 0, len(v))
		for i, e := range v {
			ev, err := FromGo(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return NewList(elems), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		m := NewMap(len(keys))
		for _, k := range keys {
			ev, err := FromGo(v[k])
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", k, err)
			}
			m.SetKey(String(k), ev)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported Go type %T", v)
}

// MustFromGo is like FromGo but panics on error.
func MustFromGo(v any) Value {
	vv, err := FromGo(v)
	if err != nil {
		panic(err)
	}
	return vv
}

// ToGo converts a Value to its natural Go representation: nil, bool, int64,
// float64, string, []any and map[string]any. Values without a natural
// representation (e.g. callables) are returned as-is.
func ToGo(v Value) any {
	switch v := v.(type) {
	case NilType:
		return nil
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case *List:
		res := make([]any, 0, v.Len())
		for _, e := range v.elems {
			res = append(res, ToGo(e))
		}
		return res
	case *Map:
		res := make(map[string]any, v.Len())
		for _, k := range v.keys {
			e, _ := v.Get(k)
			res[string(k)] = ToGo(e)
		}
		return res
	}
	return v
}
