package catalog

import (
	"github.com/mna/cellfn/lang/types"
)

func init() {
	register("prop", 2, func(args types.Tuple) (types.Value, error) {
		return prop("prop", args[0], args[1])
	})
	register("propOr", 3, func(args types.Tuple) (types.Value, error) {
		v, err := prop("propOr", args[1], args[2])
		if err != nil {
			return nil, err
		}
		if v == types.Nil {
			return args[0], nil
		}
		return v, nil
	})
	register("path", 2, func(args types.Tuple) (types.Value, error) {
		return path("path", args[0], args[1])
	})
	register("pathOr", 3, func(args types.Tuple) (types.Value, error) {
		v, err := path("pathOr", args[1], args[2])
		if err != nil {
			return nil, err
		}
		if v == types.Nil {
			return args[0], nil
		}
		return v, nil
	})

	register("assoc", 3, func(args types.Tuple) (types.Value, error) {
		k, err := asString("assoc", args[0])
		if err != nil {
			return nil, err
		}
		return assoc("assoc", types.String(k), args[1], args[2])
	})
	register("assocPath", 3, func(args types.Tuple) (types.Value, error) {
		l, err := asList("assocPath", args[0])
		if err != nil {
			return nil, err
		}
		keys := make([]types.String, l.Len())
		for i := range keys {
			k, err := asString("assocPath", l.Index(i))
			if err != nil {
				return nil, err
			}
			keys[i] = types.String(k)
		}
		return assocPath(keys, args[1], args[2])
	})
	register("dissoc", 2, func(args types.Tuple) (types.Value, error) {
		k, err := asString("dissoc", args[0])
		if err != nil {
			return nil, err
		}
		m, err := asMap("dissoc", args[1])
		if err != nil {
			return nil, err
		}
		return m.Without(types.String(k)), nil
	})
	register("has", 2, func(args types.Tuple) (types.Value, error) {
		k, err := asString("has", args[0])
		if err != nil {
			return nil, err
		}
		m, err := asMap("has", args[1])
		if err != nil {
			return nil, err
		}
		_, ok := m.Get(types.String(k))
		return types.Bool(ok), nil
	})

	register("keys", 1, func(args types.Tuple) (types.Value, error) {
		m, err := asMap("keys", args[0])
		if err != nil {
			return nil, err
		}
		res := make([]types.Value, 0, m.Len())
		for _, k := range m.Keys() {
			res = append(res, k)
		}
		return types.NewList(res), nil
	})
	register("values", 1, func(args types.Tuple) (types.Value, error) {
		m, err := asMap("values", args[0])
		if err != nil {
			return nil, err
		}
		res := make([]types.Value, 0, m.Len())
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			res = append(res, v)
		}
		return types.NewList(res), nil
	})

	register("pick", 2, func(args types.Tuple) (types.Value, error) {
		names, m, err := namesAndMap("pick", args[0], args[1])
		if err != nil {
			return nil, err
		}
		res := types.NewMap(len(names))
		for _, k := range names {
			if v, ok := m.Get(k); ok {
				res.SetKey(k, v)
			}
		}
		return res, nil
	})
	register("omit", 2, func(args types.Tuple) (types.Value, error) {
		names, m, err := namesAndMap("omit", args[0], args[1])
		if err != nil {
			return nil, err
		}
		return m.Without(names...), nil
	})

	register("mergeRight", 2, func(args types.Tuple) (types.Value, error) {
		return merge("mergeRight", args[0], args[1], nil)
	})
	register("mergeLeft", 2, func(args types.Tuple) (types.Value, error) {
		return merge("mergeLeft", args[1], args[0], nil)
	})
	register("mergeWith", 3, func(args types.Tuple) (types.Value, error) {
		fn, err := asCallable("mergeWith", args[0])
		if err != nil {
			return nil, err
		}
		return merge("mergeWith", args[1], args[2], fn)
	})
}

// prop returns the property k of v: a key of a map or an index of a list. A
// missing property, or a property of Nil, is Nil.
func prop(name string, k, v types.Value) (types.Value, error) {
	switch v := v.(type) {
	case types.NilType:
		return types.Nil, nil
	case *types.Map:
		ks, err := asString(name, k)
		if err != nil {
			return nil, err
		}
		if pv, ok := v.Get(types.String(ks)); ok {
			return pv, nil
		}
		return types.Nil, nil
	case *types.List:
		i, err := asInt(name, k)
		if err != nil {
			return nil, err
		}
		return nth(name, i, v)
	}
	return nil, typeError(name, "map or list", v)
}

func path(name string, keysv, v types.Value) (types.Value, error) {
	keys, err := asList(name, keysv)
	if err != nil {
		return nil, err
	}
	for i := 0; i < keys.Len() && v != types.Nil; i++ {
		if v, err = prop(name, keys.Index(i), v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func assoc(name string, k types.String, val, v types.Value) (types.Value, error) {
	var m *types.Map
	switch v := v.(type) {
	case types.NilType:
		m = types.NewMap(1)
	case *types.Map:
		m = v.Clone(1)
	default:
		return nil, typeError(name, "map", v)
	}
	m.SetKey(k, val)
	return m, nil
}

func assocPath(keys []types.String, val, v types.Value) (types.Value, error) {
	if len(keys) == 0 {
		return val, nil
	}
	var child types.Value = types.Nil
	if m, ok := v.(*types.Map); ok {
		if cv, ok := m.Get(keys[0]); ok {
			child = cv
		}
	}
	if _, ok := child.(*types.Map); !ok && len(keys) > 1 {
		child = types.Nil
	}
	nv, err := assocPath(keys[1:], val, child)
	if err != nil {
		return nil, err
	}
	return assoc("assocPath", keys[0], nv, v)
}

func namesAndMap(name string, namesv, mv types.Value) ([]types.String, *types.Map, error) {
	l, err := asList(name, namesv)
	if err != nil {
		return nil, nil, err
	}
	names := make([]types.String, l.Len())
	for i := range names {
		s, err := asString(name, l.Index(i))
		if err != nil {
			return nil, nil, err
		}
		names[i] = types.String(s)
	}
	m, err := asMap(name, mv)
	if err != nil {
		return nil, nil, err
	}
	return names, m, nil
}

// merge returns a new map with the keys of l and r, the values of r taking
// precedence, or if fn is not nil, the value of fn(lv, rv) for keys in both.
func merge(name string, lv, rv types.Value, fn types.Callable) (types.Value, error) {
	l, err := asMap(name, lv)
	if err != nil {
		return nil, err
	}
	r, err := asMap(name, rv)
	if err != nil {
		return nil, err
	}
	res := l.Clone(r.Len())
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		if cur, ok := l.Get(k); ok && fn != nil {
			if v, err = types.Call(fn, cur, v); err != nil {
				return nil, err
			}
		}
		res.SetKey(k, v)
	}
	return res, nil
}
