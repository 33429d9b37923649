package catalog

import (
	"fmt"
	"strings"

	"github.com/mna/cellfn/lang/types"
)

func init() {
	register("map", 2, func(args types.Tuple) (types.Value, error) {
		fn, err := asCallable("map", args[0])
		if err != nil {
			return nil, err
		}
		switch coll := args[1].(type) {
		case *types.List:
			res := make([]types.Value, coll.Len())
			for i := range res {
				if res[i], err = types.Call(fn, coll.Index(i)); err != nil {
					return nil, err
				}
			}
			return types.NewList(res), nil

		case *types.Map:
			res := types.NewMap(coll.Len())
			for _, k := range coll.Keys() {
				v, _ := coll.Get(k)
				mv, err := types.Call(fn, v)
				if err != nil {
					return nil, err
				}
				res.SetKey(k, mv)
			}
			return res, nil
		}
		return nil, typeError("map", "list or map", args[1])
	})

	register("filter", 2, func(args types.Tuple) (types.Value, error) {
		return filter("filter", args[0], args[1], true)
	})
	register("reject", 2, func(args types.Tuple) (types.Value, error) {
		return filter("reject", args[0], args[1], false)
	})

	register("reduce", 3, func(args types.Tuple) (types.Value, error) {
		fn, err := asCallable("reduce", args[0])
		if err != nil {
			return nil, err
		}
		l, err := asList("reduce", args[2])
		if err != nil {
			return nil, err
		}
		acc := args[1]
		for i := 0; i < l.Len(); i++ {
			if acc, err = types.Call(fn, acc, l.Index(i)); err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	register("find", 2, func(args types.Tuple) (types.Value, error) {
		ix, l, err := findIndex("find", args[0], args[1])
		if err != nil || ix < 0 {
			return types.Nil, err
		}
		return l.Index(ix), nil
	})
	register("findIndex", 2, func(args types.Tuple) (types.Value, error) {
		ix, _, err := findIndex("findIndex", args[0], args[1])
		if err != nil {
			return nil, err
		}
		return types.Int(ix), nil
	})

	register("all", 2, func(args types.Tuple) (types.Value, error) {
		n, l, err := countMatches("all", args[0], args[1])
		if err != nil {
			return nil, err
		}
		return types.Bool(n == l), nil
	})
	register("any", 2, func(args types.Tuple) (types.Value, error) {
		n, _, err := countMatches("any", args[0], args[1])
		if err != nil {
			return nil, err
		}
		return types.Bool(n > 0), nil
	})
	register("none", 2, func(args types.Tuple) (types.Value, error) {
		n, _, err := countMatches("none", args[0], args[1])
		if err != nil {
			return nil, err
		}
		return types.Bool(n == 0), nil
	})

	register("includes", 2, func(args types.Tuple) (types.Value, error) {
		switch coll := args[1].(type) {
		case types.String:
			s, err := asString("includes", args[0])
			if err != nil {
				return nil, err
			}
			return types.Bool(strings.Contains(string(coll), s)), nil
		case *types.List:
			ix, err := indexOf(coll.Elems(), args[0])
			return types.Bool(ix >= 0), err
		}
		return nil, typeError("includes", "list or string", args[1])
	})
	register("indexOf", 2, func(args types.Tuple) (types.Value, error) {
		l, err := asList("indexOf", args[1])
		if err != nil {
			return nil, err
		}
		ix, err := indexOf(l.Elems(), args[0])
		return types.Int(ix), err
	})

	register("head", 1, func(args types.Tuple) (types.Value, error) {
		return nth("head", 0, args[0])
	})
	register("last", 1, func(args types.Tuple) (types.Value, error) {
		return nth("last", -1, args[0])
	})
	register("nth", 2, func(args types.Tuple) (types.Value, error) {
		i, err := asInt("nth", args[0])
		if err != nil {
			return nil, err
		}
		return nth("nth", i, args[1])
	})
	register("tail", 1, func(args types.Tuple) (types.Value, error) {
		return slice("tail", 1, 0, false, args[0])
	})
	register("init", 1, func(args types.Tuple) (types.Value, error) {
		return slice("init", 0, -1, true, args[0])
	})
	register("take", 2, func(args types.Tuple) (types.Value, error) {
		n, err := asInt("take", args[0])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			n = 0
		}
		return sliceBounded("take", 0, n, args[1])
	})
	register("drop", 2, func(args types.Tuple) (types.Value, error) {
		n, err := asInt("drop", args[0])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			n = 0
		}
		return slice("drop", n, 0, false, args[1])
	})
	register("slice", 3, func(args types.Tuple) (types.Value, error) {
		from, err := asInt("slice", args[0])
		if err != nil {
			return nil, err
		}
		to, err := asInt("slice", args[1])
		if err != nil {
			return nil, err
		}
		return slice("slice", from, to, true, args[2])
	})

	register("length", 1, func(args types.Tuple) (types.Value, error) {
		seq, err := sequence("length", args[0])
		if err != nil {
			return nil, err
		}
		return types.Int(seq.Len()), nil
	})

	register("concat", 2, func(args types.Tuple) (types.Value, error) {
		switch a := args[0].(type) {
		case types.String:
			b, err := asString("concat", args[1])
			if err != nil {
				return nil, err
			}
			return a + types.String(b), nil
		case *types.List:
			b, err := asList("concat", args[1])
			if err != nil {
				return nil, err
			}
			return types.NewList(append(a.Elems(), b.Elems()...)), nil
		}
		return nil, typeError("concat", "list or string", args[0])
	})
	register("append", 2, func(args types.Tuple) (types.Value, error) {
		l, err := asList("append", args[1])
		if err != nil {
			return nil, err
		}
		return types.NewList(append(l.Elems(), args[0])), nil
	})
	register("prepend", 2, func(args types.Tuple) (types.Value, error) {
		l, err := asList("prepend", args[1])
		if err != nil {
			return nil, err
		}
		return types.NewList(append([]types.Value{args[0]}, l.Elems()...)), nil
	})
	register("reverse", 1, func(args types.Tuple) (types.Value, error) {
		switch v := args[0].(type) {
		case types.String:
			r := []rune(string(v))
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return types.String(r), nil
		case *types.List:
			elems := v.Elems()
			for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
				elems[i], elems[j] = elems[j], elems[i]
			}
			return types.NewList(elems), nil
		}
		return nil, typeError("reverse", "list or string", args[0])
	})

	register("range", 2, func(args types.Tuple) (types.Value, error) {
		from, err := asInt("range", args[0])
		if err != nil {
			return nil, err
		}
		to, err := asInt("range", args[1])
		if err != nil {
			return nil, err
		}
		var res []types.Value
		for i := from; i < to; i++ {
			res = append(res, types.Int(i))
		}
		return types.NewList(res), nil
	})

	register("join", 2, func(args types.Tuple) (types.Value, error) {
		sep, err := asString("join", args[0])
		if err != nil {
			return nil, err
		}
		l, err := asList("join", args[1])
		if err != nil {
			return nil, err
		}
		parts := make([]string, l.Len())
		for i := range parts {
			parts[i] = display(l.Index(i))
		}
		return types.String(strings.Join(parts, sep)), nil
	})

	register("pluck", 2, func(args types.Tuple) (types.Value, error) {
		l, err := asList("pluck", args[1])
		if err != nil {
			return nil, err
		}
		res := make([]types.Value, l.Len())
		for i := range res {
			if res[i], err = prop("pluck", args[0], l.Index(i)); err != nil {
				return nil, err
			}
		}
		return types.NewList(res), nil
	})

	register("zip", 2, func(args types.Tuple) (types.Value, error) {
		l1, l2, err := twoLists("zip", args[0], args[1])
		if err != nil {
			return nil, err
		}
		n := min(l1.Len(), l2.Len())
		res := make([]types.Value, n)
		for i := range res {
			res[i] = types.NewList([]types.Value{l1.Index(i), l2.Index(i)})
		}
		return types.NewList(res), nil
	})

	register("without", 2, func(args types.Tuple) (types.Value, error) {
		l1, l2, err := twoLists("without", args[0], args[1])
		if err != nil {
			return nil, err
		}
		excluded := l1.Elems()
		var res []types.Value
		for i := 0; i < l2.Len(); i++ {
			e := l2.Index(i)
			ix, err := indexOf(excluded, e)
			if err != nil {
				return nil, err
			}
			if ix < 0 {
				res = append(res, e)
			}
		}
		return types.NewList(res), nil
	})

	register("flatten", 1, func(args types.Tuple) (types.Value, error) {
		l, err := asList("flatten", args[0])
		if err != nil {
			return nil, err
		}
		return types.NewList(flatten(nil, l, types.MaxCompareDepth)), nil
	})

	register("groupBy", 2, func(args types.Tuple) (types.Value, error) {
		return groupBy("groupBy", args[0], args[1], func(m *types.Map, k types.String, v types.Value) {
			var elems []types.Value
			if cur, ok := m.Get(k); ok {
				elems = cur.(*types.List).Elems()
			}
			m.SetKey(k, types.NewList(append(elems, v)))
		})
	})
	register("countBy", 2, func(args types.Tuple) (types.Value, error) {
		return groupBy("countBy", args[0], args[1], func(m *types.Map, k types.String, _ types.Value) {
			var n types.Int
			if cur, ok := m.Get(k); ok {
				n = cur.(types.Int)
			}
			m.SetKey(k, n+1)
		})
	})
}

func filter(name string, predv, collv types.Value, keep bool) (types.Value, error) {
	pred, err := asCallable(name, predv)
	if err != nil {
		return nil, err
	}
	switch coll := collv.(type) {
	case *types.List:
		var res []types.Value
		for i := 0; i < coll.Len(); i++ {
			e := coll.Index(i)
			ok, err := test(pred, e)
			if err != nil {
				return nil, err
			}
			if ok == keep {
				res = append(res, e)
			}
		}
		return types.NewList(res), nil

	case *types.Map:
		res := types.NewMap(0)
		for _, k := range coll.Keys() {
			v, _ := coll.Get(k)
			ok, err := test(pred, v)
			if err != nil {
				return nil, err
			}
			if ok == keep {
				res.SetKey(k, v)
			}
		}
		return res, nil
	}
	return nil, typeError(name, "list or map", collv)
}

func findIndex(name string, predv, listv types.Value) (int, *types.List, error) {
	pred, err := asCallable(name, predv)
	if err != nil {
		return -1, nil, err
	}
	l, err := asList(name, listv)
	if err != nil {
		return -1, nil, err
	}
	for i := 0; i < l.Len(); i++ {
		ok, err := test(pred, l.Index(i))
		if err != nil {
			return -1, nil, err
		}
		if ok {
			return i, l, nil
		}
	}
	return -1, l, nil
}

// countMatches returns the number of elements that satisfy the predicate and
// the total number of elements.
func countMatches(name string, predv, listv types.Value) (int, int, error) {
	pred, err := asCallable(name, predv)
	if err != nil {
		return 0, 0, err
	}
	l, err := asList(name, listv)
	if err != nil {
		return 0, 0, err
	}
	var n int
	for i := 0; i < l.Len(); i++ {
		ok, err := test(pred, l.Index(i))
		if err != nil {
			return 0, 0, err
		}
		if ok {
			n++
		}
	}
	return n, l.Len(), nil
}

// nth returns the element at index i of the list or string, counting from
// the end if i is negative. An index out of range returns Nil for a list and
// the empty string for a string.
func nth(name string, i int, v types.Value) (types.Value, error) {
	seq, err := sequence(name, v)
	if err != nil {
		return nil, err
	}
	n := seq.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		if _, ok := seq.(types.String); ok {
			return types.String(""), nil
		}
		return types.Nil, nil
	}
	return seq.Index(i), nil
}

// slice returns the elements from index from up to index to (exclusive) of
// the list or string. Negative indices count from the end. If bounded is
// false, to is ignored and the slice extends to the end.
func slice(name string, from, to int, bounded bool, v types.Value) (types.Value, error) {
	seq, err := sequence(name, v)
	if err != nil {
		return nil, err
	}
	n := seq.Len()
	start := clampIndex(from, n)
	end := n
	if bounded {
		end = clampIndex(to, n)
	}
	if end < start {
		end = start
	}
	return subsequence(seq, start, end), nil
}

// sliceBounded is like slice for non-negative from and to.
func sliceBounded(name string, from, to int, v types.Value) (types.Value, error) {
	seq, err := sequence(name, v)
	if err != nil {
		return nil, err
	}
	if to > seq.Len() {
		to = seq.Len()
	}
	return subsequence(seq, from, to), nil
}

func flatten(dst []types.Value, l *types.List, depth int) []types.Value {
	for i := 0; i < l.Len(); i++ {
		e := l.Index(i)
		if sub, ok := e.(*types.List); ok && depth > 0 {
			dst = flatten(dst, sub, depth-1)
			continue
		}
		dst = append(dst, e)
	}
	return dst
}

func groupBy(name string, fnv, listv types.Value, add func(*types.Map, types.String, types.Value)) (types.Value, error) {
	fn, err := asCallable(name, fnv)
	if err != nil {
		return nil, err
	}
	l, err := asList(name, listv)
	if err != nil {
		return nil, err
	}
	res := types.NewMap(0)
	for i := 0; i < l.Len(); i++ {
		e := l.Index(i)
		kv, err := types.Call(fn, e)
		if err != nil {
			return nil, err
		}
		add(res, types.String(display(kv)), e)
	}
	return res, nil
}

// display returns the string of v as it is used for joins and keys: strings
// are not quoted.
func display(v types.Value) string {
	if s, ok := types.AsString(v); ok {
		return s
	}
	return fmt.Sprint(v)
}
