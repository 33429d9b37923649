package catalog

import (
	"fmt"

	"github.com/mna/cellfn/lang/types"
	"golang.org/x/exp/slices"
)

func init() {
	register("equals", 2, func(args types.Tuple) (types.Value, error) {
		eq, err := types.Equal(args[0], args[1])
		return types.Bool(eq), err
	})
	register("identical", 2, func(args types.Tuple) (types.Value, error) {
		return types.Bool(args[0] == args[1]), nil
	})
	register("gt", 2, comparison("gt", func(c int) bool { return c > 0 }))
	register("gte", 2, comparison("gte", func(c int) bool { return c >= 0 }))
	register("lt", 2, comparison("lt", func(c int) bool { return c < 0 }))
	register("lte", 2, comparison("lte", func(c int) bool { return c <= 0 }))

	register("ascend", 3, func(args types.Tuple) (types.Value, error) {
		return byKey("ascend", args[0], args[1], args[2], 1)
	})
	register("descend", 3, func(args types.Tuple) (types.Value, error) {
		return byKey("descend", args[0], args[1], args[2], -1)
	})

	register("sort", 2, func(args types.Tuple) (types.Value, error) {
		cmp, err := asCallable("sort", args[0])
		if err != nil {
			return nil, err
		}
		l, err := asList("sort", args[1])
		if err != nil {
			return nil, err
		}
		return sortList(l, func(a, b types.Value) (int, error) {
			return callComparator(cmp, a, b)
		})
	})

	register("sortWith", 2, func(args types.Tuple) (types.Value, error) {
		cl, err := asList("sortWith", args[0])
		if err != nil {
			return nil, err
		}
		cmps := make([]types.Callable, 0, cl.Len())
		for i := 0; i < cl.Len(); i++ {
			cmp, err := asCallable("sortWith", cl.Index(i))
			if err != nil {
				return nil, err
			}
			cmps = append(cmps, cmp)
		}
		l, err := asList("sortWith", args[1])
		if err != nil {
			return nil, err
		}
		return sortList(l, func(a, b types.Value) (int, error) {
			for _, cmp := range cmps {
				c, err := callComparator(cmp, a, b)
				if c != 0 || err != nil {
					return c, err
				}
			}
			return 0, nil
		})
	})

	register("sortBy", 2, func(args types.Tuple) (types.Value, error) {
		fn, err := asCallable("sortBy", args[0])
		if err != nil {
			return nil, err
		}
		l, err := asList("sortBy", args[1])
		if err != nil {
			return nil, err
		}
		return sortList(l, func(a, b types.Value) (int, error) {
			ka, err := types.Call(fn, a)
			if err != nil {
				return 0, err
			}
			kb, err := types.Call(fn, b)
			if err != nil {
				return 0, err
			}
			return types.Compare(ka, kb)
		})
	})

	register("uniq", 1, func(args types.Tuple) (types.Value, error) {
		l, err := asList("uniq", args[0])
		if err != nil {
			return nil, err
		}
		return uniq(l.Elems())
	})
	register("union", 2, func(args types.Tuple) (types.Value, error) {
		l1, l2, err := twoLists("union", args[0], args[1])
		if err != nil {
			return nil, err
		}
		return uniq(append(l1.Elems(), l2.Elems()...))
	})
	register("intersection", 2, func(args types.Tuple) (types.Value, error) {
		return filterByMembership("intersection", args[0], args[1], true)
	})
	register("difference", 2, func(args types.Tuple) (types.Value, error) {
		return filterByMembership("difference", args[0], args[1], false)
	})
}

func comparison(name string, ok func(int) bool) func(types.Tuple) (types.Value, error) {
	return func(args types.Tuple) (types.Value, error) {
		c, err := types.Compare(args[0], args[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return types.Bool(ok(c)), nil
	}
}

// byKey compares a and b by the keys returned by fn, dir is 1 for ascending
// order and -1 for descending.
func byKey(name string, fnv, a, b types.Value, dir int) (types.Value, error) {
	fn, err := asCallable(name, fnv)
	if err != nil {
		return nil, err
	}
	ka, err := types.Call(fn, a)
	if err != nil {
		return nil, err
	}
	kb, err := types.Call(fn, b)
	if err != nil {
		return nil, err
	}
	c, err := types.Compare(ka, kb)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return types.Int(c * dir), nil
}

func callComparator(cmp types.Callable, a, b types.Value) (int, error) {
	v, err := types.Call(cmp, a, b)
	if err != nil {
		return 0, err
	}
	f, ok := types.AsFloat(v)
	if !ok {
		return 0, typeError("comparator", "number", v)
	}
	switch {
	case f < 0:
		return -1, nil
	case f > 0:
		return 1, nil
	}
	return 0, nil
}

// sortList returns a new list with the elements of l stably sorted by cmp.
// The first error returned by cmp stops the sort.
func sortList(l *types.List, cmp func(a, b types.Value) (int, error)) (types.Value, error) {
	elems := l.Elems()
	var sortErr error
	slices.SortStableFunc(elems, func(a, b types.Value) int {
		if sortErr != nil {
			return 0
		}
		c, err := cmp(a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		return c
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return types.NewList(elems), nil
}

func indexOf(elems []types.Value, v types.Value) (int, error) {
	for i, e := range elems {
		eq, err := types.Equal(e, v)
		if err != nil {
			return -1, err
		}
		if eq {
			return i, nil
		}
	}
	return -1, nil
}

func uniq(elems []types.Value) (types.Value, error) {
	res := make([]types.Value, 0, len(elems))
	for _, e := range elems {
		ix, err := indexOf(res, e)
		if err != nil {
			return nil, err
		}
		if ix < 0 {
			res = append(res, e)
		}
	}
	return types.NewList(res), nil
}

func twoLists(name string, a, b types.Value) (*types.List, *types.List, error) {
	l1, err := asList(name, a)
	if err != nil {
		return nil, nil, err
	}
	l2, err := asList(name, b)
	if err != nil {
		return nil, nil, err
	}
	return l1, l2, nil
}

// filterByMembership returns the unique elements of a that are (if member is
// true) or are not (if member is false) in b.
func filterByMembership(name string, a, b types.Value, member bool) (types.Value, error) {
	l1, l2, err := twoLists(name, a, b)
	if err != nil {
		return nil, err
	}
	others := l2.Elems()
	var res []types.Value
	for i := 0; i < l1.Len(); i++ {
		e := l1.Index(i)
		ix, err := indexOf(others, e)
		if err != nil {
			return nil, err
		}
		if (ix >= 0) == member {
			res = append(res, e)
		}
	}
	return uniq(res)
}
