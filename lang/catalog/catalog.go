// Package catalog implements the pure function catalog: a fixed set of
// curried functions of plain values, each with a known arity and support for
// placeholder arguments. The functions are agnostic to reactivity, see the
// adapt and bindings packages for their reactive counterparts.
package catalog

import (
	"fmt"

	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/types"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// An Entry is a function of the catalog.
type Entry struct {
	Name  string
	Fn    *curry.Curried
	Arity int
}

var registry = make(map[string]*Entry)

// register adds a function to the catalog. It is only called during package
// initialization.
func register(name string, arity int, fn curry.Func) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("catalog: duplicate function %s", name))
	}
	registry[name] = &Entry{Name: name, Fn: curry.N(name, arity, fn), Arity: arity}
}

// Lookup returns the catalog entry with the specified name.
func Lookup(name string) (*Entry, bool) {
	e, ok := registry[name]
	return e, ok
}

// Entries returns all entries of the catalog sorted by name.
func Entries() []*Entry {
	names := maps.Keys(registry)
	slices.Sort(names)

	res := make([]*Entry, 0, len(names))
	for _, nm := range names {
		res = append(res, registry[nm])
	}
	return res
}

// Fn returns the function with the specified name. It panics if there is no
// such function, it is meant for static call sites.
func Fn(name string) *curry.Curried {
	e, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown function %s", name))
	}
	return e.Fn
}

func typeError(fn, want string, got types.Value) error {
	return fmt.Errorf("%s: want %s, got %s", fn, want, got.Type())
}

func asList(fn string, v types.Value) (*types.List, error) {
	l, ok := v.(*types.List)
	if !ok {
		return nil, typeError(fn, "list", v)
	}
	return l, nil
}

func asMap(fn string, v types.Value) (*types.Map, error) {
	m, ok := v.(*types.Map)
	if !ok {
		return nil, typeError(fn, "map", v)
	}
	return m, nil
}

func asString(fn string, v types.Value) (string, error) {
	s, ok := types.AsString(v)
	if !ok {
		return "", typeError(fn, "string", v)
	}
	return s, nil
}

func asInt(fn string, v types.Value) (int, error) {
	i, err := types.AsExactInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", fn, err)
	}
	return i, nil
}

func asCallable(fn string, v types.Value) (types.Callable, error) {
	cb, ok := v.(types.Callable)
	if !ok {
		return nil, typeError(fn, "function", v)
	}
	return cb, nil
}

// test calls the predicate pred with args and returns the truth of its
// result.
func test(pred types.Callable, args ...types.Value) (bool, error) {
	v, err := types.Call(pred, args...)
	if err != nil {
		return false, err
	}
	return bool(v.Truth()), nil
}

// maxArity returns the greatest arity of the callables.
func maxArity(cbs ...types.Callable) int {
	var n int
	for _, cb := range cbs {
		if a := cb.Arity(); a > n {
			n = a
		}
	}
	return n
}

// sequence is the common view of lists and strings for functions that work
// on both.
func sequence(fn string, v types.Value) (types.Indexable, error) {
	switch v := v.(type) {
	case *types.List:
		return v, nil
	case types.String:
		return v, nil
	}
	return nil, typeError(fn, "list or string", v)
}

// subsequence returns the elements [start:end] of seq as a value of the same
// type as seq.
func subsequence(seq types.Indexable, start, end int) types.Value {
	switch seq := seq.(type) {
	case *types.List:
		return seq.Slice(start, end)
	case types.String:
		return seq[start:end]
	}
	panic(fmt.Sprintf("unexpected sequence type %s", seq.Type()))
}

// clampIndex normalizes a possibly negative index to [0, n].
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
