package adapt_test

import (
	"testing"

	"github.com/mna/cellfn/lang/adapt"
	"github.com/mna/cellfn/lang/catalog"
	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/reactive"
	"github.com/mna/cellfn/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func use(sys *reactive.System, name string, shape adapt.Shape) types.Callable {
	return adapt.Func(sys, name, catalog.Fn(name), shape)
}

func call(t *testing.T, fn types.Value, args ...types.Value) types.Value {
	t.Helper()
	v, err := types.Call(fn, args...)
	require.NoError(t, err)
	return v
}

func mustCall(fn types.Value, args ...types.Value) types.Value {
	v, err := types.Call(fn, args...)
	if err != nil {
		panic(err)
	}
	return v
}

// read calls fn with args, asserts that the result is a derived cell and
// returns its value converted to Go.
func read(t *testing.T, fn types.Value, args ...types.Value) any {
	t.Helper()
	return readDerived(t, call(t, fn, args...))
}

func readDerived(t *testing.T, v types.Value) any {
	t.Helper()
	d, ok := v.(*reactive.Derived)
	require.True(t, ok, "want derived cell, got %s", v.Type())
	res, err := d.Read()
	require.NoError(t, err)
	return types.ToGo(res)
}

func TestCurryLaw(t *testing.T) {
	sys := reactive.NewSystem()
	useSubtract := use(sys, "subtract", adapt.Shape{})
	a, b := sys.NewCell(types.Int(10)), sys.NewCell(types.Int(3))

	assert.Equal(t, 2, useSubtract.Arity())
	assert.Equal(t, int64(7), read(t, useSubtract, a, b))
	assert.Equal(t, int64(7), read(t, call(t, useSubtract, a), b))
	assert.Equal(t, int64(7), read(t, call(t, useSubtract, curry.Placeholder, b), a))
	assert.Equal(t, int64(7), read(t, call(t, useSubtract), types.Int(10), b))

	partial := call(t, useSubtract, a)
	assert.IsType(t, (*curry.Curried)(nil), partial)
	assert.Equal(t, 1, partial.(types.Callable).Arity())
}

func TestPlainValueTransparency(t *testing.T) {
	sys := reactive.NewSystem()
	cases := []struct {
		fn   string
		args []types.Value
	}{
		{"add", []types.Value{types.Int(1), types.Int(2)}},
		{"concat", []types.Value{types.String("a"), types.String("b")}},
		{"assoc", []types.Value{types.String("foo"), types.Int(2), types.MustFromGo(map[string]any{"bar": 3})}},
		{"reverse", []types.Value{types.MustFromGo([]any{1, 2, 3})}},
		{"filter", []types.Value{mustCall(catalog.Fn("lt"), types.Int(1)), types.MustFromGo([]any{1, 2, 3})}},
	}
	for _, c := range cases {
		t.Run(c.fn, func(t *testing.T) {
			want := types.ToGo(call(t, catalog.Fn(c.fn), c.args...))
			assert.Equal(t, want, read(t, use(sys, c.fn, adapt.Shape{}), c.args...))
		})
	}
}

func TestReactivity(t *testing.T) {
	sys := reactive.NewSystem()
	useAdd := use(sys, "add", adapt.Shape{})
	a, b := sys.NewCell(types.Int(1)), sys.NewCell(types.Int(2))

	sum := call(t, useAdd, a, b)
	assert.Equal(t, int64(3), readDerived(t, sum))

	a.Set(types.Int(10))
	assert.Equal(t, int64(12), readDerived(t, sum))

	// a cell may hold another container, which is read through
	a.Set(call(t, useAdd, types.Int(1), types.Int(1)))
	assert.Equal(t, int64(4), readDerived(t, sum))
}

func TestConstantFunctionInput(t *testing.T) {
	sys := reactive.NewSystem()
	useAdd := use(sys, "add", adapt.Shape{})
	useAlways := use(sys, "always", adapt.Shape{})
	a, b := sys.NewCell(types.Int(1)), sys.NewCell(types.Int(2))

	sum := call(t, useAdd, a, b)
	assert.Equal(t, int64(3), readDerived(t, sum))

	// the constant function is resolved, so calling it yields the plain value
	constant := call(t, useAlways, types.Int(2))
	a.Set(sys.Derive(func() (types.Value, error) {
		fn, err := reactive.Read(constant)
		if err != nil {
			return nil, err
		}
		return types.Call(fn)
	}))
	assert.Equal(t, int64(4), readDerived(t, sum))
}

func TestAssoc(t *testing.T) {
	sys := reactive.NewSystem()
	useAssoc := use(sys, "assoc", adapt.Shape{})

	assert.Equal(t, map[string]any{"foo": int64(2), "bar": int64(3)},
		read(t, useAssoc, types.String("foo"), types.Int(2), types.MustFromGo(map[string]any{"bar": 3})))

	key, val := sys.NewCell(types.String("foo")), sys.NewCell(types.Int(2))
	obj := sys.NewCell(types.MustFromGo(map[string]any{"bar": 3}))
	res := call(t, useAssoc, key, val, obj)
	assert.Equal(t, map[string]any{"foo": int64(2), "bar": int64(3)}, readDerived(t, res))

	val.Set(types.Int(3))
	obj.Set(types.MustFromGo(map[string]any{"buzz": 4}))
	assert.Equal(t, map[string]any{"foo": int64(3), "buzz": int64(4)}, readDerived(t, res))
	assert.Equal(t, map[string]any{"buzz": int64(4)}, types.ToGo(obj.Peek()), "input is not mutated")
}

func TestSortByReactiveProp(t *testing.T) {
	sys := reactive.NewSystem()
	useSort := use(sys, "sort", adapt.Shape{})
	useAscend := use(sys, "ascend", adapt.Shape{})
	useProp := use(sys, "prop", adapt.Shape{})

	people := types.MustFromGo([]any{
		map[string]any{"name": "a", "age": 30, "height": 170},
		map[string]any{"name": "b", "age": 20, "height": 180},
		map[string]any{"name": "c", "age": 40, "height": 160},
	})
	list := sys.NewCell(people)
	sortProp := sys.NewCell(types.String("age"))

	sorted := call(t, useSort, call(t, useAscend, call(t, useProp, sortProp)), list)
	names := call(t, use(sys, "pluck", adapt.Shape{}), types.String("name"), sorted)
	assert.Equal(t, []any{"b", "a", "c"}, readDerived(t, names))

	sortProp.Set(types.String("height"))
	assert.Equal(t, []any{"c", "a", "b"}, readDerived(t, names))

	assert.Equal(t, types.ToGo(people), types.ToGo(list.Peek()), "input is not mutated")
}

func TestNestedFunctionResolution(t *testing.T) {
	sys := reactive.NewSystem()
	factor := sys.NewCell(types.Int(2))

	// a function that returns a container instead of a plain value
	scale := types.NewBuiltin("scale", 1, func(args types.Tuple) (types.Value, error) {
		x := args[0]
		return sys.Derive(func() (types.Value, error) {
			return types.Call(catalog.Fn("multiply"), x, factor.Get())
		}), nil
	})
	// double indirection: a cell holding a cell holding the function
	fnCell := sys.NewCell(sys.NewCell(scale))

	useMap := use(sys, "map", adapt.Shape{})
	res := call(t, useMap, fnCell, types.MustFromGo([]any{1, 2, 3}))
	assert.Equal(t, []any{int64(2), int64(4), int64(6)}, readDerived(t, res))

	factor.Set(types.Int(10))
	assert.Equal(t, []any{int64(10), int64(20), int64(30)}, readDerived(t, res))
}

func TestLazyEvaluation(t *testing.T) {
	sys := reactive.NewSystem()
	var calls int
	fn := types.NewBuiltin("count", 1, func(args types.Tuple) (types.Value, error) {
		calls++
		return args[0], nil
	})
	a := sys.NewCell(types.Int(1))

	d := call(t, adapt.Adapt(sys, fn), a)
	assert.Equal(t, 0, calls)
	assert.Equal(t, int64(1), readDerived(t, d))
	assert.Equal(t, int64(1), readDerived(t, d))
	assert.Equal(t, 1, calls)

	a.Set(types.Int(2))
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(2), readDerived(t, d))
	assert.Equal(t, 2, calls)
}

func TestErrorAtReadTime(t *testing.T) {
	sys := reactive.NewSystem()
	useDivide := use(sys, "divide", adapt.Shape{})
	a, b := sys.NewCell(types.Int(1)), sys.NewCell(types.Int(0))

	d, ok := call(t, useDivide, a, b).(*reactive.Derived)
	require.True(t, ok)
	_, err := d.Read()
	assert.EqualError(t, err, "divide: division by zero")

	b.Set(types.Int(2))
	v, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, types.Float(0.5), v)

	// errors of a container argument propagate
	useInc := use(sys, "inc", adapt.Shape{})
	b.Set(types.Int(0))
	_, err = call(t, useInc, d).(*reactive.Derived).Read()
	assert.EqualError(t, err, "divide: division by zero")
}

func TestPredicateSpecializers(t *testing.T) {
	sys := reactive.NewSystem()
	threshold := sys.NewCell(types.Int(2))

	// a predicate that returns a reactive boolean
	above := types.NewBuiltin("above", 1, func(args types.Tuple) (types.Value, error) {
		x := args[0]
		return sys.Derive(func() (types.Value, error) {
			return types.Call(catalog.Fn("gt"), x, threshold.Get())
		}), nil
	})
	even := types.NewBuiltin("even", 1, func(args types.Tuple) (types.Value, error) {
		m, err := types.Call(catalog.Fn("modulo"), args[0], types.Int(2))
		return types.Bool(m == types.Int(0)), err
	})
	nums := types.MustFromGo([]any{1, 2, 3, 4, 5, 6})

	t.Run("predicate", func(t *testing.T) {
		useFilter := use(sys, "filter", adapt.Shape{Kind: adapt.Predicate})
		res := call(t, useFilter, above, nums)
		assert.Equal(t, []any{int64(3), int64(4), int64(5), int64(6)}, readDerived(t, res))

		threshold.Set(types.Int(4))
		assert.Equal(t, []any{int64(5), int64(6)}, readDerived(t, res))
		threshold.Set(types.Int(2))
	})

	t.Run("predicate list", func(t *testing.T) {
		useAllPass := use(sys, "allPass", adapt.Shape{Kind: adapt.PredicateList})
		useFilter := use(sys, "filter", adapt.Shape{Kind: adapt.Predicate})

		second := sys.NewCell(even)
		preds := types.NewList([]types.Value{above, second})
		res := call(t, useFilter, call(t, useAllPass, preds), nums)
		assert.Equal(t, []any{int64(4), int64(6)}, readDerived(t, res))

		second.Set(call(t, catalog.Fn("complement"), even))
		assert.Equal(t, []any{int64(3), int64(5)}, readDerived(t, res))
	})

	t.Run("all predicates", func(t *testing.T) {
		useBoth := use(sys, "both", adapt.Shape{Kind: adapt.AllPredicates})
		useFind := use(sys, "find", adapt.Shape{Kind: adapt.Predicate})

		res := call(t, useFind, call(t, useBoth, above, even), nums)
		assert.Equal(t, int64(4), readDerived(t, res))

		threshold.Set(types.Int(4))
		assert.Equal(t, int64(6), readDerived(t, res))
		threshold.Set(types.Int(10))
		assert.Nil(t, readDerived(t, res))
	})
}

func TestWithPredicateDirect(t *testing.T) {
	sys := reactive.NewSystem()
	flag := sys.NewCell(types.True)
	pred := types.NewBuiltin("flag", 1, func(types.Tuple) (types.Value, error) {
		return flag, nil
	})

	// without the specializer, the catalog sees a truthy cell
	fn := adapt.WithPredicate(catalog.Fn("filter"), 0)
	assert.Equal(t, 2, fn.Arity())
	flag.Set(types.False)
	v := call(t, fn, pred, types.MustFromGo([]any{1, 2}))
	assert.Equal(t, []any{}, types.ToGo(v))

	v = call(t, catalog.Fn("filter"), pred, types.MustFromGo([]any{1, 2}))
	assert.Equal(t, []any{int64(1), int64(2)}, types.ToGo(v))
}

func TestResolve(t *testing.T) {
	sys := reactive.NewSystem()

	v, err := adapt.Resolve(sys.NewCell(sys.NewCell(types.Int(1))))
	require.NoError(t, err)
	assert.Equal(t, types.Int(1), v)

	v, err = adapt.Resolve(types.String("x"))
	require.NoError(t, err)
	assert.Equal(t, types.String("x"), v)

	inc := catalog.Fn("inc")
	v, err = adapt.Resolve(inc)
	require.NoError(t, err)
	cb, ok := v.(types.Callable)
	require.True(t, ok)
	assert.Equal(t, "inc", cb.Name())
	assert.Equal(t, 1, cb.Arity())
	assert.Same(t, inc, adapt.Unwrap(cb))
	assert.Same(t, inc, adapt.Unwrap(inc))

	again, err := adapt.Resolve(cb)
	require.NoError(t, err)
	assert.Same(t, cb, again)
}

func TestResolveContainerCycle(t *testing.T) {
	sys := reactive.NewSystem()

	a := sys.NewCell(types.Int(1))
	a.Set(a)
	_, err := adapt.Resolve(a)
	assert.ErrorIs(t, err, adapt.ErrContainerCycle)

	b, c := sys.NewCell(types.Int(1)), sys.NewCell(types.Int(2))
	b.Set(c)
	c.Set(sys.NewCell(b))
	_, err = adapt.Resolve(b)
	assert.ErrorIs(t, err, adapt.ErrContainerCycle)

	// through a derived cell that returns the cell it reads
	d := sys.NewCell(types.Int(1))
	dd := sys.Derive(func() (types.Value, error) { return d, nil })
	d.Set(dd)
	_, err = adapt.Resolve(d)
	assert.ErrorIs(t, err, adapt.ErrContainerCycle)

	// the same cell used twice is not a cycle
	e := sys.NewCell(sys.NewCell(types.Int(3)))
	assert.Equal(t, int64(6), read(t, use(sys, "add", adapt.Shape{}), e, e))

	// a derived cell over a cyclic input reports the error when read
	sum := call(t, use(sys, "add", adapt.Shape{}), a, types.Int(1))
	_, err = sum.(*reactive.Derived).Read()
	assert.ErrorIs(t, err, adapt.ErrContainerCycle)
}

func TestShape(t *testing.T) {
	cases := []struct {
		shape adapt.Shape
		arity int
		str   string
		err   string
	}{
		{adapt.Shape{}, 2, "plain", ""},
		{adapt.Shape{Kind: adapt.Predicate}, 2, "predicate(0)", ""},
		{adapt.Shape{Kind: adapt.Predicate, Position: 2}, 2, "predicate(2)", "predicate(2): position out of range for arity 2"},
		{adapt.Shape{Kind: adapt.PredicateList, Position: -1}, 1, "predicateList(-1)", "predicateList(-1): position out of range for arity 1"},
		{adapt.Shape{Kind: adapt.AllPredicates}, 2, "allPredicates", ""},
		{adapt.Shape{Kind: adapt.Kind(9)}, 1, "kind(9)", "invalid shape kind(9)"},
	}
	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			assert.Equal(t, c.str, c.shape.String())
			err := c.shape.Validate(c.arity)
			if c.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, c.err)
			}
		})
	}
}
