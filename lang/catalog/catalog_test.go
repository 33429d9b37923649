package catalog

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vals(vs ...any) []types.Value {
	res := make([]types.Value, len(vs))
	for i, v := range vs {
		res[i] = types.MustFromGo(v)
	}
	return res
}

func list(vs ...any) *types.List {
	return types.NewList(vals(vs...))
}

func person(name string, age, height int) map[string]any {
	return map[string]any{"name": name, "age": int64(age), "height": int64(height)}
}

var (
	even = types.NewBuiltin("even", 1, func(args types.Tuple) (types.Value, error) {
		i, err := types.AsExactInt(args[0])
		return types.Bool(i%2 == 0), err
	})
	gt2 = types.NewBuiltin("gt2", 1, func(args types.Tuple) (types.Value, error) {
		return Fn("lt").CallInternal(types.Tuple{types.Int(2), args[0]})
	})
	double = types.NewBuiltin("double", 1, func(args types.Tuple) (types.Value, error) {
		return arith("multiply", args[0], types.Int(2))
	})
)

// byProp returns prop(name), it must not be called before the catalog is
// initialized.
func byProp(name string) types.Value {
	return mustCall(Fn("prop"), types.String(name))
}

func mustCall(fn types.Value, args ...types.Value) types.Value {
	v, err := types.Call(fn, args...)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCatalog(t *testing.T) {
	people := list(person("a", 30, 170), person("b", 20, 180), person("c", 40, 160))
	byAge, byHeight := byProp("age"), byProp("height")

	cases := []struct {
		fn   string
		args []types.Value
		want any
	}{
		// math
		{"add", vals(1, 2), int64(3)},
		{"add", vals(1, 2.5), 3.5},
		{"subtract", vals(10, 3), int64(7)},
		{"multiply", vals(3, 4), int64(12)},
		{"divide", vals(8, 2), int64(4)},
		{"divide", vals(7, 2), 3.5},
		{"modulo", vals(7, 3), int64(1)},
		{"inc", vals(1), int64(2)},
		{"dec", vals(1.5), 0.5},
		{"negate", vals(3), int64(-3)},
		{"sum", []types.Value{list(1, 2, 3)}, int64(6)},
		{"sum", []types.Value{list()}, int64(0)},
		{"product", []types.Value{list(2, 3, 4)}, int64(24)},
		{"mean", []types.Value{list(1, 2, 3, 4)}, 2.5},
		{"max", vals(1, 2), int64(2)},
		{"min", vals("b", "a"), "a"},
		{"clamp", vals(1, 10, 11), int64(10)},
		{"clamp", vals(1, 10, -1), int64(1)},
		{"clamp", vals(1, 10, 5), int64(5)},

		// relation
		{"equals", []types.Value{list(1, list(2)), list(1, list(2))}, true},
		{"equals", vals(1, "1"), false},
		{"identical", vals(1, 1), true},
		{"gt", vals(2, 1), true},
		{"gte", vals(1, 1), true},
		{"lt", vals(2, 1), false},
		{"lte", vals(1, 1.5), true},
		{"ascend", []types.Value{byAge, types.MustFromGo(person("a", 1, 0)), types.MustFromGo(person("b", 2, 0))}, int64(-1)},
		{"descend", []types.Value{byAge, types.MustFromGo(person("a", 1, 0)), types.MustFromGo(person("b", 2, 0))}, int64(1)},
		{"sort", []types.Value{mustCall(Fn("ascend"), byAge), people}, []any{person("b", 20, 180), person("a", 30, 170), person("c", 40, 160)}},
		{"sort", []types.Value{mustCall(Fn("descend"), byHeight), people}, []any{person("b", 20, 180), person("a", 30, 170), person("c", 40, 160)}},
		{"sortBy", []types.Value{byHeight, people}, []any{person("c", 40, 160), person("a", 30, 170), person("b", 20, 180)}},
		{"sortWith", []types.Value{list(mustCall(Fn("ascend"), byAge)), people}, []any{person("b", 20, 180), person("a", 30, 170), person("c", 40, 160)}},
		{"uniq", []types.Value{list(1, 2, 1, 1.0, "a", "a")}, []any{int64(1), int64(2), "a"}},
		{"union", []types.Value{list(1, 2), list(2, 3)}, []any{int64(1), int64(2), int64(3)}},
		{"intersection", []types.Value{list(1, 2, 3), list(3, 2, 4)}, []any{int64(2), int64(3)}},
		{"difference", []types.Value{list(1, 2, 3), list(3, 4)}, []any{int64(1), int64(2)}},

		// logic
		{"not", vals(0), true},
		{"and", vals(true, 0), int64(0)},
		{"and", vals(false, 1), false},
		{"or", vals(nil, "x"), "x"},
		{"or", vals(1, "x"), int64(1)},
		{"isNil", vals(nil), true},
		{"isNil", vals(0), false},
		{"defaultTo", vals(1, nil), int64(1)},
		{"defaultTo", vals(1, 2), int64(2)},

		// list
		{"map", []types.Value{double, list(1, 2)}, []any{int64(2), int64(4)}},
		{"map", []types.Value{double, types.MustFromGo(map[string]any{"a": 1})}, map[string]any{"a": int64(2)}},
		{"filter", []types.Value{even, list(1, 2, 3, 4)}, []any{int64(2), int64(4)}},
		{"filter", []types.Value{even, types.MustFromGo(map[string]any{"a": 1, "b": 2})}, map[string]any{"b": int64(2)}},
		{"reject", []types.Value{even, list(1, 2, 3, 4)}, []any{int64(1), int64(3)}},
		{"reduce", []types.Value{Fn("add"), types.Int(10), list(1, 2, 3)}, int64(16)},
		{"find", []types.Value{gt2, list(1, 2, 3, 4)}, int64(3)},
		{"find", []types.Value{gt2, list(1, 2)}, nil},
		{"findIndex", []types.Value{gt2, list(1, 2, 3)}, int64(2)},
		{"findIndex", []types.Value{gt2, list()}, int64(-1)},
		{"all", []types.Value{even, list(2, 4)}, true},
		{"all", []types.Value{even, list()}, true},
		{"any", []types.Value{even, list(1, 3)}, false},
		{"none", []types.Value{even, list(1, 3)}, true},
		{"includes", []types.Value{types.Int(2), list(1, 2)}, true},
		{"includes", vals("ell", "hello"), true},
		{"indexOf", []types.Value{types.String("b"), list("a", "b")}, int64(1)},
		{"head", []types.Value{list(1, 2)}, int64(1)},
		{"head", []types.Value{list()}, nil},
		{"head", vals("abc"), "a"},
		{"last", []types.Value{list(1, 2)}, int64(2)},
		{"nth", []types.Value{types.Int(-2), list(1, 2, 3)}, int64(2)},
		{"nth", []types.Value{types.Int(5), list(1, 2, 3)}, nil},
		{"tail", []types.Value{list(1, 2, 3)}, []any{int64(2), int64(3)}},
		{"tail", []types.Value{list()}, []any{}},
		{"init", vals("abc"), "ab"},
		{"take", []types.Value{types.Int(2), list(1, 2, 3)}, []any{int64(1), int64(2)}},
		{"take", []types.Value{types.Int(5), list(1)}, []any{int64(1)}},
		{"drop", []types.Value{types.Int(2), list(1, 2, 3)}, []any{int64(3)}},
		{"slice", []types.Value{types.Int(1), types.Int(-1), list(1, 2, 3, 4)}, []any{int64(2), int64(3)}},
		{"length", []types.Value{list(1, 2)}, int64(2)},
		{"length", vals("abc"), int64(3)},
		{"concat", []types.Value{list(1), list(2)}, []any{int64(1), int64(2)}},
		{"concat", vals("a", "b"), "ab"},
		{"append", []types.Value{types.Int(3), list(1)}, []any{int64(1), int64(3)}},
		{"prepend", []types.Value{types.Int(3), list(1)}, []any{int64(3), int64(1)}},
		{"reverse", []types.Value{list(1, 2, 3)}, []any{int64(3), int64(2), int64(1)}},
		{"reverse", vals("abc"), "cba"},
		{"range", vals(1, 4), []any{int64(1), int64(2), int64(3)}},
		{"join", []types.Value{types.String("-"), list("a", 1, true)}, "a-1-true"},
		{"pluck", []types.Value{types.String("name"), people}, []any{"a", "b", "c"}},
		{"zip", []types.Value{list(1, 2, 3), list("a", "b")}, []any{[]any{int64(1), "a"}, []any{int64(2), "b"}}},
		{"without", []types.Value{list(1, 2), list(1, 2, 3, 1)}, []any{int64(3)}},
		{"flatten", []types.Value{list(1, list(2, list(3)))}, []any{int64(1), int64(2), int64(3)}},
		{"groupBy", []types.Value{even, list(1, 2, 3)}, map[string]any{"false": []any{int64(1), int64(3)}, "true": []any{int64(2)}}},
		{"countBy", []types.Value{even, list(1, 2, 3)}, map[string]any{"false": int64(2), "true": int64(1)}},

		// object
		{"prop", []types.Value{types.String("a"), types.MustFromGo(map[string]any{"a": 1})}, int64(1)},
		{"prop", []types.Value{types.String("b"), types.MustFromGo(map[string]any{"a": 1})}, nil},
		{"prop", []types.Value{types.Int(1), list("x", "y")}, "y"},
		{"prop", []types.Value{types.String("a"), types.Nil}, nil},
		{"propOr", []types.Value{types.Int(0), types.String("b"), types.MustFromGo(map[string]any{"a": 1})}, int64(0)},
		{"path", []types.Value{list("a", "b"), types.MustFromGo(map[string]any{"a": map[string]any{"b": 2}})}, int64(2)},
		{"path", []types.Value{list("a", "x", "y"), types.MustFromGo(map[string]any{"a": map[string]any{"b": 2}})}, nil},
		{"pathOr", []types.Value{types.Int(0), list("x"), types.MustFromGo(map[string]any{})}, int64(0)},
		{"assoc", []types.Value{types.String("foo"), types.Int(2), types.MustFromGo(map[string]any{"bar": 3})}, map[string]any{"foo": int64(2), "bar": int64(3)}},
		{"assocPath", []types.Value{list("a", "b"), types.Int(1), types.MustFromGo(map[string]any{"a": 5})}, map[string]any{"a": map[string]any{"b": int64(1)}}},
		{"assocPath", []types.Value{list("a", "c"), types.Int(1), types.MustFromGo(map[string]any{"a": map[string]any{"b": 2}})}, map[string]any{"a": map[string]any{"b": int64(2), "c": int64(1)}}},
		{"dissoc", []types.Value{types.String("a"), types.MustFromGo(map[string]any{"a": 1, "b": 2})}, map[string]any{"b": int64(2)}},
		{"has", []types.Value{types.String("a"), types.MustFromGo(map[string]any{"a": nil})}, true},
		{"keys", []types.Value{types.MustFromGo(map[string]any{"b": 1, "a": 2})}, []any{"a", "b"}},
		{"values", []types.Value{types.MustFromGo(map[string]any{"b": 1, "a": 2})}, []any{int64(2), int64(1)}},
		{"pick", []types.Value{list("a", "z"), types.MustFromGo(map[string]any{"a": 1, "b": 2})}, map[string]any{"a": int64(1)}},
		{"omit", []types.Value{list("a"), types.MustFromGo(map[string]any{"a": 1, "b": 2})}, map[string]any{"b": int64(2)}},
		{"mergeRight", []types.Value{types.MustFromGo(map[string]any{"a": 1, "b": 1}), types.MustFromGo(map[string]any{"b": 2})}, map[string]any{"a": int64(1), "b": int64(2)}},
		{"mergeLeft", []types.Value{types.MustFromGo(map[string]any{"a": 1, "b": 1}), types.MustFromGo(map[string]any{"b": 2})}, map[string]any{"a": int64(1), "b": int64(1)}},
		{"mergeWith", []types.Value{Fn("add"), types.MustFromGo(map[string]any{"a": 1, "b": 1}), types.MustFromGo(map[string]any{"b": 2})}, map[string]any{"a": int64(1), "b": int64(3)}},

		// string and function
		{"toUpper", vals("abc"), "ABC"},
		{"toLower", vals("ABC"), "abc"},
		{"trim", vals("  a "), "a"},
		{"split", vals(",", "a,b"), []any{"a", "b"}},
		{"test", vals("^a.c$", "abc"), true},
		{"identity", vals(1), int64(1)},
		{"T", nil, true},
		{"F", nil, false},
		{"applyTo", []types.Value{types.Int(2), double}, int64(4)},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s%v", c.fn, c.args), func(t *testing.T) {
			got, err := types.Call(Fn(c.fn), c.args...)
			require.NoError(t, err)
			if diff := cmp.Diff(c.want, types.ToGo(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalogErrors(t *testing.T) {
	cases := []struct {
		fn   string
		args []types.Value
		err  string
	}{
		{"add", vals(1, "a"), "add: want number, got string"},
		{"divide", vals(1, 0), "divide: division by zero"},
		{"modulo", vals(1.5, 1), "modulo: want integers"},
		{"mean", []types.Value{list()}, "mean: empty list"},
		{"clamp", vals(10, 1, 5), "clamp: minimum 10 greater than maximum 1"},
		{"gt", vals(1, "a"), "gt: cannot compare int with string"},
		{"map", vals(1, 2), "map: want function, got int"},
		{"map", []types.Value{double, types.Int(1)}, "map: want list or map, got int"},
		{"filter", []types.Value{double, list("a")}, "multiply: want number, got string"},
		{"sort", []types.Value{Fn("identity"), list("x", "y")}, "comparator: want number, got string"},
		{"nth", vals(1.5, "abc"), "no exact integer"},
		{"concat", []types.Value{list(), types.String("a")}, "concat: want list, got string"},
		{"assoc", vals("a", 1, 2), "assoc: want map, got int"},
		{"test", vals("(", "a"), "test: error parsing regexp"},
		{"ifElse", vals(1, 2, 3), "ifElse: want function, got int"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s%v", c.fn, c.args), func(t *testing.T) {
			_, err := types.Call(Fn(c.fn), c.args...)
			assert.ErrorContains(t, err, c.err)
		})
	}
}

func TestCombinators(t *testing.T) {
	call := func(fn types.Value, args ...types.Value) any {
		t.Helper()
		v, err := types.Call(fn, args...)
		require.NoError(t, err)
		return types.ToGo(v)
	}

	both := mustCall(Fn("both"), even, gt2)
	assert.Equal(t, true, call(both, types.Int(4)))
	assert.Equal(t, false, call(both, types.Int(2)))
	assert.Equal(t, false, call(both, types.Int(3)))

	either := mustCall(Fn("either"), even, gt2)
	assert.Equal(t, true, call(either, types.Int(2)))
	assert.Equal(t, false, call(either, types.Int(1)))

	notEven := mustCall(Fn("complement"), even)
	assert.Equal(t, true, call(notEven, types.Int(1)))

	all := mustCall(Fn("allPass"), list(even, gt2))
	assert.Equal(t, true, call(all, types.Int(4)))
	assert.Equal(t, false, call(all, types.Int(2)))
	anyp := mustCall(Fn("anyPass"), list(even, gt2))
	assert.Equal(t, true, call(anyp, types.Int(3)))
	assert.Equal(t, false, call(anyp, types.Int(1)))

	ifElse := mustCall(Fn("ifElse"), even, double, Fn("identity"))
	assert.Equal(t, int64(4), call(ifElse, types.Int(2)))
	assert.Equal(t, int64(3), call(ifElse, types.Int(3)))

	assert.Equal(t, int64(4), call(Fn("when"), even, double, types.Int(2)))
	assert.Equal(t, int64(3), call(Fn("when"), even, double, types.Int(3)))
	assert.Equal(t, int64(6), call(Fn("unless"), even, double, types.Int(3)))

	always := mustCall(Fn("always"), types.String("x"))
	assert.Equal(t, "x", call(always))
	assert.Equal(t, "x", call(always, types.Int(1)))
}

func TestCatalogCurrying(t *testing.T) {
	sub := Fn("subtract")
	minus3 := mustCall(sub, curry.Placeholder, types.Int(3))
	assert.Equal(t, types.Int(7), mustCall(minus3, types.Int(10)))

	from10 := mustCall(sub, types.Int(10))
	assert.Equal(t, types.Int(6), mustCall(from10, types.Int(4)))
}

func TestEntries(t *testing.T) {
	entries := Entries()
	require.NotEmpty(t, entries)
	for i, e := range entries {
		if i > 0 {
			assert.Less(t, entries[i-1].Name, e.Name)
		}
		assert.Equal(t, e.Arity, e.Fn.Arity(), e.Name)
		got, ok := Lookup(e.Name)
		assert.True(t, ok)
		assert.Same(t, e, got)
	}

	_, ok := Lookup("nope")
	assert.False(t, ok)
	assert.Panics(t, func() { Fn("nope") })
}
