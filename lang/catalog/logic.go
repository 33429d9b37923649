package catalog

import (
	"math"

	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/types"
)

func init() {
	register("not", 1, func(args types.Tuple) (types.Value, error) {
		return !args[0].Truth(), nil
	})
	register("and", 2, func(args types.Tuple) (types.Value, error) {
		if !args[0].Truth() {
			return args[0], nil
		}
		return args[1], nil
	})
	register("or", 2, func(args types.Tuple) (types.Value, error) {
		if args[0].Truth() {
			return args[0], nil
		}
		return args[1], nil
	})
	register("isNil", 1, func(args types.Tuple) (types.Value, error) {
		return types.Bool(args[0] == types.Nil), nil
	})
	register("defaultTo", 2, func(args types.Tuple) (types.Value, error) {
		v := args[1]
		if f, ok := v.(types.Float); v == types.Nil || (ok && math.IsNaN(float64(f))) {
			return args[0], nil
		}
		return v, nil
	})

	register("both", 2, func(args types.Tuple) (types.Value, error) {
		return junction("both", args[0], args[1], false)
	})
	register("either", 2, func(args types.Tuple) (types.Value, error) {
		return junction("either", args[0], args[1], true)
	})

	register("complement", 1, func(args types.Tuple) (types.Value, error) {
		pred, err := asCallable("complement", args[0])
		if err != nil {
			return nil, err
		}
		return curry.N("complement", pred.Arity(), func(args types.Tuple) (types.Value, error) {
			ok, err := test(pred, args...)
			return types.Bool(!ok), err
		}), nil
	})

	register("allPass", 1, func(args types.Tuple) (types.Value, error) {
		return passes("allPass", args[0], true)
	})
	register("anyPass", 1, func(args types.Tuple) (types.Value, error) {
		return passes("anyPass", args[0], false)
	})

	register("ifElse", 3, func(args types.Tuple) (types.Value, error) {
		fns := make([]types.Callable, 3)
		for i, arg := range args[:3] {
			cb, err := asCallable("ifElse", arg)
			if err != nil {
				return nil, err
			}
			fns[i] = cb
		}
		cond, onTrue, onFalse := fns[0], fns[1], fns[2]
		return curry.N("ifElse", maxArity(fns...), func(args types.Tuple) (types.Value, error) {
			ok, err := test(cond, args...)
			if err != nil {
				return nil, err
			}
			if ok {
				return types.Call(onTrue, args...)
			}
			return types.Call(onFalse, args...)
		}), nil
	})

	register("when", 3, func(args types.Tuple) (types.Value, error) {
		return conditionally("when", args[0], args[1], args[2], true)
	})
	register("unless", 3, func(args types.Tuple) (types.Value, error) {
		return conditionally("unless", args[0], args[1], args[2], false)
	})
}

// junction returns a function that calls f and then, unless its result
// decides the outcome (falsy for both, truthy for either), g. The result is
// the last value computed.
func junction(name string, fv, gv types.Value, or bool) (types.Value, error) {
	f, err := asCallable(name, fv)
	if err != nil {
		return nil, err
	}
	g, err := asCallable(name, gv)
	if err != nil {
		return nil, err
	}
	return curry.N(name, maxArity(f, g), func(args types.Tuple) (types.Value, error) {
		v, err := types.Call(f, args...)
		if err != nil {
			return nil, err
		}
		if bool(v.Truth()) == or {
			return v, nil
		}
		return types.Call(g, args...)
	}), nil
}

// passes returns a function that reports whether all (if all is true) or any
// of the predicates in the list predsv are satisfied by its arguments.
func passes(name string, predsv types.Value, all bool) (types.Value, error) {
	l, err := asList(name, predsv)
	if err != nil {
		return nil, err
	}
	preds := make([]types.Callable, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		cb, err := asCallable(name, l.Index(i))
		if err != nil {
			return nil, err
		}
		preds = append(preds, cb)
	}
	return curry.N(name, maxArity(preds...), func(args types.Tuple) (types.Value, error) {
		for _, pred := range preds {
			ok, err := test(pred, args...)
			if err != nil {
				return nil, err
			}
			if ok != all {
				return types.Bool(ok), nil
			}
		}
		return types.Bool(all), nil
	}), nil
}

// conditionally applies fnv to x if predv(x) is want, otherwise it returns x.
func conditionally(name string, predv, fnv, x types.Value, want bool) (types.Value, error) {
	pred, err := asCallable(name, predv)
	if err != nil {
		return nil, err
	}
	fn, err := asCallable(name, fnv)
	if err != nil {
		return nil, err
	}
	ok, err := test(pred, x)
	if err != nil {
		return nil, err
	}
	if ok == want {
		return types.Call(fn, x)
	}
	return x, nil
}
