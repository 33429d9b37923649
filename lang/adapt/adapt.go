// Package adapt turns curried functions of plain values into reactive
// functions: curried functions of the same arity that accept cells and
// derived cells anywhere a plain value is expected, and return a derived cell
// that recomputes whenever a container it depends on changes.
package adapt

import (
	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/reactive"
	"github.com/mna/cellfn/lang/types"
)

// Adapt returns the reactive version of fn, with the Plain shape. See Func.
func Adapt(sys *reactive.System, fn types.Callable) *curry.Curried {
	return Func(sys, fn.Name(), fn, Shape{Kind: Plain})
}

// Func returns the reactive version of fn, named name. The returned callable
// is curried to the arity of fn (placeholders supported), and once fully
// applied it returns a *reactive.Derived created in sys. Nothing is resolved
// and fn is not called until the derived cell is read; its thunk then:
//
//   - resolves each argument (see Resolve),
//   - applies the shape's specializer (see Specialize),
//   - calls fn with the result and resolves the value it returns.
//
// Errors returned by fn, or by a nested resolution, are returned unchanged
// when reading the derived cell. Input containers are only ever read.
func Func(sys *reactive.System, name string, fn types.Callable, shape Shape) *curry.Curried {
	target := Specialize(fn, shape)
	return curry.N(name, fn.Arity(), func(args types.Tuple) (types.Value, error) {
		return sys.Derive(func() (types.Value, error) {
			resolved := make(types.Tuple, len(args))
			for i, arg := range args {
				v, err := Resolve(arg)
				if err != nil {
					return nil, err
				}
				resolved[i] = v
			}

			v, err := types.Call(target, resolved...)
			if err != nil {
				return nil, err
			}
			return Resolve(v)
		}), nil
	})
}
