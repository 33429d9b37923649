package catalog

import (
	"fmt"

	"github.com/mna/cellfn/lang/types"
)

func init() {
	register("add", 2, func(args types.Tuple) (types.Value, error) {
		return arith("add", args[0], args[1])
	})
	register("subtract", 2, func(args types.Tuple) (types.Value, error) {
		return arith("subtract", args[0], args[1])
	})
	register("multiply", 2, func(args types.Tuple) (types.Value, error) {
		return arith("multiply", args[0], args[1])
	})
	register("divide", 2, func(args types.Tuple) (types.Value, error) {
		return arith("divide", args[0], args[1])
	})
	register("modulo", 2, func(args types.Tuple) (types.Value, error) {
		return arith("modulo", args[0], args[1])
	})
	register("inc", 1, func(args types.Tuple) (types.Value, error) {
		return arith("add", args[0], types.Int(1))
	})
	register("dec", 1, func(args types.Tuple) (types.Value, error) {
		return arith("subtract", args[0], types.Int(1))
	})
	register("negate", 1, func(args types.Tuple) (types.Value, error) {
		return arith("multiply", args[0], types.Int(-1))
	})
	register("sum", 1, func(args types.Tuple) (types.Value, error) {
		return fold("sum", "add", types.Int(0), args[0])
	})
	register("product", 1, func(args types.Tuple) (types.Value, error) {
		return fold("product", "multiply", types.Int(1), args[0])
	})
	register("mean", 1, func(args types.Tuple) (types.Value, error) {
		l, err := asList("mean", args[0])
		if err != nil {
			return nil, err
		}
		if l.Len() == 0 {
			return nil, fmt.Errorf("mean: empty list")
		}
		total, err := fold("mean", "add", types.Int(0), l)
		if err != nil {
			return nil, err
		}
		f, _ := types.AsFloat(total)
		return f / types.Float(l.Len()), nil
	})
	register("max", 2, func(args types.Tuple) (types.Value, error) {
		c, err := types.Compare(args[0], args[1])
		if err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
		if c >= 0 {
			return args[0], nil
		}
		return args[1], nil
	})
	register("min", 2, func(args types.Tuple) (types.Value, error) {
		c, err := types.Compare(args[0], args[1])
		if err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		if c <= 0 {
			return args[0], nil
		}
		return args[1], nil
	})
	register("clamp", 3, func(args types.Tuple) (types.Value, error) {
		lo, hi, x := args[0], args[1], args[2]
		c, err := types.Compare(lo, hi)
		if err != nil {
			return nil, fmt.Errorf("clamp: %w", err)
		}
		if c > 0 {
			return nil, fmt.Errorf("clamp: minimum %s greater than maximum %s", lo, hi)
		}
		if c, err = types.Compare(x, lo); err != nil {
			return nil, fmt.Errorf("clamp: %w", err)
		} else if c < 0 {
			return lo, nil
		}
		if c, err = types.Compare(x, hi); err != nil {
			return nil, fmt.Errorf("clamp: %w", err)
		} else if c > 0 {
			return hi, nil
		}
		return x, nil
	})
}

// arith applies the arithmetic operation named op to numbers l and r. If both
// operands are integers, the operation is performed over integers and the
// result is an integer, except for a division with a remainder. Otherwise the
// operands are converted to floats and the result is a float.
func arith(op string, l, r types.Value) (types.Value, error) {
	lf, lok := types.AsFloat(l)
	rf, rok := types.AsFloat(r)
	if !lok {
		return nil, typeError(op, "number", l)
	}
	if !rok {
		return nil, typeError(op, "number", r)
	}

	li, lint := l.(types.Int)
	ri, rint := r.(types.Int)
	ints := lint && rint

	switch op {
	case "add":
		if ints {
			return li + ri, nil
		}
		return lf + rf, nil

	case "subtract":
		if ints {
			return li - ri, nil
		}
		return lf - rf, nil

	case "multiply":
		if ints {
			return li * ri, nil
		}
		return lf * rf, nil

	case "divide":
		if rf == 0 {
			return nil, fmt.Errorf("divide: division by zero")
		}
		if ints && li%ri == 0 {
			return li / ri, nil
		}
		return lf / rf, nil

	case "modulo":
		if !ints {
			return nil, fmt.Errorf("modulo: want integers, got %s and %s", l.Type(), r.Type())
		}
		if ri == 0 {
			return nil, fmt.Errorf("modulo: division by zero")
		}
		return li % ri, nil
	}
	panic(fmt.Sprintf("unknown arithmetic operation %s", op))
}

// fold reduces the list v with the arithmetic operation op, starting with
// init.
func fold(fn, op string, init, v types.Value) (types.Value, error) {
	l, err := asList(fn, v)
	if err != nil {
		return nil, err
	}
	acc := init
	for i := 0; i < l.Len(); i++ {
		if acc, err = arith(op, acc, l.Index(i)); err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
	}
	return acc, nil
}
