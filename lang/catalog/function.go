package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/types"
)

func init() {
	register("always", 1, func(args types.Tuple) (types.Value, error) {
		v := args[0]
		return curry.N("always", 0, func(types.Tuple) (types.Value, error) {
			return v, nil
		}), nil
	})
	register("identity", 1, func(args types.Tuple) (types.Value, error) {
		return args[0], nil
	})
	register("T", 0, func(types.Tuple) (types.Value, error) {
		return types.True, nil
	})
	register("F", 0, func(types.Tuple) (types.Value, error) {
		return types.False, nil
	})
	register("applyTo", 2, func(args types.Tuple) (types.Value, error) {
		fn, err := asCallable("applyTo", args[1])
		if err != nil {
			return nil, err
		}
		return types.Call(fn, args[0])
	})

	register("toUpper", 1, stringFunc("toUpper", strings.ToUpper))
	register("toLower", 1, stringFunc("toLower", strings.ToLower))
	register("trim", 1, stringFunc("trim", strings.TrimSpace))
	register("split", 2, func(args types.Tuple) (types.Value, error) {
		sep, err := asString("split", args[0])
		if err != nil {
			return nil, err
		}
		s, err := asString("split", args[1])
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		res := make([]types.Value, len(parts))
		for i, p := range parts {
			res[i] = types.String(p)
		}
		return types.NewList(res), nil
	})
	register("test", 2, func(args types.Tuple) (types.Value, error) {
		pat, err := asString("test", args[0])
		if err != nil {
			return nil, err
		}
		s, err := asString("test", args[1])
		if err != nil {
			return nil, err
		}
		rx, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("test: %w", err)
		}
		return types.Bool(rx.MatchString(s)), nil
	})
}

func stringFunc(name string, fn func(string) string) curry.Func {
	return func(args types.Tuple) (types.Value, error) {
		s, err := asString(name, args[0])
		if err != nil {
			return nil, err
		}
		return types.String(fn(s)), nil
	}
}
