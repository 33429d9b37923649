package adapt

import (
	"fmt"

	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/types"
)

// Kind is the kind of argument shape of a function, which tells which of its
// arguments are predicates whose results must be resolved.
type Kind int

// List of argument shape kinds.
const (
	// Plain needs no specializer, arguments are resolved generically.
	Plain Kind = iota
	// Predicate designates a single predicate argument at Shape.Position.
	Predicate
	// PredicateList designates a list of predicates at Shape.Position.
	PredicateList
	// AllPredicates designates every argument as a predicate.
	AllPredicates
)

var kindNames = [...]string{
	Plain:         "plain",
	Predicate:     "predicate",
	PredicateList: "predicateList",
	AllPredicates: "allPredicates",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Shape is the argument shape descriptor of a function.
type Shape struct {
	Kind Kind
	// Position is the zero-based index of the predicate or list of predicates
	// argument, for the Predicate and PredicateList kinds.
	Position int
}

func (s Shape) String() string {
	switch s.Kind {
	case Predicate, PredicateList:
		return fmt.Sprintf("%s(%d)", s.Kind, s.Position)
	}
	return s.Kind.String()
}

// Validate returns an error if the shape is invalid for a function of the
// specified arity.
func (s Shape) Validate(arity int) error {
	switch s.Kind {
	case Plain, AllPredicates:
		return nil
	case Predicate, PredicateList:
		if s.Position < 0 || s.Position >= arity {
			return fmt.Errorf("%s: position out of range for arity %d", s, arity)
		}
		return nil
	}
	return fmt.Errorf("invalid shape %s", s)
}

// Specialize returns fn wrapped with the specializer corresponding to shape,
// or fn itself for the Plain shape.
func Specialize(fn types.Callable, shape Shape) types.Callable {
	switch shape.Kind {
	case Predicate:
		return WithPredicate(fn, shape.Position)
	case PredicateList:
		return WithPredicateList(fn, shape.Position)
	case AllPredicates:
		return WithAllPredicates(fn)
	}
	return fn
}

// WithPredicate returns a callable with the same name and arity as fn that,
// before delegating to fn, wraps its argument at pos so that if it is a
// function (or a container), the value it returns is resolved. This lets a
// predicate that returns a reactive boolean be used where fn expects a plain
// one.
func WithPredicate(fn types.Callable, pos int) *curry.Curried {
	return specialize(fn, func(args types.Tuple) error {
		if pos >= len(args) {
			return nil
		}
		v, err := Resolve(args[pos])
		args[pos] = v
		return err
	})
}

// WithPredicateList is like WithPredicate, but the argument at pos is a list
// of predicates, each of which is wrapped.
func WithPredicateList(fn types.Callable, pos int) *curry.Curried {
	return specialize(fn, func(args types.Tuple) error {
		if pos >= len(args) {
			return nil
		}
		v, err := Resolve(args[pos])
		if err != nil {
			return err
		}
		if l, ok := v.(*types.List); ok {
			elems := l.Elems()
			for i, e := range elems {
				if elems[i], err = Resolve(e); err != nil {
					return err
				}
			}
			v = types.NewList(elems)
		}
		args[pos] = v
		return nil
	})
}

// WithAllPredicates is like WithPredicate, but every argument is wrapped.
func WithAllPredicates(fn types.Callable) *curry.Curried {
	return specialize(fn, func(args types.Tuple) error {
		for i, arg := range args {
			v, err := Resolve(arg)
			if err != nil {
				return err
			}
			args[i] = v
		}
		return nil
	})
}

func specialize(fn types.Callable, rewrap func(args types.Tuple) error) *curry.Curried {
	return curry.N(fn.Name(), fn.Arity(), func(args types.Tuple) (types.Value, error) {
		args = append(types.Tuple(nil), args...)
		if err := rewrap(args); err != nil {
			return nil, err
		}
		return types.Call(fn, args...)
	})
}
