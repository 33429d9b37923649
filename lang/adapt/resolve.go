package adapt

import (
	"errors"
	"fmt"

	"github.com/mna/cellfn/lang/reactive"
	"github.com/mna/cellfn/lang/types"
)

// ErrContainerCycle is returned by Resolve when a container holds itself,
// directly or through other containers.
var ErrContainerCycle = errors.New("resolve: container cycle")

// Resolve returns the plain value behind v. Containers are read, as many
// times as needed if a container holds another container. If the value is a
// callable, it is wrapped so that the results of its calls are resolved in
// turn, which is what makes a function-valued cell that returns a reactive
// result behave as a plain function to the catalog.
//
// Containers are read in the current tracking context: when called from a
// derived cell's thunk, every container read becomes a dependency of that
// derived cell, including those read later by calls to a wrapped callable
// made during the same computation.
func Resolve(v types.Value) (types.Value, error) {
	var seen map[types.Value]bool
	for reactive.IsContainer(v) {
		if seen[v] {
			return nil, ErrContainerCycle
		}
		if seen == nil {
			seen = make(map[types.Value]bool)
		}
		seen[v] = true

		var err error
		if v, err = reactive.Read(v); err != nil {
			return nil, err
		}
	}

	if types.IsCallable(v) {
		return resolving(v.(types.Callable)), nil
	}
	return v, nil
}

// resolvedFunc is a callable that resolves the results of the callable it
// wraps.
type resolvedFunc struct {
	fn types.Callable
}

var _ types.Callable = (*resolvedFunc)(nil)

func resolving(cb types.Callable) types.Callable {
	if _, ok := cb.(*resolvedFunc); ok {
		return cb
	}
	return &resolvedFunc{fn: cb}
}

func (r *resolvedFunc) String() string    { return fmt.Sprintf("resolved(%s)", r.fn) }
func (r *resolvedFunc) Type() string      { return r.fn.Type() }
func (r *resolvedFunc) Truth() types.Bool { return types.True }
func (r *resolvedFunc) Name() string      { return r.fn.Name() }
func (r *resolvedFunc) Arity() int        { return r.fn.Arity() }

func (r *resolvedFunc) CallInternal(args types.Tuple) (types.Value, error) {
	v, err := types.Call(r.fn, args...)
	if err != nil {
		return nil, err
	}
	return Resolve(v)
}

// Unwrap returns the callable wrapped by Resolve, or cb itself if it is not
// wrapped.
func Unwrap(cb types.Callable) types.Callable {
	if r, ok := cb.(*resolvedFunc); ok {
		return r.fn
	}
	return cb
}
