// Package curry implements arity-fixed currying of callables, with support
// for placeholder arguments.
package curry

import (
	"fmt"

	"github.com/mna/cellfn/lang/types"
)

type placeholder struct{}

// Placeholder is the value used to leave a hole in a partial application, so
// that later arguments fill it. For example, with a curried subtract,
// subtract(__, 3)(10) is 10 - 3.
var Placeholder types.Value = placeholder{}

func (placeholder) String() string    { return "__" }
func (placeholder) Type() string      { return "placeholder" }
func (placeholder) Truth() types.Bool { return types.True }

// IsPlaceholder reports whether v is the Placeholder.
func IsPlaceholder(v types.Value) bool {
	_, ok := v.(placeholder)
	return ok
}

// Func is the implementation of a curried function. It receives all
// arguments once enough non-placeholder arguments have been collected, which
// may be more than the arity if the last call provided extra arguments.
type Func func(args types.Tuple) (types.Value, error)

// A Curried is a Callable that collects its arguments over any number of
// calls, and calls its implementation once it has received its arity.
type Curried struct {
	name     string
	length   int
	left     int
	received types.Tuple
	fn       Func
}

var (
	_ types.Value    = (*Curried)(nil)
	_ types.Callable = (*Curried)(nil)
)

// N returns a curried callable of the specified arity, implemented by fn.
func N(name string, arity int, fn Func) *Curried {
	return &Curried{name: name, length: arity, left: arity, fn: fn}
}

func (c *Curried) String() string    { return fmt.Sprintf("function(%s/%d)", c.name, c.left) }
func (c *Curried) Type() string      { return "function" }
func (c *Curried) Truth() types.Bool { return types.True }
func (c *Curried) Name() string      { return c.name }

// Arity returns the number of arguments still needed before the
// implementation is called.
func (c *Curried) Arity() int { return c.left }

// Received returns the arguments collected so far, including placeholders.
// The caller must not modify the result.
func (c *Curried) Received() types.Tuple { return c.received }

// CallInternal merges args into the received arguments: each placeholder
// already received is replaced by the next argument, and remaining arguments
// are appended. Only the first arity arguments count towards completion. If
// enough arguments are then available, the implementation is
// called, otherwise a new Curried that waits for the remaining arguments is
// returned.
func (c *Curried) CallInternal(args types.Tuple) (types.Value, error) {
	if c.length == 0 {
		return c.fn(args)
	}

	combined := make(types.Tuple, 0, len(c.received)+len(args))
	left := c.length
	var argsIdx, combinedIdx int
	for combinedIdx < len(c.received) || argsIdx < len(args) {
		var v types.Value
		if combinedIdx < len(c.received) && (!IsPlaceholder(c.received[combinedIdx]) || argsIdx >= len(args)) {
			v = c.received[combinedIdx]
		} else {
			v = args[argsIdx]
			argsIdx++
		}
		combined = append(combined, v)
		if combinedIdx < c.length && !IsPlaceholder(v) {
			left--
		}
		combinedIdx++
	}

	if left <= 0 {
		return c.fn(combined)
	}
	return &Curried{
		name:     c.name,
		length:   c.length,
		left:     left,
		received: combined,
		fn:       c.fn,
	}, nil
}
