package types

import "fmt"

// A Builtin is a Callable implemented in Go. Its arity is fixed: calling it
// with fewer arguments than its arity is an error, use the curry package to
// get partial application.
type Builtin struct {
	name  string
	arity int
	fn    func(args Tuple) (Value, error)
}

var (
	_ Value    = (*Builtin)(nil)
	_ Callable = (*Builtin)(nil)
)

// NewBuiltin returns a Builtin with the specified name and arity, implemented
// by fn.
func NewBuiltin(name string, arity int, fn func(args Tuple) (Value, error)) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

func (b *Builtin) String() string { return fmt.Sprintf("builtin(%s/%d)", b.name, b.arity) }
func (b *Builtin) Type() string   { return "builtin" }
func (b *Builtin) Truth() Bool    { return True }
func (b *Builtin) Name() string   { return b.name }
func (b *Builtin) Arity() int     { return b.arity }

func (b *Builtin) CallInternal(args Tuple) (Value, error) {
	if len(args) < b.arity {
		return nil, fmt.Errorf("%s: want %d arguments, got %d", b.name, b.arity, len(args))
	}
	return b.fn(args)
}

// Call calls the Callable value v with the specified arguments.
func Call(v Value, args ...Value) (Value, error) {
	cb, ok := v.(Callable)
	if !ok {
		return nil, fmt.Errorf("invalid call of non-callable (%s)", typeOf(v))
	}

	result, err := cb.CallInternal(args)

	// Sanity check: nil is not a valid value.
	if result == nil && err == nil {
		err = fmt.Errorf("internal error: nil (not Nil) returned from %s", cb.Name())
	}
	return result, err
}

// IsCallable reports whether v can be called.
func IsCallable(v Value) bool {
	_, ok := v.(Callable)
	return ok
}

func typeOf(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Type()
}
