package types

// Value is the interface implemented by any value manipulated by the function
// catalog and the reactive runtime.
type Value interface {
	// String returns the string representation of the value.
	String() string

	// Type returns a short string describing the value's type.
	Type() string

	// Truth returns the truth value of an object.
	Truth() Bool
}

// An Ordered type is a type whose values are ordered: if x and y are of the
// same Ordered type, then x must be less than y, greater than y, or equal to
// y.
type Ordered interface {
	Value
	// Cmp compares two values x and y of the same ordered type. It returns
	// negative if x < y, positive if x > y, and zero if the values are equal.
	//
	// Client code should not call this method. Instead, use the standalone
	// Compare or Equal functions, which are defined for all pairs of operands.
	Cmp(y Value) (int, error)
}

// An Indexable is a sequence of known length that supports efficient random
// access.
type Indexable interface {
	Value
	// Index returns the value at the specified index, which must satisfy 0 <= i
	// < Len().
	Index(i int) Value
	Len() int
}

// A Mapping is a mapping from string keys to values, such as a map.
type Mapping interface {
	Value
	// Get returns the value corresponding to the specified key, or !found if
	// the mapping does not contain the key.
	Get(k String) (v Value, found bool)
	// Keys returns the keys of the mapping in insertion order. The caller must
	// not modify the result.
	Keys() []String
	Len() int
}

// A Callable value f may be the operand of a function call, f(x). Clients
// should use the Call function, never the CallInternal method.
type Callable interface {
	Value
	Name() string
	// Arity is the number of arguments the callable needs before it produces
	// its final result.
	Arity() int
	CallInternal(args Tuple) (Value, error)
}

// Tuple is the list of arguments of a call.
type Tuple []Value
