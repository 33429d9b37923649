package types

import (
	"strings"
)

// A *List represents an immutable list of values. Functions that "modify" a
// list return a new one.
type List struct {
	elems []Value
}

// EmptyList is the value of an empty list.
var EmptyList = NewList(nil)

var (
	_ Value     = (*List)(nil)
	_ Indexable = (*List)(nil)
)

// NewList returns a list containing the specified elements. Callers should
// not subsequently modify elems.
func NewList(elems []Value) *List { return &List{elems: elems} }

func (l *List) Type() string      { return "list" }
func (l *List) Truth() Bool       { return True }
func (l *List) Len() int          { return len(l.elems) }
func (l *List) Index(i int) Value { return l.elems[i] }

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Elems returns a copy of the elements of the list.
func (l *List) Elems() []Value {
	return append([]Value(nil), l.elems...)
}

// Slice returns a list made of the elements in [start:end]. The caller must
// ensure that 0 <= start <= end <= Len().
func (l *List) Slice(start, end int) *List {
	return NewList(l.elems[start:end:end])
}
