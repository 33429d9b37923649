package types

import (
	"strings"

	"github.com/dolthub/swiss"
)

// A Map represents a map or dictionary with string keys. Keys are kept in
// insertion order. If you know the exact final number of entries, it is more
// efficient to call NewMap with that size.
//
// Maps are built once and then treated as immutable by the function catalog:
// every operation that changes a map returns a new one.
type Map struct {
	m    *swiss.Map[String, Value]
	keys []String
}

var (
	_ Value   = (*Map)(nil)
	_ Mapping = (*Map)(nil)
)

// NewMap returns a map with initial capacity for at least size items.
func NewMap(size int) *Map {
	m := swiss.NewMap[String, Value](uint32(size))
	return &Map{m: m, keys: make([]String, 0, size)}
}

func (m *Map) Type() string { return "map" }
func (m *Map) Truth() Bool  { return True }
func (m *Map) Len() int     { return len(m.keys) }

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := m.m.Get(k)
		sb.WriteString(string(k))
		sb.WriteString(": ")
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (m *Map) Get(k String) (Value, bool) {
	return m.m.Get(k)
}

func (m *Map) Keys() []String { return m.keys }

// SetKey sets the value of key k, appending k to the keys if it is new. It
// must only be called while the map is being built.
func (m *Map) SetKey(k String, v Value) {
	if !m.m.Has(k) {
		m.keys = append(m.keys, k)
	}
	m.m.Put(k, v)
}

// Clone returns a shallow copy of the map, with room for extra new keys.
func (m *Map) Clone(extra int) *Map {
	c := NewMap(m.Len() + extra)
	for _, k := range m.keys {
		v, _ := m.m.Get(k)
		c.SetKey(k, v)
	}
	return c
}

// Without returns a shallow copy of the map without the specified keys.
func (m *Map) Without(keys ...String) *Map {
	c := NewMap(m.Len())
outer:
	for _, k := range m.keys {
		for _, skip := range keys {
			if k == skip {
				continue outer
			}
		}
		v, _ := m.m.Get(k)
		c.SetKey(k, v)
	}
	return c
}
