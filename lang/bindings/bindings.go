// Package bindings exposes the reactive version of every function of the
// catalog under its export name, e.g. useAdd for add.
package bindings

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/mna/cellfn/lang/adapt"
	"github.com/mna/cellfn/lang/catalog"
	"github.com/mna/cellfn/lang/reactive"
	"github.com/mna/cellfn/lang/types"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Descriptor associates a catalog function with the argument shape of its
// binding.
type Descriptor struct {
	Name  string
	Shape adapt.Shape
}

var (
	predicate     = adapt.Shape{Kind: adapt.Predicate}
	predicateList = adapt.Shape{Kind: adapt.PredicateList}
	allPredicates = adapt.Shape{Kind: adapt.AllPredicates}
)

// shapes lists the functions that take predicates, all others are Plain.
var shapes = map[string]adapt.Shape{
	"complement": predicate,
	"ifElse":     predicate,
	"when":       predicate,
	"unless":     predicate,
	"find":       predicate,
	"findIndex":  predicate,
	"filter":     predicate,
	"reject":     predicate,
	"all":        predicate,
	"any":        predicate,
	"none":       predicate,

	"allPass": predicateList,
	"anyPass": predicateList,

	"both":   allPredicates,
	"either": allPredicates,
}

var descriptors = buildDescriptors()

func buildDescriptors() []Descriptor {
	entries := catalog.Entries()
	descs := make([]Descriptor, 0, len(entries))
	for _, e := range entries {
		shape := shapes[e.Name]
		if err := shape.Validate(e.Arity); err != nil {
			panic(fmt.Sprintf("bindings: %s: %s", e.Name, err))
		}
		descs = append(descs, Descriptor{Name: e.Name, Shape: shape})
	}
	for name := range shapes {
		if _, ok := catalog.Lookup(name); !ok {
			panic(fmt.Sprintf("bindings: shape for unknown function %s", name))
		}
	}
	return descs
}

// Descriptors returns the descriptors of all bindings, sorted by catalog
// function name.
func Descriptors() []Descriptor {
	return append([]Descriptor(nil), descriptors...)
}

// ExportName returns the name under which the binding of the catalog function
// name is exported.
func ExportName(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	return "use" + string(unicode.ToUpper(r)) + name[n:]
}

// A Binding is a reactive catalog function.
type Binding struct {
	Name  string // export name, e.g. useAdd
	Entry *catalog.Entry
	Shape adapt.Shape
	Fn    types.Callable
}

// A Set is the set of bindings of a reactive system: the derived cells
// returned by its functions belong to that system.
type Set struct {
	sys      *reactive.System
	bindings map[string]*Binding
}

// New returns the set of bindings for sys. If sys is nil, reactive.Default
// is used.
func New(sys *reactive.System) *Set {
	if sys == nil {
		sys = reactive.Default
	}
	set := &Set{sys: sys, bindings: make(map[string]*Binding, len(descriptors))}
	for _, d := range descriptors {
		e, _ := catalog.Lookup(d.Name)
		name := ExportName(d.Name)
		set.bindings[name] = &Binding{
			Name:  name,
			Entry: e,
			Shape: d.Shape,
			Fn:    adapt.Func(sys, name, e.Fn, d.Shape),
		}
	}
	return set
}

// System returns the reactive system of the set.
func (s *Set) System() *reactive.System { return s.sys }

// Lookup returns the binding with the specified export name.
func (s *Set) Lookup(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Names returns the export names of all bindings, sorted.
func (s *Set) Names() []string {
	names := maps.Keys(s.bindings)
	slices.Sort(names)
	return names
}

// Get returns the function of the binding with the specified export name. It
// panics if there is no such binding.
func (s *Set) Get(name string) types.Callable {
	b, ok := s.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("bindings: unknown binding %s", name))
	}
	return b.Fn
}
