// Package scenario implements scenario files: YAML documents that declare
// cells, reactive expressions over those cells built with the bindings, and
// a sequence of steps that print expressions and update cells.
//
// A scenario file looks like this:
//
//	cells:
//	  a: 1
//	  b: 2
//	exprs:
//	  sum: {call: add, args: [$a, $b]}
//	steps:
//	  - print: [sum]
//	  - set: {a: 10}
//	  - print: [sum]
//
// In expressions, a string starting with "$" references a cell or a
// previous expression, the string "__" is the placeholder, a mapping with a
// "call" key applies a binding (or a previous expression that evaluated to a
// function) to its "args", and a mapping with a "quote" key yields its value
// as-is. The cells' initial values and the values of "quote" are plain
// values: references and calls are not evaluated there.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// A Scenario is a loaded scenario file.
type Scenario struct {
	Name  string
	Cells []Decl
	Exprs []Decl
	Steps []Step
}

// A Decl is a named YAML node, in document order.
type Decl struct {
	Name string
	Node *yaml.Node
}

// A Step is a print or a set step. Exactly one of Print or Set is non-empty.
type Step struct {
	Line  int
	Print []string
	Set   []Decl
}

// LoadFile loads the scenario file at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(path, f)
}

// Load loads a scenario from r, name is used in error messages.
func Load(name string, r io.Reader) (*Scenario, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Scenario{Name: name}, nil
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	sc := &Scenario{Name: name}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, sc.errorf(root, "document must be a mapping")
	}

	err := eachPair(root, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "cells":
			sc.Cells, err = sc.decls(val)
		case "exprs":
			sc.Exprs, err = sc.decls(val)
		case "steps":
			sc.Steps, err = sc.steps(val)
		default:
			err = sc.errorf(val, "unknown section %q", key)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) decls(n *yaml.Node) ([]Decl, error) {
	if n.Kind != yaml.MappingNode {
		return nil, sc.errorf(n, "want a mapping of names to values")
	}
	var decls []Decl
	seen := make(map[string]bool)
	err := eachPair(n, func(key string, val *yaml.Node) error {
		if seen[key] {
			return sc.errorf(val, "duplicate name %q", key)
		}
		seen[key] = true
		decls = append(decls, Decl{Name: key, Node: val})
		return nil
	})
	return decls, err
}

func (sc *Scenario) steps(n *yaml.Node) ([]Step, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, sc.errorf(n, "steps must be a sequence")
	}

	steps := make([]Step, 0, len(n.Content))
	for _, sn := range n.Content {
		if sn.Kind != yaml.MappingNode || len(sn.Content) != 2 {
			return nil, sc.errorf(sn, "step must be a mapping with a single print or set key")
		}

		step := Step{Line: sn.Line}
		key, val := sn.Content[0].Value, sn.Content[1]
		switch key {
		case "print":
			if err := val.Decode(&step.Print); err != nil {
				return nil, sc.errorf(val, "print: want a list of names")
			}
			if len(step.Print) == 0 {
				return nil, sc.errorf(val, "print: no name specified")
			}
		case "set":
			decls, err := sc.decls(val)
			if err != nil {
				return nil, err
			}
			if len(decls) == 0 {
				return nil, sc.errorf(val, "set: no cell specified")
			}
			step.Set = decls
		default:
			return nil, sc.errorf(sn, "unknown step %q", key)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (sc *Scenario) errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%s:%d:%d: %s", sc.Name, n.Line, n.Column, fmt.Sprintf(format, args...))
}

// eachPair calls fn for each key-value pair of the mapping node n, in
// document order, stopping at the first error.
func eachPair(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
