package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mna/cellfn/lang/adapt"
	"github.com/mna/cellfn/lang/bindings"
	"github.com/mna/cellfn/lang/curry"
	"github.com/mna/cellfn/lang/reactive"
	"github.com/mna/cellfn/lang/types"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// A Runner runs scenarios. Each run uses a new reactive system.
type Runner struct {
	Stdout io.Writer
	Logger *zap.Logger // may be nil
}

type env struct {
	sc    *Scenario
	set   *bindings.Set
	vars  map[string]types.Value
	cells map[string]*reactive.Cell

	// aliases being expanded, a self-referencing anchor is an error
	expanding map[*yaml.Node]bool
}

// Run runs the scenario. Errors of the print steps are printed as results,
// the returned error is for invalid scenarios (e.g. undefined names) and
// write failures. The context is checked between steps.
func (r *Runner) Run(ctx context.Context, sc *Scenario) error {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("scenario", sc.Name))

	sys := reactive.NewSystem()
	sys.Logger = logger
	e := &env{
		sc:    sc,
		set:   bindings.New(sys),
		vars:  make(map[string]types.Value, len(sc.Cells)+len(sc.Exprs)),
		cells: make(map[string]*reactive.Cell, len(sc.Cells)),

		expanding: make(map[*yaml.Node]bool),
	}

	for _, d := range sc.Cells {
		v, err := e.plain(d.Node)
		if err != nil {
			return err
		}
		c := sys.NewCell(v)
		e.vars[d.Name] = c
		e.cells[d.Name] = c
	}
	for _, d := range sc.Exprs {
		if _, ok := e.vars[d.Name]; ok {
			return sc.errorf(d.Node, "%s: already defined", d.Name)
		}
		v, err := e.eval(d.Node)
		if err != nil {
			return err
		}
		e.vars[d.Name] = v
	}

	for _, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("scenario step", zap.Int("line", step.Line), zap.Strings("print", step.Print), zap.Int("set", len(step.Set)))

		if err := e.apply(step); err != nil {
			return err
		}
		for _, name := range step.Print {
			v, ok := e.vars[name]
			if !ok {
				return fmt.Errorf("%s:%d: print: undefined name %s", sc.Name, step.Line, name)
			}
			if _, err := fmt.Fprintf(r.Stdout, "%s: %s\n", name, display(v)); err != nil {
				return err
			}
		}
	}

	stats := sys.Stats()
	logger.Debug("scenario done", zap.Uint64("epoch", stats.Epoch), zap.Uint64("recomputes", stats.Recomputes))
	return nil
}

func (e *env) apply(step Step) error {
	for _, d := range step.Set {
		c, ok := e.cells[d.Name]
		if !ok {
			return e.sc.errorf(d.Node, "set: %s is not a cell", d.Name)
		}
		v, err := e.eval(d.Node)
		if err != nil {
			return err
		}
		c.Set(v)
	}
	return nil
}

// eval evaluates an expression node.
func (e *env) eval(n *yaml.Node) (types.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return e.alias(n, e.eval)

	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" {
			if n.Value == "__" {
				return curry.Placeholder, nil
			}
			if name, ok := strings.CutPrefix(n.Value, "$"); ok {
				v, ok := e.vars[name]
				if !ok {
					return nil, e.sc.errorf(n, "undefined name %s", name)
				}
				return v, nil
			}
		}
		return e.scalar(n)

	case yaml.SequenceNode:
		elems := make([]types.Value, len(n.Content))
		for i, en := range n.Content {
			v, err := e.eval(en)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return types.NewList(elems), nil

	case yaml.MappingNode:
		if fnNode := mappingValue(n, "call"); fnNode != nil {
			return e.call(n, fnNode)
		}
		if q := mappingValue(n, "quote"); q != nil {
			if len(n.Content) != 2 {
				return nil, e.sc.errorf(n, "quote: unexpected keys")
			}
			return e.plain(q)
		}
		return e.mapping(n, e.eval)
	}
	return nil, e.sc.errorf(n, "unsupported expression")
}

func (e *env) call(n, fnNode *yaml.Node) (types.Value, error) {
	var fn types.Callable
	name := fnNode.Value
	if ref, ok := strings.CutPrefix(name, "$"); ok {
		v, ok := e.vars[ref]
		if !ok {
			return nil, e.sc.errorf(fnNode, "undefined name %s", ref)
		}
		if fn, ok = v.(types.Callable); !ok {
			return nil, e.sc.errorf(fnNode, "%s is not a function (%s)", ref, v.Type())
		}
	} else {
		b, ok := e.set.Lookup(bindings.ExportName(name))
		if !ok {
			return nil, e.sc.errorf(fnNode, "unknown function %s", name)
		}
		fn = b.Fn
	}

	var args []types.Value
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch key, val := n.Content[i].Value, n.Content[i+1]; key {
		case "call":
		case "args":
			if val.Kind != yaml.SequenceNode {
				return nil, e.sc.errorf(val, "args must be a sequence")
			}
			lv, err := e.eval(val)
			if err != nil {
				return nil, err
			}
			args = lv.(*types.List).Elems()
		default:
			return nil, e.sc.errorf(n.Content[i], "call: unexpected key %q", key)
		}
	}

	v, err := types.Call(fn, args...)
	if err != nil {
		return nil, e.sc.errorf(n, "%s", err)
	}
	return v, nil
}

// plain converts a node to a plain value, strings are never references.
func (e *env) plain(n *yaml.Node) (types.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return e.alias(n, e.plain)
	case yaml.ScalarNode:
		return e.scalar(n)
	case yaml.SequenceNode:
		elems := make([]types.Value, len(n.Content))
		for i, en := range n.Content {
			v, err := e.plain(en)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return types.NewList(elems), nil
	case yaml.MappingNode:
		return e.mapping(n, e.plain)
	}
	return nil, e.sc.errorf(n, "unsupported value")
}

func (e *env) alias(n *yaml.Node, conv func(*yaml.Node) (types.Value, error)) (types.Value, error) {
	if e.expanding[n] {
		return nil, e.sc.errorf(n, "alias cycle")
	}
	e.expanding[n] = true
	defer delete(e.expanding, n)
	return conv(n.Alias)
}

func (e *env) mapping(n *yaml.Node, conv func(*yaml.Node) (types.Value, error)) (types.Value, error) {
	m := types.NewMap(len(n.Content) / 2)
	err := eachPair(n, func(key string, val *yaml.Node) error {
		v, err := conv(val)
		if err != nil {
			return err
		}
		m.SetKey(types.String(key), v)
		return nil
	})
	return m, err
}

func (e *env) scalar(n *yaml.Node) (types.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return types.Nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, e.sc.errorf(n, "%s", err)
		}
		return types.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, e.sc.errorf(n, "%s", err)
		}
		return types.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, e.sc.errorf(n, "%s", err)
		}
		return types.Float(f), nil
	case "!!str":
		return types.String(n.Value), nil
	}
	return nil, e.sc.errorf(n, "unsupported scalar type %s", n.ShortTag())
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// display returns the printed form of v: containers are read (recursively
// inside lists and maps) and errors are printed as such.
func display(v types.Value) string {
	v, err := settle(v, types.MaxCompareDepth)
	if err != nil {
		return "error: " + err.Error()
	}
	if cb, ok := v.(types.Callable); ok {
		cb = adapt.Unwrap(cb)
		return fmt.Sprintf("function %s/%d", cb.Name(), cb.Arity())
	}
	return v.String()
}

func settle(v types.Value, depth int) (types.Value, error) {
	v, err := adapt.Resolve(v)
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		return v, nil
	}

	switch v := v.(type) {
	case *types.List:
		elems := v.Elems()
		for i, ev := range elems {
			if elems[i], err = settle(ev, depth-1); err != nil {
				return nil, err
			}
		}
		return types.NewList(elems), nil
	case *types.Map:
		m := types.NewMap(v.Len())
		for _, k := range v.Keys() {
			ev, _ := v.Get(k)
			if ev, err = settle(ev, depth-1); err != nil {
				return nil, err
			}
			m.SetKey(k, ev)
		}
		return m, nil
	}
	return v, nil
}
