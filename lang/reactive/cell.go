package reactive

import (
	"fmt"

	"github.com/mna/cellfn/lang/types"
)

// A Container is a reactive value that can be read: a *Cell or a *Derived.
type Container interface {
	types.Value
	// Read returns the current value of the container, recording the container
	// as a dependency of the derived cell being computed, if any.
	Read() (types.Value, error)
	source
}

var (
	_ Container = (*Cell)(nil)
	_ Container = (*Derived)(nil)
)

// A Cell is a mutable container holding exactly one value. Its identity
// persists across value changes.
type Cell struct {
	sys     *System
	v       types.Value
	version uint64
}

// Get returns the value of the cell and records the cell as a dependency of
// the derived cell being computed, if any.
func (c *Cell) Get() types.Value {
	c.sys.track(c, c.version)
	return c.v
}

// Read is like Get, it never fails.
func (c *Cell) Read() (types.Value, error) {
	return c.Get(), nil
}

// Set sets the value of the cell. Derived cells that depend on it are not
// recomputed until they are read.
func (c *Cell) Set(v types.Value) {
	c.v = v
	c.version++
	c.sys.epoch++
}

// Peek returns the value of the cell without recording a dependency.
func (c *Cell) Peek() types.Value { return c.v }

func (c *Cell) String() string         { return fmt.Sprintf("cell(%s)", c.v) }
func (c *Cell) Type() string           { return "cell" }
func (c *Cell) Truth() types.Bool      { return types.True }
func (c *Cell) currentVersion() uint64 { return c.version }

// IsContainer reports whether v is a reactive container.
func IsContainer(v types.Value) bool {
	_, ok := v.(Container)
	return ok
}

// Read returns the value of v if it is a container, or v itself otherwise.
// It only unwraps one level: the value of a container may itself be a
// container.
func Read(v types.Value) (types.Value, error) {
	if c, ok := v.(Container); ok {
		return c.Read()
	}
	return v, nil
}
