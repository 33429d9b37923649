// Package reactive implements the reactive containers that the adapted
// functions consume and produce: mutable cells and lazily computed, memoized
// derived cells that track the containers they read.
//
// Staleness is tracked with versions rather than subscriptions: every write to
// a cell increments its version and the system's epoch, and a derived cell
// re-validates its recorded dependency versions only when the epoch moved
// since its last validation. Only derived cells hold references to their
// dependencies, never the reverse, so a derived cell that is no longer
// referenced is simply garbage collected.
package reactive

import (
	"errors"

	"github.com/mna/cellfn/lang/types"
	"go.uber.org/zap"
)

// ErrCycle is returned when a derived cell is read while it is being
// computed, i.e. when it depends on itself.
var ErrCycle = errors.New("cycle detected in derived cell")

// A System is the runtime shared by a set of cells and derived cells: it
// tracks the dependencies read by the derived cell being computed. A System
// and its containers must only be used by one goroutine at a time.
type System struct {
	// Logger receives debug traces of derived cells computations. If nil, no
	// logging is done.
	Logger *zap.Logger

	epoch      uint64
	recomputes uint64
	frame      *frame
}

// Default is the System used by NewCell and Derive.
var Default = NewSystem()

// NewSystem returns a new, empty System.
func NewSystem() *System {
	return &System{Logger: zap.NewNop()}
}

// Stats reports counters of a System's activity.
type Stats struct {
	// Epoch is the number of writes to cells of the System.
	Epoch uint64
	// Recomputes is the number of times a derived cell thunk was executed.
	Recomputes uint64
}

// Stats returns the current counters of the System.
func (s *System) Stats() Stats {
	return Stats{Epoch: s.epoch, Recomputes: s.recomputes}
}

// NewCell returns a new cell holding v.
func (s *System) NewCell(v types.Value) *Cell {
	return &Cell{sys: s, v: v}
}

// Derive returns a new derived cell computed by thunk. The thunk is not
// called until the derived cell is read.
func (s *System) Derive(thunk func() (types.Value, error)) *Derived {
	return &Derived{sys: s, thunk: thunk}
}

func (s *System) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// track records src at the specified version as a dependency of the derived
// cell being computed.
func (s *System) track(src source, version uint64) {
	if fr := s.frame; fr != nil {
		fr.add(src, version)
	}
}

// NewCell returns a new cell holding v in the Default system.
func NewCell(v types.Value) *Cell { return Default.NewCell(v) }

// Derive returns a new derived cell computed by thunk in the Default system.
func Derive(thunk func() (types.Value, error)) *Derived { return Default.Derive(thunk) }

// source is a container that can be a dependency of a derived cell.
type source interface {
	// currentVersion brings the source up to date if needed and returns its
	// version.
	currentVersion() uint64
}

type dependency struct {
	src     source
	version uint64
}

// frame collects the dependencies read during a derived cell computation.
type frame struct {
	deps []dependency
	seen map[source]struct{}
}

func (fr *frame) add(src source, version uint64) {
	if fr.seen == nil {
		fr.seen = make(map[source]struct{})
	}
	if _, ok := fr.seen[src]; ok {
		return
	}
	fr.seen[src] = struct{}{}
	fr.deps = append(fr.deps, dependency{src: src, version: version})
}
