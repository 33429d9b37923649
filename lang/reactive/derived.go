package reactive

import (
	"fmt"

	"github.com/mna/cellfn/lang/types"
	"go.uber.org/zap"
)

// A Derived is a read-only container whose value is produced by a thunk. The
// thunk runs when the derived cell is first read, and its result is cached
// until one of the containers read by the thunk changes. A thunk error is not
// cached: the next read runs the thunk again.
type Derived struct {
	sys   *System
	thunk func() (types.Value, error)

	value     types.Value
	deps      []dependency
	version   uint64
	checked   uint64 // system epoch at the last validation
	valid     bool
	computing bool
}

// Get returns the value of the derived cell, computing it if needed, and
// records it as a dependency of the derived cell being computed, if any.
func (d *Derived) Get() (types.Value, error) {
	err := d.refresh()
	if err == ErrCycle {
		return nil, err
	}
	d.sys.track(d, d.version)
	if err != nil {
		return nil, err
	}
	return d.value, nil
}

// Read is the same as Get.
func (d *Derived) Read() (types.Value, error) {
	return d.Get()
}

func (d *Derived) String() string    { return fmt.Sprintf("derived(%p)", d) }
func (d *Derived) Type() string      { return "derived" }
func (d *Derived) Truth() types.Bool { return types.True }

func (d *Derived) currentVersion() uint64 {
	// an error leaves the derived cell invalid with a new version, which is all
	// the dependent needs to know to recompute (and get the error) in turn.
	_ = d.refresh()
	return d.version
}

func (d *Derived) refresh() error {
	if d.computing {
		return ErrCycle
	}
	if d.valid {
		if d.checked == d.sys.epoch {
			return nil
		}

		var stale bool
		for _, dep := range d.deps {
			if dep.src.currentVersion() != dep.version {
				stale = true
				break
			}
		}
		if !stale {
			d.checked = d.sys.epoch
			return nil
		}
	}
	return d.recompute()
}

func (d *Derived) recompute() (err error) {
	sys := d.sys
	epoch := sys.epoch
	fr := &frame{}

	prev := sys.frame
	sys.frame = fr
	d.computing = true

	// Use defer so that panics in the thunk do not leave the system in a bad
	// state.
	defer func() {
		sys.frame = prev
		d.computing = false
	}()

	v, err := d.thunk()
	d.version++
	sys.recomputes++
	if err == nil && v == nil {
		err = fmt.Errorf("internal error: nil (not Nil) returned from derived thunk")
	}

	if err != nil {
		sys.logger().Debug("derived computation failed",
			zap.Uint64("version", d.version), zap.Error(err))
		d.value, d.deps, d.valid = nil, nil, false
		return err
	}

	sys.logger().Debug("derived recomputed",
		zap.Uint64("version", d.version), zap.Int("deps", len(fr.deps)),
		zap.Stringer("value", v))
	d.value, d.deps, d.valid = v, fr.deps, true
	d.checked = epoch
	return nil
}
