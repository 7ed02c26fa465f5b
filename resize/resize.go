// Package resize turns a pointer drag on a column's trailing edge into a clamped width.
//
// Moves are only recorded as they arrive; Frame applies the latest one, so width
// is computed at most once per animation frame however fast the pointer reports.
package resize

import (
	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/registry"
)

// State of the controller.
type State int

const (
	Idle State = iota
	Resizing
)

func (st State) String() string {
	if st == Resizing {
		return "resizing"
	}
	return "idle"
}

// Controller is the resize gesture state machine for one table.
type Controller struct {
	reg   *registry.Registry
	state State

	id      string
	originX int
	initial int
	live    int

	pendingX int
	pending  bool
}

// New creates an idle Controller for reg's columns.
func New(reg *registry.Registry) *Controller {
	return &Controller{reg: reg}
}

// State returns the current state.
func (rc *Controller) State() State {
	return rc.state
}

// Start begins resizing id from pointer position x and its current width.
func (rc *Controller) Start(id string, x, width int) (err error) {

	if rc.state != Idle {
		err = errors.Wrapf(nt.ErrGestureActive, "already resizing %q", rc.id)
		return
	}
	if !rc.reg.Has(id) {
		err = errors.Errorf("cannot resize unknown column %q", id)
		return
	}

	rc.state = Resizing
	rc.id = id
	rc.originX = x
	rc.initial = rc.reg.Clamp(id, width)
	rc.live = rc.initial
	rc.pending = false
	return
}

// Move records the latest pointer position, to be applied by the next Frame.
func (rc *Controller) Move(x int) {

	if rc.state != Resizing {
		return
	}
	rc.pendingX = x
	rc.pending = true
}

// Frame applies the pending move, reporting whether the live width changed.
func (rc *Controller) Frame() (width int, changed bool) {

	if rc.state != Resizing || !rc.pending {
		return rc.live, false
	}
	rc.pending = false

	width = rc.reg.Clamp(rc.id, rc.initial+rc.pendingX-rc.originX)
	changed = width != rc.live
	rc.live = width
	return
}

// Live returns the width to show for the column being resized.
func (rc *Controller) Live() (id string, width int, active bool) {

	if rc.state != Resizing {
		return
	}
	return rc.id, rc.live, true
}

// End finishes the gesture on pointer up or pointer cancel, yielding the width to commit.
func (rc *Controller) End() (id string, width int, ok bool) {

	if rc.state != Resizing {
		return
	}
	rc.Frame()

	id, width, ok = rc.id, rc.live, true
	rc.clear()
	return
}

// Abort abandons the gesture, yielding the width it started with.
func (rc *Controller) Abort() (id string, width int, ok bool) {

	if rc.state != Resizing {
		return
	}

	id, width, ok = rc.id, rc.initial, true
	rc.clear()
	return
}

// Reset yields the declared default for id, as on double click of its handle.
func (rc *Controller) Reset(id string) (width int, err error) {

	if rc.state != Idle {
		err = errors.Wrapf(nt.ErrGestureActive, "resizing %q", rc.id)
		return
	}
	if !rc.reg.Has(id) {
		err = errors.Errorf("cannot reset unknown column %q", id)
		return
	}

	width = rc.reg.DefaultWidth(id)
	return
}

// unexported

func (rc *Controller) clear() {

	rc.state = Idle
	rc.id = ""
	rc.pending = false
}
