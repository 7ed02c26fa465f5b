// Package reorder moves a column within the visible list or into the hidden bucket by drag.
// Every result is staged on a draft layout; committing is up to the caller.
package reorder

import (
	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/layout"
	"gridkit/registry"
)

// Partition is a drop target.
type Partition int

const (
	Outside Partition = iota
	Visible
	Hidden
)

func (pt Partition) String() string {
	switch pt {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	}
	return "outside"
}

// Axis along which the visible list is laid out.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

// Point is a pointer position.
type Point struct {
	X, Y int
}

// Rect is a sibling's bounding box.
type Rect struct {
	X, Y, W, H int
}

// Center returns the middle of the box.
func (rect Rect) Center() Point {
	return Point{X: rect.X + rect.W/2, Y: rect.Y + rect.H/2}
}

// Sibling is a draggable visible column as laid out on screen.
type Sibling struct {
	Id   string
	Rect Rect
}

// Controller is the drag gesture state machine.
type Controller struct {
	Axis Axis

	reg      *registry.Registry
	dragging bool
	id       string
	snapshot nt.Layout
	preview  nt.Layout
	target   Partition
	cmd      nt.Command
}

// New creates an idle Controller for reg's columns.
func New(reg *registry.Registry) *Controller {
	return &Controller{reg: reg}
}

// Dragging reports whether a drag is underway, and of which column.
func (dc *Controller) Dragging() (id string, ok bool) {
	return dc.id, dc.dragging
}

// Start picks up id, snapshotting draft. Pinned columns cannot be dragged.
func (dc *Controller) Start(draft nt.Layout, id string) (err error) {

	if dc.dragging {
		err = errors.Wrapf(nt.ErrGestureActive, "already dragging %q", dc.id)
		return
	}
	if !dc.reg.CanHide(id) {
		err = errors.Wrapf(nt.ErrRejected, "column %q is not draggable", id)
		return
	}

	dc.dragging = true
	dc.id = id
	dc.snapshot = draft.Clone()
	dc.reset()
	return
}

// Over stages the preview for the pointer hovering part.
// Siblings are the draggable visible columns in display order; the dragged one is skipped.
func (dc *Controller) Over(part Partition, pointer Point, siblings []Sibling) nt.Layout {

	if !dc.dragging {
		return dc.preview.Clone()
	}

	var cmd nt.Command
	switch part {
	case Visible:
		cmd = nt.Show{Id: dc.id, At: dc.insertion(pointer, siblings)}
	case Hidden:
		cmd = nt.Hide{Id: dc.id}
	default:
		dc.reset()
		return dc.preview.Clone()
	}

	preview, err := layout.Apply(dc.reg, dc.snapshot, cmd)
	if err != nil {
		dc.reset()
		return dc.preview.Clone()
	}

	dc.target = part
	dc.cmd = cmd
	dc.preview = preview
	return dc.preview.Clone()
}

// Command returns the command the staged preview was built from, nil when over no partition.
func (dc *Controller) Command() nt.Command {
	return dc.cmd
}

// Preview returns the staged layout, or the snapshot when no drag is underway.
func (dc *Controller) Preview() nt.Layout {
	return dc.preview.Clone()
}

// Target returns the partition last hovered.
func (dc *Controller) Target() Partition {
	return dc.target
}

// Drop ends the drag with the staged preview.
// Dropping outside every partition restores the snapshot and reports ErrInvalidDragTarget.
func (dc *Controller) Drop() (lo nt.Layout, err error) {

	if !dc.dragging {
		err = errors.New("no drag underway")
		return
	}

	lo = dc.preview.Clone()
	if dc.target == Outside {
		err = errors.Wrapf(nt.ErrInvalidDragTarget, "dropped %q outside", dc.id)
		lo = dc.snapshot.Clone()
	}

	dc.clear()
	return
}

// Cancel ends the drag, returning exactly the snapshot taken at Start.
func (dc *Controller) Cancel() nt.Layout {

	lo := dc.snapshot.Clone()
	dc.clear()
	return lo
}

// unexported

func (dc *Controller) clear() {

	dc.dragging = false
	dc.id = ""
	dc.reset()
}

func (dc *Controller) reset() {

	dc.target = Outside
	dc.cmd = nil
	dc.preview = dc.snapshot.Clone()
}

// insertion finds the sibling nearest the pointer by center, landing after it
// when the pointer is past its center along the axis.
func (dc *Controller) insertion(pointer Point, siblings []Sibling) int {

	nearest := -1
	best := 0
	idx := 0
	var center Point

	for _, sib := range siblings {
		if sib.Id == dc.id {
			continue
		}

		ctr := sib.Rect.Center()
		dx, dy := pointer.X-ctr.X, pointer.Y-ctr.Y
		dist := dx*dx + dy*dy

		if nearest < 0 || dist < best {
			nearest = idx
			best = dist
			center = ctr
		}
		idx++
	}

	if nearest < 0 {
		return 0
	}

	past := pointer.Y > center.Y
	if dc.Axis == Horizontal {
		past = pointer.X > center.X
	}
	if past {
		return nearest + 1
	}
	return nearest
}
