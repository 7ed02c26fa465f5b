// Package settings orchestrates the column settings modal over a staged draft of a table's layout.
//
// Buttons and drag-and-drop both reach the draft through stage, so the two paths
// cannot disagree about the outcome of a move.
package settings

import (
	"context"

	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/layout"
	"gridkit/registry"
	"gridkit/reorder"
)

// Store specifies the committed layout source the modal drafts from.
type Store interface {
	Layout(name string) nt.Layout
	Commit(ctx context.Context, name string, lo nt.Layout) nt.Layout
}

// Modal holds the staged draft while settings are open.
type Modal struct {
	name   string
	reg    *registry.Registry
	store  Store
	drag   *reorder.Controller
	logger nt.Logger

	open  bool
	draft nt.Layout
}

// New creates a closed Modal for the named table.
func New(name string, reg *registry.Registry, store Store, lgr nt.Logger) *Modal {
	return &Modal{
		name:   name,
		reg:    reg,
		store:  store,
		drag:   reorder.New(reg),
		logger: lgr,
	}
}

// Open derives a fresh draft from the store.
func (mdl *Modal) Open() {

	mdl.draft = mdl.store.Layout(mdl.name)
	mdl.open = true
}

// IsOpen reports whether the modal is showing.
func (mdl *Modal) IsOpen() bool {
	return mdl.open
}

// Draft returns a copy of the staged layout, including any drag preview.
func (mdl *Modal) Draft() nt.Layout {

	if _, ok := mdl.drag.Dragging(); ok {
		return mdl.drag.Preview()
	}
	return mdl.draft.Clone()
}

// Dirty reports whether the draft differs from the committed layout.
func (mdl *Modal) Dirty() bool {
	return mdl.open && !mdl.Draft().Equal(mdl.store.Layout(mdl.name))
}

// Hidden returns the hidden fields in their order.
func (mdl *Modal) Hidden() []nt.Column {
	return mdl.columns(mdl.Draft().Hidden())
}

// Pinned returns the visible fields that cannot be hidden, in their order.
func (mdl *Modal) Pinned() []nt.Column {

	ids := []string{}
	for _, id := range mdl.Draft().Visible() {
		if !mdl.reg.CanHide(id) {
			ids = append(ids, id)
		}
	}
	return mdl.columns(ids)
}

// Visible returns the draggable visible fields, in their order.
func (mdl *Modal) Visible() []nt.Column {
	return mdl.columns(layout.Movable(mdl.reg, mdl.Draft()))
}

// MoveToVisible shows id, restoring its prior placement.
func (mdl *Modal) MoveToVisible(ctx context.Context, id string) nt.Layout {
	return mdl.stage(ctx, nt.Show{Id: id, At: -1})
}

// MoveToHidden hides id.
func (mdl *Modal) MoveToHidden(ctx context.Context, id string) nt.Layout {
	return mdl.stage(ctx, nt.Hide{Id: id})
}

// MoveTo places id at index at of the draggable visible fields.
func (mdl *Modal) MoveTo(ctx context.Context, id string, at int) nt.Layout {

	if at < 0 {
		at = 0
	}
	return mdl.stage(ctx, nt.Show{Id: id, At: at})
}

// StartDrag picks up id.
func (mdl *Modal) StartDrag(id string) (err error) {

	if !mdl.open {
		err = errors.New("settings are closed")
		return
	}
	err = mdl.drag.Start(mdl.draft, id)
	return
}

// DragOver previews the drop at pointer over part.
func (mdl *Modal) DragOver(part reorder.Partition, pointer reorder.Point, siblings []reorder.Sibling) nt.Layout {
	return mdl.drag.Over(part, pointer, siblings)
}

// Drop stages the command behind the drag preview; a drop outside any partition is treated as a cancel.
func (mdl *Modal) Drop(ctx context.Context) nt.Layout {

	cmd := mdl.drag.Command()
	_, err := mdl.drag.Drop()
	if errors.Is(err, nt.ErrInvalidDragTarget) {
		mdl.logger.Info(ctx, "drag cancelled", "table", mdl.name, "reason", err.Error())
		return mdl.Draft()
	}
	if err != nil {
		return mdl.Draft()
	}

	return mdl.stage(ctx, cmd)
}

// CancelDrag restores the draft as it was when the drag started.
func (mdl *Modal) CancelDrag() nt.Layout {

	if _, ok := mdl.drag.Dragging(); !ok {
		return mdl.Draft()
	}
	mdl.draft = mdl.drag.Cancel()
	return mdl.Draft()
}

// Dragging reports the column being dragged.
func (mdl *Modal) Dragging() (id string, ok bool) {
	return mdl.drag.Dragging()
}

// Save commits the draft and closes.
func (mdl *Modal) Save(ctx context.Context) nt.Layout {

	mdl.CancelDrag()
	lo := mdl.store.Commit(ctx, mdl.name, mdl.draft)

	mdl.close()
	return lo
}

// Cancel discards the draft and closes.
func (mdl *Modal) Cancel() nt.Layout {

	mdl.CancelDrag()
	mdl.close()
	return mdl.store.Layout(mdl.name)
}

// unexported

// stage is the one path from an interaction to the draft.
func (mdl *Modal) stage(ctx context.Context, cmd nt.Command) nt.Layout {

	if !mdl.open {
		return mdl.store.Layout(mdl.name)
	}
	if _, ok := mdl.drag.Dragging(); ok {
		return mdl.Draft()
	}

	lo, err := layout.Apply(mdl.reg, mdl.draft, cmd)
	if err != nil {
		mdl.logger.Info(ctx, "ignoring settings change", "table", mdl.name, "reason", err.Error())
		return mdl.Draft()
	}

	mdl.draft = lo
	return mdl.Draft()
}

func (mdl *Modal) close() {

	mdl.open = false
	mdl.draft = nt.Layout{}
}

func (mdl *Modal) columns(ids []string) []nt.Column {

	cols := []nt.Column{}
	for _, id := range ids {
		if col, ok := mdl.reg.Column(id); ok {
			cols = append(cols, col)
		}
	}
	return cols
}
