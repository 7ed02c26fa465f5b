package gridkit

import (
	"context"

	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/registry"
	"gridkit/render"
	"gridkit/reorder"
	"gridkit/resize"
	"gridkit/settings"
	"gridkit/store"
)

// Phase of a table instance.
type Phase int

const (
	Uninitialized Phase = iota
	Loaded
	Resizing
	SettingsOpen
	Reordering
)

func (ph Phase) String() string {
	return [...]string{"uninitialized", "loaded", "resizing", "settings open", "reordering"}[ph]
}

// Instance is one mounted table: its columns, committed layout, rows and the
// gesture currently underway. Only one gesture is active at a time.
type Instance struct {
	name     string
	reg      *registry.Registry
	store    *store.Store
	resize   *resize.Controller
	settings *settings.Modal
	engine   *render.Engine
	logger   nt.Logger

	phase   Phase
	rows    []nt.Row
	loading bool
	limit   int
}

// Mount registers the table with the store, seeding or repairing its layout.
func (inst *Instance) Mount(ctx context.Context) nt.Layout {

	lo := inst.store.Register(ctx, inst.name, inst.reg)
	inst.phase = Loaded

	inst.logger.Info(ctx, "mounted table", "table", inst.name, "columns", inst.reg.Len())
	return lo
}

// Unmount abandons any gesture underway, restoring its snapshot.
func (inst *Instance) Unmount(ctx context.Context) {

	switch inst.phase {
	case Resizing:
		inst.AbortResize(ctx)
	case SettingsOpen, Reordering:
		inst.CancelSettings(ctx)
	}
	inst.phase = Uninitialized
}

// Name returns the table name.
func (inst *Instance) Name() string {
	return inst.name
}

// Phase returns the current phase.
func (inst *Instance) Phase() Phase {
	return inst.phase
}

// Layout returns the committed layout.
func (inst *Instance) Layout() nt.Layout {
	return inst.store.Layout(inst.name)
}

// Registry returns the table's columns.
func (inst *Instance) Registry() *registry.Registry {
	return inst.reg
}

// Limit returns the page size.
func (inst *Instance) Limit() int {
	return inst.limit
}

// Settings returns the settings modal.
func (inst *Instance) Settings() *settings.Modal {
	return inst.settings
}

// SetRows replaces the row dataset and clears loading.
func (inst *Instance) SetRows(rows []nt.Row) {

	inst.rows = rows
	inst.loading = false
}

// SetLoading marks rows as being fetched.
func (inst *Instance) SetLoading(loading bool) {
	inst.loading = loading
}

// Plan projects the committed layout, any live resize width, and the rows.
func (inst *Instance) Plan(containerWidth int) render.Plan {

	opt := render.Options{
		Loading:        inst.loading,
		Limit:          inst.limit,
		ContainerWidth: containerWidth,
	}
	if id, width, ok := inst.resize.Live(); ok {
		opt.Live = map[string]int{id: width}
	}

	return inst.engine.Plan(inst.Layout(), inst.rows, opt)
}

// Resizing returns the id of the column under resize.
func (inst *Instance) Resizing() (id string, ok bool) {
	id, _, ok = inst.resize.Live()
	return
}

// BeginResize grabs id's trailing edge at pointer position x.
func (inst *Instance) BeginResize(id string, x int) (err error) {

	err = inst.require(Loaded)
	if err != nil {
		return
	}

	width, ok := inst.Layout().Sizing[id]
	if !ok {
		err = errors.Errorf("cannot resize unknown column %q", id)
		return
	}

	err = inst.resize.Start(id, x, width)
	if err != nil {
		return
	}
	inst.phase = Resizing
	return
}

// ResizeMove records pointer position x, applied on the next Frame.
func (inst *Instance) ResizeMove(x int) {
	inst.resize.Move(x)
}

// Frame applies pending pointer movement, reporting whether a redraw is needed.
func (inst *Instance) Frame() (changed bool) {
	_, changed = inst.resize.Frame()
	return
}

// EndResize commits the width under the pointer.
func (inst *Instance) EndResize(ctx context.Context) nt.Layout {

	id, width, ok := inst.resize.End()
	if !ok {
		return inst.Layout()
	}

	inst.phase = Loaded
	return inst.store.SetSizing(ctx, inst.name, id, width)
}

// AbortResize drops the gesture, leaving the committed width as it was.
func (inst *Instance) AbortResize(ctx context.Context) nt.Layout {

	if _, _, ok := inst.resize.Abort(); ok {
		inst.phase = Loaded
	}
	return inst.Layout()
}

// ResetWidth restores id's declared width, as on double click of its handle.
func (inst *Instance) ResetWidth(ctx context.Context, id string) (lo nt.Layout, err error) {

	err = inst.require(Loaded)
	if err != nil {
		return
	}

	width, err := inst.resize.Reset(id)
	if err != nil {
		return
	}

	lo = inst.store.SetSizing(ctx, inst.name, id, width)
	return
}

// OpenSettings stages a draft of the committed layout.
func (inst *Instance) OpenSettings() (err error) {

	err = inst.require(Loaded)
	if err != nil {
		return
	}

	inst.settings.Open()
	inst.phase = SettingsOpen
	return
}

// StartDrag picks up id in the settings modal.
func (inst *Instance) StartDrag(id string) (err error) {

	err = inst.require(SettingsOpen)
	if err != nil {
		return
	}

	err = inst.settings.StartDrag(id)
	if err != nil {
		return
	}
	inst.phase = Reordering
	return
}

// DragOver previews a drop at pointer over part.
func (inst *Instance) DragOver(part reorder.Partition, pointer reorder.Point, siblings []reorder.Sibling) nt.Layout {
	return inst.settings.DragOver(part, pointer, siblings)
}

// Drop stages the dragged column where it was released.
func (inst *Instance) Drop(ctx context.Context) nt.Layout {

	if inst.phase != Reordering {
		return inst.settings.Draft()
	}

	inst.phase = SettingsOpen
	return inst.settings.Drop(ctx)
}

// CancelDrag puts the dragged column back.
func (inst *Instance) CancelDrag() nt.Layout {

	if inst.phase == Reordering {
		inst.phase = SettingsOpen
	}
	return inst.settings.CancelDrag()
}

// SaveSettings commits the draft.
func (inst *Instance) SaveSettings(ctx context.Context) nt.Layout {

	if inst.phase != SettingsOpen && inst.phase != Reordering {
		return inst.Layout()
	}

	inst.phase = Loaded
	return inst.settings.Save(ctx)
}

// CancelSettings discards the draft.
func (inst *Instance) CancelSettings(ctx context.Context) nt.Layout {

	if inst.phase != SettingsOpen && inst.phase != Reordering {
		return inst.Layout()
	}

	inst.phase = Loaded
	return inst.settings.Cancel()
}

// Reset discards the persisted layout for defaults.
func (inst *Instance) Reset(ctx context.Context) (lo nt.Layout, err error) {

	err = inst.require(Loaded)
	if err != nil {
		return
	}

	lo = inst.store.Reset(ctx, inst.name)
	return
}

// unexported

func (inst *Instance) require(phase Phase) error {

	if inst.phase == phase {
		return nil
	}
	if inst.phase == Uninitialized {
		return errors.Errorf("table %q is not mounted", inst.name)
	}
	return errors.Wrapf(nt.ErrGestureActive, "table %q is %s", inst.name, inst.phase)
}
