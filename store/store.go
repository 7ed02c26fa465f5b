// Package store is the single source of truth for table layouts.
// Backends are read once at New and written synchronously on every commit.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/layout"
	"gridkit/registry"
)

// SchemaVersion is stamped on every persisted record.
const SchemaVersion = 1

// Record is the persisted envelope for one table's layout.
type Record struct {
	Schema  int       `yaml:"schema" json:"schema"`
	Session string    `yaml:"session" json:"session"`
	Updated time.Time `yaml:"updated" json:"updated"`
	Layout  nt.Layout `yaml:"layout" json:"layout"`
}

// Backend specifies durable layout storage keyed by table name.
type Backend interface {
	// Load returns every persisted record, skipping any it cannot decode.
	Load(ctx context.Context) (records map[string]Record, err error)
	// Save writes a record, replacing any existing one.
	Save(ctx context.Context, name string, record Record) (err error)
	// Delete removes a record.
	Delete(ctx context.Context, name string) (err error)
}

// Store holds the committed layout of each registered table.
type Store struct {
	backend Backend
	logger  nt.Logger
	session string

	mu         sync.RWMutex
	persisted  map[string]Record
	layouts    map[string]nt.Layout
	registries map[string]*registry.Registry
}

// New reads every record from backend once.
// A backend that cannot be read leaves the store empty, to be seeded from defaults.
func New(ctx context.Context, backend Backend, lgr nt.Logger) *Store {

	st := &Store{
		backend:    backend,
		logger:     lgr,
		session:    uuid.NewString(),
		persisted:  map[string]Record{},
		layouts:    map[string]nt.Layout{},
		registries: map[string]*registry.Registry{},
	}

	records, err := backend.Load(ctx)
	if err != nil {
		lgr.Error(ctx, "failed to load layouts", err)
		return st
	}

	for name, record := range records {
		if record.Schema != SchemaVersion {
			err = errors.Wrapf(nt.ErrCorruptState, "unknown schema %d for %q", record.Schema, name)
			lgr.Error(ctx, "discarding persisted layout", err, "table", name)
			continue
		}
		st.persisted[name] = record
	}

	lgr.Info(ctx, "loaded layouts", "count", len(st.persisted), "session", st.session)
	return st
}

// Session returns the id stamped on records written by this store.
func (st *Store) Session() string {
	return st.session
}

// Register binds a table name to its registry, seeding its layout from the
// persisted record when one exists, or from descriptor defaults otherwise.
// A persisted record that needs repair is repaired and written back.
func (st *Store) Register(ctx context.Context, name string, reg *registry.Registry) nt.Layout {

	st.mu.Lock()
	defer st.mu.Unlock()

	st.registries[name] = reg

	record, ok := st.persisted[name]
	if !ok {
		lo := layout.Defaults(reg)
		st.layouts[name] = lo
		return lo.Clone()
	}

	lo, problems := layout.Repair(reg, record.Layout)
	for _, problem := range problems {
		st.logger.Error(ctx, "repaired persisted layout", problem, "table", name)
	}
	st.layouts[name] = lo

	if len(problems) > 0 {
		st.flush(ctx, name, lo)
	}
	return lo.Clone()
}

// Layout returns the committed layout for name, or defaults when none exists.
func (st *Store) Layout(name string) nt.Layout {

	st.mu.RLock()
	defer st.mu.RUnlock()

	lo, ok := st.layouts[name]
	if !ok {
		reg, ok := st.registries[name]
		if !ok {
			return nt.Layout{}.Clone()
		}
		return layout.Defaults(reg)
	}
	return lo.Clone()
}

// Registry returns the registry bound to name.
func (st *Store) Registry(name string) (reg *registry.Registry, ok bool) {

	st.mu.RLock()
	defer st.mu.RUnlock()

	reg, ok = st.registries[name]
	return
}

// Apply commits cmds to name's layout as one atomic change.
// Rejected commands are logged and leave the layout untouched.
func (st *Store) Apply(ctx context.Context, name string, cmds ...nt.Command) nt.Layout {

	st.mu.Lock()
	defer st.mu.Unlock()

	reg, lo, err := st.current(name)
	if err != nil {
		st.logger.Error(ctx, "ignoring layout change", err, "table", name)
		return lo.Clone()
	}

	out, err := layout.ApplyAll(reg, lo, cmds...)
	if err != nil {
		st.logger.Error(ctx, "ignoring layout change", err, "table", name)
		return lo.Clone()
	}
	if out.Equal(lo) {
		return lo.Clone()
	}

	st.layouts[name] = out
	st.flush(ctx, name, out)
	return out.Clone()
}

// SetSizing commits a width for id, clamped to its bounds.
func (st *Store) SetSizing(ctx context.Context, name, id string, width int) nt.Layout {
	return st.Apply(ctx, name, nt.Resize{Id: id, Width: width})
}

// SetOrder commits a new order, ignored unless ids match the registry exactly.
func (st *Store) SetOrder(ctx context.Context, name string, ids []string) nt.Layout {
	return st.Apply(ctx, name, nt.Reorder{Ids: ids})
}

// SetVisibility commits visibility for id, keeping its position.
// Hiding a pinned column is a no-op.
func (st *Store) SetVisibility(ctx context.Context, name, id string, visible bool) nt.Layout {

	if visible {
		return st.Apply(ctx, name, nt.Show{Id: id, At: -1})
	}
	return st.Apply(ctx, name, nt.Hide{Id: id})
}

// Commit replaces name's layout wholesale, as when settings are saved.
// A layout breaking any invariant is repaired before it is stored.
func (st *Store) Commit(ctx context.Context, name string, lo nt.Layout) nt.Layout {

	st.mu.Lock()
	defer st.mu.Unlock()

	reg, current, err := st.current(name)
	if err != nil {
		st.logger.Error(ctx, "ignoring commit", err, "table", name)
		return current.Clone()
	}

	if err = layout.Check(reg, lo); err != nil {
		st.logger.Error(ctx, "repairing committed layout", err, "table", name)
		lo, _ = layout.Repair(reg, lo)
	}
	lo = lo.Clone()

	if lo.Equal(current) {
		return lo
	}

	st.layouts[name] = lo
	st.flush(ctx, name, lo)
	return lo.Clone()
}

// Reset discards name's layout, reseeding it from descriptor defaults.
func (st *Store) Reset(ctx context.Context, name string) nt.Layout {

	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.persisted, name)
	err := st.backend.Delete(ctx, name)
	if err != nil {
		st.logger.Error(ctx, "failed to delete layout", err, "table", name)
	}

	reg, ok := st.registries[name]
	if !ok {
		delete(st.layouts, name)
		return nt.Layout{}.Clone()
	}

	lo := layout.Defaults(reg)
	st.layouts[name] = lo
	return lo.Clone()
}

// unexported

func (st *Store) current(name string) (reg *registry.Registry, lo nt.Layout, err error) {

	reg, ok := st.registries[name]
	if !ok {
		err = errors.Errorf("table %q is not registered", name)
		return
	}

	lo, ok = st.layouts[name]
	if !ok {
		lo = layout.Defaults(reg)
	}
	return
}

// flush writes lo through to the backend; failure is logged and memory stays authoritative.
func (st *Store) flush(ctx context.Context, name string, lo nt.Layout) {

	record := Record{
		Schema:  SchemaVersion,
		Session: st.session,
		Updated: time.Now().UTC(),
		Layout:  lo.Clone(),
	}

	err := st.backend.Save(ctx, name, record)
	if err != nil {
		st.logger.Error(ctx, "failed to save layout", err, "table", name)
		return
	}
	st.persisted[name] = record
}
