// Package registry holds the canonical, immutable list of column descriptors for a table.
package registry

import (
	"context"

	"github.com/pkg/errors"

	nt "gridkit/entity"
)

// Registry is the validated descriptor list, in registration order.
type Registry struct {
	columns []nt.Column
	byId    map[string]int
}

// New validates columns, logging and excluding any with an empty or duplicate id.
// A min width greater than max width keeps the column with its max bound ignored.
func New(ctx context.Context, lgr nt.Logger, columns []nt.Column) *Registry {

	reg := &Registry{
		columns: []nt.Column{},
		byId:    map[string]int{},
	}

	for i, col := range columns {
		if col.Id == "" {
			err := errors.Wrapf(nt.ErrConfiguration, "column at %d has no id", i)
			lgr.Error(ctx, "excluding column", err, "index", i)
			continue
		}
		if _, ok := reg.byId[col.Id]; ok {
			err := errors.Wrapf(nt.ErrConfiguration, "duplicate column id %q", col.Id)
			lgr.Error(ctx, "excluding column", err, "id", col.Id)
			continue
		}

		col = normalize(col)
		if col.MaxWidth != 0 && col.MinWidth > col.MaxWidth {
			err := errors.Wrapf(nt.ErrConfiguration, "column %q min width %d exceeds max width %d",
				col.Id, col.MinWidth, col.MaxWidth)
			lgr.Error(ctx, "ignoring max width", err, "id", col.Id)
			col.MaxWidth = 0
		}
		col.Width = clamp(col.Width, col.MinWidth, col.MaxWidth)

		reg.byId[col.Id] = len(reg.columns)
		reg.columns = append(reg.columns, col)
	}

	return reg
}

// Ids returns column ids in registration order.
func (reg *Registry) Ids() []string {

	ids := make([]string, len(reg.columns))
	for i, col := range reg.columns {
		ids[i] = col.Id
	}
	return ids
}

// Columns returns a copy of the descriptors in registration order.
func (reg *Registry) Columns() []nt.Column {
	return append([]nt.Column{}, reg.columns...)
}

// Column returns the descriptor for id.
func (reg *Registry) Column(id string) (col nt.Column, ok bool) {

	idx, ok := reg.byId[id]
	if !ok {
		return
	}
	col = reg.columns[idx]
	return
}

// Has reports whether id is registered.
func (reg *Registry) Has(id string) bool {
	_, ok := reg.byId[id]
	return ok
}

// Len returns the number of registered columns.
func (reg *Registry) Len() int {
	return len(reg.columns)
}

// CanHide reports whether id is registered and hideable.
func (reg *Registry) CanHide(id string) bool {
	col, ok := reg.Column(id)
	return ok && col.CanHide()
}

// Bounds returns the width bounds for id, max of zero being unbounded.
func (reg *Registry) Bounds(id string) (min, max int) {

	col, ok := reg.Column(id)
	if !ok {
		return nt.DefaultMinWidth, 0
	}
	return col.MinWidth, col.MaxWidth
}

// Clamp constrains width to the bounds for id.
func (reg *Registry) Clamp(id string, width int) int {
	min, max := reg.Bounds(id)
	return clamp(width, min, max)
}

// DefaultWidth returns the declared width for id, within bounds.
func (reg *Registry) DefaultWidth(id string) int {

	col, ok := reg.Column(id)
	if !ok {
		return nt.DefaultWidth
	}
	return col.Width
}

// unexported

func normalize(col nt.Column) nt.Column {

	if col.MinWidth <= 0 {
		col.MinWidth = nt.DefaultMinWidth
	}
	if col.MaxWidth < 0 {
		col.MaxWidth = 0
	}
	if col.Width <= 0 {
		col.Width = nt.DefaultWidth
	}
	return col
}

func clamp(width, min, max int) int {

	if max != 0 && width > max {
		width = max
	}
	if width < min {
		width = min
	}
	return width
}
