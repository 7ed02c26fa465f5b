// Package gridkit is a resizable, reorderable data grid whose column layout
// persists per table across sessions.
package gridkit

import (
	"context"

	nt "gridkit/entity"
	"gridkit/registry"
	"gridkit/render"
	"gridkit/resize"
	"gridkit/settings"
	"gridkit/store"
)

// DefaultLimit is the page size, and skeleton row count, when none is configured.
const DefaultLimit = 20

// Dataset specifies the row provider feeding a table.
type Dataset interface {
	// Name returns the name of the data source
	Name() string
	// Page returns up to size rows from offset
	Page(ctx context.Context, offset, size int) (rows []nt.Row, err error)
}

// Config describes one table as the owning feature registers it.
type Config struct {
	Table   string      `yaml:"table"`
	Limit   int         `yaml:"limit"`
	Columns []nt.Column `yaml:"columns"`
}

// New creates an unmounted Instance over st.
func (cfg *Config) New(ctx context.Context, st *store.Store, lgr nt.Logger) *Instance {

	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	reg := registry.New(ctx, lgr, cfg.Columns)

	return &Instance{
		name:     cfg.Table,
		reg:      reg,
		store:    st,
		resize:   resize.New(reg),
		settings: settings.New(cfg.Table, reg, st, lgr),
		engine:   render.New(reg, nil),
		logger:   lgr,
		limit:    limit,
		loading:  true,
	}
}
