// Package render projects a table's layout and rows into rendering instructions.
package render

import (
	"math/rand/v2"

	nt "gridkit/entity"
	"gridkit/registry"
)

const (
	// SkeletonMin and SkeletonMax bound a placeholder bar, as percent of its cell.
	SkeletonMin = 40
	SkeletonMax = 90
)

// Options for one Plan.
type Options struct {
	Loading bool
	Limit   int // skeleton rows while loading
	// ContainerWidth in pixels, zero when not yet known.
	ContainerWidth int
	// Live overrides one column's width during a resize gesture.
	Live map[string]int
}

// Column is one rendered column.
type Column struct {
	Id      string
	Header  string
	SizeVar string // named size consumed by every cell of the column
	Width   int
	Fill    bool // takes the remaining container space
}

// Cell is one rendered cell. Skeleton cells carry only a bar size.
type Cell struct {
	Content  string
	Skeleton bool
	Bar      int
}

// Row is one rendered row. Record is nil for skeleton rows.
type Row struct {
	Record nt.Row
	Cells  []Cell
}

// Plan is everything needed to draw the grid.
type Plan struct {
	Columns []Column
	Sizes   map[string]int // by SizeVar
	Rows    []Row
	Loading bool
	Empty   bool // one indicator spanning every column instead of cells
}

// Engine plans grids for one table's columns.
type Engine struct {
	reg *registry.Registry
	rnd *rand.Rand
}

// New creates an Engine. A nil rnd gets a randomly seeded source.
func New(reg *registry.Registry, rnd *rand.Rand) *Engine {

	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{reg: reg, rnd: rnd}
}

// Plan projects lo and rows for drawing.
func (eng *Engine) Plan(lo nt.Layout, rows []nt.Row, opt Options) Plan {

	plan := Plan{
		Columns: eng.columns(lo, opt),
		Sizes:   map[string]int{},
		Loading: opt.Loading,
	}
	for _, col := range plan.Columns {
		plan.Sizes[col.SizeVar] = col.Width
	}

	switch {
	case opt.Loading:
		plan.Rows = eng.skeleton(opt.Limit, len(plan.Columns))
	case len(rows) == 0:
		plan.Empty = true
	default:
		plan.Rows = eng.rows(lo, rows)
	}
	return plan
}

// SizeVar names the size value for a column id.
func SizeVar(id string) string {
	return "--col-" + id + "-size"
}

// unexported

func (eng *Engine) columns(lo nt.Layout, opt Options) []Column {

	visible := []nt.Column{}
	for _, id := range lo.Visible() {
		if col, ok := eng.reg.Column(id); ok {
			visible = append(visible, col)
		}
	}

	cols := make([]Column, len(visible))
	used := 0
	for i, desc := range visible {

		width, ok := opt.Live[desc.Id]
		if !ok {
			width, ok = lo.Sizing[desc.Id]
		}
		if !ok {
			width = desc.Width
		}

		cols[i] = Column{
			Id:      desc.Id,
			Header:  desc.Label(),
			SizeVar: SizeVar(desc.Id),
			Width:   width,
		}

		last := i == len(visible)-1
		if last && opt.ContainerWidth > 0 {
			cols[i].Fill = true
			cols[i].Width = max(opt.ContainerWidth-used, desc.MinWidth)
		}
		used += width
	}
	return cols
}

func (eng *Engine) skeleton(limit, count int) []Row {

	rows := make([]Row, max(limit, 0))
	for i := range rows {
		cells := make([]Cell, count)
		for j := range cells {
			cells[j] = Cell{
				Skeleton: true,
				Bar:      SkeletonMin + eng.rnd.IntN(SkeletonMax-SkeletonMin+1),
			}
		}
		rows[i] = Row{Cells: cells}
	}
	return rows
}

func (eng *Engine) rows(lo nt.Layout, records []nt.Row) []Row {

	cols := []nt.Column{}
	for _, id := range lo.Visible() {
		if col, ok := eng.reg.Column(id); ok {
			cols = append(cols, col)
		}
	}

	rows := make([]Row, len(records))
	for i, record := range records {
		cells := make([]Cell, len(cols))
		for j, col := range cols {
			cells[j] = Cell{Content: col.Cell(record)}
		}
		rows[i] = Row{Record: record, Cells: cells}
	}
	return rows
}
