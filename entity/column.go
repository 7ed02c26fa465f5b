package entity

const (
	// DefaultWidth is used when a column does not declare a width.
	DefaultWidth = 150
	// DefaultMinWidth is used when a column does not declare a min width.
	DefaultMinWidth = 40
)

// Column describes one column's identity, rendering and sizing constraints.
// Zero values for Hidden and Pinned give a visible column that can be hidden.
type Column struct {
	Id       string `yaml:"id"`
	Header   string `yaml:"header"`
	Accessor string `yaml:"accessor"`
	Width    int    `yaml:"width,omitempty"`
	MinWidth int    `yaml:"min_width,omitempty"`
	MaxWidth int    `yaml:"max_width,omitempty"` // zero is unbounded
	Format   string `yaml:"format,omitempty"`    // time layout for timestamp values
	Hidden   bool   `yaml:"hidden,omitempty"`    // not visible by default
	Pinned   bool   `yaml:"pinned,omitempty"`    // cannot be hidden or dragged

	// HeaderFunc overrides Header when set.
	HeaderFunc func(col Column) string `yaml:"-"`
	// Render overrides accessor lookup when set.
	Render func(row Row, col Column) string `yaml:"-"`
}

// CanHide reports whether the column may be hidden or dragged.
func (col Column) CanHide() bool {
	return !col.Pinned
}

// DefaultVisible reports whether the column is shown when no layout is persisted.
func (col Column) DefaultVisible() bool {
	return col.Pinned || !col.Hidden
}

// Label returns the header label.
func (col Column) Label() string {
	if col.HeaderFunc != nil {
		return col.HeaderFunc(col)
	}
	if col.Header == "" {
		return col.Id
	}
	return col.Header
}

// Cell renders the cell for row.
func (col Column) Cell(row Row) string {
	if col.Render != nil {
		return col.Render(row, col)
	}

	val, ok := row.Lookup(col.accessor())
	if !ok {
		return ""
	}
	return val.Format(col.Format)
}

func (col Column) accessor() string {
	if col.Accessor == "" {
		return col.Id
	}
	return col.Accessor
}
