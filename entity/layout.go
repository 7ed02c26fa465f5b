package entity

import (
	"maps"
	"slices"
)

// Layout is the mutable per-table record of column order, visibility and width.
// Order covers every registered column, hidden ones included.
type Layout struct {
	Order      []string        `yaml:"order" json:"order"`
	Visibility map[string]bool `yaml:"visibility" json:"visibility"`
	Sizing     map[string]int  `yaml:"sizing" json:"sizing"`
}

// Clone returns a deep copy with non-nil maps.
func (lo Layout) Clone() Layout {

	clone := Layout{
		Order:      slices.Clone(lo.Order),
		Visibility: maps.Clone(lo.Visibility),
		Sizing:     maps.Clone(lo.Sizing),
	}
	if clone.Order == nil {
		clone.Order = []string{}
	}
	if clone.Visibility == nil {
		clone.Visibility = map[string]bool{}
	}
	if clone.Sizing == nil {
		clone.Sizing = map[string]int{}
	}
	return clone
}

// Equal reports whether two layouts hold the same order, visibility and sizing.
func (lo Layout) Equal(other Layout) bool {
	return slices.Equal(lo.Order, other.Order) &&
		maps.Equal(lo.Visibility, other.Visibility) &&
		maps.Equal(lo.Sizing, other.Sizing)
}

// Visible returns order filtered to visible ids.
func (lo Layout) Visible() []string {
	return lo.filter(true)
}

// Hidden returns order filtered to hidden ids, keeping their relative placement.
func (lo Layout) Hidden() []string {
	return lo.filter(false)
}

// IsZero reports whether the layout has never been seeded.
func (lo Layout) IsZero() bool {
	return len(lo.Order) == 0 && len(lo.Visibility) == 0 && len(lo.Sizing) == 0
}

func (lo Layout) filter(visible bool) []string {

	ids := []string{}
	for _, id := range lo.Order {
		if lo.Visibility[id] == visible {
			ids = append(ids, id)
		}
	}
	return ids
}
