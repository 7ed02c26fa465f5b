// Package layout holds the pure transition functions over a table's layout.
// Every mutation, whether from a drag, a button or a resize, goes through Apply.
package layout

import (
	"slices"

	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/registry"
)

// Defaults derives a layout from descriptor defaults.
func Defaults(reg *registry.Registry) nt.Layout {

	lo := nt.Layout{}.Clone()
	for _, col := range reg.Columns() {
		lo.Order = append(lo.Order, col.Id)
		lo.Visibility[col.Id] = col.DefaultVisible()
		lo.Sizing[col.Id] = col.Width
	}
	return lo
}

// Apply returns the layout resulting from cmd, leaving lo untouched.
// A rejected command yields lo unchanged along with an error wrapping ErrRejected.
func Apply(reg *registry.Registry, lo nt.Layout, cmd nt.Command) (out nt.Layout, err error) {

	switch cmd := cmd.(type) {
	case nt.Show:
		out, err = show(reg, lo, cmd.Id, cmd.At)
	case nt.Hide:
		out, err = hide(reg, lo, cmd.Id)
	case nt.Reorder:
		out, err = reorder(reg, lo, cmd.Ids)
	case nt.Resize:
		out, err = resize(reg, lo, cmd.Id, cmd.Width)
	default:
		err = errors.Wrapf(nt.ErrRejected, "unknown command %T", cmd)
	}

	if err != nil {
		out = lo
	}
	return
}

// ApplyAll applies cmds in sequence, stopping at the first rejection.
func ApplyAll(reg *registry.Registry, lo nt.Layout, cmds ...nt.Command) (out nt.Layout, err error) {

	out = lo
	for _, cmd := range cmds {
		out, err = Apply(reg, out, cmd)
		if err != nil {
			out = lo
			return
		}
	}
	return
}

// Movable returns visible ids that may be hidden or dragged, in order.
func Movable(reg *registry.Registry, lo nt.Layout) []string {

	ids := []string{}
	for _, id := range lo.Order {
		if lo.Visibility[id] && reg.CanHide(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// unexported

func show(reg *registry.Registry, lo nt.Layout, id string, at int) (out nt.Layout, err error) {

	if !reg.Has(id) {
		err = errors.Wrapf(nt.ErrRejected, "cannot show unknown column %q", id)
		return
	}

	out = lo.Clone()
	out.Visibility[id] = true
	if at < 0 || !reg.CanHide(id) {
		return
	}

	rest := slices.DeleteFunc(slices.Clone(out.Order), func(other string) bool { return other == id })

	movable := []string{}
	for _, other := range rest {
		if out.Visibility[other] && reg.CanHide(other) {
			movable = append(movable, other)
		}
	}

	var pos int
	switch {
	case at < len(movable):
		pos = slices.Index(rest, movable[at])
	case len(movable) > 0:
		pos = slices.Index(rest, movable[len(movable)-1]) + 1
	default:
		return
	}

	out.Order = slices.Insert(rest, pos, id)
	return
}

func hide(reg *registry.Registry, lo nt.Layout, id string) (out nt.Layout, err error) {

	if !reg.Has(id) {
		err = errors.Wrapf(nt.ErrRejected, "cannot hide unknown column %q", id)
		return
	}
	if !reg.CanHide(id) {
		err = errors.Wrapf(nt.ErrRejected, "cannot hide pinned column %q", id)
		return
	}

	out = lo.Clone()
	out.Visibility[id] = false
	return
}

func reorder(reg *registry.Registry, lo nt.Layout, ids []string) (out nt.Layout, err error) {

	err = isPermutation(reg, ids)
	if err != nil {
		err = errors.Wrapf(nt.ErrRejected, "cannot reorder: %s", err)
		return
	}

	out = lo.Clone()
	out.Order = slices.Clone(ids)
	return
}

func resize(reg *registry.Registry, lo nt.Layout, id string, width int) (out nt.Layout, err error) {

	if !reg.Has(id) {
		err = errors.Wrapf(nt.ErrRejected, "cannot resize unknown column %q", id)
		return
	}

	out = lo.Clone()
	out.Sizing[id] = reg.Clamp(id, width)
	return
}

func isPermutation(reg *registry.Registry, ids []string) error {

	if len(ids) != reg.Len() {
		return errors.Errorf("got %d ids for %d columns", len(ids), reg.Len())
	}

	seen := map[string]bool{}
	for _, id := range ids {
		if !reg.Has(id) {
			return errors.Errorf("unknown id %q", id)
		}
		if seen[id] {
			return errors.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
	return nil
}
