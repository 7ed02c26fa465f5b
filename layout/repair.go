package layout

import (
	"slices"

	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/registry"
)

// Check verifies lo against every layout invariant for reg.
func Check(reg *registry.Registry, lo nt.Layout) (err error) {

	err = isPermutation(reg, lo.Order)
	if err != nil {
		err = errors.Wrapf(nt.ErrCorruptState, "order: %s", err)
		return
	}

	for _, id := range lo.Order {
		visible, ok := lo.Visibility[id]
		if !ok {
			return errors.Wrapf(nt.ErrCorruptState, "no visibility for %q", id)
		}
		if !visible && !reg.CanHide(id) {
			return errors.Wrapf(nt.ErrCorruptState, "pinned column %q is hidden", id)
		}

		width, ok := lo.Sizing[id]
		if !ok {
			return errors.Wrapf(nt.ErrCorruptState, "no width for %q", id)
		}
		if reg.Clamp(id, width) != width {
			return errors.Wrapf(nt.ErrCorruptState, "width %d out of bounds for %q", width, id)
		}
	}

	if len(lo.Visibility) != len(lo.Order) || len(lo.Sizing) != len(lo.Order) {
		return errors.Wrapf(nt.ErrCorruptState, "entries for unknown columns")
	}
	return
}

// Repair re-derives whatever lo is missing or gets wrong from registry defaults,
// preserving valid entries. Each repair is reported as a problem wrapping ErrCorruptState.
func Repair(reg *registry.Registry, lo nt.Layout) (out nt.Layout, problems []error) {

	report := func(format string, args ...any) {
		problems = append(problems, errors.Wrapf(nt.ErrCorruptState, format, args...))
	}

	out = nt.Layout{}.Clone()
	seen := map[string]bool{}

	for _, id := range lo.Order {
		switch {
		case !reg.Has(id):
			report("dropping unknown id %q", id)
		case seen[id]:
			report("dropping duplicate id %q", id)
		default:
			seen[id] = true
			out.Order = append(out.Order, id)
		}
	}

	// missing ids go after their nearest registered predecessor
	ids := reg.Ids()
	for i, id := range ids {
		if seen[id] {
			continue
		}
		report("restoring missing id %q", id)

		pos := 0
		for j := i - 1; j >= 0; j-- {
			if idx := slices.Index(out.Order, ids[j]); idx >= 0 {
				pos = idx + 1
				break
			}
		}
		out.Order = slices.Insert(out.Order, pos, id)
		seen[id] = true
	}

	for _, id := range out.Order {
		col, _ := reg.Column(id)

		visible, ok := lo.Visibility[id]
		switch {
		case !ok:
			report("defaulting visibility for %q", id)
			visible = col.DefaultVisible()
		case !visible && !col.CanHide():
			report("showing pinned column %q", id)
			visible = true
		}
		out.Visibility[id] = visible

		width, ok := lo.Sizing[id]
		switch {
		case !ok:
			report("defaulting width for %q", id)
			width = col.Width
		case reg.Clamp(id, width) != width:
			report("clamping width %d for %q", width, id)
			width = reg.Clamp(id, width)
		}
		out.Sizing[id] = width
	}

	for id := range lo.Visibility {
		if !reg.Has(id) {
			report("dropping visibility for unknown id %q", id)
		}
	}
	for id := range lo.Sizing {
		if !reg.Has(id) {
			report("dropping width for unknown id %q", id)
		}
	}

	return
}
