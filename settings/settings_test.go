package settings

import (
	"context"
	"slices"
	"testing"

	nt "gridkit/entity"
	"gridkit/internal/logtest"
	"gridkit/registry"
	"gridkit/reorder"
	"gridkit/store"
)

const table = "documents"

func setup(t *testing.T, columns ...nt.Column) (*Modal, *store.Store, *store.Memory) {
	t.Helper()
	ctx := context.Background()

	if len(columns) == 0 {
		columns = []nt.Column{
			{Id: "name", Pinned: true},
			{Id: "date"},
			{Id: "actions", Pinned: true},
		}
	}

	lgr := &logtest.Recorder{}
	reg := registry.New(ctx, lgr, columns)
	mem := store.NewMemory(nil)
	st := store.New(ctx, mem, lgr)
	st.Register(ctx, table, reg)

	return New(table, reg, st, lgr), st, mem
}

func ids(cols []nt.Column) []string {

	out := []string{}
	for _, col := range cols {
		out = append(out, col.Id)
	}
	return out
}

func TestScenarioHideDate(t *testing.T) {
	ctx := context.Background()
	mdl, st, _ := setup(t)

	mdl.Open()
	mdl.MoveToHidden(ctx, "date")
	lo := mdl.Save(ctx)

	if !slices.Equal(lo.Order, []string{"name", "date", "actions"}) {
		t.Errorf("Order = %v", lo.Order)
	}
	want := map[string]bool{"name": true, "date": false, "actions": true}
	for id, visible := range want {
		if lo.Visibility[id] != visible {
			t.Errorf("Visibility[%q] = %t, want %t", id, lo.Visibility[id], visible)
		}
	}
	if !st.Layout(table).Equal(lo) {
		t.Error("save did not commit to the store")
	}
	if mdl.IsOpen() {
		t.Error("modal should close on save")
	}
}

func TestLists(t *testing.T) {
	mdl, _, _ := setup(t,
		nt.Column{Id: "a"},
		nt.Column{Id: "name", Pinned: true},
		nt.Column{Id: "b", Hidden: true},
		nt.Column{Id: "c"},
		nt.Column{Id: "actions", Pinned: true},
		nt.Column{Id: "d", Hidden: true},
	)
	mdl.Open()

	if got := ids(mdl.Hidden()); !slices.Equal(got, []string{"b", "d"}) {
		t.Errorf("Hidden() = %v", got)
	}
	if got := ids(mdl.Pinned()); !slices.Equal(got, []string{"name", "actions"}) {
		t.Errorf("Pinned() = %v", got)
	}
	if got := ids(mdl.Visible()); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Visible() = %v", got)
	}
}

func TestButtonsMatchDrag(t *testing.T) {
	ctx := context.Background()

	byButton, _, _ := setup(t)
	byButton.Open()
	byButton.MoveToHidden(ctx, "date")
	viaButton := byButton.Draft()

	byDrag, _, _ := setup(t)
	byDrag.Open()
	if err := byDrag.StartDrag("date"); err != nil {
		t.Fatalf("StartDrag() = %v", err)
	}
	byDrag.DragOver(reorder.Hidden, reorder.Point{}, nil)
	viaDrag := byDrag.Drop(ctx)

	if !viaButton.Equal(viaDrag) {
		t.Errorf("button %+v != drag %+v", viaButton, viaDrag)
	}

	byButton.MoveToVisible(ctx, "date")
	byDrag.StartDrag("date")
	byDrag.DragOver(reorder.Visible, reorder.Point{}, nil)
	viaDrag = byDrag.Drop(ctx)

	if !byButton.Draft().Equal(viaDrag) {
		t.Errorf("button %+v != drag %+v", byButton.Draft(), viaDrag)
	}
}

func TestDragReorders(t *testing.T) {
	ctx := context.Background()
	mdl, _, _ := setup(t,
		nt.Column{Id: "name", Pinned: true},
		nt.Column{Id: "a"},
		nt.Column{Id: "b"},
		nt.Column{Id: "c"},
	)
	mdl.Open()

	sibs := []reorder.Sibling{
		{Id: "a", Rect: reorder.Rect{Y: 0, W: 10, H: 1}},
		{Id: "b", Rect: reorder.Rect{Y: 1, W: 10, H: 1}},
		{Id: "c", Rect: reorder.Rect{Y: 2, W: 10, H: 1}},
	}

	mdl.StartDrag("c")
	mdl.DragOver(reorder.Visible, reorder.Point{X: 5, Y: 0}, sibs)

	if got := ids(mdl.Visible()); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("preview Visible() = %v", got)
	}

	lo := mdl.Drop(ctx)
	if !slices.Equal(lo.Order, []string{"name", "c", "a", "b"}) {
		t.Errorf("Order = %v", lo.Order)
	}
}

func TestPinnedNotDraggable(t *testing.T) {
	mdl, _, _ := setup(t)
	mdl.Open()

	if err := mdl.StartDrag("name"); err == nil {
		t.Error("StartDrag(pinned) should fail")
	}
	if lo := mdl.MoveToHidden(context.Background(), "actions"); !lo.Visibility["actions"] {
		t.Error("MoveToHidden(pinned) should be ignored")
	}
}

func TestDropOutsideKeepsDraft(t *testing.T) {
	ctx := context.Background()
	mdl, _, _ := setup(t)
	mdl.Open()
	before := mdl.Draft()

	mdl.StartDrag("date")
	mdl.DragOver(reorder.Hidden, reorder.Point{}, nil)
	mdl.DragOver(reorder.Outside, reorder.Point{}, nil)

	if lo := mdl.Drop(ctx); !lo.Equal(before) {
		t.Errorf("Drop() = %+v, want %+v", lo, before)
	}
}

func TestCancelRestores(t *testing.T) {
	ctx := context.Background()
	mdl, st, mem := setup(t,
		nt.Column{Id: "name", Pinned: true},
		nt.Column{Id: "a"},
		nt.Column{Id: "b"},
		nt.Column{Id: "c", Hidden: true},
	)
	before := st.Layout(table)

	mdl.Open()
	mdl.MoveToHidden(ctx, "a")
	mdl.MoveToVisible(ctx, "c")
	mdl.MoveTo(ctx, "c", 0)
	mdl.StartDrag("b")
	mdl.DragOver(reorder.Hidden, reorder.Point{}, nil)

	if !mdl.Dirty() {
		t.Error("Dirty() should be true with staged edits")
	}

	lo := mdl.Cancel()
	if !lo.Equal(before) || !st.Layout(table).Equal(before) {
		t.Errorf("Cancel() = %+v, want %+v", lo, before)
	}
	if mem.Saves != 0 {
		t.Errorf("cancel wrote %d times", mem.Saves)
	}

	mdl.Open()
	if !mdl.Draft().Equal(before) {
		t.Error("reopen should derive from the store")
	}
}

func TestSaveIdempotent(t *testing.T) {
	ctx := context.Background()
	mdl, st, mem := setup(t)

	mdl.Open()
	mdl.MoveToHidden(ctx, "date")
	first := mdl.Save(ctx)

	mdl.Open()
	second := mdl.Save(ctx)

	if !first.Equal(second) || !st.Layout(table).Equal(first) {
		t.Errorf("second save %+v != first %+v", second, first)
	}
	if mem.Saves != 1 {
		t.Errorf("got %d saves, want 1", mem.Saves)
	}
}

func TestSaveMidDragDiscardsPreview(t *testing.T) {
	ctx := context.Background()
	mdl, _, _ := setup(t)

	mdl.Open()
	mdl.StartDrag("date")
	mdl.DragOver(reorder.Hidden, reorder.Point{}, nil)

	lo := mdl.Save(ctx)
	if !lo.Visibility["date"] {
		t.Error("undropped preview should not be saved")
	}
}

func TestClosedIgnoresEdits(t *testing.T) {
	ctx := context.Background()
	mdl, st, _ := setup(t)

	lo := mdl.MoveToHidden(ctx, "date")
	if !lo.Visibility["date"] || !st.Layout(table).Visibility["date"] {
		t.Error("closed modal should not stage edits")
	}
	if err := mdl.StartDrag("date"); err == nil {
		t.Error("StartDrag() on closed modal should fail")
	}
}
