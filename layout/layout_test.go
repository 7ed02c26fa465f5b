package layout

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/internal/logtest"
	"gridkit/registry"
)

func scenario() *registry.Registry {
	return registry.New(context.Background(), &logtest.Recorder{}, []nt.Column{
		{Id: "name", Pinned: true},
		{Id: "date", Width: 150, MinWidth: 100, MaxWidth: 600},
		{Id: "actions", Pinned: true},
	})
}

func wide() *registry.Registry {
	return registry.New(context.Background(), &logtest.Recorder{}, []nt.Column{
		{Id: "a"},
		{Id: "b"},
		{Id: "pin", Pinned: true},
		{Id: "c", Hidden: true},
		{Id: "d", MinWidth: 80, MaxWidth: 200},
		{Id: "e"},
	})
}

func TestDefaults(t *testing.T) {
	reg := wide()
	lo := Defaults(reg)

	if !slices.Equal(lo.Order, []string{"a", "b", "pin", "c", "d", "e"}) {
		t.Errorf("Order = %v", lo.Order)
	}
	if lo.Visibility["c"] {
		t.Error("c should start hidden")
	}
	if lo.Sizing["d"] != 150 {
		t.Errorf("d width = %d, want 150", lo.Sizing["d"])
	}
	if err := Check(reg, lo); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestApply(t *testing.T) {
	type tc struct {
		cmd      nt.Command
		order    []string
		visible  []string
		rejected bool
	}

	tests := map[string]tc{
		"hide keeps order": {
			cmd:     nt.Hide{Id: "b"},
			order:   []string{"a", "b", "pin", "c", "d", "e"},
			visible: []string{"a", "pin", "d", "e"},
		},
		"hide pinned is rejected": {
			cmd:      nt.Hide{Id: "pin"},
			order:    []string{"a", "b", "pin", "c", "d", "e"},
			visible:  []string{"a", "b", "pin", "d", "e"},
			rejected: true,
		},
		"show in place": {
			cmd:     nt.Show{Id: "c", At: -1},
			order:   []string{"a", "b", "pin", "c", "d", "e"},
			visible: []string{"a", "b", "pin", "c", "d", "e"},
		},
		"show at front": {
			cmd:     nt.Show{Id: "c", At: 0},
			order:   []string{"c", "a", "b", "pin", "d", "e"},
			visible: []string{"c", "a", "b", "pin", "d", "e"},
		},
		"show past end": {
			cmd:     nt.Show{Id: "c", At: 99},
			order:   []string{"a", "b", "pin", "d", "e", "c"},
			visible: []string{"a", "b", "pin", "d", "e", "c"},
		},
		"move visible forward": {
			cmd:     nt.Show{Id: "a", At: 2},
			order:   []string{"b", "pin", "c", "d", "a", "e"},
			visible: []string{"b", "pin", "d", "a", "e"},
		},
		"show unknown is rejected": {
			cmd:      nt.Show{Id: "zzz", At: 0},
			order:    []string{"a", "b", "pin", "c", "d", "e"},
			visible:  []string{"a", "b", "pin", "d", "e"},
			rejected: true,
		},
		"reorder permutation": {
			cmd:     nt.Reorder{Ids: []string{"e", "d", "c", "pin", "b", "a"}},
			order:   []string{"e", "d", "c", "pin", "b", "a"},
			visible: []string{"e", "d", "pin", "b", "a"},
		},
		"reorder with omission is rejected": {
			cmd:      nt.Reorder{Ids: []string{"e", "d", "c", "pin", "b"}},
			order:    []string{"a", "b", "pin", "c", "d", "e"},
			visible:  []string{"a", "b", "pin", "d", "e"},
			rejected: true,
		},
		"reorder with duplicate is rejected": {
			cmd:      nt.Reorder{Ids: []string{"a", "a", "pin", "c", "d", "e"}},
			order:    []string{"a", "b", "pin", "c", "d", "e"},
			visible:  []string{"a", "b", "pin", "d", "e"},
			rejected: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			reg := wide()
			before := Defaults(reg)
			pristine := before.Clone()

			out, err := Apply(reg, before, tt.cmd)
			if tt.rejected != (err != nil) {
				t.Fatalf("Apply() err = %v, rejected want %t", err, tt.rejected)
			}
			if err != nil && !errors.Is(err, nt.ErrRejected) {
				t.Errorf("Apply() err = %v, want ErrRejected", err)
			}
			if !slices.Equal(out.Order, tt.order) {
				t.Errorf("Order = %v, want %v", out.Order, tt.order)
			}
			if !slices.Equal(out.Visible(), tt.visible) {
				t.Errorf("Visible() = %v, want %v", out.Visible(), tt.visible)
			}
			if !before.Equal(pristine) {
				t.Error("Apply mutated its input")
			}
			if err := Check(reg, out); err != nil {
				t.Errorf("Check() = %v", err)
			}
		})
	}
}

func TestApplyResize(t *testing.T) {
	reg := scenario()
	lo := Defaults(reg)

	for width, want := range map[int]int{50: 100, 9999: 600, 321: 321} {
		out, err := Apply(reg, lo, nt.Resize{Id: "date", Width: width})
		if err != nil {
			t.Fatalf("Apply() err = %v", err)
		}
		if out.Sizing["date"] != want {
			t.Errorf("Resize(%d) = %d, want %d", width, out.Sizing["date"], want)
		}
	}
}

func TestScenarioHideDate(t *testing.T) {
	reg := scenario()

	out, err := Apply(reg, Defaults(reg), nt.Hide{Id: "date"})
	if err != nil {
		t.Fatalf("Apply() err = %v", err)
	}
	if !slices.Equal(out.Order, []string{"name", "date", "actions"}) {
		t.Errorf("Order = %v", out.Order)
	}
	want := map[string]bool{"name": true, "date": false, "actions": true}
	for id, visible := range want {
		if out.Visibility[id] != visible {
			t.Errorf("Visibility[%q] = %t, want %t", id, out.Visibility[id], visible)
		}
	}
}

func TestHideThenShowRestoresPlacement(t *testing.T) {
	reg := wide()
	lo := Defaults(reg)

	out, err := ApplyAll(reg, lo,
		nt.Hide{Id: "d"},
		nt.Show{Id: "e", At: 0},
		nt.Show{Id: "d", At: -1},
	)
	if err != nil {
		t.Fatalf("ApplyAll() err = %v", err)
	}
	if !slices.Equal(out.Order, []string{"e", "a", "b", "pin", "c", "d"}) {
		t.Errorf("Order = %v", out.Order)
	}
}

func TestApplyAllRollsBack(t *testing.T) {
	reg := wide()
	lo := Defaults(reg)

	out, err := ApplyAll(reg, lo, nt.Hide{Id: "a"}, nt.Hide{Id: "pin"})
	if !errors.Is(err, nt.ErrRejected) {
		t.Fatalf("ApplyAll() err = %v, want ErrRejected", err)
	}
	if !out.Equal(lo) {
		t.Errorf("ApplyAll() = %+v, want input back", out)
	}
}

func TestApplyPreservesInvariants(t *testing.T) {
	reg := wide()
	ids := append(reg.Ids(), "bogus")
	rnd := rand.New(rand.NewPCG(7, 11))

	lo := Defaults(reg)
	for step := 0; step < 2000; step++ {
		id := ids[rnd.IntN(len(ids))]

		var cmd nt.Command
		switch rnd.IntN(4) {
		case 0:
			cmd = nt.Show{Id: id, At: rnd.IntN(8) - 1}
		case 1:
			cmd = nt.Hide{Id: id}
		case 2:
			perm := slices.Clone(ids[:len(ids)-1])
			rnd.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
			if rnd.IntN(5) == 0 {
				perm = perm[1:]
			}
			cmd = nt.Reorder{Ids: perm}
		case 3:
			cmd = nt.Resize{Id: id, Width: rnd.IntN(1000) - 100}
		}

		lo, _ = Apply(reg, lo, cmd)
		if err := Check(reg, lo); err != nil {
			t.Fatalf("step %d %#v: %v", step, cmd, err)
		}
	}
}
