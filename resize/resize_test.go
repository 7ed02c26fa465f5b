package resize

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	nt "gridkit/entity"
	"gridkit/internal/logtest"
	"gridkit/registry"
)

func newController() *Controller {
	return New(registry.New(context.Background(), &logtest.Recorder{}, []nt.Column{
		{Id: "name", Pinned: true},
		{Id: "date", Width: 150, MinWidth: 100, MaxWidth: 600},
		{Id: "odd", Width: 250, MinWidth: 300, MaxWidth: 200},
	}))
}

func TestDrag(t *testing.T) {
	type tc struct {
		id    string
		moves []int
		want  int
	}

	tests := map[string]tc{
		"grows by delta": {
			id:    "date",
			moves: []int{520, 540, 560},
			want:  210,
		},
		"clamps at max": {
			id:    "date",
			moves: []int{1500},
			want:  600,
		},
		"clamps at min": {
			id:    "date",
			moves: []int{400, 300, 10},
			want:  100,
		},
		"no moves keeps width": {
			id:   "date",
			want: 150,
		},
		"min over max clamps to min": {
			id:    "odd",
			moves: []int{0},
			want:  300,
		},
		"min over max ignores max": {
			id:    "odd",
			moves: []int{900},
			want:  700,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rc := newController()
			col, _ := rc.reg.Column(tt.id)

			if err := rc.Start(tt.id, 500, col.Width); err != nil {
				t.Fatalf("Start() = %v", err)
			}
			for _, x := range tt.moves {
				rc.Move(x)
				rc.Frame()
			}

			id, width, ok := rc.End()
			if !ok || id != tt.id || width != tt.want {
				t.Errorf("End() = %q, %d, %t, want %q, %d", id, width, ok, tt.id, tt.want)
			}
			if rc.State() != Idle {
				t.Errorf("State() = %s, want idle", rc.State())
			}
		})
	}
}

func TestScenarioLargeDelta(t *testing.T) {
	rc := newController()

	rc.Start("date", 0, 150)
	rc.Move(1000)
	_, width, _ := rc.End()

	if width != 600 {
		t.Errorf("width = %d, want 600", width)
	}
}

func TestFrameThrottles(t *testing.T) {
	rc := newController()
	rc.Start("date", 100, 150)

	rc.Move(110)
	rc.Move(120)
	rc.Move(130)

	if _, width, _ := rc.Live(); width != 150 {
		t.Errorf("Live() before frame = %d, want 150", width)
	}

	width, changed := rc.Frame()
	if !changed || width != 180 {
		t.Errorf("Frame() = %d, %t, want 180, true", width, changed)
	}

	width, changed = rc.Frame()
	if changed || width != 180 {
		t.Errorf("idle Frame() = %d, %t, want 180, false", width, changed)
	}
}

func TestEndFlushesPending(t *testing.T) {
	rc := newController()
	rc.Start("date", 100, 150)
	rc.Move(175)

	if _, width, _ := rc.End(); width != 225 {
		t.Errorf("End() width = %d, want 225", width)
	}
}

func TestAbortRestores(t *testing.T) {
	rc := newController()
	rc.Start("date", 100, 150)
	rc.Move(400)
	rc.Frame()

	id, width, ok := rc.Abort()
	if !ok || id != "date" || width != 150 {
		t.Errorf("Abort() = %q, %d, %t, want date, 150", id, width, ok)
	}
	if _, _, active := rc.Live(); active {
		t.Error("Live() should be inactive after Abort")
	}
}

func TestExclusive(t *testing.T) {
	rc := newController()

	if err := rc.Start("date", 0, 150); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if err := rc.Start("name", 0, 150); !errors.Is(err, nt.ErrGestureActive) {
		t.Errorf("second Start() = %v, want ErrGestureActive", err)
	}
	if _, err := rc.Reset("date"); !errors.Is(err, nt.ErrGestureActive) {
		t.Errorf("Reset() while resizing = %v, want ErrGestureActive", err)
	}
}

func TestReset(t *testing.T) {
	rc := newController()

	width, err := rc.Reset("date")
	if err != nil || width != 150 {
		t.Errorf("Reset() = %d, %v, want 150", width, err)
	}
	if _, err := rc.Reset("ghost"); err == nil {
		t.Error("Reset() of unknown column should fail")
	}
}

func TestIdleIgnoresPointer(t *testing.T) {
	rc := newController()

	rc.Move(300)
	if _, changed := rc.Frame(); changed {
		t.Error("Frame() changed while idle")
	}
	if _, _, ok := rc.End(); ok {
		t.Error("End() ok while idle")
	}
	if _, _, ok := rc.Abort(); ok {
		t.Error("Abort() ok while idle")
	}
}
