package tui

import (
	"testing"

	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/model"
	"github.com/famdash/famdash/internal/tui/components"
)

func TestPointerHubReleaseIsIdempotent(t *testing.T) {
	h := newPointerHub()
	var moves, ups int
	release := h.Subscribe(func(dial.Point) { moves++ }, func() { ups++ })
	other := h.Subscribe(func(dial.Point) {}, func() {})

	h.Move(dial.Point{X: 1, Y: 2})
	h.Up()
	if moves != 1 || ups != 1 {
		t.Fatalf("moves=%d ups=%d, want 1 1", moves, ups)
	}

	release()
	release()
	if h.Active() != 1 {
		t.Fatalf("active = %d, want 1", h.Active())
	}
	h.Move(dial.Point{})
	if moves != 1 {
		t.Error("released subscriber still receives moves")
	}
	other()
	if h.Active() != 0 {
		t.Errorf("active = %d, want 0", h.Active())
	}
}

func TestPointerHubUpMayReleaseDuringDelivery(t *testing.T) {
	h := newPointerHub()
	var release func()
	release = h.Subscribe(func(dial.Point) {}, func() { release() })
	h.Up()
	if h.Active() != 0 {
		t.Errorf("active = %d after self-release", h.Active())
	}
}

func TestBoardRebuildClosesOldDials(t *testing.T) {
	b := newBoard()
	trackers := []model.Tracker{
		{ID: "a", Title: "Groceries", Kind: model.KindSpending, Current: 400, Target: 600},
	}
	if err := b.rebuild(dial.DefaultConfig(), trackers); err != nil {
		t.Fatal(err)
	}
	old := b.dials[0]
	old.Layout(dial.Geometry{Center: dial.Point{X: 50, Y: 50}, Radius: 20})
	b.sync(t0)
	if !old.PointerDown(old.HandlePoint()) {
		t.Fatal("drag did not start")
	}

	if err := b.rebuild(dial.DefaultConfig(), trackers); err != nil {
		t.Fatal(err)
	}
	if b.hub.Active() != 0 {
		t.Errorf("old dial leaked its pointer subscription")
	}
	if old.State() != dial.Idle {
		t.Error("old dial still dragging")
	}
}

func TestBoardAcceptTargetWritesTracker(t *testing.T) {
	b := newBoard()
	trackers := []model.Tracker{
		{ID: "a", Title: "Groceries", Kind: model.KindSpending, Current: 400, Target: 600},
		{ID: "b", Title: "Savings", Kind: model.KindSavings, Current: 100, Target: 1000},
	}
	if err := b.rebuild(dial.DefaultConfig(), trackers); err != nil {
		t.Fatal(err)
	}
	b.sync(t0)

	b.dials[1].Nudge(1)
	if b.trackers[1].Target != 1250 {
		t.Errorf("target = %.0f, want 1250", b.trackers[1].Target)
	}
	if b.dials[1].Target() != 1000 {
		t.Error("dial changed its own target before sync")
	}
	b.sync(t0)
	if b.dials[1].Target() != 1250 {
		t.Errorf("dial target after sync = %.0f", b.dials[1].Target())
	}
	if b.index("b") != 1 || b.index("zz") != -1 {
		t.Error("index lookup")
	}
}

func TestDialSlotsGrid(t *testing.T) {
	slots := dialSlots(5, 0, 2, 100, 40)
	if len(slots) != 2 || len(slots[0]) != 3 || len(slots[1]) != 2 {
		t.Fatalf("grid shape = %d rows", len(slots))
	}
	first := slots[0][0]
	if first.y != 2 || first.x != 0 {
		t.Errorf("first slot at (%d,%d)", first.x, first.y)
	}
	second := slots[1][0]
	if want := 2 + first.geom.Canvas.H + components.DialCardChrome; second.y != want {
		t.Errorf("second row y = %d, want %d", second.y, want)
	}
	total := 0
	for _, s := range slots[0] {
		total += s.geom.Outer.W
	}
	if total != 100 {
		t.Errorf("row width = %d, want 100", total)
	}
	if rows := slots[0][0].geom.Canvas.H; rows < minCanvasRows || rows > maxCanvasRows {
		t.Errorf("canvas rows %d out of bounds", rows)
	}
	if n := len(dialSlots(0, 0, 0, 100, 40)); n != 0 {
		t.Errorf("empty board has %d rows", n)
	}
}
