package dial

import (
	"errors"
	"math"
	"testing"

	"github.com/famdash/famdash/internal/model"
)

// fakePointers records subscriptions and lets tests fire screen-wide events.
type fakePointers struct {
	subscribed int
	released   int
	active     map[int]struct {
		move func(Point)
		up   func()
	}
	next int
}

func newFakePointers() *fakePointers {
	return &fakePointers{active: make(map[int]struct {
		move func(Point)
		up   func()
	})}
}

func (f *fakePointers) Subscribe(move func(Point), up func()) func() {
	id := f.next
	f.next++
	f.subscribed++
	f.active[id] = struct {
		move func(Point)
		up   func()
	}{move, up}
	return func() {
		if _, ok := f.active[id]; !ok {
			return
		}
		delete(f.active, id)
		f.released++
	}
}

func (f *fakePointers) move(p Point) {
	for _, s := range f.active {
		s.move(p)
	}
}

func (f *fakePointers) up() {
	subs := make([]func(), 0, len(f.active))
	for _, s := range f.active {
		subs = append(subs, s.up)
	}
	for _, up := range subs {
		up()
	}
}

type harness struct {
	dial      *Dial
	pointers  *fakePointers
	proposals []float64
}

func newHarness(t *testing.T, kind model.TrackerKind, current, target float64) *harness {
	t.Helper()
	h := &harness{pointers: newFakePointers()}
	d, err := New(DefaultConfig(), model.Tracker{Title: "Groceries", Kind: kind}, h.pointers, func(v float64) {
		h.proposals = append(h.proposals, v)
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.SetValues(current, target, t0)
	d.Layout(Geometry{Center: Point{100, 100}, Radius: 50})
	h.dial = d
	return h
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(DefaultConfig(), model.Tracker{Kind: model.TrackerKind(9)}, nil, nil)
	if !errors.Is(err, model.ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartAngle = 200
	_, err := New(cfg, model.Tracker{Kind: model.KindSpending}, nil, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestHandleFollowsAuthoritativeValues(t *testing.T) {
	h := newHarness(t, model.KindSpending, 750, 1000)
	if got := h.dial.Percentage(); got != 75 {
		t.Fatalf("Percentage = %v, want 75", got)
	}
	if got := h.dial.HandleAngle(); got != 60 {
		t.Fatalf("HandleAngle = %v, want 60", got)
	}
}

func TestDragProposesTargetsAndReleases(t *testing.T) {
	h := newHarness(t, model.KindSpending, 750, 1000)
	d := h.dial

	if !d.PointerDown(d.HandlePoint()) {
		t.Fatal("PointerDown on handle did not start a drag")
	}
	if d.State() != Dragging {
		t.Fatalf("state = %v, want dragging", d.State())
	}
	if len(h.pointers.active) != 1 {
		t.Fatalf("active subscriptions = %d, want 1", len(h.pointers.active))
	}

	h.pointers.move(Point{100, 50}) // straight up: half the sweep
	if len(h.proposals) != 1 || h.proposals[0] != 1500 {
		t.Fatalf("proposals = %v, want [1500]", h.proposals)
	}
	if math.Abs(d.HandleAngle()) > 1e-9 {
		t.Fatalf("handle angle while dragging = %v, want 0", d.HandleAngle())
	}

	// The dial never writes target itself.
	if d.Target() != 1000 {
		t.Fatalf("Target = %v, want untouched 1000", d.Target())
	}

	h.pointers.up()
	if d.State() != Idle {
		t.Fatalf("state after up = %v, want idle", d.State())
	}
	if len(h.pointers.active) != 0 {
		t.Fatalf("active subscriptions after up = %d, want 0", len(h.pointers.active))
	}
	if d.HandleAngle() != 60 {
		t.Fatalf("handle angle after up = %v, want authoritative 60", d.HandleAngle())
	}
}

func TestDragIntoDeadZoneClampsToEnd(t *testing.T) {
	h := newHarness(t, model.KindSpending, 750, 1000)
	d := h.dial
	d.PointerDown(d.HandlePoint())
	h.pointers.move(Point{100, 150}) // straight down, the dead-zone midpoint

	if d.HandleAngle() != 120 {
		t.Fatalf("handle angle = %v, want 120", d.HandleAngle())
	}
	if got := h.proposals[len(h.proposals)-1]; got != 750 {
		t.Fatalf("proposal = %v, want 750 (full sweep)", got)
	}
}

func TestDragToZeroMarkProposesMax(t *testing.T) {
	h := newHarness(t, model.KindSpending, 750, 1000)
	d := h.dial
	d.PointerDown(d.HandlePoint())
	h.pointers.move(Point{60, 140}) // lower left, clamps to the sweep start

	if d.HandleAngle() != -120 {
		t.Fatalf("handle angle = %v, want -120", d.HandleAngle())
	}
	if got := h.proposals[len(h.proposals)-1]; got != 50000 {
		t.Fatalf("proposal = %v, want 50000", got)
	}
}

func TestPointerDownOffHandleIgnored(t *testing.T) {
	h := newHarness(t, model.KindSpending, 750, 1000)
	if h.dial.PointerDown(Point{100, 100}) {
		t.Fatal("PointerDown at the center started a drag")
	}
	if h.pointers.subscribed != 0 {
		t.Fatalf("subscribed = %d, want 0", h.pointers.subscribed)
	}
}

func TestFixedModeIsNotDraggable(t *testing.T) {
	h := newHarness(t, model.KindCreditScore, 700, 0)
	d := h.dial
	if d.Draggable() {
		t.Fatal("credit-score dial reports draggable")
	}
	if d.PointerDown(d.HandlePoint()) {
		t.Fatal("PointerDown started a drag in fixed mode")
	}
	if d.Nudge(1) {
		t.Fatal("Nudge accepted in fixed mode")
	}
	if h.pointers.subscribed != 0 || len(h.proposals) != 0 {
		t.Fatalf("subscribed=%d proposals=%v, want none", h.pointers.subscribed, h.proposals)
	}
}

func TestRepeatedDragsReleaseEverySubscription(t *testing.T) {
	h := newHarness(t, model.KindSavings, 400, 2000)
	d := h.dial
	for i := 0; i < 5; i++ {
		if !d.PointerDown(d.HandlePoint()) {
			t.Fatalf("drag %d did not start", i)
		}
		// A second press while dragging must not subscribe again.
		d.PointerDown(d.HandlePoint())
		h.pointers.up()
		h.pointers.up()
	}
	if h.pointers.subscribed != 5 || h.pointers.released != 5 {
		t.Fatalf("subscribed=%d released=%d, want 5/5", h.pointers.subscribed, h.pointers.released)
	}
	if len(h.pointers.active) != 0 {
		t.Fatalf("leaked %d subscriptions", len(h.pointers.active))
	}
}

func TestCloseMidDragReleasesAndCancels(t *testing.T) {
	h := newHarness(t, model.KindSpending, 750, 1000)
	d := h.dial
	frames := d.SetValues(800, 1000, t0)
	if len(frames) == 0 {
		t.Fatal("value change scheduled no frames")
	}
	d.PointerDown(d.HandlePoint())

	d.Close()
	d.Close()

	if d.State() != Idle {
		t.Fatalf("state after Close = %v, want idle", d.State())
	}
	if h.pointers.released != 1 || len(h.pointers.active) != 0 {
		t.Fatalf("released=%d active=%d, want 1/0", h.pointers.released, len(h.pointers.active))
	}
	for _, f := range frames {
		if _, ok := d.Advance(f.Tween, f.Seq, t0.Add(f.Delay)); ok {
			t.Fatalf("frame for tween %d survived Close", f.Tween)
		}
	}
	if d.PointerDown(d.HandlePoint()) {
		t.Fatal("closed dial started a drag")
	}
}

func TestNudge(t *testing.T) {
	h := newHarness(t, model.KindSpending, 50, 100)
	if !h.dial.Nudge(-1) {
		t.Fatal("Nudge rejected")
	}
	if h.proposals[0] != 100 {
		t.Fatalf("decrement at minimum proposed %v, want 100", h.proposals[0])
	}
	h.dial.Nudge(1)
	if h.proposals[1] != 350 {
		t.Fatalf("increment proposed %v, want 350", h.proposals[1])
	}
}

func TestDisplayedValuesAnimateToAuthoritative(t *testing.T) {
	h := newHarness(t, model.KindIncome, 0, 0)
	d := h.dial
	frames := d.SetValues(3210.5, 4000, t0)
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2 (readout and label)", len(frames))
	}

	now := t0
	pending := frames
	for i := 0; len(pending) > 0; i++ {
		if i > 10000 {
			t.Fatal("animation never settled")
		}
		f := pending[0]
		pending = pending[1:]
		now = now.Add(f.Delay)
		if next, ok := d.Advance(f.Tween, f.Seq, now); ok {
			pending = append(pending, next)
		}
	}

	if d.DisplayedValue() != 3210.5 {
		t.Fatalf("DisplayedValue = %v, want 3210.5", d.DisplayedValue())
	}
	if d.DisplayedTarget() != 4000 {
		t.Fatalf("DisplayedTarget = %v, want 4000", d.DisplayedTarget())
	}
	if d.Animating() {
		t.Fatal("still animating after all frames")
	}
}

func TestFixedModeDoesNotAnimateTargetLabel(t *testing.T) {
	h := newHarness(t, model.KindCreditScore, 0, 0)
	frames := h.dial.SetValues(712, 999, t0)
	if len(frames) != 1 || frames[0].Tween != ReadoutTween {
		t.Fatalf("frames = %+v, want only the readout", frames)
	}
}
