package dial

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// runTween delivers frames until the tween stops, returning the last frame time
// and the displayed values observed after each step.
func runTween(t *testing.T, tw *Tween, f Frame, now time.Time) (time.Time, []float64) {
	t.Helper()
	var seen []float64
	ok := true
	for i := 0; ok; i++ {
		if i > 10000 {
			t.Fatal("tween never finished")
		}
		now = now.Add(f.Delay)
		f, ok = tw.Step(f.Seq, now)
		seen = append(seen, tw.Value())
	}
	return now, seen
}

func TestEasingEndpointsAndMonotonic(t *testing.T) {
	for name, ease := range map[string]Easing{"cubic": EaseOutCubic, "quart": EaseOutQuart} {
		if ease(0) != 0 || ease(1) != 1 {
			t.Fatalf("%s: endpoints (%v, %v), want (0, 1)", name, ease(0), ease(1))
		}
		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := ease(float64(i) / 100)
			if v < prev {
				t.Fatalf("%s not monotonic at %d: %v < %v", name, i, v, prev)
			}
			prev = v
		}
	}
}

func TestFramePacedLandsExactly(t *testing.T) {
	tw := NewTween(EaseOutQuart, FramePaced, 500*time.Millisecond, time.Second/60, 0, 0)
	goal := 1234.567
	f, ok := tw.Set(goal, t0)
	if !ok {
		t.Fatal("Set returned no frame")
	}
	end, seen := runTween(t, tw, f, t0)

	if tw.Value() != goal {
		t.Fatalf("final value = %v, want exactly %v", tw.Value(), goal)
	}
	if tw.Running() {
		t.Fatal("tween still running after finishing")
	}
	if elapsed := end.Sub(t0); elapsed < 500*time.Millisecond {
		t.Fatalf("finished after %v, want at least 500ms", elapsed)
	}
	prev := 0.0
	for i, v := range seen {
		if v < prev || v > goal {
			t.Fatalf("step %d value %v not monotonic within [0, %v]", i, v, goal)
		}
		prev = v
	}
}

func TestFixedRateStepsAndLandsExactly(t *testing.T) {
	tw := NewTween(EaseOutCubic, FixedRate, 500*time.Millisecond, 0, 60, 100)
	f, ok := tw.Set(1000.1, t0)
	if !ok {
		t.Fatal("Set returned no frame")
	}
	if f.Delay != 500*time.Millisecond/30 {
		t.Fatalf("step interval = %v, want %v", f.Delay, 500*time.Millisecond/30)
	}
	_, seen := runTween(t, tw, f, t0)
	if len(seen) != 30 {
		t.Fatalf("took %d steps, want 30", len(seen))
	}
	if tw.Value() != 1000.1 {
		t.Fatalf("final value = %v, want exactly 1000.1", tw.Value())
	}
}

func TestInterruptedTweenRestartsFromDisplayedValue(t *testing.T) {
	tw := NewTween(EaseOutQuart, FramePaced, 500*time.Millisecond, 16*time.Millisecond, 0, 0)
	f, _ := tw.Set(100, t0)
	first := f.Seq

	now := t0
	for i := 0; i < 10; i++ {
		now = now.Add(f.Delay)
		f, _ = tw.Step(f.Seq, now)
	}
	mid := tw.Value()
	if mid <= 0 || mid >= 100 {
		t.Fatalf("midpoint value %v not strictly inside (0, 100)", mid)
	}

	f, ok := tw.Set(200, now)
	if !ok {
		t.Fatal("second Set returned no frame")
	}
	if f.Seq == first {
		t.Fatal("second run reused the first run's sequence")
	}

	// A frame from the abandoned run must not move the value.
	if _, ok := tw.Step(first, now.Add(time.Millisecond)); ok {
		t.Fatal("stale frame was accepted")
	}
	if tw.Value() != mid {
		t.Fatalf("stale frame changed value to %v", tw.Value())
	}

	// One millisecond into the new run the value is just past mid, not near 100.
	f, _ = tw.Step(f.Seq, now.Add(time.Millisecond))
	if v := tw.Value(); v < mid || v > mid+2 {
		t.Fatalf("restart value %v, want just above midpoint %v", v, mid)
	}

	// The new run lasts the full duration measured from the interruption.
	runStart := now
	end, _ := runTween(t, tw, f, now.Add(time.Millisecond))
	if tw.Value() != 200 {
		t.Fatalf("final value = %v, want 200", tw.Value())
	}
	if end.Sub(runStart) < 500*time.Millisecond {
		t.Fatalf("second run finished after %v, want at least 500ms", end.Sub(runStart))
	}
}

func TestSetSameGoalIsNoop(t *testing.T) {
	tw := NewTween(EaseOutCubic, FixedRate, 500*time.Millisecond, 0, 60, 0)
	f, _ := tw.Set(50, t0)
	if _, ok := tw.Set(50, t0.Add(time.Millisecond)); ok {
		t.Fatal("re-setting the in-flight goal restarted the tween")
	}
	if _, ok := tw.Step(f.Seq, t0.Add(f.Delay)); !ok {
		t.Fatal("original run was disturbed")
	}
}

func TestCancelStopsFrames(t *testing.T) {
	tw := NewTween(EaseOutQuart, FramePaced, 500*time.Millisecond, 16*time.Millisecond, 0, 0)
	f, _ := tw.Set(10, t0)
	tw.Cancel()
	if _, ok := tw.Step(f.Seq, t0.Add(f.Delay)); ok {
		t.Fatal("frame accepted after Cancel")
	}
	if tw.Running() {
		t.Fatal("tween running after Cancel")
	}
}

func TestZeroDurationJumps(t *testing.T) {
	tw := NewTween(EaseOutQuart, FramePaced, 0, 16*time.Millisecond, 0, 0)
	if _, ok := tw.Set(42, t0); ok {
		t.Fatal("zero-duration tween scheduled a frame")
	}
	if tw.Value() != 42 {
		t.Fatalf("value = %v, want 42", tw.Value())
	}
}
