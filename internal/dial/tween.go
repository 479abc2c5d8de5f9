package dial

import (
	"math"
	"time"
)

// Easing maps linear progress in [0, 1] to eased progress in [0, 1].
type Easing func(p float64) float64

// EaseOutCubic decelerates with 1-(1-p)^3.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// EaseOutQuart decelerates with 1-(1-p)^4.
func EaseOutQuart(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q*q
}

// Pacing selects how a tween advances between frames.
type Pacing int

const (
	// FramePaced derives progress from elapsed wall time at each frame.
	FramePaced Pacing = iota
	// FixedRate advances a fixed number of steps regardless of frame timing.
	FixedRate
)

// Frame is a request to call Step again after Delay. Seq identifies the run
// that issued it; frames from a superseded run are ignored.
type Frame struct {
	Seq   uint64
	Delay time.Duration
}

// Tween eases a displayed value toward the latest authoritative value.
type Tween struct {
	ease     Easing
	pacing   Pacing
	duration time.Duration
	interval time.Duration
	steps    int

	from    float64
	to      float64
	value   float64
	started time.Time
	step    int
	seq     uint64
	running bool
}

// NewTween returns an idle tween displaying initial. For FixedRate tweens
// interval is derived from rate (steps per second); for FramePaced tweens it
// is the frame interval.
func NewTween(ease Easing, pacing Pacing, duration, frameInterval time.Duration, rate int, initial float64) *Tween {
	t := &Tween{
		ease:     ease,
		pacing:   pacing,
		duration: duration,
		interval: frameInterval,
		from:     initial,
		to:       initial,
		value:    initial,
	}
	if pacing == FixedRate {
		t.steps = int(math.Round(duration.Seconds() * float64(rate)))
		if t.steps < 1 {
			t.steps = 1
		}
		t.interval = duration / time.Duration(t.steps)
	}
	return t
}

// Value returns the currently displayed value.
func (t *Tween) Value() float64 { return t.value }

// Goal returns the value the tween is heading to.
func (t *Tween) Goal() float64 { return t.to }

// Running reports whether a transition is in flight.
func (t *Tween) Running() bool { return t.running }

// Seq returns the sequence number of the current run.
func (t *Tween) Seq() uint64 { return t.seq }

// Set starts a transition from the displayed value to goal. Any in-flight
// transition is abandoned. It returns the first frame to schedule, or false
// when nothing needs animating.
func (t *Tween) Set(goal float64, now time.Time) (Frame, bool) {
	if goal == t.to && (t.running || t.value == goal) {
		return Frame{}, false
	}
	t.seq++
	t.from = t.value
	t.to = goal
	t.started = now
	t.step = 0
	if t.duration <= 0 || t.from == goal {
		t.value = goal
		t.running = false
		return Frame{}, false
	}
	t.running = true
	return Frame{Seq: t.seq, Delay: t.interval}, true
}

// Step advances the run identified by seq. It returns the next frame, or
// false when the run finished or seq is stale.
func (t *Tween) Step(seq uint64, now time.Time) (Frame, bool) {
	if !t.running || seq != t.seq {
		return Frame{}, false
	}

	var p float64
	switch t.pacing {
	case FixedRate:
		t.step++
		p = float64(t.step) / float64(t.steps)
	default:
		p = float64(now.Sub(t.started)) / float64(t.duration)
	}

	if p >= 1 {
		t.value = t.to
		t.running = false
		return Frame{}, false
	}
	if p < 0 {
		p = 0
	}
	t.value = t.from + (t.to-t.from)*t.ease(p)
	return Frame{Seq: t.seq, Delay: t.interval}, true
}

// Cancel abandons any in-flight transition, leaving the displayed value where it is.
func (t *Tween) Cancel() {
	t.seq++
	t.running = false
}
