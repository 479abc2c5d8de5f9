package dial

import (
	"time"

	"github.com/famdash/famdash/internal/model"
)

// InteractionState is the drag state of a dial.
type InteractionState int

const (
	Idle InteractionState = iota
	Dragging
)

func (s InteractionState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// PointerSource delivers pointer moves and releases from anywhere on screen.
// Subscribe returns a release func that detaches both callbacks; calling it
// more than once is harmless.
type PointerSource interface {
	Subscribe(move func(Point), up func()) (release func())
}

// Geometry is where the host drew the dial, in the host's pointer space.
type Geometry struct {
	Center Point
	Radius float64
}

// TweenID names one of the dial's two animated values.
type TweenID int

const (
	// ReadoutTween animates the large current-value readout.
	ReadoutTween TweenID = iota
	// LabelTween animates the small target counter.
	LabelTween
)

// FrameRequest asks the host to call Advance(Tween, Seq, now) after Delay.
type FrameRequest struct {
	Tween TweenID
	Seq   uint64
	Delay time.Duration
}

// Dial is one radial target gauge. It reads the authoritative (current,
// target) pair from its host and proposes new targets through OnTargetChange;
// it never changes target itself.
type Dial struct {
	cfg   Config
	title string
	kind  model.TrackerKind
	mode  Mode

	current float64
	target  float64

	// OnTargetChange receives every proposed target. Never called for Fixed modes.
	OnTargetChange func(float64)

	src       PointerSource
	geom      Geometry
	state     InteractionState
	dragAngle float64
	release   func()

	readout *Tween
	label   *Tween
	closed  bool
}

// New builds a dial for tracker t. Displayed values start at zero; call
// SetValues to animate them to the tracker's values.
func New(cfg Config, t model.Tracker, src PointerSource, onChange func(float64)) (*Dial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := ModeFor(t.Kind, t.Current, t.Target, cfg.CreditRange)
	if err != nil {
		return nil, err
	}
	return &Dial{
		cfg:            cfg,
		title:          t.Title,
		kind:           t.Kind,
		mode:           mode,
		OnTargetChange: onChange,
		src:            src,
		readout:        NewTween(EaseOutQuart, FramePaced, cfg.ReadoutDuration, cfg.FrameInterval, 0, 0),
		label:          NewTween(EaseOutCubic, FixedRate, cfg.LabelDuration, 0, cfg.LabelRate, 0),
	}, nil
}

func (d *Dial) Title() string           { return d.title }
func (d *Dial) Kind() model.TrackerKind { return d.kind }
func (d *Dial) Config() Config          { return d.cfg }
func (d *Dial) Mode() Mode              { return d.mode }
func (d *Dial) Current() float64        { return d.current }
func (d *Dial) Target() float64         { return d.target }
func (d *Dial) State() InteractionState { return d.state }
func (d *Dial) Geometry() Geometry      { return d.geom }

// Draggable reports whether the handle accepts drags and nudges.
func (d *Dial) Draggable() bool {
	_, ok := d.mode.(Bounded)
	return ok
}

// Percentage returns the authoritative sweep percentage.
func (d *Dial) Percentage() float64 {
	return Percentage(d.mode)
}

// ValueAngle returns the angle the authoritative values map to.
func (d *Dial) ValueAngle() float64 {
	return d.cfg.AngleForPercent(d.Percentage())
}

// HandleAngle returns where the handle is drawn: the drag angle while
// dragging, otherwise the authoritative angle.
func (d *Dial) HandleAngle() float64 {
	if d.state == Dragging {
		return d.dragAngle
	}
	return d.ValueAngle()
}

// HandlePoint returns the handle's position in the host's space.
func (d *Dial) HandlePoint() Point {
	c := d.geom.Center
	return PolarToCartesian(c.X, c.Y, d.geom.Radius, d.HandleAngle())
}

// DisplayedValue returns the animated current-value readout.
func (d *Dial) DisplayedValue() float64 { return d.readout.Value() }

// DisplayedTarget returns the animated target counter.
func (d *Dial) DisplayedTarget() float64 { return d.label.Value() }

// Animating reports whether either displayed value is still easing.
func (d *Dial) Animating() bool {
	return d.readout.Running() || d.label.Running()
}

// Layout records where the host drew the dial.
func (d *Dial) Layout(g Geometry) {
	d.geom = g
}

// SetValues replaces the authoritative pair and restarts the displayed-value
// transitions that changed. The returned frames must be scheduled by the host.
func (d *Dial) SetValues(current, target float64, now time.Time) []FrameRequest {
	if d.closed {
		return nil
	}
	mode, err := ModeFor(d.kind, current, target, d.cfg.CreditRange)
	if err != nil {
		// kind was validated in New
		return nil
	}
	d.mode = mode
	d.current = current
	d.target = target

	var frames []FrameRequest
	if f, ok := d.readout.Set(current, now); ok {
		frames = append(frames, FrameRequest{Tween: ReadoutTween, Seq: f.Seq, Delay: f.Delay})
	}
	if d.Draggable() {
		if f, ok := d.label.Set(target, now); ok {
			frames = append(frames, FrameRequest{Tween: LabelTween, Seq: f.Seq, Delay: f.Delay})
		}
	}
	return frames
}

// Advance delivers a scheduled frame. It returns the follow-up frame, or
// false when the animation finished, was superseded or the dial is closed.
func (d *Dial) Advance(id TweenID, seq uint64, now time.Time) (FrameRequest, bool) {
	if d.closed {
		return FrameRequest{}, false
	}
	tw := d.readout
	if id == LabelTween {
		tw = d.label
	}
	f, ok := tw.Step(seq, now)
	if !ok {
		return FrameRequest{}, false
	}
	return FrameRequest{Tween: id, Seq: f.Seq, Delay: f.Delay}, true
}

// HitHandle reports whether p falls on the handle.
func (d *Dial) HitHandle(p Point) bool {
	return p.Dist(d.HandlePoint()) <= d.geom.Radius*d.cfg.HandleHitRatio
}

// PointerDown starts a drag when p is on the handle of a draggable dial.
// It reports whether a drag started.
func (d *Dial) PointerDown(p Point) bool {
	if d.closed || d.state == Dragging || !d.Draggable() || !d.HitHandle(p) {
		return false
	}
	d.dragAngle = d.ValueAngle()
	d.state = Dragging
	if d.src != nil {
		d.release = d.src.Subscribe(d.pointerMove, d.pointerUp)
	}
	return true
}

func (d *Dial) pointerMove(p Point) {
	if d.state != Dragging {
		return
	}
	d.dragAngle = d.cfg.DragAngle(d.geom.Center, p)
	d.propose(d.cfg.TargetForAngle(d.current, d.dragAngle))
}

func (d *Dial) pointerUp() {
	d.endDrag()
}

func (d *Dial) endDrag() {
	if d.release != nil {
		release := d.release
		d.release = nil
		release()
	}
	d.state = Idle
	d.dragAngle = 0
}

// Nudge proposes target moved by dir steps (+1 or -1). It reports whether a
// proposal was made.
func (d *Dial) Nudge(dir int) bool {
	if d.closed || !d.Draggable() {
		return false
	}
	d.propose(d.cfg.Nudge(d.target, dir))
	return true
}

func (d *Dial) propose(target float64) {
	if d.OnTargetChange == nil || !d.Draggable() {
		return
	}
	d.OnTargetChange(clamp(target, d.cfg.MinTarget, d.cfg.MaxTarget))
}

// Close ends any drag, releases the pointer subscription and cancels pending
// animation frames. It is safe to call more than once.
func (d *Dial) Close() {
	d.endDrag()
	d.readout.Cancel()
	d.label.Cancel()
	d.closed = true
}
