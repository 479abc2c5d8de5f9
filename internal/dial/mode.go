package dial

import (
	"fmt"
	"math"

	"github.com/famdash/famdash/internal/model"
)

// Mode is the value mapping a dial uses. It is either Bounded or Fixed.
type Mode interface {
	isMode()
}

// Bounded measures Current against a user-adjustable Target. The handle is draggable.
type Bounded struct {
	Current float64
	Target  float64
}

// Fixed places Current on a constant Range. The handle is not draggable.
type Fixed struct {
	Current float64
	Range   Range
}

func (Bounded) isMode() {}
func (Fixed) isMode()   {}

// ModeFor returns the mode a tracker of the given kind uses.
func ModeFor(kind model.TrackerKind, current, target float64, credit Range) (Mode, error) {
	switch kind {
	case model.KindSpending, model.KindIncome, model.KindSavings:
		return Bounded{Current: current, Target: target}, nil
	case model.KindCreditScore:
		return Fixed{Current: current, Range: credit}, nil
	}
	return nil, fmt.Errorf("%w: %d", model.ErrUnknownKind, int(kind))
}

// Percentage returns how far along the sweep the mode's value sits, in [0, 100].
func Percentage(m Mode) float64 {
	switch m := m.(type) {
	case Bounded:
		if m.Target <= 0 {
			return 0
		}
		return clamp(m.Current/m.Target, 0, 1) * 100
	case Fixed:
		span := m.Range.Max - m.Range.Min
		if span <= 0 {
			return 0
		}
		return (m.Range.Clamp(m.Current) - m.Range.Min) / span * 100
	}
	panic(fmt.Sprintf("dial: unhandled mode %T", m))
}

// AngleForPercent maps a sweep percentage to a dial angle.
func (c Config) AngleForPercent(pct float64) float64 {
	return c.StartAngle + pct/100*c.Sweep()
}

// PercentForAngle maps a dial angle back to a sweep percentage.
func (c Config) PercentForAngle(angle float64) float64 {
	return (angle - c.StartAngle) / c.Sweep() * 100
}

// TargetForAngle returns the target that would put current at angle.
// At or below the snap threshold it proposes MaxTarget.
func (c Config) TargetForAngle(current, angle float64) float64 {
	pct := c.PercentForAngle(angle)
	if pct <= c.SnapThreshold {
		return c.MaxTarget
	}
	return math.Round(clamp(current/(pct/100), c.MinTarget, c.MaxTarget))
}

// Nudge returns target moved by dir steps, kept inside [MinTarget, MaxTarget].
func (c Config) Nudge(target float64, dir int) float64 {
	return clamp(target+float64(dir)*c.NudgeStep, c.MinTarget, c.MaxTarget)
}

// PointerAngle returns the raw angle of p around center, clockwise from
// 12 o'clock, normalized to [0, 360).
func PointerAngle(center, p Point) float64 {
	dx := p.X - center.X
	dy := p.Y - center.Y
	return normalize(math.Atan2(dy, dx)*180/math.Pi + 90)
}

// tieEpsilon absorbs atan2 rounding so a pointer straight below the center
// counts as the dead-zone midpoint.
const tieEpsilon = 1e-9

// ClampDeadZone snaps a normalized angle out of the empty sector below the
// sweep to the nearer sweep boundary. Angles already on the sweep are returned
// unchanged.
func (c Config) ClampDeadZone(raw float64) float64 {
	width := 360 - c.Sweep()
	if width <= 0 {
		return raw
	}
	end := normalize(c.EndAngle)
	start := normalize(c.EndAngle + width)
	d := normalize(raw - end)
	if d <= 0 || d >= width {
		return raw
	}
	toEnd, toStart := d, width-d
	switch {
	case math.Abs(toEnd-toStart) < tieEpsilon:
		if c.DeadZoneTie == TieToStart {
			return start
		}
		return end
	case toEnd < toStart:
		return end
	default:
		return start
	}
}

// SweepAngle converts a normalized angle into the sweep's own frame, so the
// result lies in [StartAngle, StartAngle+360). For the default sweep this is
// the signed angle in (-180, 180].
func (c Config) SweepAngle(normalized float64) float64 {
	return c.StartAngle + normalize(normalized-c.StartAngle)
}

// DragAngle turns a pointer position into the dial angle the handle follows.
func (c Config) DragAngle(center, p Point) float64 {
	return c.SweepAngle(c.ClampDeadZone(PointerAngle(center, p)))
}
