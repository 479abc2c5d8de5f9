// Package dial implements the radial target dial: the gauge geometry, the
// drag-to-set-target interaction and the eased readout animation.
//
// The package is renderer-agnostic. A host (the TUI, the SVG exporter) feeds it
// pointer positions in its own coordinate space through Layout, PointerDown and
// a PointerSource, and schedules the frames returned by SetValues and Advance.
package dial

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid dial config")

// DeadZoneTie decides where a pointer exactly halfway through the dead zone lands.
type DeadZoneTie int

const (
	// TieToEnd resolves the midpoint to the end of the sweep (120 degrees by default).
	TieToEnd DeadZoneTie = iota
	// TieToStart resolves the midpoint to the start of the sweep (-120 degrees by default).
	TieToStart
)

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Clamp returns v limited to [r.Min, r.Max].
func (r Range) Clamp(v float64) float64 {
	return clamp(v, r.Min, r.Max)
}

// Config holds the dial's geometry, target limits and animation tuning.
type Config struct {
	StartAngle float64 // degrees, clockwise from 12 o'clock
	EndAngle   float64

	MinTarget float64
	MaxTarget float64
	NudgeStep float64

	// SnapThreshold is the sweep percentage at or below which a drag proposes
	// MaxTarget instead of dividing by a near-zero fraction.
	SnapThreshold float64
	DeadZoneTie   DeadZoneTie

	// CreditRange is the fixed scale used by credit-score trackers.
	CreditRange Range

	ReadoutDuration time.Duration // quartic, frame-paced
	LabelDuration   time.Duration // cubic, fixed rate
	LabelRate       int           // label steps per second
	FrameInterval   time.Duration // frame pacing for the readout

	// HandleHitRatio is the handle's hit radius as a fraction of the dial radius.
	HandleHitRatio float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		StartAngle:      -120,
		EndAngle:        120,
		MinTarget:       100,
		MaxTarget:       50000,
		NudgeStep:       250,
		SnapThreshold:   0.1,
		DeadZoneTie:     TieToEnd,
		CreditRange:     Range{Min: 300, Max: 850},
		ReadoutDuration: 500 * time.Millisecond,
		LabelDuration:   500 * time.Millisecond,
		LabelRate:       60,
		FrameInterval:   time.Second / 60,
		HandleHitRatio:  0.2,
	}
}

// Sweep returns the angular extent of the dial in degrees.
func (c Config) Sweep() float64 {
	return c.EndAngle - c.StartAngle
}

// Validate checks the structural invariants of the config.
func (c Config) Validate() error {
	switch {
	case c.StartAngle >= c.EndAngle:
		return fmt.Errorf("%w: start angle %.1f must be below end angle %.1f", ErrInvalidConfig, c.StartAngle, c.EndAngle)
	case c.Sweep() > 360:
		return fmt.Errorf("%w: sweep %.1f exceeds 360 degrees", ErrInvalidConfig, c.Sweep())
	case c.MinTarget < 0 || c.MinTarget >= c.MaxTarget:
		return fmt.Errorf("%w: target range [%.0f, %.0f]", ErrInvalidConfig, c.MinTarget, c.MaxTarget)
	case c.NudgeStep <= 0:
		return fmt.Errorf("%w: nudge step must be positive", ErrInvalidConfig)
	case c.SnapThreshold < 0 || c.SnapThreshold >= 100:
		return fmt.Errorf("%w: snap threshold %.2f outside [0, 100)", ErrInvalidConfig, c.SnapThreshold)
	case c.DeadZoneTie != TieToEnd && c.DeadZoneTie != TieToStart:
		return fmt.Errorf("%w: dead zone tie %d", ErrInvalidConfig, c.DeadZoneTie)
	case c.CreditRange.Min >= c.CreditRange.Max:
		return fmt.Errorf("%w: credit range [%.0f, %.0f]", ErrInvalidConfig, c.CreditRange.Min, c.CreditRange.Max)
	case c.ReadoutDuration < 0 || c.LabelDuration < 0:
		return fmt.Errorf("%w: negative animation duration", ErrInvalidConfig)
	case c.LabelRate <= 0:
		return fmt.Errorf("%w: label rate must be positive", ErrInvalidConfig)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame interval must be positive", ErrInvalidConfig)
	case c.HandleHitRatio <= 0:
		return fmt.Errorf("%w: handle hit ratio must be positive", ErrInvalidConfig)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
