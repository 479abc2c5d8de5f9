package dial

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in the host's drawing space (y grows downward).
type Point struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PolarToCartesian converts an angle measured clockwise from 12 o'clock.
func PolarToCartesian(cx, cy, radius, angleDeg float64) Point {
	rad := (angleDeg - 90) * math.Pi / 180
	return Point{
		X: cx + radius*math.Cos(rad),
		Y: cy + radius*math.Sin(rad),
	}
}

// Arc is a circular arc in SVG path terms.
type Arc struct {
	From     Point
	To       Point
	Radius   float64
	LargeArc bool
	Sweep    bool
}

// DescribeArc returns the arc from startDeg to endDeg. The path is drawn from
// the end angle back to the start angle with a fixed sweep flag of 0, which
// renders clockwise on screen.
func DescribeArc(cx, cy, radius, startDeg, endDeg float64) Arc {
	return Arc{
		From:     PolarToCartesian(cx, cy, radius, endDeg),
		To:       PolarToCartesian(cx, cy, radius, startDeg),
		Radius:   radius,
		LargeArc: endDeg-startDeg > 180,
		Sweep:    false,
	}
}

// LargeArcFlag returns the SVG large-arc flag ("0" or "1").
func (a Arc) LargeArcFlag() string {
	return flag(a.LargeArc)
}

// SweepFlag returns the SVG sweep flag ("0" or "1").
func (a Arc) SweepFlag() string {
	return flag(a.Sweep)
}

// String renders the SVG path data for the arc.
func (a Arc) String() string {
	parts := []string{
		"M", num(a.From.X), num(a.From.Y),
		"A", num(a.Radius), num(a.Radius), "0", a.LargeArcFlag(), a.SweepFlag(), num(a.To.X), num(a.To.Y),
	}
	return strings.Join(parts, " ")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// normalize maps any angle into [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
