package dial

import (
	"math"
	"strings"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestPolarToCartesianClockwiseFromTop(t *testing.T) {
	tests := []struct {
		angle float64
		want  Point
	}{
		{0, Point{100, 50}},
		{90, Point{150, 100}},
		{180, Point{100, 150}},
		{-90, Point{50, 100}},
		{270, Point{50, 100}},
	}
	for _, tt := range tests {
		got := PolarToCartesian(100, 100, 50, tt.angle)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("PolarToCartesian(angle=%.0f) = (%.6f, %.6f), want (%.0f, %.0f)",
				tt.angle, got.X, got.Y, tt.want.X, tt.want.Y)
		}
	}
}

func TestDescribeArcLargeArcFlag(t *testing.T) {
	tests := []struct {
		start, end float64
		want       string
	}{
		{0, 90, "0"},
		{-90, 90, "0"}, // exactly 180
		{0, 180, "0"},
		{-120, 120, "1"},
		{0, 270, "1"},
		{0, 360, "1"},
	}
	for _, tt := range tests {
		arc := DescribeArc(0, 0, 10, tt.start, tt.end)
		if got := arc.LargeArcFlag(); got != tt.want {
			t.Errorf("DescribeArc(%.0f, %.0f) large-arc = %s, want %s", tt.start, tt.end, got, tt.want)
		}
		if arc.SweepFlag() != "0" {
			t.Errorf("DescribeArc(%.0f, %.0f) sweep = %s, want 0", tt.start, tt.end, arc.SweepFlag())
		}
	}
}

func TestDescribeArcDrawsFromEndToStart(t *testing.T) {
	arc := DescribeArc(100, 100, 50, 0, 90)
	if !near(arc.From.X, 150) || !near(arc.From.Y, 100) {
		t.Fatalf("From = %+v, want end-angle point (150, 100)", arc.From)
	}
	if !near(arc.To.X, 100) || !near(arc.To.Y, 50) {
		t.Fatalf("To = %+v, want start-angle point (100, 50)", arc.To)
	}
}

func TestArcString(t *testing.T) {
	arc := DescribeArc(0, 0, 10, 0, 90)
	got := arc.String()
	if !strings.HasPrefix(got, "M 10 0 A 10 10 0 0 0 ") {
		t.Fatalf("path = %q, want prefix %q", got, "M 10 0 A 10 10 0 0 0 ")
	}
	if fields := strings.Fields(got); len(fields) != 11 {
		t.Fatalf("path has %d fields, want 11: %q", len(fields), got)
	}
}

func TestDescribeArcMatchesForAnyValidPair(t *testing.T) {
	for start := -180.0; start <= 180; start += 15 {
		for sweep := 5.0; sweep <= 360; sweep += 25 {
			a := DescribeArc(0, 0, 1, start, start+sweep)
			b := DescribeArc(0, 0, 1, start, start+sweep)
			if a.String() != b.String() {
				t.Fatalf("non-deterministic path for (%.0f, %.0f)", start, start+sweep)
			}
			if a.LargeArc != (sweep > 180) {
				t.Fatalf("large-arc for sweep %.0f = %v", sweep, a.LargeArc)
			}
		}
	}
}
