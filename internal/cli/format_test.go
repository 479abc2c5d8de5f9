package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{1000, "$1,000"},
		{1234.5, "$1,234.50"},
		{0.07, "$0.07"},
		{-42.25, "-$42.25"},
		{1234567.891, "$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in, "$"); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompactMoney(t *testing.T) {
	if got := FormatCompactMoney(12500, "€"); got != "€12.5K" {
		t.Errorf("got %q", got)
	}
	if got := FormatCompactMoney(950, "$"); got != "$950" {
		t.Errorf("got %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount(" $1,250.505 ", "$")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1250.51 {
		t.Errorf("got %v, want 1250.51", got)
	}
	if _, err := ParseAmount("lots", "$"); err == nil {
		t.Error("ParseAmount accepted garbage")
	}
}

func TestFormatScoreAndPercent(t *testing.T) {
	if got := FormatScore(711.6); got != "712" {
		t.Errorf("FormatScore = %q", got)
	}
	if got := FormatPercent(72.727); got != "72.7%" {
		t.Errorf("FormatPercent = %q", got)
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := FormatAge(now.Add(-90*time.Minute), now); got != "1h ago" {
		t.Errorf("got %q", got)
	}
	if got := FormatAge(time.Time{}, now); got != "never" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSparklineScalesToRange(t *testing.T) {
	got := []rune(RenderSparkline([]float64{1000, 1500, 2000}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Errorf("sparkline = %q", string(got))
	}
	flat := RenderSparkline([]float64{5, 5})
	if flat != "██" {
		t.Errorf("flat sparkline = %q", flat)
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Tracker", "Target"},
		Rows:    [][]string{{"Groceries", "$600"}, {"Rent", "$1,800"}},
	})
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "$1,800") {
		t.Fatalf("table missing cells:\n%s", out)
	}
}

func TestRenderTableAlignsStyledAndMultibyteCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Tracker", "Progress"},
		Rows: [][]string{
			{"Groceries", RenderProgressBar(750, 1000, 10, "€")},
			{"Rent", "€1,800"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width = %d, want %d\n%s", i, w, want, out)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
		filled          int
		amounts         string
	}{
		{"partial", 750, 1000, 6, "$750/$1,000"},
		{"empty", 0, 1000, 0, "$0/$1,000"},
		{"over target clamps", 1500, 1000, 8, "$1,500/$1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgressBar(tt.current, tt.target, 8, "$")
			if n := strings.Count(got, "█"); n != tt.filled {
				t.Errorf("filled = %d, want %d: %q", n, tt.filled, got)
			}
			if n := strings.Count(got, "█") + strings.Count(got, "░"); n != 8 {
				t.Errorf("bar cells = %d, want 8", n)
			}
			if !strings.Contains(got, tt.amounts) {
				t.Errorf("%q missing %q", got, tt.amounts)
			}
		})
	}
	if got := RenderProgressBar(10, 0, 8, "$"); got != "" {
		t.Errorf("zero target rendered %q", got)
	}
}
