package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline scaled between the series' min and
// max. A flat series renders at full height.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := len(sparkBlocks) - 1
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		buf.WriteRune(sparkBlocks[max(0, min(idx, len(sparkBlocks)-1))])
	}

	return style.Render(buf.String())
}

// GoalBar is one column of a GoalChart.
type GoalBar struct {
	Label string
	Value float64
	Goal  float64 // 0 draws no goal marker
	Color lipgloss.Color
}

// GoalChart renders vertical bars with a "━" marker at each bar's goal. The
// y-axis uses rounded tick steps.
func GoalChart(bars []GoalBar, width, height int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active
	height = max(height, 4)

	peak := 0.0
	for _, b := range bars {
		peak = max(peak, b.Value, b.Goal)
	}
	if peak == 0 {
		peak = 1
	}

	tickStep := chartTickStep(peak)
	for math.Ceil(peak/tickStep) > float64(max(2, height/2)) {
		tickStep *= 2
	}
	ceiling := math.Ceil(peak/tickStep) * tickStep
	intervals := max(1, int(math.Round(ceiling/tickStep)))
	rowsPerTick := max(2, height/intervals)
	chartH := rowsPerTick * intervals

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	tickLabels := make(map[int]string, intervals)
	for i := 1; i <= intervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	n := len(bars)
	chartW := max(5, width-yLabelW-1)
	barW := max(1, min(8, (chartW-(n-1))/n))
	axisLen := n*barW + (n - 1)

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	bg := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := bg.Foreground(t.TextDim)
	goalStyle := bg.Foreground(t.TextPrimary).Bold(true)

	rowOf := func(v float64) int {
		return int(math.Ceil(v / ceiling * float64(chartH)))
	}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, bar := range bars {
			if i > 0 {
				b.WriteString(bg.Render(" "))
			}
			barStyle := bg.Foreground(bar.Color)
			switch {
			case bar.Goal > 0 && rowOf(bar.Goal) == row && bar.Value < top:
				b.WriteString(goalStyle.Render(strings.Repeat("━", barW)))
			case bar.Value >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case bar.Value > bottom:
				idx := max(1, min(8, int((bar.Value-bottom)/(top-bottom)*8)))
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(bg.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	labelStyle := bg.Foreground(t.TextMuted)
	b.WriteString(bg.Render(strings.Repeat(" ", yLabelW+1)))
	for i, bar := range bars {
		if i > 0 {
			b.WriteString(bg.Render(" "))
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", barW, truncate(bar.Label, barW))))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
