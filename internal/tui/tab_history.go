package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/famdash/famdash/internal/cli"
	"github.com/famdash/famdash/internal/tui/components"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// historyRows is how many recent target changes the detail card lists.
const historyRows = 10

func (a App) renderHistoryTab(cw int) string {
	t := theme.Active
	cur := a.cfg.General.Currency
	now := a.now()

	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusStyle := nameStyle.Foreground(t.AccentBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	nameW := 18
	var trend strings.Builder
	for i, tr := range a.b.trackers {
		if !tr.Kind.Monetary() {
			continue
		}
		style := nameStyle
		if i == a.focus {
			style = focusStyle
		}
		trend.WriteString(style.Render(fmt.Sprintf("%-*s", nameW, truncStr(tr.Title, nameW))))
		trend.WriteString(space.Render(" "))

		h := a.b.history[tr.ID]
		if len(h) == 0 {
			trend.WriteString(dimStyle.Render("no changes yet"))
		} else {
			values := make([]float64, len(h))
			for j, c := range h {
				values[j] = c.Target
			}
			trend.WriteString(components.Sparkline(values, trackerColor(a.b.dials[i])))
			trend.WriteString(space.Render("  "))
			trend.WriteString(valueStyle.Render(cli.FormatMoney(tr.Target, cur)))
			trend.WriteString(dimStyle.Render(fmt.Sprintf("  %d changes", len(h))))
		}
		trend.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Target Trends", strings.TrimRight(trend.String(), "\n"), cw))

	if a.focus < len(a.b.trackers) {
		tr := a.b.trackers[a.focus]
		b.WriteString("\n")
		b.WriteString(components.ContentCard(tr.Title+" · recent targets", a.renderHistoryTable(tr.ID, now), cw))
	}
	return b.String()
}

func (a App) renderHistoryTable(id string, now time.Time) string {
	t := theme.Active
	cur := a.cfg.General.Currency

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	upStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	downStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	h := a.b.history[id]
	if len(h) == 0 {
		return mutedStyle.Render("Drag the handle or press +/- on the Dials tab to set a target.")
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %14s %14s", "When", "Target", "Change")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", 42)))

	start := max(0, len(h)-historyRows)
	for i := len(h) - 1; i >= start; i-- {
		c := h[i]
		body.WriteString("\n")
		body.WriteString(rowStyle.Render(fmt.Sprintf("%-12s %14s ", cli.FormatAge(c.ChangedAt, now), cli.FormatMoney(c.Target, cur))))
		if i == 0 {
			body.WriteString(mutedStyle.Render(fmt.Sprintf("%14s", "-")))
			continue
		}
		delta := cli.FormatDelta(c.Target, h[i-1].Target, cur)
		style := upStyle
		if c.Target < h[i-1].Target {
			style = downStyle
		}
		body.WriteString(style.Render(fmt.Sprintf("%14s", delta)))
	}
	return body.String()
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
