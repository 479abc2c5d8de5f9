package tui

import (
	"fmt"
	"strings"

	"github.com/famdash/famdash/internal/cli"
	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/model"
	"github.com/famdash/famdash/internal/tui/components"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// trackerColor is the color a tracker's gauge is drawn in.
func trackerColor(d *dial.Dial) lipgloss.Color {
	t := theme.Active
	if _, ok := d.Mode().(dial.Fixed); ok {
		return t.Score(d.Percentage())
	}
	return t.Progress(d.Percentage(), d.Kind() == model.KindSpending)
}

func (a App) renderBreakdownTab(cw int) string {
	t := theme.Active
	cur := a.cfg.General.Currency
	s := model.Summarize(a.b.trackers)

	netColor := t.GreenBright
	if s.NetCashFlow < 0 {
		netColor = t.Red
	}
	metrics := []components.Metric{
		{Label: "Spent", Value: cli.FormatMoney(s.TotalSpending, cur), Delta: "of " + cli.FormatMoney(s.SpendingLimit, cur)},
		{Label: "Income", Value: cli.FormatMoney(s.TotalIncome, cur)},
		{Label: "Net Cash Flow", Value: cli.FormatDelta(s.TotalIncome, s.TotalSpending, cur), Color: netColor},
		{Label: "Saved", Value: cli.FormatMoney(s.TotalSavings, cur), Delta: "goal " + cli.FormatCompactMoney(s.SavingsGoal, cur)},
	}
	if s.CreditScore != nil {
		metrics = append(metrics, components.Metric{Label: "Credit Score", Value: cli.FormatScore(*s.CreditScore)})
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")
	b.WriteString(a.renderProgressCard(cw))
	b.WriteString("\n")
	b.WriteString(a.renderGoalChartCard(cw))
	return b.String()
}

func (a App) renderProgressCard(cw int) string {
	t := theme.Active
	cur := a.cfg.General.Currency
	innerW := components.CardInnerWidth(cw)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	labelW := 18
	detailW := 24
	barW := max(10, innerW-labelW-detailW-9)

	var body strings.Builder
	for i, d := range a.b.dials {
		tr := a.b.trackers[i]
		var detail string
		if tr.Kind.Monetary() {
			detail = cli.FormatMoney(tr.Current, cur) + " / " + cli.FormatMoney(tr.Target, cur)
		} else {
			cfg := d.Config()
			detail = cli.FormatScore(tr.Current) + " on " + cli.FormatScore(cfg.CreditRange.Min) + "-" + cli.FormatScore(cfg.CreditRange.Max)
		}
		body.WriteString(components.TrackerBar(tr.Title, d.Percentage(), trackerColor(d), detail, labelW, barW))
		body.WriteString("\n")
	}

	if s := model.Summarize(a.b.trackers); s.SpendingLimit > 0 {
		body.WriteString("\n")
		body.WriteString(muted.Render(fmt.Sprintf("%-*s ", labelW, "Budget used")))
		body.WriteString(components.ProgressBar(s.TotalSpending/s.SpendingLimit, barW))
	}

	return components.ContentCard("Progress", strings.TrimRight(body.String(), "\n"), cw)
}

func (a App) renderGoalChartCard(cw int) string {
	var bars []components.GoalBar
	for i, tr := range a.b.trackers {
		if !tr.Kind.Monetary() {
			continue
		}
		bars = append(bars, components.GoalBar{
			Label: tr.Title,
			Value: tr.Current,
			Goal:  tr.Target,
			Color: trackerColor(a.b.dials[i]),
		})
	}
	if len(bars) == 0 {
		return ""
	}
	innerW := components.CardInnerWidth(cw)
	return components.ContentCard("Current vs Target", components.GoalChart(bars, innerW, 10), cw)
}
