package tui

import (
	"strings"

	"github.com/famdash/famdash/internal/tui/components"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDialsTab(cw int) string {
	t := theme.Active
	if len(a.b.dials) == 0 {
		return components.ContentCard("Dials",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No trackers yet. Add one with `famdash trackers add`."), cw)
	}

	var rows []string
	for _, row := range a.slots() {
		cards := make([]string, 0, len(row))
		for _, s := range row {
			cards = append(cards, components.RenderDialCard(a.b.dials[s.idx], s.geom, components.DialCardOpts{
				Currency: a.cfg.General.Currency,
				Focused:  s.idx == a.focus,
			}))
		}
		rows = append(rows, components.CardRow(cards))
	}
	return strings.Join(rows, "\n")
}
