package components

import (
	"strings"

	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Dials", Key: 'd', KeyPos: 0},
	{Name: "Breakdown", Key: 'b', KeyPos: 0},
	{Name: "History", Key: 'h', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

const tabPad = 1

// TabVisualWidth returns the rendered width of a tab, padding included.
// Inactive tabs whose key is not part of the name grow by the "[k]" suffix.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2*tabPad
	if !active && (tab.KeyPos < 0 || tab.KeyPos >= len(tab.Name)) {
		w += 3
	}
	return w
}

// RenderTabBar renders the single-row tab bar with the given active index.
// Tabs are separated by one column.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceBright).
		Bold(true).
		Padding(0, tabPad)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pad := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", tabPad))
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	var parts []string
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		var rendered string
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			rendered = inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
				keyStyle.Render(string(tab.Name[tab.KeyPos])) +
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:])
		} else {
			rendered = inactiveStyle.Render(tab.Name) + keyStyle.Render("["+string(tab.Key)+"]")
		}
		parts = append(parts, pad+rendered+pad)
	}

	row := strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x, or -1. Hitboxes follow the widths
// RenderTabBar draws.
func TabAtX(x, activeIdx int) int {
	pos := 0
	for i, tab := range Tabs {
		w := TabVisualWidth(tab, i == activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
