package components

import (
	"strings"

	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of the status bar message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest message on the right.
func RenderStatusBar(width int, hints, msg string, kind StatusKind) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := base.Foreground(t.TextMuted)
	msgStyle := base.Foreground(t.TextDim)
	switch kind {
	case StatusOK:
		msgStyle = base.Foreground(t.GreenBright)
	case StatusError:
		msgStyle = base.Foreground(t.Red).Bold(true)
	}

	left := hintStyle.Render(" " + hints)
	right := ""
	if msg != "" {
		right = msgStyle.Render(msg + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// drop hints before the message
		left = ""
		padding = max(0, width-lipgloss.Width(right))
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
