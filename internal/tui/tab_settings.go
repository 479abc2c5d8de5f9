package tui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/famdash/famdash/internal/config"
	"github.com/famdash/famdash/internal/tui/components"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldNudgeStep
	settingsFieldMaxTarget
	settingsFieldSnapThreshold
	settingsFieldDeadZoneTie
	settingsFieldReadoutMs
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message
	saveErr error // non-nil if last save failed
}

type settingsField struct {
	label       string
	value       string
	placeholder string
}

func (a App) settingsFields() []settingsField {
	c := a.cfg
	return []settingsField{
		{"Theme", c.Appearance.Theme, strings.Join(theme.Names(), ", ")},
		{"Currency", c.General.Currency, "$, €, £"},
		{"Nudge Step", formatFloat(c.Dial.NudgeStep), "250"},
		{"Max Target", formatFloat(c.Dial.MaxTarget), "50000"},
		{"Snap Threshold", formatFloat(c.Dial.SnapThreshold), "0.1 (percent of sweep)"},
		{"Dead-zone Tie", c.Dial.DeadZoneTie, "end or start"},
		{"Readout (ms)", strconv.Itoa(c.Dial.ReadoutMs), "500"},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	f := a.settingsFields()[a.settings.cursor]

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = f.placeholder
	ti.SetValue(f.value)
	ti.CursorEnd()
	ti.Focus()

	a.settings.editing = true
	a.settings.saved = false
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.settings.editing = false
		return a.settingsSave()
	case key.Matches(msg, a.keys.Cancel):
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field, validates the whole config, writes
// it and rebuilds the dials when their tuning changed.
func (a App) settingsSave() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	cfg.Trackers = append([]config.TrackerSeed(nil), a.cfg.Trackers...)
	val := strings.TrimSpace(a.settings.input.Value())

	if err := applySettingsField(&cfg, a.settings.cursor, val); err != nil {
		a.settings.saveErr = err
		a.settings.saved = false
		return a, nil
	}
	// a config that fails Validate would not load on the next start
	if err := cfg.Validate(); err != nil {
		a.settings.saveErr = err
		a.settings.saved = false
		return a, nil
	}
	dc, err := cfg.DialSettings()
	if err != nil {
		a.settings.saveErr = err
		a.settings.saved = false
		return a, nil
	}
	if err := a.saveConfig(cfg); err != nil {
		a.settings.saveErr = err
		a.settings.saved = false
		log.Printf("save config: %v", err)
		return a, nil
	}

	a.settings.saveErr = nil
	a.settings.saved = true
	theme.SetActive(cfg.Appearance.Theme)
	dialChanged := cfg.Dial != a.cfg.Dial || cfg.CreditScore != a.cfg.CreditScore
	a.cfg = cfg
	a.dialCfg = dc
	if !dialChanged {
		return a, nil
	}

	if err := a.b.rebuild(dc, a.b.trackers); err != nil {
		a.settings.saveErr = err
		return a, nil
	}
	a.layoutDials()
	return a, a.b.sync(a.now())
}

func applySettingsField(cfg *config.Config, field int, val string) error {
	parseNum := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", name, val)
		}
		return v, nil
	}

	switch field {
	case settingsFieldTheme:
		for _, n := range theme.Names() {
			if n == val {
				cfg.Appearance.Theme = val
				return nil
			}
		}
		return fmt.Errorf("unknown theme %q", val)
	case settingsFieldCurrency:
		if val == "" {
			return fmt.Errorf("currency symbol is required")
		}
		cfg.General.Currency = val
	case settingsFieldNudgeStep:
		v, err := parseNum("nudge step")
		if err != nil {
			return err
		}
		cfg.Dial.NudgeStep = v
	case settingsFieldMaxTarget:
		v, err := parseNum("max target")
		if err != nil {
			return err
		}
		cfg.Dial.MaxTarget = v
	case settingsFieldSnapThreshold:
		v, err := parseNum("snap threshold")
		if err != nil {
			return err
		}
		cfg.Dial.SnapThreshold = v
	case settingsFieldDeadZoneTie:
		cfg.Dial.DeadZoneTie = val
	case settingsFieldReadoutMs:
		v, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("readout: %q is not a whole number of milliseconds", val)
		}
		cfg.Dial.ReadoutMs = v
	}
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	var formBody strings.Builder
	for i, f := range a.settingsFields() {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Database:     ") + valueStyle.Render(a.cfg.DBPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Trackers:     ") + valueStyle.Render(strconv.Itoa(len(a.b.trackers))))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
