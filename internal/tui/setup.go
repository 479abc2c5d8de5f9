package tui

import (
	"fmt"
	"strings"

	"github.com/famdash/famdash/internal/config"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues backs the first-run form fields.
type setupValues struct {
	Currency string
	Theme    string
	Starter  bool // seed the starter trackers
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		Currency: cfg.General.Currency,
		Theme:    cfg.Appearance.Theme,
		Starter:  len(cfg.Trackers) > 0,
	}
}

var currencyOptions = []string{"$", "€", "£", "¥", "₹"}

func newSetupForm(v *setupValues) *huh.Form {
	currencies := make([]huh.Option[string], 0, len(currencyOptions))
	for _, c := range currencyOptions {
		currencies = append(currencies, huh.NewOption(c, c))
	}
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to famdash").
				Description("Radial dials for the family budget.\nA few choices and you're in."),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencies...).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
			huh.NewConfirm().
				Title("Start with the example trackers?").
				Description("Monthly Spending, Household Income, Emergency Fund, Credit Score").
				Affirmative("Yes").
				Negative("No, I'll add my own").
				Value(&v.Starter),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(true)
}

// applySetup folds the form answers into cfg.
func applySetup(cfg config.Config, v setupValues) config.Config {
	cfg.General.Currency = strings.TrimSpace(v.Currency)
	if cfg.General.Currency == "" {
		cfg.General.Currency = "$"
	}
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	if v.Starter {
		if len(cfg.Trackers) == 0 {
			cfg.Trackers = config.DefaultTrackers()
		}
	} else {
		cfg.Trackers = []config.TrackerSeed{}
	}
	return cfg
}

// RunSetup runs the setup form standalone and returns the updated config.
// It does not save.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := newSetupValues(cfg)
	if err := newSetupForm(v).Run(); err != nil {
		return cfg, fmt.Errorf("setup: %w", err)
	}
	return applySetup(cfg, *v), nil
}
