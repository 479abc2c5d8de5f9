package tui

import (
	"testing"

	"github.com/famdash/famdash/internal/config"
)

func TestApplySetup(t *testing.T) {
	tests := []struct {
		name     string
		start    []config.TrackerSeed
		vals     setupValues
		currency string
		theme    string
		trackers int
	}{
		{"keep starter", config.DefaultTrackers(), setupValues{Currency: "€", Theme: "tokyo-night", Starter: true}, "€", "tokyo-night", len(config.DefaultTrackers())},
		{"restore starter", nil, setupValues{Currency: "£", Theme: "terminal", Starter: true}, "£", "terminal", len(config.DefaultTrackers())},
		{"own trackers", config.DefaultTrackers(), setupValues{Currency: "  ", Theme: "nope", Starter: false}, "$", "flexoki-dark", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Trackers = tt.start
			got := applySetup(cfg, tt.vals)
			if got.General.Currency != tt.currency {
				t.Errorf("currency = %q, want %q", got.General.Currency, tt.currency)
			}
			if got.Appearance.Theme != tt.theme {
				t.Errorf("theme = %q, want %q", got.Appearance.Theme, tt.theme)
			}
			if len(got.Trackers) != tt.trackers {
				t.Errorf("trackers = %d, want %d", len(got.Trackers), tt.trackers)
			}
		})
	}
}

func TestSetupValuesFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	v := newSetupValues(cfg)
	if v.Currency != cfg.General.Currency || v.Theme != cfg.Appearance.Theme {
		t.Errorf("values = %+v", v)
	}
	if v.Starter != (len(cfg.Trackers) > 0) {
		t.Error("starter default does not follow config")
	}
}
