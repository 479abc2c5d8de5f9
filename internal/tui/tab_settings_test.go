package tui

import (
	"errors"
	"testing"

	"github.com/famdash/famdash/internal/config"
)

func editSetting(t *testing.T, a App, field int, value string) App {
	t.Helper()
	a.activeTab = tabSettings
	a.settings.cursor = field
	m, _ := a.settingsStartEdit()
	a = m.(App)
	a.settings.input.SetValue(value)
	m, _ = a.settingsSave()
	return m.(App)
}

func TestSettingsRejectMaxTargetBelowSeedTarget(t *testing.T) {
	a := newLoadedApp(t, instantConfig(), newFakeStore())
	var saved []config.Config
	a.saveConfig = func(c config.Config) error {
		saved = append(saved, c)
		return nil
	}

	// the starter "Monthly Spending" seed targets 1000
	a = editSetting(t, a, settingsFieldMaxTarget, "800")
	if !errors.Is(a.settings.saveErr, config.ErrTargetOutOfRange) {
		t.Fatalf("saveErr = %v, want ErrTargetOutOfRange", a.settings.saveErr)
	}
	if len(saved) != 0 || a.cfg.Dial.MaxTarget != 50000 {
		t.Fatalf("invalid config was applied: saved=%d max=%g", len(saved), a.cfg.Dial.MaxTarget)
	}

	a = editSetting(t, a, settingsFieldMaxTarget, "20000")
	if a.settings.saveErr != nil || !a.settings.saved {
		t.Fatalf("save failed: %v", a.settings.saveErr)
	}
	if len(saved) != 1 || saved[0].Dial.MaxTarget != 20000 {
		t.Fatalf("saved = %+v", saved)
	}
	if got := a.b.dials[0].Config().MaxTarget; got != 20000 {
		t.Errorf("dials not rebuilt: max target %g", got)
	}
}

func TestSettingsRejectNonNumber(t *testing.T) {
	a := newLoadedApp(t, instantConfig(), newFakeStore())
	a = editSetting(t, a, settingsFieldNudgeStep, "lots")
	if a.settings.saveErr == nil {
		t.Fatal("non-numeric nudge step accepted")
	}
	if a.cfg.Dial.NudgeStep != 250 {
		t.Errorf("nudge step = %g", a.cfg.Dial.NudgeStep)
	}
}
