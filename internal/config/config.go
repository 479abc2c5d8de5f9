// Package config loads and saves the famdash TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all famdash configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Dial        DialConfig        `toml:"dial"`
	CreditScore CreditScoreConfig `toml:"credit_score"`
	Trackers    []TrackerSeed     `toml:"trackers"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
	DBPath   string `toml:"db_path,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DialConfig holds the radial dial tuning.
type DialConfig struct {
	StartAngle     float64 `toml:"start_angle"`
	EndAngle       float64 `toml:"end_angle"`
	MinTarget      float64 `toml:"min_target"`
	MaxTarget      float64 `toml:"max_target"`
	NudgeStep      float64 `toml:"nudge_step"`
	SnapThreshold  float64 `toml:"snap_threshold"`
	DeadZoneTie    string  `toml:"dead_zone_tie"` // "end" or "start"
	ReadoutMs      int     `toml:"readout_ms"`
	LabelMs        int     `toml:"label_ms"`
	LabelRate      int     `toml:"label_rate"`
	FrameRate      int     `toml:"frame_rate"`
	HandleHitRatio float64 `toml:"handle_hit_ratio"`
}

// CreditScoreConfig holds the fixed scale for credit-score trackers.
type CreditScoreConfig struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// TrackerSeed describes a tracker created on first run.
type TrackerSeed struct {
	Title   string            `toml:"title"`
	Kind    model.TrackerKind `toml:"kind"`
	Current float64           `toml:"current"`
	Target  float64           `toml:"target,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	d := dial.DefaultConfig()
	return Config{
		General: GeneralConfig{
			Currency: "$",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Dial: DialConfig{
			StartAngle:     d.StartAngle,
			EndAngle:       d.EndAngle,
			MinTarget:      d.MinTarget,
			MaxTarget:      d.MaxTarget,
			NudgeStep:      d.NudgeStep,
			SnapThreshold:  d.SnapThreshold,
			DeadZoneTie:    "end",
			ReadoutMs:      int(d.ReadoutDuration / time.Millisecond),
			LabelMs:        int(d.LabelDuration / time.Millisecond),
			LabelRate:      d.LabelRate,
			FrameRate:      60,
			HandleHitRatio: d.HandleHitRatio,
		},
		CreditScore: CreditScoreConfig{
			Min: d.CreditRange.Min,
			Max: d.CreditRange.Max,
		},
		Trackers: DefaultTrackers(),
	}
}

// DefaultTrackers is the starter set of dashboard cards.
func DefaultTrackers() []TrackerSeed {
	return []TrackerSeed{
		{Title: "Monthly Spending", Kind: model.KindSpending, Current: 750, Target: 1000},
		{Title: "Household Income", Kind: model.KindIncome, Current: 4200, Target: 5000},
		{Title: "Emergency Fund", Kind: model.KindSavings, Current: 3500, Target: 10000},
		{Title: "Credit Score", Kind: model.KindCreditScore, Current: 712},
	}
}

// DialSettings converts the TOML dial section into the dial package's config.
func (c Config) DialSettings() (dial.Config, error) {
	tie := dial.TieToEnd
	switch c.Dial.DeadZoneTie {
	case "", "end":
	case "start":
		tie = dial.TieToStart
	default:
		return dial.Config{}, fmt.Errorf("%w: dead_zone_tie %q (want \"end\" or \"start\")", dial.ErrInvalidConfig, c.Dial.DeadZoneTie)
	}

	frameRate := c.Dial.FrameRate
	if frameRate <= 0 {
		frameRate = 60
	}

	dc := dial.Config{
		StartAngle:      c.Dial.StartAngle,
		EndAngle:        c.Dial.EndAngle,
		MinTarget:       c.Dial.MinTarget,
		MaxTarget:       c.Dial.MaxTarget,
		NudgeStep:       c.Dial.NudgeStep,
		SnapThreshold:   c.Dial.SnapThreshold,
		DeadZoneTie:     tie,
		CreditRange:     dial.Range{Min: c.CreditScore.Min, Max: c.CreditScore.Max},
		ReadoutDuration: time.Duration(c.Dial.ReadoutMs) * time.Millisecond,
		LabelDuration:   time.Duration(c.Dial.LabelMs) * time.Millisecond,
		LabelRate:       c.Dial.LabelRate,
		FrameInterval:   time.Second / time.Duration(frameRate),
		HandleHitRatio:  c.Dial.HandleHitRatio,
	}
	return dc, dc.Validate()
}

// ErrTargetOutOfRange is returned for targets outside the dial's
// [min_target, max_target].
var ErrTargetOutOfRange = errors.New("target out of range")

// CheckTarget reports whether v is a target the dials can hold.
func (c Config) CheckTarget(v float64) error {
	dc, err := c.DialSettings()
	if err != nil {
		return err
	}
	if v < dc.MinTarget || v > dc.MaxTarget {
		return fmt.Errorf("%w: %g not within %g-%g", ErrTargetOutOfRange, v, dc.MinTarget, dc.MaxTarget)
	}
	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if _, err := c.DialSettings(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Trackers))
	for i, t := range c.Trackers {
		if t.Title == "" {
			return fmt.Errorf("tracker %d: title is required", i)
		}
		if seen[t.Title] {
			return fmt.Errorf("tracker %q: duplicate title", t.Title)
		}
		seen[t.Title] = true
		if _, err := t.Kind.MarshalText(); err != nil {
			return fmt.Errorf("tracker %q: %w", t.Title, err)
		}
		if t.Kind.Monetary() {
			if err := c.CheckTarget(t.Target); err != nil {
				return fmt.Errorf("tracker %q: %w", t.Title, err)
			}
		}
	}
	return nil
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "famdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "famdash")
}

// Path returns the full path to the config file. FAMDASH_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("FAMDASH_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "famdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "famdash")
}

// DBPath returns the tracker database path, honoring the config override.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "famdash.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// A file that lists its own trackers replaces the starter set.
	cfg.Trackers = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if !md.IsDefined("trackers") {
		cfg.Trackers = DefaultTrackers()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
