package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/famdash/famdash/internal/cli"
	"github.com/famdash/famdash/internal/config"
	"github.com/famdash/famdash/internal/model"
	"github.com/famdash/famdash/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagDebug bool
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "famdash",
	Short: "Family finance dashboard",
	Long:  "Track spending, income, savings and credit score on radial dials you can drag to set targets.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Tracker database path (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to famdash-debug.log")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file. A broken file is reported and replaced
// by defaults so the dashboard still opens.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func dbPath(cfg config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	return cfg.DBPath()
}

// openStore opens the tracker database and seeds it from the config on
// first use.
func openStore(cfg config.Config) (*store.Store, error) {
	path := dbPath(cfg)
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	seeds := make([]model.Tracker, len(cfg.Trackers))
	for i, s := range cfg.Trackers {
		seeds[i] = model.Tracker{Title: s.Title, Kind: s.Kind, Current: s.Current, Target: s.Target}
	}
	seeded, err := st.SeedIfEmpty(seeds)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("seeding trackers: %w", err)
	}
	if seeded && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Created %d starter trackers in %s\n", len(seeds), path)
	}
	return st, nil
}

// findTracker looks a tracker up by title and suggests a close match when
// there is none.
func findTracker(st *store.Store, title string) (model.Tracker, error) {
	t, err := st.GetByTitle(title)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return t, err
	}
	all, lerr := st.ListTrackers()
	if lerr != nil {
		return t, err
	}
	titles := make([]string, len(all))
	for i, tr := range all {
		titles[i] = tr.Title
	}
	if s, ok := cli.Suggest(title, titles); ok {
		return t, fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return t, err
}
