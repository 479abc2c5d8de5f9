// Package cmd implements the famdash CLI commands.
package cmd

import (
	"fmt"

	"github.com/famdash/famdash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency: %s\n", cfg.General.Currency)
	fmt.Printf("    Database: %s\n", dbPath(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	d := cfg.Dial
	fmt.Println("  [Dial]")
	fmt.Printf("    Sweep:          %.0f to %.0f degrees\n", d.StartAngle, d.EndAngle)
	fmt.Printf("    Target range:   %.0f to %.0f\n", d.MinTarget, d.MaxTarget)
	fmt.Printf("    Nudge step:     %.0f\n", d.NudgeStep)
	fmt.Printf("    Snap threshold: %g%%\n", d.SnapThreshold)
	fmt.Printf("    Dead-zone tie:  %s\n", d.DeadZoneTie)
	fmt.Printf("    Readout:        %dms, label %dms at %d/s\n", d.ReadoutMs, d.LabelMs, d.LabelRate)
	fmt.Println()

	fmt.Println("  [Credit score]")
	fmt.Printf("    Scale: %.0f-%.0f\n", cfg.CreditScore.Min, cfg.CreditScore.Max)
	fmt.Println()

	fmt.Printf("  [Trackers] %d seeded on first run\n", len(cfg.Trackers))
	for _, t := range cfg.Trackers {
		fmt.Printf("    %-20s %s\n", t.Title, t.Kind.Label())
	}
	fmt.Println()

	fmt.Println("  Run `famdash setup` to reconfigure.")
	return nil
}
