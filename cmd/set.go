package cmd

import (
	"fmt"

	"github.com/famdash/famdash/internal/cli"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:       "set value|target <tracker> <amount>",
	Short:     "Set a tracker's current value or target",
	Example:   "  famdash set value \"Monthly Spending\" 812.40\n  famdash set target \"Emergency Fund\" '$12,000'",
	Args:      cobra.ExactArgs(3),
	ValidArgs: []string{"value", "target"},
	RunE:      runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(_ *cobra.Command, args []string) error {
	field, title, raw := args[0], args[1], args[2]
	if field != "value" && field != "target" {
		return fmt.Errorf("unknown field %q (want value or target)", field)
	}

	cfg := loadConfig()
	v, err := cli.ParseAmount(raw, cfg.General.Currency)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := findTracker(st, title)
	if err != nil {
		return err
	}

	switch field {
	case "value":
		err = st.SetCurrent(t.ID, v)
	case "target":
		if !t.Kind.Monetary() {
			return fmt.Errorf("%q uses the fixed %s scale and has no target", t.Title, t.Kind.Label())
		}
		if err := cfg.CheckTarget(v); err != nil {
			return err
		}
		err = st.SetTarget(t.ID, v)
	}
	if err != nil {
		return err
	}

	if !flagQuiet {
		shown := cli.Money(v, cfg.General.Currency)
		if !t.Kind.Monetary() {
			shown = cli.FormatScore(v)
		}
		fmt.Printf("  %s %s -> %s\n", t.Title, field, shown)
	}
	return nil
}
