package cmd

import (
	"fmt"
	"time"

	"github.com/famdash/famdash/internal/cli"
	"github.com/famdash/famdash/internal/config"
	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagAddKind    string
	flagAddCurrent string
	flagAddTarget  string
	flagHistoryN   int
)

var trackersCmd = &cobra.Command{
	Use:     "trackers",
	Aliases: []string{"ls"},
	Short:   "List trackers with their progress",
	RunE:    runTrackers,
}

var trackersAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a tracker",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackersAdd,
}

var trackersRmCmd = &cobra.Command{
	Use:   "rm <title>",
	Short: "Delete a tracker and its target history",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackersRm,
}

var trackersHistoryCmd = &cobra.Command{
	Use:   "history <title>",
	Short: "Show a tracker's target changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackersHistory,
}

func init() {
	trackersAddCmd.Flags().StringVarP(&flagAddKind, "kind", "k", "spending", "spending, income, savings or credit-score")
	trackersAddCmd.Flags().StringVarP(&flagAddCurrent, "current", "c", "0", "Current value")
	trackersAddCmd.Flags().StringVarP(&flagAddTarget, "target", "t", "0", "Target (ignored for credit-score)")
	trackersHistoryCmd.Flags().IntVarP(&flagHistoryN, "limit", "n", 20, "Number of changes to show (0 for all)")

	trackersCmd.AddCommand(trackersAddCmd, trackersRmCmd, trackersHistoryCmd)
	rootCmd.AddCommand(trackersCmd)
}

const progressBarWidth = 12

// percentFor is the dial percentage a tracker would display.
func percentFor(cfg config.Config, t model.Tracker) float64 {
	m, err := dial.ModeFor(t.Kind, t.Current, t.Target, dial.Range{Min: cfg.CreditScore.Min, Max: cfg.CreditScore.Max})
	if err != nil {
		return 0
	}
	return dial.Percentage(m)
}

func runTrackers(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	trackers, err := st.ListTrackers()
	if err != nil {
		return err
	}
	if len(trackers) == 0 {
		fmt.Println("\n  No trackers yet. Add one with `famdash trackers add <title>`.")
		return nil
	}

	cur := cfg.General.Currency
	now := time.Now()
	rows := make([][]string, 0, len(trackers)+4)
	for _, t := range trackers {
		progress := cli.RenderProgressBar(t.Current, t.Target, progressBarWidth, cur)
		if !t.Kind.Monetary() {
			progress = fmt.Sprintf("%s on %.0f-%.0f", cli.FormatScore(t.Current), cfg.CreditScore.Min, cfg.CreditScore.Max)
		}
		rows = append(rows, []string{
			t.Title, t.Kind.Label(), progress,
			cli.FormatPercent(percentFor(cfg, t)),
			cli.FormatAge(t.UpdatedAt, now),
		})
	}

	s := model.Summarize(trackers)
	rows = append(rows,
		[]string{"---"},
		[]string{"Net cash flow", "", cli.FormatDelta(s.TotalIncome, s.TotalSpending, cur), "", ""},
	)
	if s.OverBudget > 0 {
		rows = append(rows, []string{"Over budget", "", fmt.Sprintf("%d", s.OverBudget), "", ""})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FAMILY DASHBOARD"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Tracker", "Kind", "Progress", "%", "Updated"},
		Rows:    rows,
	}))
	return nil
}

func runTrackersAdd(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	kind, err := model.ParseTrackerKind(flagAddKind)
	if err != nil {
		return err
	}
	current, err := cli.ParseAmount(flagAddCurrent, cfg.General.Currency)
	if err != nil {
		return fmt.Errorf("--current: %w", err)
	}
	target, err := cli.ParseAmount(flagAddTarget, cfg.General.Currency)
	if err != nil {
		return fmt.Errorf("--target: %w", err)
	}
	if kind.Monetary() {
		if target <= 0 {
			return fmt.Errorf("--target is required for %s trackers", kind.Label())
		}
		if err := cfg.CheckTarget(target); err != nil {
			return fmt.Errorf("--target: %w", err)
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := st.Add(model.Tracker{Title: args[0], Kind: kind, Current: current, Target: target})
	if err != nil {
		return err
	}
	fmt.Printf("  Added %q (%s)\n", t.Title, kind.Label())
	return nil
}

func runTrackersRm(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := findTracker(st, args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(t.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted %q\n", t.Title)
	return nil
}

func runTrackersHistory(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := findTracker(st, args[0])
	if err != nil {
		return err
	}
	h, err := st.TargetHistory(t.ID, flagHistoryN)
	if err != nil {
		return err
	}
	if len(h) == 0 {
		fmt.Printf("\n  %q has no target changes yet.\n", t.Title)
		return nil
	}

	cur := cfg.General.Currency
	values := make([]float64, len(h))
	rows := make([][]string, len(h))
	for i, c := range h {
		values[i] = c.Target
		change := ""
		if i > 0 {
			change = cli.FormatDelta(c.Target, h[i-1].Target, cur)
		}
		rows[i] = []string{c.ChangedAt.Local().Format("2006-01-02 15:04"), cli.FormatMoney(c.Target, cur), change}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(t.Title + "  target history"))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.RenderSparkline(values))
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Changed", "Target", "Change"},
		Rows:    rows,
	}))
	return nil
}
