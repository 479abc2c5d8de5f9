package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/famdash/famdash/internal/cli"
	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/tui/components"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagDialSVG   string
	flagDialWidth int
	flagDialSize  float64
)

var dialCmd = &cobra.Command{
	Use:   "dial <tracker>",
	Short: "Render one tracker's dial to the terminal or an SVG file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDial,
}

func init() {
	dialCmd.Flags().StringVar(&flagDialSVG, "svg", "", "Write the dial as SVG to this file (- for stdout)")
	dialCmd.Flags().IntVarP(&flagDialWidth, "width", "w", 34, "Card width in columns")
	dialCmd.Flags().Float64Var(&flagDialSize, "size", 200, "SVG width and height in pixels")
	rootCmd.AddCommand(dialCmd)
}

func runDial(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	dc, err := cfg.DialSettings()
	if err != nil {
		return err
	}
	// a static render shows the settled values
	dc.ReadoutDuration = 0
	dc.LabelDuration = 0

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := findTracker(st, args[0])
	if err != nil {
		return err
	}

	d, err := dial.New(dc, t, nil, nil)
	if err != nil {
		return err
	}
	defer d.Close()
	d.SetValues(t.Current, t.Target, time.Now())

	if flagDialSVG != "" {
		return writeDialSVG(d, cfg.General.Currency)
	}

	width := max(flagDialWidth, 20)
	g := components.DialCardLayout(width, max(5, components.CardInnerWidth(width)/2-2))
	d.Layout(g.DialGeometry(0, 0))
	fmt.Println(components.RenderDialCard(d, g, components.DialCardOpts{Currency: cfg.General.Currency}))
	return nil
}

func writeDialSVG(d *dial.Dial, currency string) error {
	opts := dial.DefaultSVGOptions()
	opts.Size = flagDialSize
	opts.ArcFill = string(theme.Active.Accent)
	opts.TrackFill = string(theme.Active.Border)
	if d.Draggable() {
		opts.Readout = cli.FormatMoney(math.Round(d.Current()), currency)
		opts.Caption = cli.FormatPercent(d.Percentage()) + " of " + cli.FormatMoney(d.Target(), currency)
	} else {
		opts.Readout = cli.FormatScore(d.Current())
		opts.Caption = cli.FormatPercent(d.Percentage())
	}

	if flagDialSVG == "-" {
		return dial.WriteSVG(os.Stdout, d, opts)
	}
	f, err := os.Create(flagDialSVG)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagDialSVG, err)
	}
	if err := dial.WriteSVG(f, d, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagDialSVG)
	}
	return nil
}
