package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/famdash/famdash/internal/config"
	"github.com/famdash/famdash/internal/store"
	"github.com/famdash/famdash/internal/tui"
	"github.com/famdash/famdash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard (default)",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// stdout belongs to the renderer; log lines go to a file or nowhere
	if flagDebug {
		f, err := tea.LogToFile("famdash-debug.log", "famdash")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	st, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	app, err := tui.NewApp(tui.Options{
		Config:    cfg,
		Store:     st,
		NeedSetup: !config.Exists(),
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
