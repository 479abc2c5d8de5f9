// Package tui provides the interactive Bubble Tea dashboard for famdash.
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/famdash/famdash/internal/cli"
	"github.com/famdash/famdash/internal/config"
	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/model"
	"github.com/famdash/famdash/internal/tui/components"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabDials = iota
	tabBreakdown
	tabHistory
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5
	headerHeight     = 2 // tab bar + summary strip
)

// Options configures a new App.
type Options struct {
	Config    config.Config
	Store     TrackerStore
	NeedSetup bool
	// SaveConfig persists settings changes. Defaults to config.Save.
	SaveConfig func(config.Config) error
	// Now defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	dialCfg    dial.Config
	store      TrackerStore
	saveConfig func(config.Config) error
	now        func() time.Time

	b       *board
	loaded  bool
	loadErr error

	// UI state
	width     int
	height    int
	activeTab int
	focus     int
	showHelp  bool
	keys      keyMap
	spinner   spinner.Model

	status     string
	statusKind components.StatusKind

	// Inline edit of the focused tracker's current value
	editing   bool
	editInput textinput.Model

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) (App, error) {
	dc, err := opts.Config.DialSettings()
	if err != nil {
		return App{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		cfg:        opts.Config,
		dialCfg:    dc,
		store:      opts.Store,
		saveConfig: opts.SaveConfig,
		now:        opts.Now,
		b:          newBoard(),
		keys:       defaultKeyMap(),
		spinner:    sp,
		needSetup:  opts.NeedSetup,
	}
	if a.saveConfig == nil {
		a.saveConfig = config.Save
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.needSetup {
		a.setupVals = newSetupValues(a.cfg)
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a, nil
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	} else {
		cmds = append(cmds, a.loadCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) loadCmd() tea.Cmd {
	return loadTrackersCmd(a.store, seedTrackers(a.cfg.Trackers))
}

func seedTrackers(seeds []config.TrackerSeed) []model.Tracker {
	out := make([]model.Tracker, len(seeds))
	for i, s := range seeds {
		out[i] = model.Tracker{Title: s.Title, Kind: s.Kind, Current: s.Current, Target: s.Target}
	}
	return out
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.layoutDials()
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if !a.loaded {
			return a, nil
		}
		return a.updateKeys(msg)

	case frameMsg:
		if next, ok := msg.dial.Advance(msg.tween, msg.seq, msg.at); ok {
			return a, frameCmd(msg.dial, next)
		}
		return a, nil

	case trackersLoadedMsg:
		a.loaded = true
		if msg.err != nil {
			a.loadErr = msg.err
			a.setStatus(msg.err.Error(), components.StatusError)
			log.Printf("load: %v", msg.err)
			return a, nil
		}
		if err := a.b.rebuild(a.dialCfg, msg.trackers); err != nil {
			a.loadErr = err
			a.setStatus(err.Error(), components.StatusError)
			return a, nil
		}
		a.b.history = msg.history
		a.focus = min(a.focus, max(0, len(msg.trackers)-1))
		a.layoutDials()
		return a, a.b.sync(a.now())

	case savedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("saving %s failed: %v", msg.what, msg.err), components.StatusError)
			log.Printf("save %s %s: %v", msg.what, msg.trackerID, msg.err)
			return a, nil
		}
		if msg.history != nil {
			a.b.history[msg.trackerID] = msg.history
		}
		if i := a.b.index(msg.trackerID); i >= 0 {
			a.setStatus(fmt.Sprintf("Saved %s for %s", msg.what, a.b.trackers[i].Title), components.StatusOK)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks) to whichever input is live.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.b.closeAll()
	return a, tea.Quit
}

func (a *App) setStatus(s string, kind components.StatusKind) {
	a.status = s
	a.statusKind = kind
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		return a.updateEditInput(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key.Matches(msg, a.keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if key.Matches(msg, a.keys.Quit) {
		return a.quit()
	}

	if a.activeTab == tabSettings {
		switch {
		case key.Matches(msg, a.keys.Down):
			a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
			return a, nil
		case key.Matches(msg, a.keys.Up):
			a.settings.cursor = max(a.settings.cursor-1, 0)
			return a, nil
		case key.Matches(msg, a.keys.Confirm):
			return a.settingsStartEdit()
		}
	}

	n := len(a.b.dials)
	switch {
	case key.Matches(msg, a.keys.NextDial) && n > 0:
		a.focus = (a.focus + 1) % n
		return a, nil
	case key.Matches(msg, a.keys.PrevDial) && n > 0:
		a.focus = (a.focus - 1 + n) % n
		return a, nil
	case key.Matches(msg, a.keys.NudgeUp):
		return a.nudge(a.focus, 1)
	case key.Matches(msg, a.keys.NudgeDown):
		return a.nudge(a.focus, -1)
	case key.Matches(msg, a.keys.Edit) && a.activeTab == tabDials:
		return a.startEdit()
	case key.Matches(msg, a.keys.PrevTab):
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case key.Matches(msg, a.keys.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if runes := msg.Runes; len(runes) == 1 {
		if tab := components.TabIdxByKey(runes[0]); tab >= 0 {
			a.activeTab = tab
		}
	}
	return a, nil
}

// nudge steps dial i's target and persists the result.
func (a App) nudge(i, dir int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(a.b.dials) {
		return a, nil
	}
	d := a.b.dials[i]
	before := a.b.trackers[i].Target
	if !d.Nudge(dir) {
		a.setStatus(d.Title()+" has a fixed scale", components.StatusInfo)
		return a, nil
	}
	tr := a.b.trackers[i]
	cmds := []tea.Cmd{a.b.sync(a.now())}
	if tr.Target != before {
		cmds = append(cmds, saveTargetCmd(a.store, tr.ID, tr.Target))
	}
	return a, tea.Batch(cmds...)
}

func (a App) startEdit() (tea.Model, tea.Cmd) {
	if a.focus >= len(a.b.trackers) {
		return a, nil
	}
	tr := a.b.trackers[a.focus]
	ti := textinput.New()
	ti.CharLimit = 20
	ti.Width = 20
	ti.Prompt = tr.Title + ": "
	ti.SetValue(fmt.Sprintf("%.2f", tr.Current))
	ti.CursorEnd()
	ti.Focus()
	a.editInput = ti
	a.editing = true
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateEditInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.editing = false
		return a, nil
	case key.Matches(msg, a.keys.Confirm):
		a.editing = false
		v, err := cli.ParseAmount(a.editInput.Value(), a.cfg.General.Currency)
		if err != nil {
			a.setStatus(err.Error(), components.StatusError)
			return a, nil
		}
		if a.focus >= len(a.b.trackers) {
			return a, nil
		}
		tr := &a.b.trackers[a.focus]
		tr.Current = v
		return a, tea.Batch(a.b.sync(a.now()), saveCurrentCmd(a.store, tr.ID, v))
	}
	var cmd tea.Cmd
	a.editInput, cmd = a.editInput.Update(msg)
	return a, cmd
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	hub := a.b.hub
	switch msg.Action {
	case tea.MouseActionMotion:
		if hub.Active() == 0 {
			return a, nil
		}
		hub.Move(components.CellToDot(msg.X, msg.Y))
		return a, a.b.sync(a.now())

	case tea.MouseActionRelease:
		if hub.Active() == 0 {
			return a, nil
		}
		hub.Up()
		return a, a.endDrag()

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
					a.activeTab = tab
				}
				return a, nil
			}
			if a.activeTab == tabDials {
				return a.pressDial(msg.X, msg.Y)
			}
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if a.activeTab != tabDials {
				return a, nil
			}
			if s, ok := a.slotAt(msg.X, msg.Y); ok {
				a.focus = s.idx
				dir := 1
				if msg.Button == tea.MouseButtonWheelDown {
					dir = -1
				}
				return a.nudge(s.idx, dir)
			}
		}
	}
	return a, nil
}

// pressDial routes a left click on the dials tab: nudge buttons, the handle,
// or just focus.
func (a App) pressDial(x, y int) (tea.Model, tea.Cmd) {
	s, ok := a.slotAt(x, y)
	if !ok {
		return a, nil
	}
	a.focus = s.idx
	d := a.b.dials[s.idx]
	lx, ly := x-s.x, y-s.y

	switch {
	case s.geom.Minus.Contains(lx, ly) && d.Draggable():
		return a.nudge(s.idx, -1)
	case s.geom.Plus.Contains(lx, ly) && d.Draggable():
		return a.nudge(s.idx, 1)
	case s.geom.Canvas.Contains(lx, ly):
		if d.PointerDown(components.CellToDot(x, y)) {
			a.b.dragging = s.idx
			a.b.dragOrigin = a.b.trackers[s.idx].Target
			log.Printf("drag start %q at target %.2f", d.Title(), a.b.dragOrigin)
		}
	}
	return a, nil
}

// endDrag persists the target a finished drag settled on.
func (a App) endDrag() tea.Cmd {
	i := a.b.dragging
	a.b.dragging = -1
	if i < 0 || i >= len(a.b.trackers) {
		return nil
	}
	tr := a.b.trackers[i]
	log.Printf("drag end %q at target %.2f", tr.Title, tr.Target)
	if tr.Target == a.b.dragOrigin {
		return nil
	}
	return tea.Batch(a.b.sync(a.now()), saveTargetCmd(a.store, tr.ID, tr.Target))
}

func (a App) slotAt(x, y int) (dialSlot, bool) {
	for _, row := range a.slots() {
		for _, s := range row {
			if s.geom.Outer.Offset(s.x, s.y).Contains(x, y) {
				return s, true
			}
		}
	}
	return dialSlot{}, false
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) contentHeight() int {
	return max(minContentHeight, a.height-headerHeight-1)
}

// slots is the dial grid as drawn by viewMain.
func (a App) slots() [][]dialSlot {
	cw := a.contentWidth()
	ox := (a.width - cw) / 2
	return dialSlots(len(a.b.dials), ox, headerHeight, cw, a.contentHeight())
}

// layoutDials tells every dial where its card is drawn.
func (a App) layoutDials() {
	if a.width == 0 {
		return
	}
	for _, row := range a.slots() {
		for _, s := range row {
			a.b.dials[s.idx].Layout(s.geom.DialGeometry(s.x, s.y))
		}
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.cfg = applySetup(a.cfg, *a.setupVals)
		theme.SetActive(a.cfg.Appearance.Theme)
		if err := a.saveConfig(a.cfg); err != nil {
			a.setStatus("could not save config: "+err.Error(), components.StatusError)
		}
		a.setupForm = nil
		a.needSetup = false
		return a, a.loadCmd()
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, a.loadCmd()
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  famdash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◉ famdash"))
	b.WriteString(subtitleStyle.Render(" · Family Finance Dials"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading trackers..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	section := func(b *strings.Builder, name string, binds []key.Binding) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, bind := range binds {
			h := bind.Help()
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
				descStyle.Render(h.Desc))
		}
		b.WriteString("\n")
	}

	k := a.keys
	var b strings.Builder
	b.WriteString(titleStyle.Render("◉ Keyboard & Mouse"))
	b.WriteString("\n\n")
	section(&b, "Navigation", []key.Binding{
		key.NewBinding(key.WithHelp("d b h x", "jump to tab")),
		k.PrevTab, k.NextTab, k.NextDial, k.PrevDial, k.Up,
	})
	section(&b, "Dials", []key.Binding{
		k.NudgeUp, k.NudgeDown, k.Edit,
		key.NewBinding(key.WithHelp("drag", "move the handle to set a target")),
		key.NewBinding(key.WithHelp("[-] [+]", "click to step the target")),
		key.NewBinding(key.WithHelp("wheel", "step the target under the pointer")),
	})
	section(&b, "General", []key.Binding{k.Confirm, k.Cancel, k.Help, k.Quit})
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	contentH := a.contentHeight()

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderSummaryStrip(w)

	var content string
	switch {
	case a.loadErr != nil:
		content = components.ContentCard("Error", a.loadErr.Error(), cw)
	case a.activeTab == tabDials:
		content = a.renderDialsTab(cw)
	case a.activeTab == tabBreakdown:
		content = a.renderBreakdownTab(cw)
	case a.activeTab == tabHistory:
		content = a.renderHistoryTab(cw)
	case a.activeTab == tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	statusBar := components.RenderStatusBar(w, a.hintLine(), a.status, a.statusKind)

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hintLine() string {
	if a.editing {
		return a.editInput.View() + "  [enter] save  [esc] cancel"
	}
	var parts []string
	for _, b := range a.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, "["+h.Key+"]"+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (a App) renderSummaryStrip(w int) string {
	t := theme.Active
	cur := a.cfg.General.Currency
	s := model.Summarize(a.b.trackers)

	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	val := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	sep := dim.Render(" │ ")

	net := val
	if s.NetCashFlow < 0 {
		net = net.Foreground(t.Red)
	} else {
		net = net.Foreground(t.GreenBright)
	}

	parts := []string{
		dim.Render(" Spent ") + val.Render(cli.FormatMoney(s.TotalSpending, cur)) +
			dim.Render(" of ") + val.Render(cli.FormatMoney(s.SpendingLimit, cur)),
		dim.Render("Income ") + val.Render(cli.FormatMoney(s.TotalIncome, cur)),
		dim.Render("Net ") + net.Render(cli.FormatDelta(s.TotalIncome, s.TotalSpending, cur)),
		dim.Render("Saved ") + val.Render(cli.FormatMoney(s.TotalSavings, cur)),
	}
	if s.CreditScore != nil {
		parts = append(parts, dim.Render("Credit ")+val.Render(cli.FormatScore(*s.CreditScore)))
	}
	if s.OverBudget > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
			Render(fmt.Sprintf("%d over budget", s.OverBudget)))
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(w).MaxWidth(w).MaxHeight(1).Render(strings.Join(parts, sep))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
