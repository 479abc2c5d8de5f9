package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/model"
	"github.com/famdash/famdash/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

// TrackerStore is the persistence the dashboard needs.
type TrackerStore interface {
	SeedIfEmpty(trackers []model.Tracker) (bool, error)
	ListTrackers() ([]model.Tracker, error)
	SetCurrent(id string, v float64) error
	SetTarget(id string, v float64) error
	TargetHistory(id string, limit int) ([]model.TargetChange, error)
}

const historyLimit = 30

// board is the mutable dashboard state shared by every copy of App. The
// trackers slice is authoritative; dials only propose targets into it.
type board struct {
	trackers []model.Tracker
	dials    []*dial.Dial
	hub      *pointerHub
	history  map[string][]model.TargetChange

	dragging   int // dial index under drag, or -1
	dragOrigin float64
}

func newBoard() *board {
	return &board{
		hub:      newPointerHub(),
		history:  make(map[string][]model.TargetChange),
		dragging: -1,
	}
}

// rebuild replaces every dial, closing the old ones first.
func (b *board) rebuild(cfg dial.Config, trackers []model.Tracker) error {
	b.closeAll()
	b.trackers = trackers
	b.dials = make([]*dial.Dial, 0, len(trackers))
	for i, tr := range trackers {
		d, err := dial.New(cfg, tr, b.hub, b.acceptTarget(i))
		if err != nil {
			b.closeAll()
			return fmt.Errorf("tracker %q: %w", tr.Title, err)
		}
		b.dials = append(b.dials, d)
	}
	return nil
}

// acceptTarget is the OnTargetChange handler for dial i.
func (b *board) acceptTarget(i int) func(float64) {
	return func(v float64) {
		if i < len(b.trackers) {
			b.trackers[i].Target = v
		}
	}
}

func (b *board) closeAll() {
	for _, d := range b.dials {
		d.Close()
	}
	b.dials = nil
	b.dragging = -1
}

// sync pushes the authoritative values into every dial whose values moved and
// schedules the animation frames that produces.
func (b *board) sync(now time.Time) tea.Cmd {
	var cmds []tea.Cmd
	for i, d := range b.dials {
		tr := b.trackers[i]
		if d.Current() == tr.Current && d.Target() == tr.Target {
			continue
		}
		for _, req := range d.SetValues(tr.Current, tr.Target, now) {
			cmds = append(cmds, frameCmd(d, req))
		}
	}
	return tea.Batch(cmds...)
}

func (b *board) index(id string) int {
	for i, tr := range b.trackers {
		if tr.ID == id {
			return i
		}
	}
	return -1
}

// frameMsg delivers one scheduled animation frame to a dial.
type frameMsg struct {
	dial  *dial.Dial
	tween dial.TweenID
	seq   uint64
	at    time.Time
}

func frameCmd(d *dial.Dial, req dial.FrameRequest) tea.Cmd {
	return tea.Tick(req.Delay, func(at time.Time) tea.Msg {
		return frameMsg{dial: d, tween: req.Tween, seq: req.Seq, at: at}
	})
}

// trackersLoadedMsg is sent when the store has been seeded and read.
type trackersLoadedMsg struct {
	trackers []model.Tracker
	history  map[string][]model.TargetChange
	err      error
}

func loadTrackersCmd(st TrackerStore, seeds []model.Tracker) tea.Cmd {
	return func() tea.Msg {
		if seeded, err := st.SeedIfEmpty(seeds); err != nil {
			return trackersLoadedMsg{err: fmt.Errorf("seeding trackers: %w", err)}
		} else if seeded {
			log.Printf("seeded %d starter trackers", len(seeds))
		}
		trackers, err := st.ListTrackers()
		if err != nil {
			return trackersLoadedMsg{err: fmt.Errorf("listing trackers: %w", err)}
		}
		history := make(map[string][]model.TargetChange, len(trackers))
		for _, tr := range trackers {
			h, err := st.TargetHistory(tr.ID, historyLimit)
			if err != nil {
				return trackersLoadedMsg{err: fmt.Errorf("loading history: %w", err)}
			}
			history[tr.ID] = h
		}
		return trackersLoadedMsg{trackers: trackers, history: history}
	}
}

// savedMsg reports the outcome of a background write.
type savedMsg struct {
	trackerID string
	what      string
	history   []model.TargetChange
	err       error
}

func saveTargetCmd(st TrackerStore, id string, v float64) tea.Cmd {
	return func() tea.Msg {
		if err := st.SetTarget(id, v); err != nil {
			return savedMsg{trackerID: id, what: "target", err: err}
		}
		h, err := st.TargetHistory(id, historyLimit)
		return savedMsg{trackerID: id, what: "target", history: h, err: err}
	}
}

func saveCurrentCmd(st TrackerStore, id string, v float64) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{trackerID: id, what: "value", err: st.SetCurrent(id, v)}
	}
}

// dialSlot is where one dial card sits on screen.
type dialSlot struct {
	idx  int
	x, y int
	geom components.DialCardGeom
}

const (
	minDialCardWidth = 30
	minCanvasRows    = 5
	maxCanvasRows    = 12
)

// dialSlots lays the dials out in a grid inside the content area whose
// top-left cell is (ox, oy).
func dialSlots(n, ox, oy, cw, contentH int) [][]dialSlot {
	if n == 0 || cw <= 0 {
		return nil
	}
	cols := max(1, min(n, cw/minDialCardWidth))
	gridRows := (n + cols - 1) / cols
	widths := components.LayoutRow(cw, cols)

	canvasRows := contentH/gridRows - components.DialCardChrome
	canvasRows = max(minCanvasRows, min(canvasRows, maxCanvasRows))
	// keep the gauge round: dots are square, so rows*4 should not exceed cols*2
	canvasRows = min(canvasRows, max(minCanvasRows, components.CardInnerWidth(widths[0])/2))

	rows := make([][]dialSlot, 0, gridRows)
	y := oy
	for r := 0; r < gridRows; r++ {
		x := ox
		var row []dialSlot
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= n {
				break
			}
			g := components.DialCardLayout(widths[c], canvasRows)
			row = append(row, dialSlot{idx: i, x: x, y: y, geom: g})
			x += widths[c]
		}
		rows = append(rows, row)
		y += canvasRows + components.DialCardChrome
	}
	return rows
}
