package components

import (
	"math"
	"strings"

	"github.com/famdash/famdash/internal/cli"
	"github.com/famdash/famdash/internal/dial"
	"github.com/famdash/famdash/internal/model"
	"github.com/famdash/famdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Rect is a rectangle in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Braille cells hold a 2x4 dot grid; with the usual 1:2 cell aspect the dots
// come out square, so circles stay round.
const (
	DotsPerCol = 2
	DotsPerRow = 4
)

// CellToDot maps a terminal cell to the dot at its center.
func CellToDot(x, y int) dial.Point {
	return dial.Point{X: float64(x*DotsPerCol + 1), Y: float64(y*DotsPerRow + 2)}
}

// DialCardChrome is the number of rows a dial card adds around its canvas:
// top border, title, button row, bottom border.
const DialCardChrome = 4

// DialCardGeom is the layout of one dial card, relative to the card's
// top-left cell.
type DialCardGeom struct {
	Outer  Rect
	Canvas Rect
	Minus  Rect
	Plus   Rect
	// Center and Radius are in canvas-local dots.
	Center dial.Point
	Radius float64
}

// DialCardLayout computes the geometry of a dial card with the given outer
// width and canvas height in rows.
func DialCardLayout(outerWidth, canvasRows int) DialCardGeom {
	inner := CardInnerWidth(outerWidth)
	if canvasRows < 3 {
		canvasRows = 3
	}
	canvas := Rect{X: 2, Y: 2, W: inner, H: canvasRows}
	wDots := float64(inner * DotsPerCol)
	hDots := float64(canvasRows * DotsPerRow)
	btnY := canvas.Y + canvasRows
	return DialCardGeom{
		Outer:  Rect{X: 0, Y: 0, W: max(outerWidth, inner+4), H: canvasRows + DialCardChrome},
		Canvas: canvas,
		Minus:  Rect{X: canvas.X, Y: btnY, W: 3, H: 1},
		Plus:   Rect{X: canvas.X + inner - 3, Y: btnY, W: 3, H: 1},
		Center: dial.Point{X: wDots / 2, Y: hDots / 2},
		Radius: math.Max(2, math.Min(wDots, hDots)/2-2),
	}
}

// DialGeometry converts a card placed at cell (x, y) into the dial's pointer
// space, which is absolute screen dots.
func (g DialCardGeom) DialGeometry(x, y int) dial.Geometry {
	return dial.Geometry{
		Center: dial.Point{
			X: float64((x+g.Canvas.X)*DotsPerCol) + g.Center.X,
			Y: float64((y+g.Canvas.Y)*DotsPerRow) + g.Center.Y,
		},
		Radius: g.Radius,
	}
}

// DialCardOpts controls text and emphasis of a dial card.
type DialCardOpts struct {
	Currency string
	Focused  bool
}

type dotLayer uint8

const (
	layerNone dotLayer = iota
	layerTrack
	layerTick
	layerFill
	layerHandle
	layerText
)

type cell struct {
	bits  uint8
	layer dotLayer
	text  rune
	span  int // text overlay id; cells of one overlay render as one run
	style lipgloss.Style
}

// brailleCanvas is a grid of braille cells addressed in dots.
type brailleCanvas struct {
	cols, rows int
	cells      []cell
	spans      int
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	return &brailleCanvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
}

var brailleBits = [DotsPerRow][DotsPerCol]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (c *brailleCanvas) set(x, y float64, layer dotLayer) {
	dx, dy := int(math.Round(x)), int(math.Round(y))
	if dx < 0 || dy < 0 || dx >= c.cols*DotsPerCol || dy >= c.rows*DotsPerRow {
		return
	}
	cl := &c.cells[(dy/DotsPerRow)*c.cols+dx/DotsPerCol]
	if cl.layer == layerText {
		return
	}
	cl.bits |= brailleBits[dy%DotsPerRow][dx%DotsPerCol]
	cl.layer = max(cl.layer, layer)
}

// arc plots the circle segment between two dial angles.
func (c *brailleCanvas) arc(center dial.Point, r, from, to float64, layer dotLayer) {
	if to < from {
		from, to = to, from
	}
	step := 0.5 / r * 180 / math.Pi
	for a := from; ; a += step {
		if a > to {
			a = to
		}
		p := dial.PolarToCartesian(center.X, center.Y, r, a)
		c.set(p.X, p.Y, layer)
		if a == to {
			return
		}
	}
}

func (c *brailleCanvas) disc(center dial.Point, r float64, layer dotLayer) {
	for y := center.Y - r; y <= center.Y+r; y++ {
		for x := center.X - r; x <= center.X+r; x++ {
			if math.Hypot(x-center.X, y-center.Y) <= r {
				c.set(x, y, layer)
			}
		}
	}
}

// text writes s centered on row, replacing whatever dots were there.
func (c *brailleCanvas) text(row int, s string, style lipgloss.Style) {
	if row < 0 || row >= c.rows {
		return
	}
	runes := []rune(s)
	if len(runes) > c.cols {
		runes = runes[:c.cols]
	}
	start := (c.cols - len(runes)) / 2
	c.spans++
	for i, r := range runes {
		c.cells[row*c.cols+start+i] = cell{layer: layerText, text: r, span: c.spans, style: style}
	}
}

func (c *brailleCanvas) render(styles map[dotLayer]lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		runStyle := lipgloss.Style{}
		runKey := -1
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			var ch rune
			var st lipgloss.Style
			key := int(cl.layer)
			switch {
			case cl.layer == layerText:
				ch, st = cl.text, cl.style
				key = -1 - cl.span
			case cl.bits == 0:
				ch, st = ' ', styles[layerNone]
				key = int(layerNone)
			default:
				ch, st = rune(0x2800+int(cl.bits)), styles[cl.layer]
			}
			if key != runKey {
				flush()
				runKey, runStyle = key, st
			}
			run.WriteRune(ch)
		}
		flush()
	}
	return b.String()
}

// RenderDialCard draws a dial as a bordered card: title, braille gauge with
// the animated readout in its center, and the nudge buttons underneath.
func RenderDialCard(d *dial.Dial, g DialCardGeom, opts DialCardOpts) string {
	t := theme.Active
	cfg := d.Config()
	pct := d.Percentage()

	var fill lipgloss.Color
	switch d.Mode().(type) {
	case dial.Fixed:
		fill = t.Score(pct)
	default:
		fill = t.Progress(pct, d.Kind() == model.KindSpending)
	}

	surface := lipgloss.NewStyle().Background(t.Surface)
	styles := map[dotLayer]lipgloss.Style{
		layerNone:   surface,
		layerTrack:  surface.Foreground(t.Border),
		layerTick:   surface.Foreground(t.TextDim),
		layerFill:   surface.Foreground(fill),
		layerHandle: surface.Foreground(t.AccentBright),
	}

	cv := newBrailleCanvas(g.Canvas.W, g.Canvas.H)
	center, r := g.Center, g.Radius

	cv.arc(center, r, cfg.StartAngle, cfg.EndAngle, layerTrack)
	cv.arc(center, r-1, cfg.StartAngle, cfg.EndAngle, layerTrack)
	for _, p := range []float64{0, 25, 50, 75, 100} {
		a := cfg.AngleForPercent(p)
		for k := 3.0; k <= 4.0; k++ {
			q := dial.PolarToCartesian(center.X, center.Y, r-k, a)
			cv.set(q.X, q.Y, layerTick)
		}
	}
	handle := d.HandleAngle()
	cv.arc(center, r, cfg.StartAngle, handle, layerFill)
	cv.arc(center, r-1, cfg.StartAngle, handle, layerFill)
	if d.Draggable() {
		hp := dial.PolarToCartesian(center.X, center.Y, r-0.5, handle)
		cv.disc(hp, 1.6, layerHandle)
	}

	readoutStyle := surface.Foreground(t.TextPrimary).Bold(true)
	pctStyle := surface.Foreground(fill)
	midRow := int(center.Y) / DotsPerRow
	if _, ok := d.Mode().(dial.Fixed); ok {
		cv.text(midRow, cli.FormatScore(d.DisplayedValue()), readoutStyle)
	} else {
		cv.text(midRow, cli.FormatMoney(math.Round(d.DisplayedValue()), opts.Currency), readoutStyle)
	}
	cv.text(midRow+1, cli.FormatPercent(pct), pctStyle)

	titleStyle := surface.Foreground(t.TextMuted).Bold(true)
	if opts.Focused {
		titleStyle = titleStyle.Foreground(t.AccentBright)
	}
	kindStyle := surface.Foreground(t.TextDim)
	title := truncate(d.Title(), g.Canvas.W-len(d.Kind().Label())-1)
	gap := g.Canvas.W - lipgloss.Width(title) - lipgloss.Width(d.Kind().Label())
	header := titleStyle.Render(title) + surface.Render(strings.Repeat(" ", max(gap, 1))) + kindStyle.Render(d.Kind().Label())

	footer := renderDialFooter(d, g, opts, surface)

	border := t.Border
	if opts.Focused {
		border = t.BorderAccent
	}
	if d.State() == dial.Dragging {
		border = t.AccentBright
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(g.Canvas.W+2).
		Padding(0, 1)

	return card.Render(header + "\n" + cv.render(styles) + "\n" + footer)
}

func renderDialFooter(d *dial.Dial, g DialCardGeom, opts DialCardOpts, surface lipgloss.Style) string {
	t := theme.Active
	w := g.Canvas.W
	labelStyle := surface.Foreground(t.TextMuted)

	if !d.Draggable() {
		cfg := d.Config()
		label := cli.FormatScore(cfg.CreditRange.Min) + "-" + cli.FormatScore(cfg.CreditRange.Max) + " scale"
		return lipgloss.PlaceHorizontal(w, lipgloss.Center, labelStyle.Render(label),
			lipgloss.WithWhitespaceBackground(t.Surface))
	}

	btn := surface.Foreground(t.Accent).Bold(true)
	target := "Target " + cli.FormatMoney(math.Round(d.DisplayedTarget()), opts.Currency)
	middle := w - g.Minus.W - g.Plus.W
	return btn.Render("[-]") +
		lipgloss.PlaceHorizontal(middle, lipgloss.Center, labelStyle.Render(truncate(target, middle)),
			lipgloss.WithWhitespaceBackground(t.Surface)) +
		btn.Render("[+]")
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
