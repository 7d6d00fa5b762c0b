package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabstack/internal/stack"
	"tabstack/internal/ui/textutil"
)

type cellStyle uint8

const (
	styleBackground cellStyle = iota
	styleNormal
	styleSelected
	styleFaded
	styleDying
)

func (s cellStyle) lipgloss() lipgloss.Style {
	switch s {
	case styleNormal:
		return Styles.CardNormal
	case styleSelected:
		return Styles.CardSelected
	case styleFaded:
		return Styles.CardFaded
	case styleDying:
		return Styles.CardDying
	default:
		return Styles.Background
	}
}

// Rect is a half-open cell rectangle [X0,X1) x [Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Canvas is a grid of styled runes. Later draws cover earlier ones.
type Canvas struct {
	w, h   int
	runes  []rune
	styles []cellStyle
}

// NewCanvas returns a blank w x h canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{w: w, h: h, runes: make([]rune, w*h), styles: make([]cellStyle, w*h)}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *Canvas) set(x, y int, r rune, s cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.styles[y*c.w+x] = s
}

// DrawCard draws a bordered card with label on its first inner row, clearing
// whatever was underneath.
func (c *Canvas) DrawCard(r Rect, label string, s cellStyle) {
	if r.empty() {
		return
	}
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			c.set(x, y, ' ', s)
		}
	}
	for x := r.X0 + 1; x < r.X1-1; x++ {
		c.set(x, r.Y0, '─', s)
		c.set(x, r.Y1-1, '─', s)
	}
	for y := r.Y0 + 1; y < r.Y1-1; y++ {
		c.set(r.X0, y, '│', s)
		c.set(r.X1-1, y, '│', s)
	}
	c.set(r.X0, r.Y0, '╭', s)
	c.set(r.X1-1, r.Y0, '╮', s)
	c.set(r.X0, r.Y1-1, '╰', s)
	c.set(r.X1-1, r.Y1-1, '╯', s)

	row := r.Y0 + 1
	if r.Y1-r.Y0 < 3 {
		row = r.Y0
	}
	x := r.X0 + 2
	for _, ch := range textutil.Truncate(label, r.X1-r.X0-4) {
		c.set(x, row, ch, s)
		x++
	}
}

// Plain returns the canvas without styling.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(c.runes[y*c.w : (y+1)*c.w]))
	}
	return b.String()
}

// String renders the canvas, styling runs of equal cells together.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := y * c.w
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.styles[row+x] == c.styles[row+start] {
				continue
			}
			b.WriteString(c.styles[row+start].lipgloss().Render(string(c.runes[row+start : row+x])))
			start = x
		}
	}
	return b.String()
}

// Projection maps switcher pixels to canvas cells.
type Projection struct {
	SX, SY float64
}

// NewProjection fits a viewport into a cols x rows canvas.
func NewProjection(v stack.Viewport, cols, rows int) Projection {
	if v.Width <= 0 || v.Height <= 0 {
		return Projection{}
	}
	return Projection{SX: float64(cols) / v.Width, SY: float64(rows) / v.Height}
}

// Rect projects a pixel rectangle, rounding outward.
func (p Projection) Rect(x, y, w, h float64) Rect {
	return Rect{
		X0: int(math.Floor(x * p.SX)),
		Y0: int(math.Floor(y * p.SY)),
		X1: int(math.Ceil((x + w) * p.SX)),
		Y1: int(math.Ceil((y + h) * p.SY)),
	}
}

// Frame projects a tab frame.
func (p Projection) Frame(f stack.TabFrame) Rect {
	return p.Rect(f.X, f.Y, f.Width, f.Height)
}

// frameStyle picks the card style for f.
func frameStyle(f stack.TabFrame, selected bool) cellStyle {
	switch {
	case f.Dying:
		return styleDying
	case selected:
		return styleSelected
	case f.Alpha < 0.5:
		return styleFaded
	default:
		return styleNormal
	}
}
