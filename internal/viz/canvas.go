package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/crowdmorph/internal/interact"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// affine maps (x, y) to (a*x + c*y + e, b*x + d*y + f).
type affine struct{ a, b, c, d, e, f float64 }

var identity = affine{a: 1, d: 1}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

// then returns the transform that applies m first and n after it.
func (m affine) then(n affine) affine {
	return affine{
		a: n.a*m.a + n.c*m.b,
		b: n.b*m.a + n.d*m.b,
		c: n.a*m.c + n.c*m.d,
		d: n.b*m.c + n.d*m.d,
		e: n.a*m.e + n.c*m.f + n.e,
		f: n.b*m.e + n.d*m.f + n.f,
	}
}

// around builds the canvas transform for t pivoting on (cx, cy).
func around(t interact.Transform, cx, cy float64) affine {
	z := t.Zoom
	if z == 0 {
		z = 1
	}
	sin, cos := math.Sincos(t.Rotation)
	m := affine{a: z * cos, b: z * sin, c: -z * sin, d: z * cos}
	m.e = cx - m.a*cx - m.c*cy
	m.f = cy - m.b*cx - m.d*cy
	return m
}

// Canvas is a braille dot matrix. Coordinates are in "sub-pixels": the canvas
// is (Width*2) x (Height*4) dots. Each cell keeps the color of the last dot
// plotted into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA

	tf    affine
	stack []affine
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid for w×h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]color.RGBA, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Ready() bool { return c.Width > 0 && c.Height > 0 }

// Set sets the dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	c.set(x, y, color.RGBA{255, 255, 255, 255})
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

// Clear empties the grid and drops any pushed transforms.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
	c.tf = identity
	c.stack = c.stack[:0]
}

func (c *Canvas) PushTransform(t interact.Transform, cx, cy float64) {
	c.stack = append(c.stack, c.tf)
	c.tf = around(t, cx, cy).then(c.tf)
}

func (c *Canvas) PopTransform() {
	if n := len(c.stack); n > 0 {
		c.tf = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// DrawLabel plots the label's anchor as a single dot; the matrix is too
// coarse for glyphs.
func (c *Canvas) DrawLabel(_ string, x, y, _ float64, col color.RGBA) {
	sx, sy := c.tf.apply(x, y)
	c.set(int(math.Floor(sx)), int(math.Floor(sy)), col)
}

// String renders the grid without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the grid with each run of same-colored cells wrapped in one
// lipgloss style.
func (c *Canvas) Render() string { return c.render(nil) }

// RenderMono renders every lit cell in col.
func (c *Canvas) RenderMono(col color.RGBA) string { return c.render(&col) }

func (c *Canvas) render(tint *color.RGBA) string {
	styles := make(map[color.RGBA]lipgloss.Style)
	style := func(col color.RGBA) lipgloss.Style {
		s, ok := styles[col]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(int(col.R), int(col.G), int(col.B))))
			styles[col] = s
		}
		return s
	}

	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			col := c.Colors[i][start]
			if col.A != 0 && tint != nil {
				col = *tint
			}
			if col.A == 0 {
				b.WriteString(run)
			} else {
				b.WriteString(style(col).Render(run))
			}
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
