package shape

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DefaultPathFill is the share of the limiting canvas dimension a path covers.
const DefaultPathFill = 0.75

// Path is SVG path data drawn centered and uniformly scaled.
//
// Width and Height give the native extent of the path (its viewBox, origin at
// 0,0). When either is zero the bounding box of the compiled path is used.
type Path struct {
	Data   string
	Width  float64
	Height float64
	Fill   float64
}

func (p Path) Rasterize(dst *image.RGBA) error {
	cursor := oksvg.PathCursor{ErrorMode: oksvg.StrictErrorMode}
	if err := cursor.CompilePath(p.Data); err != nil {
		return fmt.Errorf("%w: %v", ErrPathSyntax, err)
	}
	if len(cursor.Path) == 0 {
		return ErrEmptyPath
	}

	nw, nh, ox, oy := p.extent(cursor.Path)
	if nw <= 0 || nh <= 0 {
		return ErrEmptyPath
	}

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	fill := p.Fill
	if fill <= 0 {
		fill = DefaultPathFill
	}
	scale := math.Min(float64(w)/nw, float64(h)/nh) * fill

	scanner := rasterx.NewScannerGV(w, h, dst, b)
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(color.White)
	filler.SetWinding(true)

	m := rasterx.Identity.
		Translate(float64(w)/2, float64(h)/2).
		Scale(scale, scale).
		Translate(-ox, -oy)
	cursor.Path.AddTo(&rasterx.MatrixAdder{Adder: filler, M: m})
	filler.Draw()
	return nil
}

// extent returns the native size and the path-local point that lands on the
// canvas center.
func (p Path) extent(path rasterx.Path) (w, h, ox, oy float64) {
	if p.Width > 0 && p.Height > 0 {
		return p.Width, p.Height, p.Width / 2, p.Height / 2
	}
	lo, hi := bounds(path)
	x0, y0 := fixedToFloat(lo.X), fixedToFloat(lo.Y)
	x1, y1 := fixedToFloat(hi.X), fixedToFloat(hi.Y)
	return x1 - x0, y1 - y0, (x0 + x1) / 2, (y0 + y1) / 2
}

// bounds returns the box around every point of a compiled path, control
// points included.
func bounds(path rasterx.Path) (lo, hi fixed.Point26_6) {
	lo = fixed.Point26_6{X: math.MaxInt32, Y: math.MaxInt32}
	hi = fixed.Point26_6{X: math.MinInt32, Y: math.MinInt32}
	add := func(x, y fixed.Int26_6) {
		lo.X, lo.Y = min(lo.X, x), min(lo.Y, y)
		hi.X, hi.Y = max(hi.X, x), max(hi.Y, y)
	}
	for i := 0; i < len(path); {
		n := 0
		switch rasterx.PathCommand(path[i]) {
		case rasterx.PathMoveTo, rasterx.PathLineTo:
			n = 1
		case rasterx.PathQuadTo:
			n = 2
		case rasterx.PathCubicTo:
			n = 3
		}
		for j := 0; j < n; j++ {
			add(path[i+1+2*j], path[i+2+2*j])
		}
		i += 1 + 2*n
	}
	return lo, hi
}
