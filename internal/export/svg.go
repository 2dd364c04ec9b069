package export

import (
	"fmt"
	"html"
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/crowdmorph/internal/geom"
	"github.com/san-kum/crowdmorph/internal/interact"
)

const background = "#0a0a0a"

// SVG is a frame.Canvas that records one frame as an SVG document. Each
// PushTransform opens a group carrying the equivalent SVG transform.
type SVG struct {
	Width, Height int

	body  strings.Builder
	depth int
}

func NewSVG(w, h int) *SVG {
	return &SVG{Width: w, Height: h}
}

func (s *SVG) Ready() bool { return s.Width > 0 && s.Height > 0 }

func (s *SVG) Clear() {
	s.body.Reset()
	s.depth = 0
}

// PushTransform mirrors the canvas order: translate to center, scale,
// rotate, translate back.
func (s *SVG) PushTransform(t interact.Transform, cx, cy float64) {
	zoom := t.Zoom
	if zoom == 0 {
		zoom = 1
	}
	fmt.Fprintf(&s.body, `<g transform="translate(%.2f %.2f) scale(%.4f) rotate(%.4f) translate(%.2f %.2f)">`+"\n",
		cx, cy, zoom, t.Rotation*180/math.Pi, -cx, -cy)
	s.depth++
}

func (s *SVG) PopTransform() {
	if s.depth == 0 {
		return
	}
	s.body.WriteString("</g>\n")
	s.depth--
}

// DrawLabel writes text centered on (x, y) in its color.
func (s *SVG) DrawLabel(text string, x, y, size float64, c color.RGBA) {
	fmt.Fprintf(&s.body, `<text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
		x, y, size, hex(c), html.EscapeString(text))
}

// String closes any open groups and returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	header(&sb, s.Width, s.Height)
	sb.WriteString(`<g font-family="sans-serif" font-weight="bold" text-anchor="middle" dominant-baseline="central">` + "\n")
	sb.WriteString(s.body.String())
	sb.WriteString(strings.Repeat("</g>\n", s.depth))
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PointsToSVG plots a sampled shape as dots on a w×h canvas.
func PointsToSVG(points []geom.Point, w, h int, fill string) string {
	var sb strings.Builder
	header(&sb, w, h)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", fill)
	for _, p := range points {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="1.2"/>`+"\n", p.X, p.Y)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func header(sb *strings.Builder, w, h int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
