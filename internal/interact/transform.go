package interact

import (
	"math"

	"github.com/san-kum/crowdmorph/internal/geom"
)

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// Transform is applied to the canvas around its center: translate to center,
// scale by Zoom, rotate by Rotation, translate back.
type Transform struct {
	Zoom     float64
	Rotation float64
}

func Identity() Transform { return Transform{Zoom: 1} }

// ToScreen maps a local (simulation) point to screen space.
func (t Transform) ToScreen(p geom.Point, w, h int) geom.Point {
	c := geom.Center(w, h)
	return p.Sub(c).Rotate(t.Rotation).Scale(t.zoom()).Add(c)
}

// ToLocal undoes ToScreen: translate by -center, rotate by -Rotation, scale by
// 1/Zoom, translate back.
func (t Transform) ToLocal(p geom.Point, w, h int) geom.Point {
	c := geom.Center(w, h)
	return p.Sub(c).Rotate(-t.Rotation).Scale(1 / t.zoom()).Add(c)
}

func (t Transform) zoom() float64 {
	if t.Zoom == 0 {
		return 1
	}
	return t.Zoom
}

// ClampZoom bounds z to [lo, hi].
func ClampZoom(z, lo, hi float64) float64 {
	return math.Max(lo, math.Min(z, hi))
}
