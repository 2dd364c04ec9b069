package interact

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/crowdmorph/internal/geom"
)

func TestToLocalInvertsToScreen(t *testing.T) {
	tests := []struct {
		name string
		tf   Transform
	}{
		{"identity", Identity()},
		{"zoomed", Transform{Zoom: 2.5}},
		{"rotated", Transform{Zoom: 1, Rotation: 0.7}},
		{"both", Transform{Zoom: 0.3, Rotation: -2.1}},
	}

	pts := []geom.Point{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 12.5, Y: 590}, {X: -30, Y: 800}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range pts {
				back := tt.tf.ToScreen(tt.tf.ToLocal(p, 800, 600), 800, 600)
				if back.Dist(p) > 1e-9 {
					t.Errorf("round trip of %v gave %v", p, back)
				}
			}
		})
	}
}

func TestToLocalMatchesCanvasChain(t *testing.T) {
	tf := Transform{Zoom: 2, Rotation: math.Pi / 2}
	// the center is a fixed point
	if got := tf.ToLocal(geom.Pt(400, 300), 800, 600); got.Dist(geom.Pt(400, 300)) > 1e-9 {
		t.Errorf("center moved to %v", got)
	}
	// screen point 100px right of center: rotate by -90deg -> 100px up, then halve
	got := tf.ToLocal(geom.Pt(500, 300), 800, 600)
	if got.Dist(geom.Pt(400, 250)) > 1e-9 {
		t.Errorf("expected (400, 250), got %v", got)
	}
}

func TestZeroZoomTreatedAsIdentity(t *testing.T) {
	got := Transform{}.ToLocal(geom.Pt(10, 20), 100, 100)
	if !got.IsValid() || got.Dist(geom.Pt(10, 20)) > 1e-9 {
		t.Errorf("expected (10, 20), got %v", got)
	}
}

func TestWheelZoomStaysClamped(t *testing.T) {
	c := NewController(DefaultSettings())
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 5000; i++ {
		c.Handle(Wheel{DeltaY: (rng.Float64() - 0.5) * 4000})
		z := c.Transform().Zoom
		if z < MinZoom || z > MaxZoom {
			t.Fatalf("step %d: zoom %f escaped [%v, %v]", i, z, MinZoom, MaxZoom)
		}
	}
}

func TestWheelDirection(t *testing.T) {
	c := NewController(DefaultSettings())
	c.Handle(Wheel{DeltaY: 100})
	if z := c.Transform().Zoom; math.Abs(z-0.9) > 1e-12 {
		t.Errorf("scrolling down should zoom out to 0.9, got %f", z)
	}
	c.Handle(Wheel{DeltaY: -10000})
	if z := c.Transform().Zoom; z != MaxZoom {
		t.Errorf("expected clamp at %v, got %f", MaxZoom, z)
	}
}
