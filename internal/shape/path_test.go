package shape

import (
	"errors"
	"testing"

	"github.com/srwiley/oksvg"
	"golang.org/x/image/math/fixed"
)

const logo = "M55.124 0H0V58.7989C16.9966 58.7989 33.6511 48.0627 45.1006 32.8815C57.846 48.7036 85.3071 58.7989 117.598 58.7989V0H55.124Z"

func TestBoundsLogo(t *testing.T) {
	var c oksvg.PathCursor
	if err := c.CompilePath(logo); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	lo, hi := bounds(c.Path)
	if lo != (fixed.Point26_6{}) {
		t.Errorf("expected min (0,0), got %v", lo)
	}
	if w := fixedToFloat(hi.X); w < 117.5 || w > 117.7 {
		t.Errorf("expected max x near 117.598, got %f", w)
	}
	if h := fixedToFloat(hi.Y); h < 58.7 || h > 58.9 {
		t.Errorf("expected max y near 58.7989, got %f", h)
	}
}

func TestPathRasterizeLogo(t *testing.T) {
	img, err := Render(Path{Data: logo, Width: 118, Height: 59}, 236, 118)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	tests := []struct {
		name   string
		x, y   int
		filled bool
	}{
		{"upper left block", 45, 30, true},
		{"upper right block", 190, 30, true},
		{"notch under the arch", 97, 97, false},
		{"left margin", 10, 59, false},
		{"top margin", 118, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.RGBAAt(tt.x, tt.y) != Background
			if got != tt.filled {
				t.Errorf("pixel (%d,%d): expected filled=%v", tt.x, tt.y, tt.filled)
			}
		})
	}
}

func TestPathScalesToThreeQuarters(t *testing.T) {
	// 10x10 square on 100x100 -> 75px square from 12.5 to 87.5
	img, err := Render(Path{Data: "M0 0H10V10H0Z"}, 100, 100)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	pts := Extract(img, 1)
	minX, maxX := 1e9, -1e9
	for _, p := range pts {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
	}
	if minX < 11 || minX > 14 {
		t.Errorf("expected left edge near 12.5, got %f", minX)
	}
	if maxX < 86 || maxX > 89 {
		t.Errorf("expected right edge near 87.5, got %f", maxX)
	}
	if img.RGBAAt(50, 50) != Foreground {
		t.Error("expected solid center")
	}
}

func TestPathRelativeMatchesAbsolute(t *testing.T) {
	abs, err := Render(Path{Data: "M10 10 L30 10 L30 30 L10 30 Z"}, 80, 80)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	rel, err := Render(Path{Data: "m10 10 h20 v20 h-20 z"}, 80, 80)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	a, r := Extract(abs, 1), Extract(rel, 1)
	if len(a) != len(r) {
		t.Fatalf("expected %d painted pixels, got %d", len(a), len(r))
	}
	for i := range a {
		if a[i] != r[i] {
			t.Fatalf("pixel %d: expected %v, got %v", i, a[i], r[i])
		}
	}
}

func TestPathArc(t *testing.T) {
	// circle of radius 10 drawn as two half arcs
	img, err := Render(Path{Data: "M0 10 A10 10 0 0 1 20 10 A10 10 0 0 1 0 10 Z"}, 100, 100)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if img.RGBAAt(50, 50) != Foreground {
		t.Error("expected filled center")
	}
	// corners of the bounding square stay outside the circle
	if img.RGBAAt(15, 15) != Background {
		t.Error("expected empty corner")
	}
}

func TestPathErrorsFallBack(t *testing.T) {
	s := seeded()
	tests := []struct {
		name string
		data string
		want error
	}{
		{"syntax", "M0 0 L", ErrPathSyntax},
		{"missing coordinate", "M10", ErrPathSyntax},
		{"unknown command", "M0 0 X5 5", ErrPathSyntax},
		{"no commands", "10 10", ErrEmptyPath},
		{"empty", "", ErrEmptyPath},
		{"degenerate", "M5 5 L5 5", ErrEmptyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := s.Sample(Path{Data: tt.data}, 50, 40, 4)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(pts) != 4 {
				t.Errorf("expected 4 fallback points, got %d", len(pts))
			}
		})
	}
}
