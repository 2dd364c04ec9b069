package swarm

import (
	"image/color"
	"math/rand"

	"github.com/san-kum/crowdmorph/internal/geom"
	"github.com/san-kum/crowdmorph/internal/roster"
	"github.com/san-kum/crowdmorph/internal/shape"
)

type Particle struct {
	X, Y    float64
	Targets []geom.Point
	Density float64
	Size    float64
	Entity  roster.Entity
	Color   color.RGBA
}

func (p *Particle) Pos() geom.Point { return geom.Pt(p.X, p.Y) }

// Traits bounds the random per-particle attributes: Density in
// (DensityMin, DensityMax), Size in [SizeMin, SizeMax).
type Traits struct {
	DensityMin float64
	DensityMax float64
	SizeMin    float64
	SizeMax    float64
}

func DefaultTraits() Traits {
	return Traits{DensityMin: 1, DensityMax: 21, SizeMin: 8, SizeMax: 12}
}

// Swarm is an immutable-length particle set for one canvas size. It is
// replaced wholesale on rebuild, never resized in place.
type Swarm struct {
	Width, Height int
	Particles     []Particle
}

// Assign pairs entity i with shapes[m][i] for every mode m, or with the canvas
// center when shape m has fewer than i+1 points.
func Assign(n int, shapes []shape.Shape, w, h int) [][]geom.Point {
	center := geom.Center(w, h)
	targets := make([][]geom.Point, n)
	for i := range targets {
		targets[i] = make([]geom.Point, len(shapes))
		for m, s := range shapes {
			if i < len(s) {
				targets[i][m] = s[i]
			} else {
				targets[i][m] = center
			}
		}
	}
	return targets
}

// New builds the particle set with random start positions over the canvas.
// Colors that do not parse fall back to roster.DefaultColor.
func New(entities []roster.Entity, shapes []shape.Shape, w, h int, traits Traits, rng *rand.Rand) *Swarm {
	targets := Assign(len(entities), shapes, w, h)
	s := &Swarm{Width: w, Height: h, Particles: make([]Particle, len(entities))}
	for i, e := range entities {
		c, _ := e.RGBA()
		s.Particles[i] = Particle{
			X:       rng.Float64() * float64(w),
			Y:       rng.Float64() * float64(h),
			Targets: targets[i],
			Density: traits.DensityMin + rng.Float64()*(traits.DensityMax-traits.DensityMin),
			Size:    traits.SizeMin + rng.Float64()*(traits.SizeMax-traits.SizeMin),
			Entity:  e,
			Color:   c,
		}
	}
	return s
}

func (s *Swarm) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Particles)
}
