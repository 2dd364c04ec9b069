package swarm

import "github.com/san-kum/crowdmorph/internal/geom"

// Dynamics are the easing divisors and the push gain. A particle closes
// 1/Ease of its gap to the target each frame, or 1/RepelEase while pushed.
type Dynamics struct {
	Ease      float64
	RepelEase float64
	RepelGain float64
}

func DefaultDynamics() Dynamics {
	return Dynamics{Ease: 15, RepelEase: 30, RepelGain: 5}
}

// Repeller is the pointer as seen by the simulation, in local space.
type Repeller struct {
	Pos     geom.Point
	Radius  float64
	Enabled bool
}

// Seek advances p one frame toward Targets[mode]. It returns false, leaving p
// untouched, when p has no target for mode.
//
// Inside the radius the push is (Radius-d)/Radius * Density * RepelGain along
// the pointer-to-particle direction. At d == 0 the direction is undefined and
// no push is applied; the weak pull still is.
func (p *Particle) Seek(mode int, r Repeller, d Dynamics) bool {
	if mode < 0 || mode >= len(p.Targets) {
		return false
	}
	target := p.Targets[mode]

	delta := r.Pos.Sub(p.Pos())
	dist := delta.Len()

	if !r.Enabled || dist >= r.Radius {
		p.X -= (p.X - target.X) / d.Ease
		p.Y -= (p.Y - target.Y) / d.Ease
		return true
	}

	if dist > 0 {
		force := (r.Radius - dist) / r.Radius
		push := delta.Scale(force * p.Density * d.RepelGain / dist)
		p.X -= push.X
		p.Y -= push.Y
	}

	p.X -= (p.X - target.X) / d.RepelEase
	p.Y -= (p.Y - target.Y) / d.RepelEase
	return true
}
