// Package metrics summarizes how far a particle set is from its formation.
package metrics

import (
	"math"

	"github.com/san-kum/crowdmorph/internal/frame"
)

type Metric interface {
	Name() string
	Observe(st frame.Stats)
	Value() float64
	Reset()
}

// Observer adapts metrics to a frame.Loop observer.
func Observer(ms ...Metric) frame.Observer {
	return func(st frame.Stats) {
		for _, m := range ms {
			m.Observe(st)
		}
	}
}

// gaps calls fn with each particle's distance to its target for the frame's
// mode. Particles without a target are not visited.
func gaps(st frame.Stats, fn func(d float64)) {
	if st.Swarm == nil {
		return
	}
	mode := int(st.Mode)
	for i := range st.Swarm.Particles {
		p := &st.Swarm.Particles[i]
		if mode < 0 || mode >= len(p.Targets) {
			continue
		}
		fn(p.Pos().Dist(p.Targets[mode]))
	}
}

// Convergence is the mean particle-to-target distance of the latest frame.
// History keeps one value per observed frame, oldest first, up to Capacity.
type Convergence struct {
	name     string
	Capacity int
	history  []float64
}

func NewConvergence(capacity int) *Convergence {
	return &Convergence{name: "convergence", Capacity: capacity}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) Observe(st frame.Stats) {
	sum, n := 0.0, 0
	gaps(st, func(d float64) {
		sum += d
		n++
	})
	mean := 0.0
	if n > 0 {
		mean = sum / float64(n)
	}
	c.history = append(c.history, mean)
	if c.Capacity > 0 && len(c.history) > c.Capacity {
		c.history = c.history[len(c.history)-c.Capacity:]
	}
}

func (c *Convergence) Value() float64 {
	if len(c.history) == 0 {
		return 0
	}
	return c.history[len(c.history)-1]
}

func (c *Convergence) History() []float64 { return c.history }

func (c *Convergence) Reset() { c.history = nil }

// Spread is the largest particle-to-target distance seen in the latest frame.
type Spread struct {
	name string
	max  float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(st frame.Stats) {
	s.max = 0
	gaps(st, func(d float64) { s.max = math.Max(s.max, d) })
}

func (s *Spread) Value() float64 { return s.max }

func (s *Spread) Reset() { s.max = 0 }

// Settle counts frames until the mean distance first drops below Threshold,
// restarting whenever the mode changes. Value is -1 while unsettled.
type Settle struct {
	name      string
	Threshold float64
	mode      int
	frames    int
	settled   int
	started   bool
}

func NewSettle(threshold float64) *Settle {
	return &Settle{name: "settle_frames", Threshold: threshold, settled: -1}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(st frame.Stats) {
	if !s.started || int(st.Mode) != s.mode {
		s.started = true
		s.mode = int(st.Mode)
		s.frames, s.settled = 0, -1
	}
	s.frames++
	if s.settled >= 0 {
		return
	}

	sum, n := 0.0, 0
	gaps(st, func(d float64) {
		sum += d
		n++
	})
	if n > 0 && sum/float64(n) < s.Threshold {
		s.settled = s.frames
	}
}

func (s *Settle) Value() float64 { return float64(s.settled) }

func (s *Settle) Reset() {
	s.started = false
	s.frames, s.settled = 0, -1
}

// SkipRate is the share of particles skipped for lack of a target, averaged
// over observed frames.
type SkipRate struct {
	name    string
	sum     float64
	samples int
}

func NewSkipRate() *SkipRate {
	return &SkipRate{name: "skip_rate"}
}

func (r *SkipRate) Name() string { return r.name }

func (r *SkipRate) Observe(st frame.Stats) {
	total := st.Drawn + st.Skipped
	if total == 0 {
		return
	}
	r.sum += float64(st.Skipped) / float64(total)
	r.samples++
}

func (r *SkipRate) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *SkipRate) Reset() {
	r.sum = 0
	r.samples = 0
}
