package interact

import (
	"time"

	"github.com/san-kum/crowdmorph/internal/geom"
)

// DefaultWheelScale converts one wheel notch into DeltaY pixels, the unit
// browsers report in line mode.
const DefaultWheelScale = 100

// Input is one frame of polled device state, as immediate-mode backends
// expose it. Wheel is positive when scrolling up.
type Input struct {
	Mouse     geom.Point
	MouseDown bool
	Wheel     float64
	Touches   []geom.Point
}

// Poller turns successive Input samples into discrete events. While any
// touch is down the mouse is ignored, since platforms mirror the primary
// touch onto it.
type Poller struct {
	WheelScale float64

	started bool
	prev    Input
}

func (p *Poller) Events(in Input, now time.Time) []Event {
	var evs []Event
	prev := p.prev
	if !p.started {
		prev = Input{Mouse: in.Mouse}
		p.started = true
	}
	p.prev = Input{Mouse: in.Mouse, MouseDown: in.MouseDown, Touches: append([]geom.Point(nil), in.Touches...)}

	switch {
	case len(in.Touches) > 0 && len(prev.Touches) == 0:
		evs = append(evs, TouchStart{Touches: in.Touches, At: now})
	case len(in.Touches) > 0:
		if in.Touches[0] != prev.Touches[0] {
			evs = append(evs, TouchMove{Touches: in.Touches})
		}
	case len(prev.Touches) > 0:
		evs = append(evs, TouchEnd{At: now})
	default:
		if in.Mouse != prev.Mouse {
			evs = append(evs, PointerMove{X: in.Mouse.X, Y: in.Mouse.Y})
		}
		if in.MouseDown && !prev.MouseDown {
			evs = append(evs, PointerDown{X: in.Mouse.X, Y: in.Mouse.Y, At: now})
		}
		if !in.MouseDown && prev.MouseDown {
			evs = append(evs, PointerUp{X: in.Mouse.X, Y: in.Mouse.Y, At: now})
		}
	}

	if in.Wheel != 0 {
		scale := p.WheelScale
		if scale == 0 {
			scale = DefaultWheelScale
		}
		evs = append(evs, Wheel{DeltaY: -in.Wheel * scale})
	}
	return evs
}
