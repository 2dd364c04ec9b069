package interact

import (
	"time"

	"github.com/san-kum/crowdmorph/internal/geom"
)

// Event is one input notification from a display surface. Coordinates are
// screen pixels relative to the canvas origin.
type Event interface {
	event()
}

type PointerDown struct {
	X, Y float64
	At   time.Time
}

type PointerMove struct {
	X, Y float64
}

type PointerUp struct {
	X, Y float64
	At   time.Time
}

// TouchStart and TouchMove list the active touch points; only the first is
// read.
type TouchStart struct {
	Touches []geom.Point
	At      time.Time
}

type TouchMove struct {
	Touches []geom.Point
}

type TouchEnd struct {
	At time.Time
}

// Wheel uses browser sign convention: positive DeltaY scrolls down and zooms
// out.
type Wheel struct {
	DeltaY float64
}

// Resize reports new canvas dimensions; the controller ignores it.
type Resize struct {
	Width, Height int
}

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event()   {}
func (TouchStart) event()  {}
func (TouchMove) event()   {}
func (TouchEnd) event()    {}
func (Wheel) event()       {}
func (Resize) event()      {}
