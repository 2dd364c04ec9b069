package interact

import (
	"math"
	"time"

	"github.com/san-kum/crowdmorph/internal/geom"
)

// Settings tunes the controller. Travel thresholds are in screen pixels; a
// zero TapMaxTravel disables the distance test for touch, matching the
// duration-only tap rule.
type Settings struct {
	Radius           float64
	RotatePerPixel   float64
	ZoomPerDelta     float64
	MinZoom          float64
	MaxZoom          float64
	ClickMaxDuration time.Duration
	ClickMaxTravel   float64
	TapMaxDuration   time.Duration
	TapMaxTravel     float64
}

func DefaultSettings() Settings {
	return Settings{
		Radius:           80,
		RotatePerPixel:   0.005,
		ZoomPerDelta:     0.001,
		MinZoom:          MinZoom,
		MaxZoom:          MaxZoom,
		ClickMaxDuration: 200 * time.Millisecond,
		ClickMaxTravel:   10,
		TapMaxDuration:   300 * time.Millisecond,
	}
}

// Pointer is the shared pointer record. X and Y are screen coordinates.
type Pointer struct {
	X, Y              float64
	Radius            float64
	Active            bool
	Dragging          bool
	DragStartX        float64
	DragStartY        float64
	DragStartRotation float64
	DownAt            time.Time
}

type State int

const (
	Idle State = iota
	Hover
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hover:
		return "hover"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Snapshot is the controller state one frame works with.
type Snapshot struct {
	Transform Transform
	Pointer   Pointer
	Mode      Mode
}

// Local returns the pointer position in simulation space for a w×h canvas.
func (s Snapshot) Local(w, h int) geom.Point {
	return s.Transform.ToLocal(geom.Pt(s.Pointer.X, s.Pointer.Y), w, h)
}

// Repelling reports whether the pointer pushes particles this frame.
func (s Snapshot) Repelling() bool {
	return s.Pointer.Active && !s.Pointer.Dragging
}

type Controller struct {
	settings  Settings
	transform Transform
	pointer   Pointer
	mode      Mode
	pressed   bool
}

func NewController(s Settings) *Controller {
	return &Controller{
		settings:  s,
		transform: Identity(),
		pointer:   Pointer{Radius: s.Radius},
	}
}

func (c *Controller) Settings() Settings { return c.settings }

func (c *Controller) Transform() Transform { return c.transform }

func (c *Controller) Pointer() Pointer { return c.pointer }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) State() State {
	switch {
	case c.pointer.Dragging:
		return Dragging
	case c.pointer.Active:
		return Hover
	}
	return Idle
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{Transform: c.transform, Pointer: c.pointer, Mode: c.mode}
}

// Cycle advances the mode as a qualifying click would.
func (c *Controller) Cycle() Mode {
	c.mode = c.mode.Next()
	return c.mode
}

// Handle applies one event and reports whether it advanced the mode.
func (c *Controller) Handle(ev Event) bool {
	switch e := ev.(type) {
	case PointerDown:
		c.press(e.X, e.Y, e.At)
	case PointerMove:
		c.pointer.Active = true
		c.move(e.X, e.Y)
	case PointerUp:
		travel := math.Abs(e.X-c.pointer.DragStartX) + math.Abs(e.Y-c.pointer.DragStartY)
		click := c.pressed &&
			e.At.Sub(c.pointer.DownAt) < c.settings.ClickMaxDuration &&
			travel < c.settings.ClickMaxTravel
		return c.release(click)
	case TouchStart:
		if len(e.Touches) == 0 {
			return false
		}
		t := e.Touches[0]
		c.press(t.X, t.Y, e.At)
		c.pointer.Active = true
	case TouchMove:
		if len(e.Touches) == 0 {
			return false
		}
		c.move(e.Touches[0].X, e.Touches[0].Y)
	case TouchEnd:
		tap := c.pressed && e.At.Sub(c.pointer.DownAt) < c.settings.TapMaxDuration
		if tap && c.settings.TapMaxTravel > 0 {
			travel := math.Abs(c.pointer.X-c.pointer.DragStartX) + math.Abs(c.pointer.Y-c.pointer.DragStartY)
			tap = travel < c.settings.TapMaxTravel
		}
		return c.release(tap)
	case Wheel:
		c.transform.Zoom = ClampZoom(c.transform.Zoom-e.DeltaY*c.settings.ZoomPerDelta, c.settings.MinZoom, c.settings.MaxZoom)
	}
	return false
}

func (c *Controller) press(x, y float64, at time.Time) {
	c.pointer.X, c.pointer.Y = x, y
	c.pointer.Dragging = true
	c.pointer.DragStartX, c.pointer.DragStartY = x, y
	c.pointer.DragStartRotation = c.transform.Rotation
	c.pointer.DownAt = at
	c.pressed = true
}

func (c *Controller) move(x, y float64) {
	c.pointer.X, c.pointer.Y = x, y
	if c.pointer.Dragging {
		c.transform.Rotation = c.pointer.DragStartRotation + (x-c.pointer.DragStartX)*c.settings.RotatePerPixel
	}
}

func (c *Controller) release(click bool) bool {
	c.pointer.Active = false
	c.pointer.Dragging = false
	c.pressed = false
	if click {
		c.mode = c.mode.Next()
	}
	return click
}
