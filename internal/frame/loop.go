package frame

import (
	"image/color"
	"sync"
	"time"

	"github.com/san-kum/crowdmorph/internal/geom"
	"github.com/san-kum/crowdmorph/internal/interact"
	"github.com/san-kum/crowdmorph/internal/swarm"
)

// Canvas is a 2D drawing target. PushTransform applies t around (cx, cy)
// until the matching PopTransform.
type Canvas interface {
	Clear()
	PushTransform(t interact.Transform, cx, cy float64)
	DrawLabel(text string, x, y, size float64, c color.RGBA)
	PopTransform()
}

// Readier is implemented by canvases that can be temporarily unavailable,
// such as a window that is minimized or not yet sized.
type Readier interface {
	Ready() bool
}

// Surface is where events come from.
type Surface interface {
	Size() (w, h int)
	Subscribe(fn func(interact.Event)) (unsubscribe func())
}

// Scene publishes the particle set the loop animates.
type Scene interface {
	Current() *swarm.Swarm
	Resize(w, h int)
}

// Stats describes one finished frame. Swarm is the set that was drawn and
// must not be retained past the observer call.
type Stats struct {
	Frame   uint64
	At      time.Time
	Mode    interact.Mode
	Drawn   int
	Skipped int
	Swarm   *swarm.Swarm
}

type Observer func(Stats)

type Loop struct {
	Dynamics swarm.Dynamics

	sched   Scheduler
	canvas  Canvas
	surface Surface
	scene   Scene
	ctrl    *interact.Controller

	observers []Observer
	frames    uint64
	moved     []bool

	mu       sync.Mutex
	handle   Handle
	started  bool
	stopped  bool
	unsub    func()
	stopOnce sync.Once
}

func NewLoop(sched Scheduler, canvas Canvas, surface Surface, scene Scene, ctrl *interact.Controller) *Loop {
	return &Loop{
		Dynamics: swarm.DefaultDynamics(),
		sched:    sched,
		canvas:   canvas,
		surface:  surface,
		scene:    scene,
		ctrl:     ctrl,
	}
}

// Observe registers fn to run after every drawn frame.
func (l *Loop) Observe(fn Observer) {
	l.observers = append(l.observers, fn)
}

func (l *Loop) Controller() *interact.Controller { return l.ctrl }

// Start subscribes to the surface and schedules the first frame. It is a
// no-op after the first call or once stopped.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true
	if l.surface != nil {
		l.unsub = l.surface.Subscribe(l.dispatch)
	}
	l.handle = l.sched.ScheduleFrame(l.tick)
}

// Stop cancels the pending frame and removes the event listener. Later calls
// do nothing.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		h, unsub := l.handle, l.unsub
		l.handle, l.unsub = 0, nil
		l.mu.Unlock()

		if h != 0 {
			l.sched.CancelFrame(h)
		}
		if unsub != nil {
			unsub()
		}
	})
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started && !l.stopped
}

func (l *Loop) tick(now time.Time) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.handle = 0
	l.mu.Unlock()

	l.Step(now)

	l.mu.Lock()
	if !l.stopped {
		l.handle = l.sched.ScheduleFrame(l.tick)
	}
	l.mu.Unlock()
}

func (l *Loop) dispatch(ev interact.Event) {
	if r, ok := ev.(interact.Resize); ok {
		if l.scene != nil {
			l.scene.Resize(r.Width, r.Height)
		}
		return
	}
	l.ctrl.Handle(ev)
}

// Step simulates and draws exactly one frame. Without a usable canvas the
// frame is skipped entirely and particles do not move.
func (l *Loop) Step(now time.Time) Stats {
	st := Stats{Frame: l.frames, At: now}
	l.frames++

	if !ready(l.canvas) {
		return st
	}

	sw := l.current()
	snap := l.ctrl.Snapshot()
	w, h := l.size(sw)
	st.Mode, st.Swarm = snap.Mode, sw

	rep := swarm.Repeller{
		Pos:     snap.Local(w, h),
		Radius:  snap.Pointer.Radius,
		Enabled: snap.Repelling(),
	}
	mode := int(snap.Mode)
	c := geom.Center(w, h)

	l.canvas.Clear()
	l.canvas.PushTransform(snap.Transform, c.X, c.Y)
	if sw != nil {
		l.moved = sw.Advance(mode, rep, l.Dynamics, l.moved)
		for i := range sw.Particles {
			if !l.moved[i] {
				st.Skipped++
				continue
			}
			p := &sw.Particles[i]
			l.canvas.DrawLabel(p.Entity.Text(), p.X, p.Y, p.Size, p.Color)
			st.Drawn++
		}
	}
	l.canvas.PopTransform()

	for _, obs := range l.observers {
		obs(st)
	}
	return st
}

func (l *Loop) current() *swarm.Swarm {
	if l.scene == nil {
		return nil
	}
	return l.scene.Current()
}

// size is the layout size of the set being drawn. A set published for an
// earlier canvas keeps its own center until the rebuild for the new size
// lands; the surface size only applies before the first set exists.
func (l *Loop) size(sw *swarm.Swarm) (int, int) {
	if sw != nil && sw.Width > 0 && sw.Height > 0 {
		return sw.Width, sw.Height
	}
	if l.surface != nil {
		return l.surface.Size()
	}
	return 0, 0
}

func ready(c Canvas) bool {
	if c == nil {
		return false
	}
	if r, ok := c.(Readier); ok {
		return r.Ready()
	}
	return true
}

// Discard is a Canvas that draws nothing, for headless runs that only need
// the simulation to advance.
type Discard struct{}

func (Discard) Clear()                                                  {}
func (Discard) PushTransform(interact.Transform, float64, float64)      {}
func (Discard) DrawLabel(string, float64, float64, float64, color.RGBA) {}
func (Discard) PopTransform()                                           {}
