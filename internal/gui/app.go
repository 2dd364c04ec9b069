package gui

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/crowdmorph/internal/frame"
	"github.com/san-kum/crowdmorph/internal/geom"
	"github.com/san-kum/crowdmorph/internal/interact"
	"github.com/san-kum/crowdmorph/internal/metrics"
	"github.com/san-kum/crowdmorph/internal/swarm"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColRing    = rl.NewColor(255, 255, 255, 24)
)

const (
	fontBaseSize = 32
	labelSpacing = 1
)

type Options struct {
	Width, Height int
	Title         string
	Scene         frame.Scene
	Settings      interact.Settings
	Dynamics      swarm.Dynamics
	FPS           int
	// FontPaths are tried in order and the first usable one is loaded with
	// the glyphs of Labels; raylib's built-in font is the last resort.
	FontPaths []string
	Labels    []string
	Logger    *log.Logger
}

// App hosts a frame.Loop in a raylib window. It is also the loop's Canvas:
// PushTransform maps onto a Camera2D pivoting on the window center.
type App struct {
	loop   *frame.Loop
	queue  *frame.Queue
	bus    *frame.Bus
	ctrl   *interact.Controller
	poller interact.Poller
	conv   *metrics.Convergence
	log    *log.Logger

	Font    rl.Font
	camera  rl.Camera2D
	inMode  bool
	ShowHUD bool
	drawn   int
	quit    bool
}

func initWindow(w, h, fps int, title string) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads the first usable path with every rune the labels need, since
// raylib only rasterizes the glyphs it is asked for.
func loadFont(paths []string, labels []string, logger *log.Logger) rl.Font {
	runes := codepoints(labels)
	for _, path := range paths {
		font := rl.LoadFontEx(path, fontBaseSize, runes)
		if font.Texture.ID == 0 {
			logger.Warn("font unusable", "path", path)
			continue
		}
		rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
		logger.Debug("font loaded", "path", path)
		return font
	}
	return rl.GetFontDefault()
}

// matchWindow asks the scene for a set laid out at the size the window
// manager actually granted, which may differ from the requested one.
func matchWindow(scene frame.Scene, w, h int) bool {
	if scene == nil || w <= 0 || h <= 0 {
		return false
	}
	scene.Resize(w, h)
	return true
}

func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a := &App{
		queue:   frame.NewQueue(),
		bus:     frame.NewBus(w, h),
		ctrl:    interact.NewController(opts.Settings),
		conv:    metrics.NewConvergence(1),
		log:     logger,
		Font:    loadFont(opts.FontPaths, opts.Labels, logger),
		ShowHUD: true,
	}
	a.loop = frame.NewLoop(a.queue, a, a.bus, opts.Scene, a.ctrl)
	a.loop.Dynamics = opts.Dynamics
	a.loop.Observe(metrics.Observer(a.conv))
	a.loop.Observe(func(st frame.Stats) { a.drawn = st.Drawn })
	matchWindow(opts.Scene, w, h)
	return a
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("gui: invalid window size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts.Width, opts.Height, opts.FPS, opts.Title)
	defer rl.CloseWindow()

	app := NewApp(opts)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	a.loop.Start()
	defer a.loop.Stop()
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update forwards this frame's input and size to the loop's listeners.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.ctrl.Cycle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	if rl.IsWindowResized() {
		a.bus.SetSize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	for _, ev := range a.poller.Events(a.poll(), time.Now()) {
		a.bus.Emit(ev)
	}
}

func (a *App) poll() interact.Input {
	m := rl.GetMousePosition()
	in := interact.Input{
		Mouse:     geom.Pt(float64(m.X), float64(m.Y)),
		MouseDown: rl.IsMouseButtonDown(rl.MouseLeftButton),
		Wheel:     float64(rl.GetMouseWheelMove()),
	}
	for i := int32(0); i < rl.GetTouchPointCount(); i++ {
		t := rl.GetTouchPosition(i)
		in.Touches = append(in.Touches, geom.Pt(float64(t.X), float64(t.Y)))
	}
	return in
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.queue.Run(time.Now())
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	snap := a.ctrl.Snapshot()
	if snap.Repelling() {
		rl.DrawCircleLines(int32(snap.Pointer.X), int32(snap.Pointer.Y), float32(snap.Pointer.Radius*snap.Transform.Zoom), ColRing)
	}
	a.drawText(fmt.Sprintf("%s  %s", snap.Mode, a.ctrl.State()), 20, 20, 20, ColText)
	a.drawText(fmt.Sprintf("zoom %.2f  rot %.0f°  n %d  gap %.1f",
		snap.Transform.Zoom, snap.Transform.Rotation*180/math.Pi, a.drawn, a.conv.Value()), 20, 44, 16, ColTextDim)
	a.drawText("CLICK:Next  DRAG:Rotate  WHEEL:Zoom  H:HUD  Q:Quit", 20, int(rl.GetScreenHeight())-32, 16, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, col rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), labelSpacing, col)
}

func (a *App) Ready() bool {
	return !rl.IsWindowMinimized() && rl.GetScreenWidth() > 0 && rl.GetScreenHeight() > 0
}

func (a *App) Clear() {
	rl.ClearBackground(ColBg)
}

func (a *App) PushTransform(t interact.Transform, cx, cy float64) {
	if a.inMode {
		rl.EndMode2D()
	}
	center := rl.NewVector2(float32(cx), float32(cy))
	a.camera = rl.Camera2D{
		Offset:   center,
		Target:   center,
		Rotation: float32(t.Rotation * 180 / math.Pi),
		Zoom:     float32(t.Zoom),
	}
	rl.BeginMode2D(a.camera)
	a.inMode = true
}

func (a *App) PopTransform() {
	if a.inMode {
		rl.EndMode2D()
		a.inMode = false
	}
}

// DrawLabel centers text on (x, y).
func (a *App) DrawLabel(text string, x, y, size float64, c color.RGBA) {
	fs := float32(size)
	m := rl.MeasureTextEx(a.Font, text, fs, labelSpacing)
	pos := rl.NewVector2(float32(x)-m.X/2, float32(y)-m.Y/2)
	rl.DrawTextEx(a.Font, text, pos, fs, labelSpacing, rl.NewColor(c.R, c.G, c.B, c.A))
}
