package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/crowdmorph/internal/export"
	"github.com/san-kum/crowdmorph/internal/frame"
	"github.com/san-kum/crowdmorph/internal/gui"
	"github.com/san-kum/crowdmorph/internal/interact"
	"github.com/san-kum/crowdmorph/internal/metrics"
	"github.com/san-kum/crowdmorph/internal/shape"
	"github.com/san-kum/crowdmorph/internal/viz"
)

// frameInterval is the simulated time between headless frames.
const frameInterval = time.Second / 60

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(os.Stderr, false)
	if err != nil {
		return err
	}
	cfg := s.cfg
	if _, err := s.scene.Rebuild(cmd.Context(), cfg.Canvas.Width, cfg.Canvas.Height); err != nil {
		return err
	}

	return gui.Run(gui.Options{
		Width:     cfg.Canvas.Width,
		Height:    cfg.Canvas.Height,
		Title:     "crowdmorph",
		Scene:     s.scene,
		Settings:  cfg.Settings(),
		Dynamics:  cfg.SwarmDynamics(),
		FontPaths: cfg.FontPaths(),
		Labels:    labels(s.entities),
		Logger:    s.log,
	})
}

// runTUI logs to crowdmorph.log at debug level; anything written to the
// terminal would corrupt the alternate screen.
func runTUI(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if logLevel == "debug" {
		f, err := os.OpenFile("crowdmorph.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}

	s, err := newSession(logOut, true)
	if err != nil {
		return err
	}
	cfg := s.cfg

	settings := cfg.Settings()
	settings.Radius = cfg.TUI.Radius
	err = viz.Run(viz.Options{
		Scene:    s.scene,
		Settings: settings,
		Dynamics: cfg.SwarmDynamics(),
		FPS:      cfg.TUI.FPS,
		Theme:    theme,
		Logger:   s.log,
	})
	s.scene.Wait()
	return err
}

// headless wires a loop to a manual queue and a fixed-size bus.
type headless struct {
	loop  *frame.Loop
	queue *frame.Queue
	bus   *frame.Bus
	ctrl  *interact.Controller
	t0    time.Time
	n     int
}

func newHeadless(ctx context.Context, s *session, canvas frame.Canvas, w, h int) (*headless, error) {
	if w <= 0 {
		w = s.cfg.Canvas.Width
	}
	if h <= 0 {
		h = s.cfg.Canvas.Height
	}
	if _, err := s.scene.Rebuild(ctx, w, h); err != nil {
		return nil, err
	}

	hl := &headless{
		queue: frame.NewQueue(),
		bus:   frame.NewBus(w, h),
		ctrl:  interact.NewController(s.cfg.Settings()),
		t0:    time.Unix(0, 0),
	}
	hl.loop = frame.NewLoop(hl.queue, canvas, hl.bus, s.scene, hl.ctrl)
	hl.loop.Dynamics = s.cfg.SwarmDynamics()
	hl.loop.Start()
	return hl, nil
}

func (hl *headless) now() time.Time {
	return hl.t0.Add(time.Duration(hl.n) * frameInterval)
}

// run steps frames, advancing the formation every cycleEvery frames.
func (hl *headless) run(frames, cycleEvery int) {
	for i := 0; i < frames; i++ {
		if cycleEvery > 0 && i > 0 && i%cycleEvery == 0 {
			hl.ctrl.Cycle()
		}
		hl.queue.Run(hl.now())
		hl.n++
	}
}

// turn rotates and zooms through the same events a user would produce: a
// slow horizontal drag and a wheel scroll.
func (hl *headless) turn(degrees, zoom float64) {
	st := hl.ctrl.Settings()
	if degrees != 0 && st.RotatePerPixel != 0 {
		dx := degrees * math.Pi / 180 / st.RotatePerPixel
		hl.bus.Emit(interact.PointerDown{At: hl.now()})
		hl.bus.Emit(interact.PointerMove{X: dx})
		hl.bus.Emit(interact.PointerUp{X: dx, At: hl.now().Add(time.Second)})
	}
	if zoom != 1 && st.ZoomPerDelta != 0 {
		hl.bus.Emit(interact.Wheel{DeltaY: -(zoom - 1) / st.ZoomPerDelta})
	}
}

func parseMode(s string) (interact.Mode, error) {
	for m := interact.Mode(0); m < interact.ModeCount; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown formation %q (want logo, text1 or text2)", s)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	start, err := parseMode(snapshot.mode)
	if err != nil {
		return err
	}
	s, err := newSession(os.Stderr, false)
	if err != nil {
		return err
	}

	w, h := snapshot.width, snapshot.height
	if w <= 0 || h <= 0 {
		w, h = s.cfg.Canvas.Width, s.cfg.Canvas.Height
	}
	svg := export.NewSVG(w, h)
	hl, err := newHeadless(cmd.Context(), s, svg, w, h)
	if err != nil {
		return err
	}
	defer hl.loop.Stop()

	for hl.ctrl.Mode() != start {
		hl.ctrl.Cycle()
	}
	hl.turn(snapshot.rotate, snapshot.zoom)
	hl.run(snapshot.frames, snapshot.cycleEvery)

	if err := os.WriteFile(snapshot.out, []byte(svg.String()), 0644); err != nil {
		return err
	}
	s.log.Info("wrote snapshot", "path", snapshot.out, "frames", snapshot.frames, "mode", hl.ctrl.Mode())
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var src shape.Source
	if m, err := parseMode(args[0]); err == nil {
		sources, ferr := cfg.Sources()
		if ferr != nil {
			logger.Warn("some fonts could not be loaded", "err", ferr)
		}
		src = sources[m]
	} else {
		fonts, ferr := cfg.Fonts()
		if ferr != nil {
			logger.Warn("some fonts could not be loaded", "err", ferr)
		}
		src = cfg.TextSource(args[0], fonts)
	}

	w, h := sample.width, sample.height
	img, err := shape.Render(src, w, h)
	if err != nil {
		logger.Warn("shape fell back to center", "err", err)
	}
	candidates := 0
	if img != nil {
		candidates = len(shape.Extract(img, cfg.Sampler.Stride))
	}

	n := cfg.Roster.DemoCount
	sp := shape.NewSampler(rand.New(rand.NewSource(cfg.Seed)))
	sp.Stride = cfg.Sampler.Stride
	pts, _ := sp.Sample(src, w, h, n)

	if sample.out != "" {
		if err := os.WriteFile(sample.out, []byte(export.PointsToSVG(pts, w, h, "#00ff88")), 0644); err != nil {
			return err
		}
		logger.Info("wrote point cloud", "path", sample.out, "points", len(pts), "candidates", candidates)
		return nil
	}

	canvas := viz.NewCanvas((w+1)/2, (h+3)/4)
	for _, p := range pts {
		canvas.Set(int(p.X), int(p.Y))
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s  %dx%d  stride %d", args[0], w, h, sp.Stride)))
	fmt.Print(canvas.String())
	fmt.Printf("%d candidates, %d points\n", candidates, len(pts))
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	s, err := newSession(os.Stderr, false)
	if err != nil {
		return err
	}

	hl, err := newHeadless(cmd.Context(), s, frame.Discard{}, trace.width, trace.height)
	if err != nil {
		return err
	}
	defer hl.loop.Stop()

	conv := metrics.NewConvergence(trace.frames)
	spread := metrics.NewSpread()
	settle := metrics.NewSettle(1)
	skips := metrics.NewSkipRate()
	hl.loop.Observe(metrics.Observer(conv, spread, settle, skips))

	hl.run(trace.frames, trace.cycleEvery)

	fmt.Println(titleStyle.Render("CONVERGENCE"))
	if hist := conv.History(); len(hist) > 1 {
		fmt.Println(asciigraph.Plot(hist,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("mean distance to target (px) per frame"),
		))
	}
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintln(tw, strings.Repeat("-", 6)+"\t"+strings.Repeat("-", 5))
	fmt.Fprintf(tw, "particles\t%d\n", s.scene.Current().Len())
	fmt.Fprintf(tw, "final mode\t%s\n", hl.ctrl.Mode())
	for _, m := range []metrics.Metric{conv, spread, settle, skips} {
		fmt.Fprintf(tw, "%s\t%.3f\n", m.Name(), m.Value())
	}
	return tw.Flush()
}
