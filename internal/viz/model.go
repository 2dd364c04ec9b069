package viz

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/crowdmorph/internal/frame"
	"github.com/san-kum/crowdmorph/internal/interact"
	"github.com/san-kum/crowdmorph/internal/metrics"
	"github.com/san-kum/crowdmorph/internal/swarm"
)

const (
	statusLines     = 1
	historyCapacity = 600

	// wheelStep is the DeltaY sent per wheel notch, matching a browser's
	// line-mode wheel.
	wheelStep = 100
)

type TickMsg time.Time

type Options struct {
	Scene    frame.Scene
	Settings interact.Settings
	Dynamics swarm.Dynamics
	FPS      int
	Theme    string
	Logger   *log.Logger
}

// Model runs a frame.Loop inside a bubbletea program. The loop's scheduler
// is a frame.Queue drained on every tick.
type Model struct {
	loop   *frame.Loop
	queue  *frame.Queue
	bus    *frame.Bus
	canvas *Canvas
	ctrl   *interact.Controller
	conv   *metrics.Convergence
	log    *log.Logger

	interval time.Duration
	now      func() time.Time
	theme    int
	showHelp bool
	drawn    int
}

func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	m := &Model{
		queue:    frame.NewQueue(),
		bus:      frame.NewBus(0, 0),
		canvas:   NewCanvas(0, 0),
		ctrl:     interact.NewController(opts.Settings),
		conv:     metrics.NewConvergence(historyCapacity),
		log:      logger,
		interval: time.Second / time.Duration(fps),
		now:      time.Now,
	}
	for i, name := range ThemeNames() {
		if name == opts.Theme {
			m.theme = i
		}
	}
	m.loop = frame.NewLoop(m.queue, m.canvas, m.bus, opts.Scene, m.ctrl)
	m.loop.Dynamics = opts.Dynamics
	m.loop.Observe(metrics.Observer(m.conv))
	m.loop.Observe(func(st frame.Stats) { m.drawn = st.Drawn })
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.loop.Start()
	return m.tick()
}

// Update translates terminal input into interaction events and steps the
// loop on every tick.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height-statusLines)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.loop.Stop()
			return m, tea.Quit
		case " ":
			m.ctrl.Cycle()
		case "+", "=":
			m.bus.Emit(interact.Wheel{DeltaY: -wheelStep})
		case "-", "_":
			m.bus.Emit(interact.Wheel{DeltaY: wheelStep})
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.queue.Run(time.Time(msg))
		if !m.loop.Running() {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	m.canvas.Resize(cols, rows)
	w, h := m.canvas.Dots()
	m.log.Debug("terminal resized", "cols", cols, "rows", rows, "dots", fmt.Sprintf("%dx%d", w, h))
	m.bus.SetSize(w, h)
}

// mouse maps a cell to the center of its dot block.
func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := float64(msg.X*2+1), float64(msg.Y*4+2)
	now := m.now()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.bus.Emit(interact.Wheel{DeltaY: -wheelStep})
	case msg.Button == tea.MouseButtonWheelDown:
		m.bus.Emit(interact.Wheel{DeltaY: wheelStep})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.bus.Emit(interact.PointerDown{X: x, Y: y, At: now})
	case msg.Action == tea.MouseActionRelease:
		m.bus.Emit(interact.PointerUp{X: x, Y: y, At: now})
	case msg.Action == tea.MouseActionMotion:
		m.bus.Emit(interact.PointerMove{X: x, Y: y})
	}
}

func (m *Model) View() string {
	theme := Themes[m.theme]
	if m.showHelp {
		return m.help(theme)
	}

	var view string
	if theme.Mono {
		view = m.canvas.RenderMono(toRGBA(theme.Primary))
	} else {
		view = m.canvas.Render()
	}
	return view + "\n" + m.status(theme)
}

func (m *Model) status(theme Theme) string {
	label, value, muted := statusStyles(theme)
	snap := m.ctrl.Snapshot()
	line := field(label, value,
		"mode", snap.Mode.String(),
		"state", m.ctrl.State().String(),
		"zoom", fmt.Sprintf("%.2f", snap.Transform.Zoom),
		"rot", fmt.Sprintf("%.0f°", snap.Transform.Rotation*180/math.Pi),
		"n", fmt.Sprintf("%d", m.drawn),
		"gap", fmt.Sprintf("%.1f", m.conv.Value()),
	)
	return line + "  " + muted.Render("? help")
}

func (m *Model) help(theme Theme) string {
	_, value, _ := statusStyles(theme)
	var s strings.Builder
	s.WriteString(value.Render("CROWDMORPH") + "\n\n")
	s.WriteString("Click    - Next formation\n")
	s.WriteString("Drag     - Rotate\n")
	s.WriteString("Wheel +- - Zoom\n")
	s.WriteString("Space    - Next formation\n")
	s.WriteString("T        - Theme (" + theme.Name + ")\n")
	s.WriteString("Q        - Quit\n")
	if hist := m.conv.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(6), asciigraph.Width(40), asciigraph.Caption("mean distance to target"))
		s.WriteString(graphStyle.Render(chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, helpBox.Render(s.String()))
}

func toRGBA(c lipgloss.Color) color.RGBA {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b := col.RGB255()
	return color.RGBA{r, g, b, 255}
}

// Run starts the terminal program and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
