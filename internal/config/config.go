package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/crowdmorph/internal/interact"
	"github.com/san-kum/crowdmorph/internal/shape"
	"github.com/san-kum/crowdmorph/internal/swarm"
	"golang.org/x/image/font/opentype"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

const (
	// LogoPath outlines the logo in a 118×59 viewBox.
	LogoPath      = "M55.124 0H0V58.7989C16.9966 58.7989 33.6511 48.0627 45.1006 32.8815C57.846 48.7036 85.3071 58.7989 117.598 58.7989V0H55.124Z"
	LogoWidth     = 118.0
	LogoHeight    = 59.0
	PrimaryText   = "圆周旅迹"
	SecondaryText = "1650"

	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultDemoCount = 1650
)

type Config struct {
	Canvas      CanvasConfig      `yaml:"canvas"`
	Seed        int64             `yaml:"seed"`
	Sampler     SamplerConfig     `yaml:"sampler"`
	Shapes      ShapesConfig      `yaml:"shapes"`
	Dynamics    DynamicsConfig    `yaml:"dynamics"`
	Interaction InteractionConfig `yaml:"interaction"`
	TUI         TUIConfig         `yaml:"tui"`
	Roster      RosterConfig      `yaml:"roster"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type SamplerConfig struct {
	Stride        int     `yaml:"stride"`
	PathFill      float64 `yaml:"path_fill"`
	TextInitial   float64 `yaml:"text_initial"`
	TextWidthFill float64 `yaml:"text_width_fill"`
	TextHeightCap float64 `yaml:"text_height_cap"`
}

// ShapesConfig describes the three formations. Fonts are tried before the
// installed CJK system fonts, which are skipped when SystemFonts is false.
type ShapesConfig struct {
	LogoPath    string   `yaml:"logo_path"`
	LogoWidth   float64  `yaml:"logo_width"`
	LogoHeight  float64  `yaml:"logo_height"`
	Texts       []string `yaml:"texts"`
	Fonts       []string `yaml:"fonts"`
	SystemFonts bool     `yaml:"system_fonts"`
}

type DynamicsConfig struct {
	Ease       float64 `yaml:"ease"`
	RepelEase  float64 `yaml:"repel_ease"`
	RepelGain  float64 `yaml:"repel_gain"`
	DensityMin float64 `yaml:"density_min"`
	DensityMax float64 `yaml:"density_max"`
	SizeMin    float64 `yaml:"size_min"`
	SizeMax    float64 `yaml:"size_max"`
}

type InteractionConfig struct {
	Radius           float64       `yaml:"radius"`
	RotatePerPixel   float64       `yaml:"rotate_per_pixel"`
	ZoomPerDelta     float64       `yaml:"zoom_per_delta"`
	MinZoom          float64       `yaml:"min_zoom"`
	MaxZoom          float64       `yaml:"max_zoom"`
	ClickMaxDuration time.Duration `yaml:"click_max_duration"`
	ClickMaxTravel   float64       `yaml:"click_max_travel"`
	TapMaxDuration   time.Duration `yaml:"tap_max_duration"`
	TapMaxTravel     float64       `yaml:"tap_max_travel"`
}

// TUIConfig overrides sizes for the terminal renderer, whose canvas is
// measured in braille dots.
type TUIConfig struct {
	FPS    int     `yaml:"fps"`
	Radius float64 `yaml:"radius"`
	Stride int     `yaml:"stride"`
}

type RosterConfig struct {
	Path      string `yaml:"path"`
	DemoCount int    `yaml:"demo_count"`
}

func DefaultConfig() *Config {
	s := interact.DefaultSettings()
	d := swarm.DefaultDynamics()
	tr := swarm.DefaultTraits()
	return &Config{
		Canvas: CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Sampler: SamplerConfig{
			Stride:        shape.DefaultStride,
			PathFill:      shape.DefaultPathFill,
			TextInitial:   shape.DefaultTextInitial,
			TextWidthFill: shape.DefaultTextWidthFill,
			TextHeightCap: shape.DefaultTextHeightCap,
		},
		Shapes: ShapesConfig{
			LogoPath:    LogoPath,
			LogoWidth:   LogoWidth,
			LogoHeight:  LogoHeight,
			Texts:       []string{PrimaryText, SecondaryText},
			SystemFonts: true,
		},
		Dynamics: DynamicsConfig{
			Ease:       d.Ease,
			RepelEase:  d.RepelEase,
			RepelGain:  d.RepelGain,
			DensityMin: tr.DensityMin,
			DensityMax: tr.DensityMax,
			SizeMin:    tr.SizeMin,
			SizeMax:    tr.SizeMax,
		},
		Interaction: InteractionConfig{
			Radius:           s.Radius,
			RotatePerPixel:   s.RotatePerPixel,
			ZoomPerDelta:     s.ZoomPerDelta,
			MinZoom:          s.MinZoom,
			MaxZoom:          s.MaxZoom,
			ClickMaxDuration: s.ClickMaxDuration,
			ClickMaxTravel:   s.ClickMaxTravel,
			TapMaxDuration:   s.TapMaxDuration,
			TapMaxTravel:     s.TapMaxTravel,
		},
		TUI:    TUIConfig{FPS: 60, Radius: 12, Stride: 1},
		Roster: RosterConfig{DemoCount: DefaultDemoCount},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Sampler.Stride <= 0:
		return fmt.Errorf("%w: sampler stride must be positive, got %d", ErrInvalid, c.Sampler.Stride)
	case len(c.Shapes.Texts) != interact.ModeCount-1:
		return fmt.Errorf("%w: expected %d texts, got %d", ErrInvalid, interact.ModeCount-1, len(c.Shapes.Texts))
	case c.Dynamics.Ease < 1 || c.Dynamics.RepelEase < 1:
		return fmt.Errorf("%w: ease divisors below 1 overshoot the target", ErrInvalid)
	case c.Dynamics.DensityMax < c.Dynamics.DensityMin || c.Dynamics.SizeMax < c.Dynamics.SizeMin:
		return fmt.Errorf("%w: trait ranges are inverted", ErrInvalid)
	case c.Interaction.MinZoom <= 0 || c.Interaction.MaxZoom < c.Interaction.MinZoom:
		return fmt.Errorf("%w: zoom range [%g, %g]", ErrInvalid, c.Interaction.MinZoom, c.Interaction.MaxZoom)
	case c.Interaction.Radius < 0 || c.TUI.Radius < 0:
		return fmt.Errorf("%w: pointer radius must not be negative", ErrInvalid)
	case c.TUI.FPS <= 0 || c.TUI.Stride <= 0:
		return fmt.Errorf("%w: tui fps and stride must be positive", ErrInvalid)
	}
	return nil
}

func (c *Config) Settings() interact.Settings {
	i := c.Interaction
	return interact.Settings{
		Radius:           i.Radius,
		RotatePerPixel:   i.RotatePerPixel,
		ZoomPerDelta:     i.ZoomPerDelta,
		MinZoom:          i.MinZoom,
		MaxZoom:          i.MaxZoom,
		ClickMaxDuration: i.ClickMaxDuration,
		ClickMaxTravel:   i.ClickMaxTravel,
		TapMaxDuration:   i.TapMaxDuration,
		TapMaxTravel:     i.TapMaxTravel,
	}
}

func (c *Config) SwarmDynamics() swarm.Dynamics {
	return swarm.Dynamics{Ease: c.Dynamics.Ease, RepelEase: c.Dynamics.RepelEase, RepelGain: c.Dynamics.RepelGain}
}

func (c *Config) Traits() swarm.Traits {
	d := c.Dynamics
	return swarm.Traits{DensityMin: d.DensityMin, DensityMax: d.DensityMax, SizeMin: d.SizeMin, SizeMax: d.SizeMax}
}

// Fonts loads the configured font files in order, followed by the system CJK
// fonts. Files that fail to load are reported and skipped, so the bundled
// face still renders.
func (c *Config) Fonts() ([]*opentype.Font, error) {
	var errs []error
	fonts := make([]*opentype.Font, 0, len(c.Shapes.Fonts))
	for _, path := range c.Shapes.Fonts {
		f, err := shape.LoadFont(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fonts = append(fonts, f)
	}
	if c.Shapes.SystemFonts {
		fonts = append(fonts, shape.SystemFonts()...)
	}
	return fonts, errors.Join(errs...)
}

// FontPaths lists the font files a renderer should try, configured files
// first.
func (c *Config) FontPaths() []string {
	paths := append([]string(nil), c.Shapes.Fonts...)
	if c.Shapes.SystemFonts {
		paths = append(paths, shape.FindSystemFonts(shape.SystemFontPatterns)...)
	}
	return paths
}

// Sources returns one shape source per mode: the logo path, then the texts.
// A font error is returned alongside usable sources.
func (c *Config) Sources() ([]shape.Source, error) {
	fonts, err := c.Fonts()
	sources := []shape.Source{
		shape.Path{Data: c.Shapes.LogoPath, Width: c.Shapes.LogoWidth, Height: c.Shapes.LogoHeight, Fill: c.Sampler.PathFill},
	}
	for _, s := range c.Shapes.Texts {
		sources = append(sources, c.TextSource(s, fonts))
	}
	return sources, err
}

func (c *Config) TextSource(value string, fonts []*opentype.Font) shape.Text {
	return shape.Text{
		Value:     value,
		Fonts:     fonts,
		Initial:   c.Sampler.TextInitial,
		WidthFill: c.Sampler.TextWidthFill,
		HeightCap: c.Sampler.TextHeightCap,
	}
}
