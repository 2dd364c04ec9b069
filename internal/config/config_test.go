package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/crowdmorph/internal/interact"
	"github.com/san-kum/crowdmorph/internal/shape"
	"github.com/san-kum/crowdmorph/internal/swarm"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Sampler.Stride != 4 {
		t.Errorf("expected stride 4, got %d", cfg.Sampler.Stride)
	}
	if cfg.Interaction.Radius != 80 {
		t.Errorf("expected radius 80, got %f", cfg.Interaction.Radius)
	}
	if len(cfg.Shapes.Texts) != 2 || cfg.Shapes.Texts[0] != PrimaryText || cfg.Shapes.Texts[1] != SecondaryText {
		t.Errorf("unexpected texts %q", cfg.Shapes.Texts)
	}
	if cfg.Settings() != interact.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", cfg.Settings())
	}
	if cfg.SwarmDynamics() != swarm.DefaultDynamics() {
		t.Errorf("expected default dynamics, got %+v", cfg.SwarmDynamics())
	}
	if cfg.Traits() != swarm.DefaultTraits() {
		t.Errorf("expected default traits, got %+v", cfg.Traits())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"zero stride", func(c *Config) { c.Sampler.Stride = 0 }},
		{"one text", func(c *Config) { c.Shapes.Texts = c.Shapes.Texts[:1] }},
		{"overshooting ease", func(c *Config) { c.Dynamics.Ease = 0.5 }},
		{"inverted density", func(c *Config) { c.Dynamics.DensityMin = 30 }},
		{"zero min zoom", func(c *Config) { c.Interaction.MinZoom = 0 }},
		{"inverted zoom", func(c *Config) { c.Interaction.MaxZoom = 0.05 }},
		{"negative radius", func(c *Config) { c.Interaction.Radius = -1 }},
		{"zero fps", func(c *Config) { c.TUI.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crowdmorph.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Interaction.ClickMaxDuration = 150 * time.Millisecond
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.Interaction.ClickMaxDuration != 150*time.Millisecond {
		t.Errorf("expected 150ms, got %v", loaded.Interaction.ClickMaxDuration)
	}
	if loaded.Shapes.Texts[0] != PrimaryText {
		t.Errorf("expected %q, got %q", PrimaryText, loaded.Shapes.Texts[0])
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "seed: 7\ninteraction:\n  radius: 120\n  tap_max_duration: 250ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interaction.Radius != 120 {
		t.Errorf("expected radius 120, got %f", cfg.Interaction.Radius)
	}
	if cfg.Interaction.TapMaxDuration != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Interaction.TapMaxDuration)
	}
	if cfg.Interaction.ClickMaxDuration != 200*time.Millisecond {
		t.Errorf("unset fields should keep defaults, got %v", cfg.Interaction.ClickMaxDuration)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sampler:\n  stride: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("strict-tap")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Interaction.TapMaxTravel != 10 {
		t.Errorf("expected tap travel 10, got %f", cfg.Interaction.TapMaxTravel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestPresetsIndependent(t *testing.T) {
	a := GetPreset("dense")
	a.Sampler.Stride = 9
	if b := GetPreset("dense"); b.Sampler.Stride != 2 {
		t.Errorf("preset mutated through a previous copy: stride %d", b.Sampler.Stride)
	}
}

func TestSources(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shapes.Fonts = []string{filepath.Join(t.TempDir(), "missing.ttf")}

	sources, err := cfg.Sources()
	if err == nil {
		t.Error("expected error for missing font file")
	}
	if len(sources) != interact.ModeCount {
		t.Fatalf("expected %d sources, got %d", interact.ModeCount, len(sources))
	}
	if _, ok := sources[0].(shape.Path); !ok {
		t.Errorf("expected logo path first, got %T", sources[0])
	}
	txt, ok := sources[2].(shape.Text)
	if !ok || txt.Value != SecondaryText {
		t.Errorf("expected secondary text last, got %#v", sources[2])
	}
}

func TestFontsSystemSwitch(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Shapes.SystemFonts {
		t.Fatal("expected system fonts enabled by default")
	}

	cfg.Shapes.SystemFonts = false
	fonts, err := cfg.Fonts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fonts) != 0 {
		t.Errorf("expected no fonts without configured or system fonts, got %d", len(fonts))
	}
	if paths := cfg.FontPaths(); len(paths) != 0 {
		t.Errorf("expected no font paths, got %v", paths)
	}

	cfg.Shapes.Fonts = []string{"/fonts/a.ttf"}
	cfg.Shapes.SystemFonts = true
	if paths := cfg.FontPaths(); len(paths) == 0 || paths[0] != "/fonts/a.ttf" {
		t.Errorf("expected configured font first, got %v", paths)
	}
}

func TestLoadKeepsSystemFontsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("seed: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.Shapes.SystemFonts {
		t.Error("expected system fonts to stay enabled when the file omits the key")
	}
}
