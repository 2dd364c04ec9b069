package config

import (
	"sort"
	"time"
)

// Presets tweak DefaultConfig; each entry only sets what differs.
var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"dense": func(c *Config) {
		c.Sampler.Stride = 2
		c.Dynamics.SizeMin, c.Dynamics.SizeMax = 5, 8
		c.Roster.DemoCount = 4000
	},
	"calm": func(c *Config) {
		c.Dynamics.Ease = 40
		c.Dynamics.RepelEase = 60
		c.Dynamics.RepelGain = 2
		c.Interaction.Radius = 60
	},
	"strict-tap": func(c *Config) {
		c.Interaction.TapMaxDuration = 200 * time.Millisecond
		c.Interaction.TapMaxTravel = 10
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
