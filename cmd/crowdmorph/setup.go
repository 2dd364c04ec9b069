package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/crowdmorph/internal/config"
	"github.com/san-kum/crowdmorph/internal/roster"
	"github.com/san-kum/crowdmorph/internal/scene"
)

func newLogger(w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "crowdmorph",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// loadConfig resolves defaults, then the preset, then the config file (which
// overrides the preset), then command-line flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if rosterFile != "" {
		cfg.Roster.Path = rosterFile
	}
	if count > 0 {
		cfg.Roster.DemoCount = count
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

type session struct {
	cfg      *config.Config
	log      *log.Logger
	entities []roster.Entity
	scene    *scene.Scene
}

// newSession loads config, entities and shape sources. The terminal renderer
// samples with its own stride since its canvas is measured in braille dots.
func newSession(logOut io.Writer, terminal bool) (*session, error) {
	logger, err := newLogger(logOut)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	entities, err := loadEntities(cfg)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		if _, err := e.RGBA(); err != nil {
			logger.Warn("using default color", "entity", e.ID, "err", err)
		}
	}

	sources, err := cfg.Sources()
	if err != nil {
		logger.Warn("some fonts could not be loaded", "err", err)
	}

	stride := cfg.Sampler.Stride
	if terminal {
		stride = cfg.TUI.Stride
	}

	logger.Debug("session ready", "entities", len(entities), "seed", cfg.Seed)
	return &session{
		cfg:      cfg,
		log:      logger,
		entities: entities,
		scene: scene.New(scene.Options{
			Sources:  sources,
			Entities: entities,
			Stride:   stride,
			Traits:   cfg.Traits(),
			Seed:     cfg.Seed,
			Logger:   logger,
		}),
	}, nil
}

func loadEntities(cfg *config.Config) ([]roster.Entity, error) {
	if cfg.Roster.Path != "" {
		entities, err := roster.Load(cfg.Roster.Path)
		if err != nil {
			return nil, fmt.Errorf("load roster: %w", err)
		}
		return entities, nil
	}
	return roster.Demo(cfg.Roster.DemoCount, rand.New(rand.NewSource(cfg.Seed))), nil
}

func labels(entities []roster.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Text()
	}
	return out
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
