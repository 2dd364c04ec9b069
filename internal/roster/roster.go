// Package roster supplies the labeled entities the particle field is built
// from: loaded from a YAML/JSON file or generated for demos.
package roster

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmpty indicates a roster file without any entity.
	ErrEmpty = errors.New("roster: no entities")

	// ErrBadColor indicates a color that is not #rgb or #rrggbb.
	ErrBadColor = errors.New("roster: unparsable color")
)

// DefaultColor is used for entities without a color.
var DefaultColor = color.RGBA{255, 255, 255, 255}

// Entity is an immutable labeled record. Field names follow the user dumps
// the roster files come from.
type Entity struct {
	ID    string `yaml:"userid" json:"userid"`
	Label string `yaml:"nickname" json:"nickname"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Text is the label drawn for the entity, falling back to its ID.
func (e Entity) Text() string {
	if strings.TrimSpace(e.Label) == "" {
		return e.ID
	}
	return e.Label
}

// RGBA parses Color. An empty color yields DefaultColor without error; an
// unparsable one yields DefaultColor and ErrBadColor.
func (e Entity) RGBA() (color.RGBA, error) {
	if e.Color == "" {
		return DefaultColor, nil
	}
	c, err := colorful.Hex(e.Color)
	if err != nil {
		return DefaultColor, fmt.Errorf("%w %q: %v", ErrBadColor, e.Color, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// Load reads a roster file. JSON is valid YAML, so both formats go through
// the YAML decoder.
func Load(path string) ([]Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) ([]Entity, error) {
	var entities []Entity
	if err := yaml.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(entities) == 0 {
		return nil, ErrEmpty
	}
	return entities, nil
}

// Demo generates n entities with evenly spread hues.
func Demo(n int, rng *rand.Rand) []Entity {
	entities := make([]Entity, n)
	for i := range entities {
		hue := float64(i) * 360 / float64(max(n, 1))
		c := colorful.Hsv(hue, 0.45+rng.Float64()*0.4, 0.75+rng.Float64()*0.25)
		entities[i] = Entity{
			ID:    fmt.Sprintf("%06d", 100000+i),
			Label: fmt.Sprintf("user%04d", i+1),
			Color: c.Clamped().Hex(),
		}
	}
	rng.Shuffle(len(entities), func(i, j int) { entities[i], entities[j] = entities[j], entities[i] })
	return entities
}
