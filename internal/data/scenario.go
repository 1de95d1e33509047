package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/l1jgo/blastsim/internal/component"
	"gopkg.in/yaml.v3"
)

// Range is an inclusive [min, max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps t in [0,1] onto the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Scenario describes how the spawner populates the world.
type Scenario struct {
	Name       string          `yaml:"name"`
	Population int             `yaml:"population"`  // live circles the spawner maintains
	SpawnBurst int             `yaml:"spawn_burst"` // max circles spawned per tick
	Radius     Range           `yaml:"radius"`
	Speed      Range           `yaml:"speed"` // world units per second
	Palette    []component.RGB `yaml:"palette"`
}

// LoadScenario loads scenario.yaml.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw)
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(raw []byte) (*Scenario, error) {
	s := DefaultScenario()
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return s, nil
}

func (s *Scenario) validate() error {
	if s.Population < 0 {
		return errors.New("population must not be negative")
	}
	if s.SpawnBurst <= 0 {
		return errors.New("spawn_burst must be positive")
	}
	if s.Radius.Min <= 0 || s.Radius.Max < s.Radius.Min {
		return errors.New("radius range must be positive and ordered")
	}
	if s.Speed.Min < 0 || s.Speed.Max < s.Speed.Min {
		return errors.New("speed range must be non-negative and ordered")
	}
	if len(s.Palette) == 0 {
		return errors.New("palette must not be empty")
	}
	return nil
}

// DefaultScenario is used when no scenario file is configured.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:       "default",
		Population: 40,
		SpawnBurst: 4,
		Radius:     Range{Min: 6, Max: 18},
		Speed:      Range{Min: 20, Max: 120},
		Palette: []component.RGB{
			{R: 230, G: 80, B: 80},
			{R: 80, G: 200, B: 120},
			{R: 90, G: 140, B: 240},
			{R: 240, G: 200, B: 60},
		},
	}
}
