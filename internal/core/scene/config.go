package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/rigidsim/internal/core/systems/physics"
)

// Config describes a world, its ground plane, the fixed-step driver and the
// bodies to spawn. It can be read from YAML or JSON.
type Config struct {
	World      WorldConfig      `json:"world" yaml:"world"`
	Ground     GroundConfig     `json:"ground" yaml:"ground"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Bodies     []BodyConfig     `json:"bodies" yaml:"bodies"`
}

type WorldConfig struct {
	Gravity  Vector  `json:"gravity" yaml:"gravity"`
	TimeStep float64 `json:"time_step" yaml:"time_step"`
}

type GroundConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Y       float64 `json:"y" yaml:"y"`
}

type SimulationConfig struct {
	// MaxSubSteps of zero keeps the driver default.
	MaxSubSteps    int    `json:"max_sub_steps" yaml:"max_sub_steps"`
	DigestInterval int    `json:"digest_interval" yaml:"digest_interval"`
	MaxTicks       uint64 `json:"max_ticks" yaml:"max_ticks"`
}

// BodyConfig spawns one rigid body. Omitted mass, restitution and friction
// take the body defaults; a mass of zero or less makes the body static.
type BodyConfig struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Position    Vector   `json:"position" yaml:"position"`
	Size        Vector   `json:"size" yaml:"size"`
	Mass        *float64 `json:"mass,omitempty" yaml:"mass,omitempty"`
	Velocity    Vector   `json:"velocity" yaml:"velocity"`
	Restitution *float64 `json:"restitution,omitempty" yaml:"restitution,omitempty"`
	Friction    *float64 `json:"friction,omitempty" yaml:"friction,omitempty"`
	Static      bool     `json:"static,omitempty" yaml:"static,omitempty"`
}

// Vector is written as a three element sequence, [x, y, z].
type Vector [3]float64

// UnmarshalJSON rejects sequences that do not hold exactly three numbers,
// matching the YAML decoder.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var xs []float64
	if err := json.Unmarshal(data, &xs); err != nil {
		return err
	}
	if len(xs) != len(v) {
		return fmt.Errorf("invalid vector: want %d elements but got %d", len(v), len(xs))
	}
	copy(v[:], xs)
	return nil
}

func (v Vector) Vec3() physics.Vec3 {
	return physics.V3(v[0], v[1], v[2])
}

func (v Vector) finite() bool {
	return v.Vec3().IsFinite()
}

func baseConfig() *Config {
	return &Config{
		World: WorldConfig{
			Gravity:  Vector(physics.DefaultGravity),
			TimeStep: physics.DefaultTimeStep,
		},
		Ground: GroundConfig{Enabled: true, Y: physics.DefaultGroundY},
		Simulation: SimulationConfig{
			DigestInterval: 60,
		},
	}
}

// Default returns a small demo scene: a crate dropped onto a static slab
// above the ground.
func Default() *Config {
	c := baseConfig()
	c.Simulation.MaxTicks = 600
	c.Bodies = []BodyConfig{
		{
			Name:     "slab",
			Position: Vector{0, 0.5, 0},
			Size:     Vector{10, 1, 10},
			Static:   true,
		},
		{
			Name:     "crate",
			Position: Vector{0, 10, 0},
			Size:     Vector{1, 1, 1},
			Mass:     ptr(2.0),
		},
	}
	return c
}

// LoadYAML reads a scene from YAML. Sections that are left out keep their
// defaults and unknown keys are rejected. An empty document yields an empty scene.
func LoadYAML(r io.Reader) (*Config, error) {
	c := baseConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml scene: %w", err)
	}
	return c, nil
}

// LoadJSON reads a scene from JSON with the same defaults as LoadYAML.
func LoadJSON(r io.Reader) (*Config, error) {
	c := baseConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json scene: %w", err)
	}
	return c, nil
}

// LoadFile reads a scene file. Files ending in .json are read as JSON,
// everything else as YAML.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer func() { _ = f.Close() }()

	if filepath.Ext(path) == ".json" {
		return LoadJSON(f)
	}
	return LoadYAML(f)
}

// Validate reports the first problem found, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if !finite(c.World.TimeStep) || c.World.TimeStep <= 0 {
		return invalid("world.time_step must be positive and finite, got %v", c.World.TimeStep)
	}
	if !c.World.Gravity.finite() {
		return invalid("world.gravity must be finite, got %v", c.World.Gravity)
	}
	if !finite(c.Ground.Y) {
		return invalid("ground.y must be finite, got %v", c.Ground.Y)
	}
	if c.Simulation.MaxSubSteps < 0 {
		return invalid("simulation.max_sub_steps must not be negative, got %d", c.Simulation.MaxSubSteps)
	}
	if c.Simulation.DigestInterval < 0 {
		return invalid("simulation.digest_interval must not be negative, got %d", c.Simulation.DigestInterval)
	}

	names := make(map[string]int, len(c.Bodies))
	for i, b := range c.Bodies {
		field := fmt.Sprintf("bodies[%d]", i)
		if b.Name != "" {
			if prev, ok := names[b.Name]; ok {
				return invalid("%s.name %q duplicates bodies[%d]", field, b.Name, prev)
			}
			names[b.Name] = i
		}
		vectors := []struct {
			key string
			v   Vector
		}{{"position", b.Position}, {"size", b.Size}, {"velocity", b.Velocity}}
		for _, f := range vectors {
			if !f.v.finite() {
				return invalid("%s.%s must be finite, got %v", field, f.key, f.v)
			}
		}
		if b.Size[0] < 0 || b.Size[1] < 0 || b.Size[2] < 0 {
			return invalid("%s.size must not be negative, got %v", field, b.Size)
		}
		scalars := []struct {
			key string
			v   *float64
		}{{"mass", b.Mass}, {"restitution", b.Restitution}, {"friction", b.Friction}}
		for _, f := range scalars {
			if f.v != nil && !finite(*f.v) {
				return invalid("%s.%s must be finite, got %v", field, f.key, *f.v)
			}
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func ptr[T any](v T) *T { return &v }
