package scene

import (
	"github.com/zeusync/rigidsim/internal/core/observability/log"
	"github.com/zeusync/rigidsim/internal/core/systems/physics"
	"github.com/zeusync/rigidsim/internal/core/systems/simulation"
)

// BuildWorld validates cfg and creates its world. Named bodies are returned
// by handle so callers can find them again after removals.
func BuildWorld(cfg *Config, logger log.Log) (*physics.World, map[string]physics.BodyID, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	world := physics.NewWorld(
		physics.WithGravity(cfg.World.Gravity.Vec3()),
		physics.WithTimeStep(cfg.World.TimeStep),
		physics.WithLogger(logger),
	)

	ids := make(map[string]physics.BodyID, len(cfg.Bodies))
	for _, bc := range cfg.Bodies {
		id := world.AddBody(newBody(bc))
		if bc.Name != "" {
			ids[bc.Name] = id
		}
	}

	logger.Info("scene built",
		log.Int("bodies", world.BodyCount()),
		log.Int("named", len(ids)),
		log.Stringer("gravity", world.Gravity),
	)
	return world, ids, nil
}

func newBody(bc BodyConfig) *physics.RigidBody {
	mass := physics.DefaultMass
	if bc.Mass != nil {
		mass = *bc.Mass
	}
	b := physics.NewRigidBody(bc.Position.Vec3(), bc.Size.Vec3(), mass)
	b.Velocity = bc.Velocity.Vec3()
	if bc.Restitution != nil {
		b.Restitution = *bc.Restitution
	}
	if bc.Friction != nil {
		b.Friction = *bc.Friction
	}
	if bc.Static {
		b.MakeStatic()
	}
	return b
}

// SimulationOptions maps the ground and driver sections onto simulation options.
func SimulationOptions(cfg *Config) []simulation.Option {
	return []simulation.Option{
		simulation.WithGround(physics.Ground{Enabled: cfg.Ground.Enabled, Y: cfg.Ground.Y}),
		simulation.WithMaxSubSteps(cfg.Simulation.MaxSubSteps),
		simulation.WithDigestInterval(uint64(max(cfg.Simulation.DigestInterval, 0))),
	}
}
