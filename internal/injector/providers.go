package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/rigidsim/internal/core/events/bus"
	"github.com/zeusync/rigidsim/internal/core/observability/log"
	"github.com/zeusync/rigidsim/internal/core/scene"
	"github.com/zeusync/rigidsim/internal/core/systems/physics"
	"github.com/zeusync/rigidsim/internal/core/systems/simulation"
)

// ScenePath is the scene file to load. Empty means the built-in demo scene.
type ScenePath string

// Runner bundles everything the command needs to drive a scene.
type Runner struct {
	Simulation *simulation.Simulation
	Config     *scene.Config
	Logger     log.Log
	Bus        bus.EventBus
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideScene,
	ProvideWorld,
	ProvideSimulation,
	wire.Struct(new(Runner), "*"),
)

func ProvideLogger(level log.Level) log.Log {
	return log.New(level)
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideScene(path ScenePath) (*scene.Config, error) {
	if path == "" {
		return scene.Default(), nil
	}
	return scene.LoadFile(string(path))
}

func ProvideWorld(cfg *scene.Config, logger log.Log) (*physics.World, error) {
	world, _, err := scene.BuildWorld(cfg, logger)
	return world, err
}

func ProvideSimulation(world *physics.World, cfg *scene.Config, logger log.Log, events bus.EventBus) *simulation.Simulation {
	opts := append(scene.SimulationOptions(cfg),
		simulation.WithLogger(logger),
		simulation.WithEventBus(events),
	)
	return simulation.New(world, opts...)
}
