package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/rigidsim/internal/core/events/bus"
	"github.com/zeusync/rigidsim/internal/core/observability/log"
	"github.com/zeusync/rigidsim/internal/core/scene"
	"github.com/zeusync/rigidsim/internal/core/systems/simulation"
	"github.com/zeusync/rigidsim/internal/injector"
)

func main() {
	scenePath := flag.String("scene", "", "scene file (.yaml or .json); empty runs the built-in demo")
	levelName := flag.String("log-level", "info", "log level: debug, info, warn or error")
	ticks := flag.Uint64("ticks", 0, "stop after this many ticks; 0 uses the scene's max_ticks")
	verify := flag.Int("verify", 0, "before running, step this many headless replicas and compare digests")
	flag.Parse()

	if err := run(*scenePath, *levelName, *ticks, *verify); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "rigidsim:", err)
		os.Exit(1)
	}
}

func run(scenePath, levelName string, ticks uint64, verify int) error {
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}

	runner, err := injector.InitializeRunner(injector.ScenePath(scenePath), level)
	if err != nil {
		return err
	}
	logger := runner.Logger
	defer func() {
		if l, ok := logger.(*log.Logger); ok {
			_ = l.Sync()
		}
	}()

	if ticks == 0 {
		ticks = runner.Config.Simulation.MaxTicks
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if verify > 0 {
		if err = verifyScene(ctx, runner.Config, verify, ticks, logger); err != nil {
			return err
		}
	}

	if err = watch(runner.Bus, logger); err != nil {
		return err
	}

	sim := runner.Simulation
	if err = sim.Initialize(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sim.Run(ctx, ticks)
	})
	err = g.Wait()

	if shutdownErr := sim.Shutdown(context.Background()); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

// verifyScene checks that the scene steps deterministically before it is run for real.
func verifyScene(ctx context.Context, cfg *scene.Config, replicas int, ticks uint64, logger log.Log) error {
	if ticks == 0 {
		ticks = uint64(max(cfg.Simulation.DigestInterval, 1))
	}
	digest, err := simulation.Replicate(ctx, replicas, ticks, func() (*simulation.Simulation, error) {
		world, _, err := scene.BuildWorld(cfg, log.NewNop())
		if err != nil {
			return nil, err
		}
		return simulation.New(world, append(scene.SimulationOptions(cfg), simulation.WithLogger(log.NewNop()))...), nil
	})
	if err != nil {
		return err
	}
	logger.Info("replicas agree",
		log.Int("replicas", replicas),
		log.Uint64("ticks", ticks),
		log.Uint64("digest", digest),
	)
	return nil
}

// watch logs when bodies start or stop resting on the ground.
func watch(events bus.EventBus, logger log.Log) error {
	resting := 0
	_, err := events.Subscribe(simulation.EventGrounded, func(e bus.Event) error {
		ev, ok := e.Data().(simulation.GroundedEvent)
		if !ok {
			return fmt.Errorf("unexpected %s payload %T", e.Type(), e.Data())
		}
		if len(ev.Bodies) != resting {
			logger.Debug("grounded bodies changed",
				log.Uint64("tick", ev.Tick),
				log.Int("from", resting),
				log.Int("to", len(ev.Bodies)),
			)
			resting = len(ev.Bodies)
		}
		return nil
	})
	return err
}
