package simulation

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/zeusync/rigidsim/internal/core/events/bus"
	"github.com/zeusync/rigidsim/internal/core/observability/log"
	"github.com/zeusync/rigidsim/internal/core/systems"
	"github.com/zeusync/rigidsim/internal/core/systems/physics"
)

const DefaultMaxSubSteps = 8

// minTickInterval bounds the Run ticker for time steps shorter than a nanosecond.
const minTickInterval = time.Nanosecond

var (
	ErrNotInitialized = errors.New("simulation is not initialized")
	ErrShutdown       = errors.New("simulation is shut down")
)

var _ systems.System = (*Simulation)(nil)

// Simulation drives a physics.World at a fixed time step. Each tick integrates
// the world, detects contacts, resolves positions and then velocities.
//
// A Simulation is not safe for concurrent use and owns its world while running.
type Simulation struct {
	world          *physics.World
	ground         physics.Ground
	maxSubSteps    int
	digestInterval uint64

	logger log.Log
	events bus.EventBus
	clock  func() time.Time

	tick        uint64
	accumulator float64
	enabled     bool
	state       systems.StateIdentity
	metrics     systems.Metrics
	lastExec    time.Duration
}

type Option func(*Simulation)

// WithGround enables collisions against a ground plane.
func WithGround(g physics.Ground) Option {
	return func(s *Simulation) { s.ground = g }
}

// WithMaxSubSteps bounds how many fixed steps a single Update may run.
// Non-positive values keep the default.
func WithMaxSubSteps(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.maxSubSteps = n
		}
	}
}

// WithDigestInterval publishes and logs the world digest every n ticks. Zero disables it.
func WithDigestInterval(n uint64) Option {
	return func(s *Simulation) { s.digestInterval = n }
}

func WithLogger(l log.Log) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventBus publishes tick events to b. Without a bus nothing is published.
func WithEventBus(b bus.EventBus) Option {
	return func(s *Simulation) { s.events = b }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Simulation) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(world *physics.World, opts ...Option) *Simulation {
	s := &Simulation{
		world:       world,
		maxSubSteps: DefaultMaxSubSteps,
		logger:      log.Provide(),
		clock:       time.Now,
		enabled:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(log.String("system", s.Name()))
	return s
}

func (s *Simulation) Name() string { return "physics" }

func (s *Simulation) World() *physics.World { return s.world }

// Tick returns the number of fixed steps executed so far.
func (s *Simulation) Tick() uint64 { return s.tick }

// Alpha is the fraction of a time step left in the accumulator, for
// interpolating rendered positions between the last two ticks.
func (s *Simulation) Alpha() float64 {
	dt := s.world.TimeStep
	if dt <= 0 {
		return 0
	}
	return s.accumulator / dt
}

func (s *Simulation) Initialize(_ context.Context) error {
	if s.state == systems.StateShutdown {
		return ErrShutdown
	}
	s.state = systems.StateRunning
	s.logger.Info("simulation initialized",
		log.Int("bodies", s.world.BodyCount()),
		log.Int("dynamic", s.world.DynamicCount()),
		log.Float64("time_step", s.world.TimeStep),
		log.Bool("ground", s.ground.Enabled),
		log.Int("max_sub_steps", s.maxSubSteps),
	)
	return nil
}

func (s *Simulation) Shutdown(_ context.Context) error {
	if s.state == systems.StateShutdown {
		return nil
	}
	s.state = systems.StateShutdown
	s.logger.Info("simulation stopped",
		log.Uint64("ticks", s.tick),
		log.Uint64("digest", s.world.Digest()),
	)
	return nil
}

// Reset clears the tick counter, the accumulator and metrics. The world is left as is.
func (s *Simulation) Reset() error {
	s.tick = 0
	s.accumulator = 0
	s.metrics = systems.Metrics{}
	s.lastExec = 0
	return nil
}

func (s *Simulation) IsEnabled() bool { return s.enabled }

// SetEnabled pauses or resumes Update. A paused simulation keeps no frame time.
func (s *Simulation) SetEnabled(enabled bool) error {
	s.enabled = enabled
	if !enabled {
		s.accumulator = 0
		if s.state == systems.StateRunning {
			s.state = systems.StatePaused
		}
	} else if s.state == systems.StatePaused {
		s.state = systems.StateRunning
	}
	return nil
}

func (s *Simulation) GetState() systems.StateIdentity { return s.state }

func (s *Simulation) GetMetrics() systems.Metrics { return s.metrics }

func (s *Simulation) GetLastExecutionTime() time.Duration { return s.lastExec }

func (s *Simulation) GetAverageExecutionTime() time.Duration {
	return s.metrics.AverageExecutionTime
}

// FixedUpdate runs one tick of dt seconds. The returned error joins every
// event handler error; the world has been advanced regardless.
func (s *Simulation) FixedUpdate(dt float64) (TickReport, error) {
	if s.state == systems.StateShutdown {
		return TickReport{}, ErrShutdown
	}
	start := time.Now()

	s.world.StepDelta(dt)
	contacts := s.world.DetectContacts(s.ground)
	s.world.ResolvePositions(contacts)
	s.world.ResolveVelocities(contacts)
	s.tick++

	report := TickReport{
		Tick:     s.tick,
		Contacts: contacts,
		Grounded: physics.Grounded(contacts),
	}
	if s.digestInterval > 0 && s.tick%s.digestInterval == 0 {
		report.Digest = s.world.Digest()
		report.HasDigest = true
		s.logger.Info("tick digest",
			log.Uint64("tick", s.tick),
			log.Uint64("digest", report.Digest),
			log.Int("contacts", len(contacts)),
		)
	}

	err := s.publish(report)

	s.lastExec = time.Since(start)
	s.metrics.Record(s.clock(), s.lastExec, s.world.BodyCount(), err)
	if err != nil {
		s.logger.Error("tick event handler failed", log.Uint64("tick", s.tick), log.Error(err))
	}
	return report, err
}

func (s *Simulation) publish(report TickReport) error {
	if s.events == nil {
		return nil
	}
	now := s.clock()
	events := make([]bus.Event, 0, len(report.Contacts)+2)
	for _, c := range report.Contacts {
		events = append(events, bus.NewEvent(EventContact, eventSource, ContactEvent{Tick: report.Tick, Contact: c}, now))
	}
	events = append(events, bus.NewEvent(EventGrounded, eventSource, GroundedEvent{Tick: report.Tick, Bodies: report.Grounded}, now))
	if report.HasDigest {
		events = append(events, bus.NewEvent(EventDigest, eventSource, DigestEvent{
			Tick:   report.Tick,
			Digest: report.Digest,
			Bodies: s.world.BodyCount(),
		}, now))
	}
	return s.events.PublishBatch(events...)
}

// Update feeds frameDelta seconds of wall time into the accumulator and runs
// as many fixed steps as fit, at most the configured sub-step limit. Time
// beyond that limit is dropped. Negative, zero and non-finite deltas are ignored.
// It returns the number of ticks executed and stops at the first tick whose
// event handlers failed.
func (s *Simulation) Update(frameDelta float64) (int, error) {
	if s.state == systems.StateShutdown {
		return 0, ErrShutdown
	}
	if !s.enabled || frameDelta <= 0 || math.IsNaN(frameDelta) || math.IsInf(frameDelta, 0) {
		return 0, nil
	}
	dt := s.world.TimeStep
	if dt <= 0 {
		return 0, nil
	}

	s.accumulator += frameDelta
	ticks := 0
	for s.accumulator >= dt {
		if ticks == s.maxSubSteps {
			dropped := s.accumulator - math.Mod(s.accumulator, dt)
			s.accumulator -= dropped
			s.logger.Warn("simulation falling behind, dropping time",
				log.Float64("dropped_seconds", dropped),
				log.Int("sub_steps", ticks),
			)
			break
		}
		s.accumulator -= dt
		ticks++
		if _, err := s.FixedUpdate(dt); err != nil {
			return ticks, err
		}
	}
	return ticks, nil
}

// Run steps the simulation in real time until ctx is done or, when maxTicks
// is positive, at least maxTicks ticks have run since the call. Cancellation
// is a normal stop and returns nil. Steps shorter than the wall clock can
// resolve are paced by the sub-step limit.
func (s *Simulation) Run(ctx context.Context, maxTicks uint64) error {
	if s.state == systems.StateShutdown {
		return ErrShutdown
	}
	if s.state == systems.StateUninitialized {
		return ErrNotInitialized
	}
	dt := s.world.TimeStep
	if dt <= 0 {
		return nil
	}

	ticker := time.NewTicker(max(time.Duration(dt*float64(time.Second)), minTickInterval))
	defer ticker.Stop()

	first := s.tick
	last := s.clock()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("simulation loop cancelled", log.Uint64("tick", s.tick))
			return nil
		case <-ticker.C:
			now := s.clock()
			_, err := s.Update(now.Sub(last).Seconds())
			last = now
			if err != nil {
				s.state = systems.StateError
				return err
			}
			if maxTicks > 0 && s.tick-first >= maxTicks {
				return nil
			}
		}
	}
}
