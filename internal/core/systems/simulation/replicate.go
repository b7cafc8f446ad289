package simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusync/rigidsim/pkg/concurrent"
	"github.com/zeusync/rigidsim/pkg/sequence"
)

var ErrDiverged = errors.New("simulation replicas diverged")

// Builder creates a fresh simulation that shares no state with any other.
type Builder func() (*Simulation, error)

// Replicate runs replicas independent simulations for ticks fixed steps in
// parallel and checks that they end in the same state. It returns the common
// digest, or an error wrapping ErrDiverged naming the first replica that differs.
func Replicate(ctx context.Context, replicas int, ticks uint64, build Builder) (uint64, error) {
	if replicas < 1 {
		replicas = 1
	}
	ids := make([]int, replicas)
	for i := range ids {
		ids[i] = i
	}

	digests, err := concurrent.ParallelMap(ctx, sequence.From(ids), 0, func(ctx context.Context, replica int) (uint64, error) {
		sim, err := build()
		if err != nil {
			return 0, fmt.Errorf("build replica %d: %w", replica, err)
		}
		return runHeadless(ctx, sim, ticks)
	})
	if err != nil {
		return 0, err
	}

	for i, d := range digests[1:] {
		if d != digests[0] {
			return 0, fmt.Errorf("%w: replica %d has digest %016x, replica 0 has %016x", ErrDiverged, i+1, d, digests[0])
		}
	}
	return digests[0], nil
}

// runHeadless steps sim as fast as possible and returns its final digest.
func runHeadless(ctx context.Context, sim *Simulation, ticks uint64) (uint64, error) {
	dt := sim.World().TimeStep
	for n := uint64(0); n < ticks; n++ {
		if n%64 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if _, err := sim.FixedUpdate(dt); err != nil {
			return 0, err
		}
	}
	return sim.World().Digest(), nil
}
