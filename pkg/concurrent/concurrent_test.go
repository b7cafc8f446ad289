package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/rigidsim/pkg/sequence"
)

func TestParallelMapPreservesOrder(t *testing.T) {
	in := []int{5, 4, 3, 2, 1, 0}
	out, err := ParallelMap(context.Background(), sequence.From(in), 2, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{25, 16, 9, 4, 1, 0}, out)
}

func TestParallelMapLimitsWorkers(t *testing.T) {
	var running, peak atomic.Int32
	_, err := ParallelMap(context.Background(), sequence.From(make([]int, 16)), 3, func(_ context.Context, _ int) (struct{}, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return struct{}{}, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestParallelMapCancelsOnError(t *testing.T) {
	boom := errors.New("boom")
	out, err := ParallelMap(context.Background(), sequence.From([]int{0, 1, 2, 3}), 1, func(ctx context.Context, v int) (int, error) {
		if v == 1 {
			return 0, boom
		}
		if v > 1 {
			return 0, ctx.Err()
		}
		return v, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}
