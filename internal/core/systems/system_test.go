package systems

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	var m Metrics
	at := time.Unix(10, 0)
	boom := errors.New("boom")

	m.Record(at, 3*time.Millisecond, 4, nil)
	m.Record(at.Add(time.Second), 1*time.Millisecond, 4, boom)
	m.Record(at.Add(2*time.Second), 5*time.Millisecond, 4, nil)

	assert.Equal(t, uint64(3), m.ExecutionCount)
	assert.Equal(t, 9*time.Millisecond, m.TotalExecutionTime)
	assert.Equal(t, 3*time.Millisecond, m.AverageExecutionTime)
	assert.Equal(t, 5*time.Millisecond, m.MaxExecutionTime)
	assert.Equal(t, 1*time.Millisecond, m.MinExecutionTime)
	assert.Equal(t, uint64(12), m.EntitiesProcessed)
	assert.Equal(t, uint64(1), m.ErrorCount)
	assert.ErrorIs(t, m.LastError, boom)
	assert.Equal(t, at.Add(2*time.Second), m.LastExecutionTime)
}

func TestStateIdentityString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "unknown", StateIdentity(200).String())
}
