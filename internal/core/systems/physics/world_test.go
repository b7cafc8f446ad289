package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/rigidsim/internal/core/observability/log"
)

func TestNewWorldDefaults(t *testing.T) {
	w := NewWorld()

	assert.Equal(t, V3(0, -9.81, 0), w.Gravity)
	assert.InDelta(t, 1.0/60.0, w.TimeStep, 1e-12)
	assert.Equal(t, 0, w.BodyCount())
}

func TestNewWorldOptions(t *testing.T) {
	w := NewWorld(WithGravity(V3(0, -20, 0)), WithTimeStep(0.02))

	assert.Equal(t, V3(0, -20, 0), w.Gravity)
	assert.Equal(t, 0.02, w.TimeStep)
}

func TestWorldBodyManagement(t *testing.T) {
	w := NewWorld()
	b1 := NewRigidBody(V3(0, 10, 0), V3(1, 1, 1), 2)
	b2 := NewRigidBody(V3(5, 15, 0), V3(2, 2, 2), 3)
	b3 := NewRigidBody(V3(-5, 0, 0), V3(1, 1, 1), 0)

	id1 := w.AddBody(b1)
	id2 := w.AddBody(b2)
	id3 := w.AddBody(b3)
	require.Equal(t, 3, w.BodyCount())
	assert.NotEqual(t, id1, id2)

	got, ok := w.Body(0)
	require.True(t, ok)
	assert.Same(t, b1, got)
	got, _ = w.Body(1)
	assert.Equal(t, 3.0, got.Mass())
	got, _ = w.Body(2)
	assert.True(t, got.IsStatic())

	w.RemoveBody(1)
	require.Equal(t, 2, w.BodyCount())
	got, _ = w.Body(1)
	assert.Same(t, b3, got, "later bodies shift down")
	_, ok = w.Lookup(id2)
	assert.False(t, ok)
	assert.Equal(t, 1, w.IndexOf(id3))

	got, ok = w.Body(10)
	assert.False(t, ok)
	assert.Nil(t, got)
	_, ok = w.Body(-1)
	assert.False(t, ok)
}

func TestWorldRemoveOutOfRangeIsNoop(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewDefaultRigidBody())

	w.RemoveBody(5)
	w.RemoveBody(-1)

	assert.Equal(t, 1, w.BodyCount())
}

func TestWorldRemoveReleasesBody(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewDefaultRigidBody())
	w.AddBody(NewDefaultRigidBody())
	w.AddBody(NewDefaultRigidBody())

	w.RemoveBody(0)

	require.Equal(t, 2, w.BodyCount())
	tail := w.entries[:3]
	assert.Nil(t, tail[2].body, "vacated slot keeps no body alive")
	assert.Equal(t, NilBody, tail[2].id)
}

func TestWorldAddNil(t *testing.T) {
	w := NewWorld()
	assert.Equal(t, NilBody, w.AddBody(nil))
	assert.Equal(t, 0, w.BodyCount())
}

func TestWorldHandlesSurviveRemoval(t *testing.T) {
	w := NewWorld()
	ids := make([]BodyID, 4)
	bodies := make([]*RigidBody, 4)
	for i := range ids {
		bodies[i] = NewRigidBody(V3(float64(i), 0, 0), V3(1, 1, 1), 1)
		ids[i] = w.AddBody(bodies[i])
	}

	require.True(t, w.RemoveByID(ids[1]))
	assert.False(t, w.RemoveByID(ids[1]), "second removal finds nothing")
	w.RemoveBody(0)

	for _, i := range []int{2, 3} {
		b, ok := w.Lookup(ids[i])
		require.True(t, ok)
		assert.Same(t, bodies[i], b)
	}
	assert.Equal(t, 0, w.IndexOf(ids[2]))
	assert.Equal(t, -1, w.IndexOf(ids[0]))

	id, ok := w.ID(1)
	require.True(t, ok)
	assert.Equal(t, ids[3], id)
	_, ok = w.ID(2)
	assert.False(t, ok)
}

func TestWorldClearBodies(t *testing.T) {
	w := NewWorld()
	id := w.AddBody(NewDefaultRigidBody())
	w.AddBody(NewDefaultRigidBody())

	w.ClearBodies()

	assert.Equal(t, 0, w.BodyCount())
	_, ok := w.Lookup(id)
	assert.False(t, ok)
}

func TestWorldApplyGravityIsMassIndependent(t *testing.T) {
	w := NewWorld(WithGravity(V3(0, -10, 0)))
	w.AddBody(NewRigidBody(V3(0, 10, 0), V3(1, 1, 1), 2))
	w.AddBody(NewRigidBody(V3(0, 0, 0), V3(1, 1, 1), 0))
	w.AddBody(NewRigidBody(V3(5, 0, 0), V3(1, 1, 1), 0.5))

	w.ApplyGravity()

	heavy, _ := w.Body(0)
	static, _ := w.Body(1)
	light, _ := w.Body(2)
	assert.Equal(t, V3(0, -10, 0), heavy.Acceleration)
	assert.Equal(t, V3(0, -10, 0), light.Acceleration)
	assert.Equal(t, Vec3{}, static.Acceleration)
}

func TestWorldStepDefaultGravity(t *testing.T) {
	w := NewWorld()
	b := NewRigidBody(V3(0, 10, 0), V3(1, 1, 1), 2)
	w.AddBody(b)

	w.ApplyGravity()
	assertVec(t, V3(0, -9.81, 0), b.Acceleration)

	w.IntegrateBodies(w.TimeStep)
	assert.Equal(t, Vec3{}, b.Acceleration)
	assertVec(t, V3(0, -9.81/60, 0), b.Velocity)
}

func TestWorldStep(t *testing.T) {
	w := NewWorld(WithGravity(V3(0, -10, 0)), WithTimeStep(0.1))
	b := NewRigidBody(V3(0, 10, 0), V3(1, 1, 1), 1)
	b.Velocity = V3(2, 5, 0)
	w.AddBody(b)

	w.Step()

	assert.InDelta(t, 2.0, b.Velocity[0], 1e-9)
	assert.InDelta(t, 4.0, b.Velocity[1], 1e-9)
	assert.InDelta(t, 0.2, b.Position[0], 1e-9)
	assert.InDelta(t, 10.4, b.Position[1], 1e-9)
	assert.Equal(t, Vec3{}, b.Acceleration)
}

func TestWorldStepDelta(t *testing.T) {
	w := NewWorld(WithGravity(V3(0, -10, 0)))
	b := NewRigidBody(V3(0, 10, 0), V3(1, 1, 1), 1)
	w.AddBody(b)

	w.StepDelta(0.2)

	assert.InDelta(t, -2.0, b.Velocity[1], 1e-9)
}

func TestWorldMultiBodyFall(t *testing.T) {
	w := NewWorld()
	w.AddBody(NewRigidBody(V3(0, 20, 0), V3(1, 1, 1), 1))
	w.AddBody(NewRigidBody(V3(10, 25, 0), V3(1, 1, 1), 2))
	w.AddBody(NewRigidBody(V3(0, -5, 0), V3(100, 1, 100), 0))

	for range 3 {
		w.Step()

		b1, _ := w.Body(0)
		b2, _ := w.Body(1)
		ground, _ := w.Body(2)
		assert.Less(t, b1.Velocity[1], 0.0)
		assert.Less(t, b2.Velocity[1], 0.0)
		assert.Equal(t, 0.0, ground.Velocity[1])
		assert.Equal(t, V3(0, -5, 0), ground.Position)
	}
}

func TestWorldDynamicBodies(t *testing.T) {
	w := NewWorld()
	dyn := NewDefaultRigidBody()
	w.AddBody(NewRigidBody(Vec3{}, V3(1, 1, 1), 0))
	w.AddBody(dyn)

	assert.Len(t, w.Bodies(), 2)
	got := w.DynamicBodies()
	require.Len(t, got, 1)
	assert.Same(t, dyn, got[0])
}

func TestWorldLogsLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := NewWorld(WithLogger(log.NewWithCore(core, log.LevelDebug)))

	w.AddBody(NewDefaultRigidBody())
	w.RemoveBody(0)
	w.ClearBodies()

	require.Equal(t, 3, logs.Len())
	assert.Equal(t, "body added", logs.All()[0].Message)
	assert.Equal(t, "body removed", logs.All()[1].Message)
	assert.Equal(t, "bodies cleared", logs.All()[2].Message)
}

func TestWorldDynamicCount(t *testing.T) {
	w := NewWorld()
	assert.Zero(t, w.DynamicCount())

	w.AddBody(NewRigidBody(V3(0, 0, 0), V3(1, 1, 1), 1))
	w.AddBody(NewRigidBody(V3(0, 0, 0), V3(1, 1, 1), 0))
	w.AddBody(NewRigidBody(V3(0, 0, 0), V3(1, 1, 1), 3))

	assert.Equal(t, 2, w.DynamicCount())
	assert.Len(t, w.DynamicBodies(), w.DynamicCount())
}
