package injector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/rigidsim/internal/core/observability/log"
	"github.com/zeusync/rigidsim/internal/core/scene"
)

func TestInitializeRunnerDefaultScene(t *testing.T) {
	r, err := InitializeRunner("", log.LevelError)
	require.NoError(t, err)

	require.NotNil(t, r.Simulation)
	assert.Equal(t, len(scene.Default().Bodies), r.Simulation.World().BodyCount())
	assert.Equal(t, scene.Default().Simulation.MaxTicks, r.Config.Simulation.MaxTicks)
	assert.NotNil(t, r.Bus)
	assert.NotNil(t, r.Logger)
}

func TestInitializeRunnerFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	doc := "world:\n  time_step: 0.02\nbodies:\n  - size: [1, 1, 1]\n    position: [0, 3, 0]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	r, err := InitializeRunner(ScenePath(path), log.LevelError)
	require.NoError(t, err)
	assert.Equal(t, 0.02, r.Simulation.World().TimeStep)
	assert.Equal(t, 1, r.Simulation.World().BodyCount())
}

func TestInitializeRunnerInvalidScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  time_step: -1\n"), 0o600))

	_, err := InitializeRunner(ScenePath(path), log.LevelError)
	assert.ErrorIs(t, err, scene.ErrInvalidConfig)
}
