//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/rigidsim/internal/core/observability/log"
)

func InitializeRunner(path ScenePath, level log.Level) (*Runner, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
