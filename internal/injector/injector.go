//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/gesturekit/gesturekit/internal/config"
	"github.com/gesturekit/gesturekit/internal/core/observability/log"
	"github.com/gesturekit/gesturekit/internal/server"
)

// ProvideLogger builds the logger from the loaded configuration.
func ProvideLogger(cfg config.Config) log.Log {
	return log.New(cfg.LogLevel())
}

// InitializeServer wires the touch-stream server and its dependencies.
func InitializeServer(cfg config.Config) *server.Server {
	wire.Build(ProvideLogger, server.New)
	return nil
}
