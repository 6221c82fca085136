//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/vdeploy/internal/adapters"
	"github.com/trebuchet-org/vdeploy/internal/config"
	"github.com/trebuchet-org/vdeploy/internal/logging"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListNetworks,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
