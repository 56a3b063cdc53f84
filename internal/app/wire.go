//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/fundops/internal/adapters"
	"github.com/trebuchet-org/fundops/internal/config"
	"github.com/trebuchet-org/fundops/internal/logging"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeploymentRegistry,
		usecase.NewLinkedData,
		usecase.NewDeployMock,
		usecase.NewMockFactories,
		usecase.NewDeployMocks,
		usecase.NewFinalizeRelease,
		usecase.NewRunDeploy,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewBootstrapMockPolicies,
		usecase.NewGovernance,
		usecase.NewTakeOrderOnKyber,
		usecase.NewManageAnvil,
		usecase.NewListNetworks,
		usecase.NewManageConfig,
		usecase.NewInitProject,

		// App
		NewApp,
	)
	return nil, nil, nil
}
