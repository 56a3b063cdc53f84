package app

import (
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Registry *usecase.DeploymentRegistry
	Progress usecase.ProgressSink

	// Use cases
	RunDeploy             *usecase.RunDeploy
	DeployMocks           *usecase.DeployMocks
	MockFactories         *usecase.MockFactories
	FinalizeRelease       *usecase.FinalizeRelease
	LinkedData            *usecase.LinkedData
	ListDeployments       *usecase.ListDeployments
	ShowDeployment        *usecase.ShowDeployment
	BootstrapMockPolicies *usecase.BootstrapMockPolicies
	Governance            *usecase.Governance
	TakeOrderOnKyber      *usecase.TakeOrderOnKyber
	ManageAnvil           *usecase.ManageAnvil
	ListNetworks          *usecase.ListNetworks
	ManageConfig          *usecase.ManageConfig
	InitProject           *usecase.InitProject

	// Adapters (needed for direct chain reads in commands)
	Chain    usecase.ChainClient
	Accounts usecase.AccountResolver
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	registry *usecase.DeploymentRegistry,
	progress usecase.ProgressSink,
	runDeploy *usecase.RunDeploy,
	deployMocks *usecase.DeployMocks,
	mockFactories *usecase.MockFactories,
	finalizeRelease *usecase.FinalizeRelease,
	linkedData *usecase.LinkedData,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	bootstrapMockPolicies *usecase.BootstrapMockPolicies,
	governance *usecase.Governance,
	takeOrderOnKyber *usecase.TakeOrderOnKyber,
	manageAnvil *usecase.ManageAnvil,
	listNetworks *usecase.ListNetworks,
	manageConfig *usecase.ManageConfig,
	initProject *usecase.InitProject,
	chain usecase.ChainClient,
	accounts usecase.AccountResolver,
) *App {
	return &App{
		Config:                cfg,
		Registry:              registry,
		Progress:              progress,
		RunDeploy:             runDeploy,
		DeployMocks:           deployMocks,
		MockFactories:         mockFactories,
		FinalizeRelease:       finalizeRelease,
		LinkedData:            linkedData,
		ListDeployments:       listDeployments,
		ShowDeployment:        showDeployment,
		BootstrapMockPolicies: bootstrapMockPolicies,
		Governance:            governance,
		TakeOrderOnKyber:      takeOrderOnKyber,
		ManageAnvil:           manageAnvil,
		ListNetworks:          listNetworks,
		ManageConfig:          manageConfig,
		InitProject:           initProject,
		Chain:                 chain,
		Accounts:              accounts,
	}
}
