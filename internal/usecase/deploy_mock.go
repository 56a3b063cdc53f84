package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// DeployMock deploys a mock contract once per name and network
type DeployMock struct {
	registry *DeploymentRegistry
}

// NewDeployMock creates a new deploy mock use case
func NewDeployMock(registry *DeploymentRegistry) *DeployMock {
	return &DeployMock{registry: registry}
}

// DeployMockParams contains parameters for deploying a mock
type DeployMockParams struct {
	// Contract is the artifact to deploy, e.g. "MockToken"
	Contract string
	// Name distinguishes several mocks of the same contract, e.g. "WETH"
	Name string
	From common.Address
	Args []any
}

// Execute returns the existing mock record or deploys a new one.
// The returned record has NewlyDeployed set accordingly.
func (uc *DeployMock) Execute(ctx context.Context, params DeployMockParams) (*models.Deployment, error) {
	return uc.registry.DeployIfMissing(ctx, models.MockName(params.Contract, params.Name), DeployOptions{
		Contract: params.Contract,
		Args:     params.Args,
		From:     params.From,
	})
}
