package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/pkg/encoding"
)

// MockFactories composes constructor arguments for each mock contract type
// and deploys them through DeployMock, keyed by symbol or pair name.
type MockFactories struct {
	deployMock *DeployMock
}

// NewMockFactories creates the mock factories
func NewMockFactories(deployMock *DeployMock) *MockFactories {
	return &MockFactories{deployMock: deployMock}
}

// DeployToken deploys a MockToken(name, symbol, decimals)
func (f *MockFactories) DeployToken(ctx context.Context, symbol, name string, decimals uint8) (*models.Deployment, error) {
	return f.deployMock.Execute(ctx, DeployMockParams{
		Contract: contracts.MockToken,
		Name:     symbol,
		Args:     []any{name, symbol, decimals},
	})
}

// DeploySynthetixToken deploys a MockSynthetixToken whose currency key is the
// symbol as bytes32.
func (f *MockFactories) DeploySynthetixToken(ctx context.Context, symbol, name string, decimals uint8) (*models.Deployment, error) {
	currency, err := encoding.FormatBytes32String(symbol)
	if err != nil {
		return nil, fmt.Errorf("invalid synth symbol: %w", err)
	}

	return f.deployMock.Execute(ctx, DeployMockParams{
		Contract: contracts.MockSynthetixToken,
		Name:     symbol,
		Args:     []any{name, symbol, decimals, currency},
	})
}

// CompoundTokenParams contains parameters for a mock cToken
type CompoundTokenParams struct {
	Symbol       string
	Name         string
	Decimals     uint8
	Primitive    common.Address
	RateProvider common.Address
	// Rate is the initial exchange rate, scaled by 1e18 on deployment
	Rate float64
}

// DeployCompoundToken deploys a MockCTokenIntegratee over a primitive token
func (f *MockFactories) DeployCompoundToken(ctx context.Context, params CompoundTokenParams) (*models.Deployment, error) {
	normalizedRate, err := encoding.ParseUnits(strconv.FormatFloat(params.Rate, 'f', -1, 64), 18)
	if err != nil {
		return nil, fmt.Errorf("invalid rate for %s: %w", params.Symbol, err)
	}

	return f.deployMock.Execute(ctx, DeployMockParams{
		Contract: contracts.MockCTokenIntegratee,
		Name:     params.Symbol,
		Args: []any{
			params.Name,
			params.Symbol,
			params.Decimals,
			params.Primitive,
			params.RateProvider,
			normalizedRate,
		},
	})
}

// DeployUniswapPair deploys a MockUniswapV2PriceSource for tokens a and b
func (f *MockFactories) DeployUniswapPair(ctx context.Context, name string, a, b common.Address) (*models.Deployment, error) {
	return f.deployMock.Execute(ctx, DeployMockParams{
		Contract: contracts.MockUniswapV2PriceSource,
		Name:     name,
		Args:     []any{a, b},
	})
}
