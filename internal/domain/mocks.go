package domain

import "github.com/ethereum/go-ethereum/common"

// MocksManifest lists the mock contracts to deploy for a test network
type MocksManifest struct {
	Tokens []MockTokenSpec `yaml:"tokens" validate:"dive"`
	Synths []MockTokenSpec `yaml:"synths" validate:"dive"`
	// RateProvider names the deployment used as centralized rate provider for cTokens
	RateProvider string          `yaml:"rateProvider"`
	CTokens      []MockCTokenSpec `yaml:"ctokens" validate:"dive"`
	Pairs        []MockPairSpec   `yaml:"pairs" validate:"dive"`
}

// MockTokenSpec describes a MockToken or MockSynthetixToken
type MockTokenSpec struct {
	Symbol   string `yaml:"symbol" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	Decimals uint8  `yaml:"decimals" validate:"lte=36"`
}

// MockCTokenSpec describes a MockCTokenIntegratee wrapping an underlying token
type MockCTokenSpec struct {
	MockTokenSpec `yaml:",inline"`
	Underlying    string  `yaml:"underlying" validate:"required"`
	Rate          float64 `yaml:"rate" validate:"gt=0"`
}

// MockPairSpec describes a MockUniswapV2PriceSource between two tokens
type MockPairSpec struct {
	Name   string `yaml:"name" validate:"required"`
	TokenA string `yaml:"tokenA" validate:"required"`
	TokenB string `yaml:"tokenB" validate:"required"`
}

// DeploymentConfig is persisted as linked data after the mocks are deployed
type DeploymentConfig struct {
	Network string                    `json:"network"`
	Tokens  map[string]common.Address `json:"tokens"`
	Synths  map[string]common.Address `json:"synths,omitempty"`
	CTokens map[string]common.Address `json:"ctokens,omitempty"`
	Pairs   map[string]common.Address `json:"pairs,omitempty"`
}

// MockConfigName is the linked-data record the mock deployment config is saved under
const MockConfigName = "Config"
