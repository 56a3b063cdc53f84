package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DataDir        string
	DeploymentsDir string
	ArtifactsDir   string
	MocksManifest  string

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Yes            bool
	Timeout        time.Duration

	// Networks on which the release is switched live after deployment
	FinalizeNetworks []string

	// Resolved configurations
	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	ChainID uint64 `json:"chainId"`
	RPCURL  string `json:"rpcUrl"`
}
