package config

// ProjectConfig is the shape of fundops.toml
type ProjectConfig struct {
	Paths    PathsConfig              `toml:"paths"`
	Networks map[string]NetworkConfig `toml:"networks" validate:"dive"`
	Accounts map[string]AccountConfig `toml:"accounts" validate:"dive"`
	Finalize FinalizeConfig           `toml:"finalize"`
	Deploy   DeployConfig             `toml:"deploy"`
}

// PathsConfig holds project-relative directories
type PathsConfig struct {
	Deployments string `toml:"deployments"`
	Artifacts   string `toml:"artifacts"`
	Mocks       string `toml:"mocks"`
}

// NetworkConfig describes one JSON-RPC endpoint
type NetworkConfig struct {
	RPCURL  string `toml:"rpc_url" validate:"required"`
	ChainID uint64 `toml:"chain_id"`
}

// AccountConfig is a named account. Exactly one of PrivateKey, Mnemonic or
// Address must be set; Address-only accounts cannot sign.
type AccountConfig struct {
	PrivateKey string `toml:"private_key,omitempty" validate:"required_without_all=Mnemonic Address"` //nolint:gosec // holds env var reference
	Mnemonic   string `toml:"mnemonic,omitempty" validate:"required_without_all=PrivateKey Address"`
	Index      uint32 `toml:"index,omitempty"`
	Address    string `toml:"address,omitempty" validate:"omitempty,eth_addr"`
}

// FinalizeConfig controls the post-deployment finalization step
type FinalizeConfig struct {
	Networks []string `toml:"networks"`
}

// DeployConfig lists named contract steps of the deploy pipeline
type DeployConfig struct {
	Contracts []ContractStepConfig `toml:"contracts" validate:"dive"`
}

// ContractStepConfig deploys one named contract. Args prefixed with "@" are
// resolved to the address of the named deployment.
type ContractStepConfig struct {
	Name     string   `toml:"name" validate:"required"`
	Contract string   `toml:"contract"`
	Args     []string `toml:"args"`
	Deps     []string `toml:"deps"`
	Tags     []string `toml:"tags"`
	From     string   `toml:"from"`
}
