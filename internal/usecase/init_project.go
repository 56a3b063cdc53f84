package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/trebuchet-org/fundops/internal/domain/config"
)

// InitProject scaffolds fundops.toml, the mocks manifest and .env.example
type InitProject struct {
	cfg        *config.RuntimeConfig
	fileWriter FileWriter
	progress   ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(cfg *config.RuntimeConfig, fileWriter FileWriter, progress ProgressSink) *InitProject {
	return &InitProject{
		cfg:        cfg,
		fileWriter: fileWriter,
		progress:   progress,
	}
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	Steps []InitStep
}

// Created reports whether any file was written
func (r *InitProjectResult) Created() bool {
	for _, step := range r.Steps {
		if step.Success && step.Created {
			return true
		}
	}
	return false
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Created bool
	Message string
	Error   error
}

const projectTemplate = `# fundops.toml

[paths]
deployments = "deployments"
artifacts = "out"
mocks = "mocks.yaml"

# Named accounts sign transactions. Use one of private_key, mnemonic (+ index) or address.
[accounts.deployer]
private_key = "${DEPLOYER_PRIVATE_KEY}"

[networks.localhost]
rpc_url = "http://localhost:8545"
chain_id = 31337

[networks.kovan]
rpc_url = "${KOVAN_RPC_URL}"
chain_id = 42

# The release is switched live at the end of "fundops deploy" on these networks
[finalize]
networks = ["kovan"]

# [[deploy.contracts]]
# name = "FundDeployer"
# args = ["@Dispatcher", "@mocks/MockToken (WETH)"]
# tags = ["release"]
`

const mocksTemplate = `# Mock contracts deployed by "fundops mocks deploy" on test networks
tokens:
  - symbol: WETH
    name: Wrapped Ether
    decimals: 18
  - symbol: MLN
    name: Melon Token
    decimals: 18
synths:
  - symbol: sUSD
    name: Synth sUSD
    decimals: 18
pairs:
  - name: WETH-MLN
    tokenA: WETH
    tokenB: MLN
`

const envTemplate = `# fundops environment

# Private keys (for deployment)
DEPLOYER_PRIVATE_KEY=

# RPC URLs
KOVAN_RPC_URL=

# Log level: debug, info, warn, error
FUNDOPS_LOG_LEVEL=info
`

// Execute writes the project files that do not exist yet
func (i *InitProject) Execute(ctx context.Context) (*InitProjectResult, error) {
	result := &InitProjectResult{}

	root := i.cfg.ProjectRoot
	deploymentsDir := i.cfg.DeploymentsDir
	if deploymentsDir == "" {
		deploymentsDir = filepath.Join(root, "deployments")
	}

	if err := i.fileWriter.EnsureDirectory(ctx, deploymentsDir); err != nil {
		step := InitStep{Name: "Create deployments directory", Error: fmt.Errorf("failed to create %s: %w", deploymentsDir, err)}
		result.Steps = append(result.Steps, step)
		return result, step.Error
	}
	result.Steps = append(result.Steps, InitStep{
		Name:    "Create deployments directory",
		Success: true,
		Message: deploymentsDir,
	})

	files := []struct {
		name    string
		content string
	}{
		{"fundops.toml", projectTemplate},
		{"mocks.yaml", mocksTemplate},
		{".env.example", envTemplate},
	}
	for _, f := range files {
		step := i.createFile(ctx, filepath.Join(root, f.name), f.name, f.content)
		result.Steps = append(result.Steps, step)
		if step.Error != nil {
			return result, step.Error
		}
		if step.Created {
			i.progress.Info(step.Message)
		}
	}

	return result, nil
}

func (i *InitProject) createFile(ctx context.Context, path, name, content string) InitStep {
	step := InitStep{Name: "Create " + name}

	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		step.Error = fmt.Errorf("failed to check %s: %w", name, err)
		return step
	}
	if exists {
		step.Success = true
		step.Message = name + " already exists"
		return step
	}

	if err := i.fileWriter.WriteFile(ctx, path, content); err != nil {
		step.Error = fmt.Errorf("failed to create %s: %w", name, err)
		return step
	}

	step.Success = true
	step.Created = true
	step.Message = "Created " + name
	return step
}
