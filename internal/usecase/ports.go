package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// DeploymentStore persists deployment records per network
type DeploymentStore interface {
	GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error)
	HasDeployment(ctx context.Context, network, name string) (bool, error)
	SaveDeployment(ctx context.Context, network string, deployment *models.Deployment) error
	ListDeployments(ctx context.Context, network string, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	EnsureDir(ctx context.Context, network, dir string) error
}

// ChainIDRecorder is implemented by stores that record the chain ID of a
// network next to its deployments
type ChainIDRecorder interface {
	WriteChainID(network string, chainID uint64) error
}

// ChainClient sends calls, transactions and contract creations to a node
type ChainClient interface {
	contracts.Backend
	ChainID(ctx context.Context) (uint64, error)
	Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployResult, error)
}

// ArtifactRepository provides compiled contract artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, contract string) (*models.Artifact, error)
}

// AccountResolver resolves named accounts such as "deployer"
type AccountResolver interface {
	NamedAccount(name string) (common.Address, error)
	AccountNames() []string
}

// NetworkResolver resolves network names to configurations
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
}

// AnvilManager manages local test nodes
type AnvilManager interface {
	Start(ctx context.Context, instance *domain.AnvilInstance) error
	Stop(ctx context.Context, instance *domain.AnvilInstance) error
	GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error)
}

// LocalConfigStore persists the local config file
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*domain.LocalConfig, error)
	Save(ctx context.Context, config *domain.LocalConfig) error
	GetPath() string
}

// FileWriter writes project files
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content string) error
	FileExists(ctx context.Context, path string) (bool, error)
	EnsureDirectory(ctx context.Context, path string) error
}

// Confirmer asks the user to confirm an outward-facing action
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// DeployerAccount is the named account used when no sender is given
const DeployerAccount = "deployer"
