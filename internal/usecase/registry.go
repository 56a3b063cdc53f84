package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// DeploymentRegistry deploys contracts and records them under a logical name
// in the active network's deployment directory.
type DeploymentRegistry struct {
	cfg       *config.RuntimeConfig
	store     DeploymentStore
	artifacts ArtifactRepository
	chain     ChainClient
	accounts  AccountResolver
	log       *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDeploymentRegistry creates a new deployment registry
func NewDeploymentRegistry(
	cfg *config.RuntimeConfig,
	store DeploymentStore,
	artifacts ArtifactRepository,
	chain ChainClient,
	accounts AccountResolver,
	log *slog.Logger,
) *DeploymentRegistry {
	return &DeploymentRegistry{
		cfg:       cfg,
		store:     store,
		artifacts: artifacts,
		chain:     chain,
		accounts:  accounts,
		log:       log,
		locks:     make(map[string]*sync.Mutex),
	}
}

// DeployOptions describes what to deploy under a name
type DeployOptions struct {
	Contract string
	Args     []any
	// From defaults to the deployer named account
	From common.Address
}

// Network returns the active network name
func (r *DeploymentRegistry) Network() (string, error) {
	return activeNetwork(r.cfg)
}

// Get returns the record saved under name on the active network
func (r *DeploymentRegistry) Get(ctx context.Context, name string) (*models.Deployment, error) {
	network, err := r.Network()
	if err != nil {
		return nil, err
	}
	return r.store.GetDeployment(ctx, network, name)
}

// DeployIfMissing returns the record saved under name, or deploys and saves a
// new one. Lookups and deployments are serialized per network.
func (r *DeploymentRegistry) DeployIfMissing(ctx context.Context, name string, opts DeployOptions) (*models.Deployment, error) {
	network, err := r.Network()
	if err != nil {
		return nil, err
	}

	lock := r.networkLock(network)
	lock.Lock()
	defer lock.Unlock()

	existing, err := r.store.GetDeployment(ctx, network, name)
	if err == nil {
		r.log.Info(fmt.Sprintf("reusing %q at %s", name, existing.Address.Hex()))
		existing.NewlyDeployed = false
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up %s: %w", name, err)
	}

	if dir := (&models.Deployment{Name: name}).Dir(); dir != "" {
		if err := r.store.EnsureDir(ctx, network, dir); err != nil {
			return nil, fmt.Errorf("failed to create deployment directory: %w", err)
		}
	}

	return r.deploy(ctx, network, name, opts)
}

func (r *DeploymentRegistry) deploy(ctx context.Context, network, name string, opts DeployOptions) (*models.Deployment, error) {
	from := opts.From
	if from == (common.Address{}) {
		deployer, err := r.accounts.NamedAccount(DeployerAccount)
		if err != nil {
			return nil, err
		}
		from = deployer
	}

	artifact, err := r.artifacts.GetArtifact(ctx, opts.Contract)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact for %s: %w", opts.Contract, err)
	}

	r.log.Debug("deploying", "name", name, "contract", opts.Contract, "from", from.Hex(), "args", len(opts.Args))

	result, err := r.chain.Deploy(ctx, domain.DeployRequest{
		From:     from,
		Artifact: artifact,
		Args:     opts.Args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", name, err)
	}

	deployment := &models.Deployment{
		Name:            name,
		Address:         result.Address,
		ABI:             artifact.ABI,
		Contract:        opts.Contract,
		TransactionHash: result.TransactionHash.Hex(),
		Deployer:        from.Hex(),
		CreatedAt:       time.Now().UTC(),
	}
	if len(result.ConstructorArgs) > 0 {
		deployment.Args = hexutil.Encode(result.ConstructorArgs)
	}

	if err := r.store.SaveDeployment(ctx, network, deployment); err != nil {
		return nil, fmt.Errorf("failed to save deployment %s: %w", name, err)
	}

	r.recordChainID(ctx, network)
	r.log.Info(fmt.Sprintf("deployed %q at %s", name, result.Address.Hex()), "tx", result.TransactionHash.Hex())

	deployment.NewlyDeployed = true
	return deployment, nil
}

func (r *DeploymentRegistry) recordChainID(ctx context.Context, network string) {
	recorder, ok := r.store.(ChainIDRecorder)
	if !ok {
		return
	}
	chainID, err := r.chain.ChainID(ctx)
	if err == nil {
		err = recorder.WriteChainID(network, chainID)
	}
	if err != nil {
		r.log.Warn("failed to record chain id", "network", network, "error", err)
	}
}

func (r *DeploymentRegistry) networkLock(network string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[network]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[network] = lock
	}
	return lock
}

func activeNetwork(cfg *config.RuntimeConfig) (string, error) {
	if cfg == nil || cfg.Network == nil || cfg.Network.Name == "" {
		return "", fmt.Errorf("no network selected (use --network): %w", domain.ErrNetworkNotConfigured)
	}
	return cfg.Network.Name, nil
}
