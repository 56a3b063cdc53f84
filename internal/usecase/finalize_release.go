package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// FinalizeRelease switches the FundDeployer release status to live on the
// configured networks.
type FinalizeRelease struct {
	cfg       *config.RuntimeConfig
	registry  *DeploymentRegistry
	chain     ChainClient
	accounts  AccountResolver
	confirmer Confirmer
	log       *slog.Logger
}

// NewFinalizeRelease creates a new finalize release use case
func NewFinalizeRelease(
	cfg *config.RuntimeConfig,
	registry *DeploymentRegistry,
	chain ChainClient,
	accounts AccountResolver,
	confirmer Confirmer,
	log *slog.Logger,
) *FinalizeRelease {
	return &FinalizeRelease{
		cfg:       cfg,
		registry:  registry,
		chain:     chain,
		accounts:  accounts,
		confirmer: confirmer,
		log:       log,
	}
}

// FinalizeResult describes what finalize did
type FinalizeResult struct {
	Network        string
	Skipped        bool
	SkipReason     string
	PreviousStatus models.ReleaseStatus
	Status         models.ReleaseStatus
	Receipt        *domain.Receipt
}

// Execute reads the release status and sends setReleaseStatus(Live) when it is
// still PreLaunch. Nothing is sent on networks outside finalize.networks.
func (uc *FinalizeRelease) Execute(ctx context.Context) (*FinalizeResult, error) {
	network, err := activeNetwork(uc.cfg)
	if err != nil {
		return nil, err
	}
	result := &FinalizeResult{Network: network}

	if !slices.Contains(uc.cfg.FinalizeNetworks, network) {
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("network %s is not in finalize.networks", network)
		uc.log.Debug("skipping finalize", "network", network, "networks", uc.cfg.FinalizeNetworks)
		return result, nil
	}

	deployment, err := uc.registry.Get(ctx, contracts.FundDeployer)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", contracts.FundDeployer, err)
	}

	fundDeployer, err := contracts.Bind(contracts.FundDeployer, deployment.Address, uc.chain)
	if err != nil {
		return nil, err
	}

	raw, err := contracts.CallAs[uint8](ctx, fundDeployer, "getReleaseStatus")
	if err != nil {
		return nil, err
	}
	status := models.ReleaseStatus(raw)
	result.PreviousStatus = status
	result.Status = status

	if !status.CanTransitionTo(models.ReleaseStatusLive) {
		uc.log.Debug("release status already set", "status", status.String())
		return result, nil
	}

	if !uc.cfg.Yes && !uc.cfg.NonInteractive && uc.confirmer != nil {
		ok, err := uc.confirmer.Confirm(fmt.Sprintf("Set release status of %s on %s to Live", deployment.Address.Hex(), network))
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Skipped = true
			result.SkipReason = "cancelled"
			return result, nil
		}
	}

	deployer, err := uc.accounts.NamedAccount(DeployerAccount)
	if err != nil {
		return nil, err
	}

	uc.log.Info("Setting release status to live")
	receipt, err := fundDeployer.Connect(deployer).Transact(ctx, "setReleaseStatus", uint8(models.ReleaseStatusLive))
	if err != nil {
		return nil, err
	}

	result.Receipt = receipt
	result.Status = models.ReleaseStatusLive
	return result, nil
}
