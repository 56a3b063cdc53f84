package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// DeployMocks deploys every mock listed in a manifest and saves the resulting
// addresses as linked data under "Config".
type DeployMocks struct {
	factories *MockFactories
	registry  *DeploymentRegistry
	linked    *LinkedData
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployMocks creates a new manifest deployment use case
func NewDeployMocks(
	factories *MockFactories,
	registry *DeploymentRegistry,
	linked *LinkedData,
	progress ProgressSink,
	log *slog.Logger,
) *DeployMocks {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeployMocks{
		factories: factories,
		registry:  registry,
		linked:    linked,
		progress:  progress,
		log:       log,
	}
}

// DeployMocksResult contains the deployed or reused mocks
type DeployMocksResult struct {
	Deployments []*models.Deployment
	Config      *domain.DeploymentConfig
}

// Newly counts the records deployed by this run
func (r *DeployMocksResult) Newly() int {
	count := 0
	for _, d := range r.Deployments {
		if d.NewlyDeployed {
			count++
		}
	}
	return count
}

// Execute deploys tokens and synths first, then cTokens over their underlying
// tokens, then pairs.
func (uc *DeployMocks) Execute(ctx context.Context, manifest *domain.MocksManifest) (*DeployMocksResult, error) {
	network, err := uc.registry.Network()
	if err != nil {
		return nil, err
	}

	cfg := &domain.DeploymentConfig{
		Network: network,
		Tokens:  map[string]common.Address{},
		Synths:  map[string]common.Address{},
		CTokens: map[string]common.Address{},
		Pairs:   map[string]common.Address{},
	}
	result := &DeployMocksResult{Config: cfg}

	total := len(manifest.Tokens) + len(manifest.Synths) + len(manifest.CTokens) + len(manifest.Pairs)
	step := 0
	track := func(label string, d *models.Deployment) {
		step++
		result.Deployments = append(result.Deployments, d)
		status := "reused"
		if d.NewlyDeployed {
			status = "deployed"
		}
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "mocks",
			Current: step,
			Total:   total,
			Message: fmt.Sprintf("%s %s", status, label),
		})
	}

	for _, token := range manifest.Tokens {
		d, err := uc.factories.DeployToken(ctx, token.Symbol, token.Name, token.Decimals)
		if err != nil {
			return nil, err
		}
		cfg.Tokens[token.Symbol] = d.Address
		track(d.Name, d)
	}

	for _, synth := range manifest.Synths {
		d, err := uc.factories.DeploySynthetixToken(ctx, synth.Symbol, synth.Name, synth.Decimals)
		if err != nil {
			return nil, err
		}
		cfg.Synths[synth.Symbol] = d.Address
		track(d.Name, d)
	}

	if len(manifest.CTokens) > 0 {
		if manifest.RateProvider == "" {
			return nil, fmt.Errorf("manifest lists ctokens but no rateProvider")
		}
		rateProvider, err := uc.resolve(ctx, cfg, manifest.RateProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve rate provider: %w", err)
		}

		for _, ctoken := range manifest.CTokens {
			primitive, err := uc.resolve(ctx, cfg, ctoken.Underlying)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve underlying of %s: %w", ctoken.Symbol, err)
			}
			d, err := uc.factories.DeployCompoundToken(ctx, CompoundTokenParams{
				Symbol:       ctoken.Symbol,
				Name:         ctoken.Name,
				Decimals:     ctoken.Decimals,
				Primitive:    primitive,
				RateProvider: rateProvider,
				Rate:         ctoken.Rate,
			})
			if err != nil {
				return nil, err
			}
			cfg.CTokens[ctoken.Symbol] = d.Address
			track(d.Name, d)
		}
	}

	for _, pair := range manifest.Pairs {
		a, err := uc.resolve(ctx, cfg, pair.TokenA)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tokenA of %s: %w", pair.Name, err)
		}
		b, err := uc.resolve(ctx, cfg, pair.TokenB)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tokenB of %s: %w", pair.Name, err)
		}
		d, err := uc.factories.DeployUniswapPair(ctx, pair.Name, a, b)
		if err != nil {
			return nil, err
		}
		cfg.Pairs[pair.Name] = d.Address
		track(d.Name, d)
	}

	if err := uc.linked.Save(ctx, domain.MockConfigName, cfg); err != nil {
		return nil, fmt.Errorf("failed to save mock config: %w", err)
	}
	uc.log.Debug("saved mock config", "tokens", len(cfg.Tokens), "ctokens", len(cfg.CTokens), "pairs", len(cfg.Pairs))

	return result, nil
}

// resolve maps a reference to an address. References are tried as a hex
// address, a token or synth symbol deployed in this run, then a deployment name.
func (uc *DeployMocks) resolve(ctx context.Context, cfg *domain.DeploymentConfig, ref string) (common.Address, error) {
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}
	if addr, ok := cfg.Tokens[ref]; ok {
		return addr, nil
	}
	if addr, ok := cfg.Synths[ref]; ok {
		return addr, nil
	}
	if addr, ok := cfg.CTokens[ref]; ok {
		return addr, nil
	}

	d, err := uc.registry.Get(ctx, ref)
	if err != nil {
		return common.Address{}, err
	}
	return d.Address, nil
}
