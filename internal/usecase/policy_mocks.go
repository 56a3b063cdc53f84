package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/pkg/encoding"
	"golang.org/x/sync/errgroup"
)

// BootstrapMockPolicies deploys one stubbed IPolicy mock per hook and
// registers all of them on a policy manager.
type BootstrapMockPolicies struct {
	chain     ChainClient
	artifacts ArtifactRepository
	accounts  AccountResolver
	log       *slog.Logger
}

// NewBootstrapMockPolicies creates a new mock policy bootstrap use case
func NewBootstrapMockPolicies(
	chain ChainClient,
	artifacts ArtifactRepository,
	accounts AccountResolver,
	log *slog.Logger,
) *BootstrapMockPolicies {
	return &BootstrapMockPolicies{
		chain:     chain,
		artifacts: artifacts,
		accounts:  accounts,
		log:       log,
	}
}

// BootstrapMockPoliciesParams contains parameters for the bootstrap
type BootstrapMockPoliciesParams struct {
	PolicyManager common.Address
	// From defaults to the deployer named account
	From common.Address
}

// MockPolicies are the registered mocks keyed by the hook they implement
type MockPolicies map[models.PolicyHook]*contracts.Contract

// Addresses returns the mock addresses in hook order
func (m MockPolicies) Addresses() []common.Address {
	out := make([]common.Address, 0, len(m))
	for _, hook := range models.PolicyHooks {
		if policy, ok := m[hook]; ok {
			out = append(out, policy.Address)
		}
	}
	return out
}

// Execute deploys and stubs the mocks, then registers them in a single call
func (uc *BootstrapMockPolicies) Execute(ctx context.Context, params BootstrapMockPoliciesParams) (MockPolicies, error) {
	from, err := uc.sender(params.From)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, contracts.Doppelganger)
	if err != nil {
		return nil, fmt.Errorf("failed to load mock artifact: %w", err)
	}
	policyABI, err := contracts.ABI(contracts.IPolicy)
	if err != nil {
		return nil, err
	}
	mockABI, err := contracts.ABI(contracts.Doppelganger)
	if err != nil {
		return nil, err
	}

	mocks := make(MockPolicies, len(models.PolicyHooks))
	for _, hook := range models.PolicyHooks {
		result, err := uc.chain.Deploy(ctx, domain.DeployRequest{From: from, Artifact: artifact})
		if err != nil {
			return nil, fmt.Errorf("failed to deploy mock policy for %s: %w", hook, err)
		}
		mocks[hook] = contracts.NewContract(contracts.IPolicy, policyABI, result.Address, uc.chain).Connect(from)
		uc.log.Debug("deployed mock policy", "hook", hook.String(), "address", result.Address.Hex())
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, hook := range models.PolicyHooks {
		stub := contracts.NewContract(contracts.Doppelganger, mockABI, mocks[hook].Address, uc.chain).Connect(from)
		g.Go(func() error {
			if err := stubPolicy(gctx, stub, policyABI, hook); err != nil {
				return fmt.Errorf("failed to stub mock policy for %s: %w", hook, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	policyManager, err := contracts.Bind(contracts.PolicyManager, params.PolicyManager, uc.chain)
	if err != nil {
		return nil, err
	}
	if _, err := policyManager.Connect(from).Transact(ctx, "registerPolicies", mocks.Addresses()); err != nil {
		return nil, err
	}

	uc.log.Info("registered mock policies", "policyManager", params.PolicyManager.Hex(), "count", len(mocks))
	return mocks, nil
}

func (uc *BootstrapMockPolicies) sender(from common.Address) (common.Address, error) {
	if from != (common.Address{}) {
		return from, nil
	}
	return uc.accounts.NamedAccount(DeployerAccount)
}

// stubPolicy makes every IPolicy method of the mock return a fixed value
func stubPolicy(ctx context.Context, mock *contracts.Contract, policyABI *abi.ABI, hook models.PolicyHook) error {
	stubs := []struct {
		method string
		values []any
	}{
		{"identifier", []any{hook.MockIdentifier()}},
		{"addFundSettings", nil},
		{"activateForFund", nil},
		{"validateRule", []any{true}},
		{"implementedHooks", []any{[]uint8{uint8(hook)}}},
	}

	for _, s := range stubs {
		method, ok := policyABI.Methods[s.method]
		if !ok {
			return fmt.Errorf("IPolicy has no method %s", s.method)
		}
		ret, err := method.Outputs.Pack(s.values...)
		if err != nil {
			return fmt.Errorf("failed to encode %s return: %w", s.method, err)
		}
		if _, err := mock.Transact(ctx, "__doppelganger__mockReturns", method.ID, ret); err != nil {
			return err
		}
	}
	return nil
}

// PolicyManagerConfigWithMockPolicies bootstraps the mock policies and encodes
// them as a policy manager config with placeholder settings.
func PolicyManagerConfigWithMockPolicies(ctx context.Context, bootstrap *BootstrapMockPolicies, params BootstrapMockPoliciesParams) ([]byte, MockPolicies, error) {
	mocks, err := bootstrap.Execute(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	settings := [][]byte{
		encoding.RandomBytes(10),
		encoding.HashZero.Bytes(),
		encoding.HashZero.Bytes(),
		encoding.RandomBytes(2),
	}
	data, err := encoding.PolicyManagerConfigArgs(mocks.Addresses(), settings)
	if err != nil {
		return nil, nil, err
	}
	return data, mocks, nil
}
