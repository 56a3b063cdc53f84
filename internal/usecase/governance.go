package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// Governance opens sessions against the deployed Governance contract
type Governance struct {
	chain    ChainClient
	registry *DeploymentRegistry
	accounts AccountResolver
	log      *slog.Logger
}

// NewGovernance creates a new governance use case
func NewGovernance(chain ChainClient, registry *DeploymentRegistry, accounts AccountResolver, log *slog.Logger) *Governance {
	return &Governance{chain: chain, registry: registry, accounts: accounts, log: log}
}

// GovernanceParams selects the governance contract and the sender
type GovernanceParams struct {
	// Address defaults to the "Governance" deployment
	Address common.Address
	// From defaults to the deployer named account
	From common.Address
}

// Session binds the governance contract for a sequence of calls
func (uc *Governance) Session(ctx context.Context, params GovernanceParams) (*GovernanceSession, error) {
	address := params.Address
	if address == (common.Address{}) {
		deployment, err := uc.registry.Get(ctx, contracts.Governance)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", contracts.Governance, err)
		}
		address = deployment.Address
	}

	from := params.From
	if from == (common.Address{}) {
		deployer, err := uc.accounts.NamedAccount(DeployerAccount)
		if err != nil {
			return nil, err
		}
		from = deployer
	}

	return NewGovernanceSession(uc.chain, address, from, uc.log)
}

// GovernanceSession runs governance actions from one account. Actions are
// proposed against the governance contract itself, then confirmed and triggered.
type GovernanceSession struct {
	backend    contracts.Backend
	governance *contracts.Contract
	log        *slog.Logger
}

// NewGovernanceSession binds a governance contract at address
func NewGovernanceSession(backend contracts.Backend, address, from common.Address, log *slog.Logger) (*GovernanceSession, error) {
	governance, err := contracts.Bind(contracts.Governance, address, backend)
	if err != nil {
		return nil, err
	}
	return &GovernanceSession{
		backend:    backend,
		governance: governance.Connect(from),
		log:        log,
	}, nil
}

// Address returns the governance contract address
func (s *GovernanceSession) Address() common.Address {
	return s.governance.Address
}

// Propose submits an action calling dest with calldata and value
func (s *GovernanceSession) Propose(ctx context.Context, dest common.Address, calldata []byte, value *big.Int) (*domain.Receipt, error) {
	if value == nil {
		value = new(big.Int)
	}
	return s.governance.Transact(ctx, "propose", dest, calldata, value)
}

// ActionCount returns the number of proposed actions, which is also the id of the latest one
func (s *GovernanceSession) ActionCount(ctx context.Context) (*big.Int, error) {
	return contracts.CallAs[*big.Int](ctx, s.governance, "actionCount")
}

// Confirm confirms action id from the session account
func (s *GovernanceSession) Confirm(ctx context.Context, id *big.Int) (*domain.Receipt, error) {
	return s.governance.Transact(ctx, "confirm", id)
}

// Trigger executes a confirmed action
func (s *GovernanceSession) Trigger(ctx context.Context, id *big.Int) (*domain.Receipt, error) {
	return s.governance.Transact(ctx, "trigger", id)
}

// ActivateVersion adds version to governance through a proposal
func (s *GovernanceSession) ActivateVersion(ctx context.Context, version common.Address) (*big.Int, error) {
	calldata, err := s.governance.Pack("addVersion", version)
	if err != nil {
		return nil, err
	}
	s.log.Info("activating version", "version", version.Hex())
	return s.execute(ctx, calldata)
}

// ShutDownVersion shuts down the version with the given id through a proposal
func (s *GovernanceSession) ShutDownVersion(ctx context.Context, id *big.Int) (*big.Int, error) {
	calldata, err := s.governance.Pack("shutDownVersion", id)
	if err != nil {
		return nil, err
	}
	s.log.Info("shutting down version", "id", id.String())
	return s.execute(ctx, calldata)
}

// execute proposes, confirms and triggers calldata on governance itself and
// returns the action id
func (s *GovernanceSession) execute(ctx context.Context, calldata []byte) (*big.Int, error) {
	if _, err := s.Propose(ctx, s.governance.Address, calldata, nil); err != nil {
		return nil, err
	}
	id, err := s.ActionCount(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Confirm(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.Trigger(ctx, id); err != nil {
		return nil, err
	}
	s.log.Debug("governance action executed", "id", id.String())
	return id, nil
}

// VersionsLength returns the number of versions ever added
func (s *GovernanceSession) VersionsLength(ctx context.Context) (*big.Int, error) {
	return contracts.CallAs[*big.Int](ctx, s.governance, "getVersionsLength")
}

// VersionByID returns a version entry
func (s *GovernanceSession) VersionByID(ctx context.Context, id *big.Int) (*models.VersionInfo, error) {
	var out struct {
		Version        common.Address
		Active         bool
		ActivationTime *big.Int
	}
	if err := s.governance.CallInto(ctx, &out, "getVersionById", id); err != nil {
		return nil, err
	}
	return &models.VersionInfo{
		ID:             id.Uint64(),
		Address:        out.Version,
		Active:         out.Active,
		ActivationTime: out.ActivationTime,
	}, nil
}

// Versions lists every version entry
func (s *GovernanceSession) Versions(ctx context.Context) ([]*models.VersionInfo, error) {
	length, err := s.VersionsLength(ctx)
	if err != nil {
		return nil, err
	}

	versions := make([]*models.VersionInfo, 0, length.Int64())
	for i := int64(0); i < length.Int64(); i++ {
		v, err := s.VersionByID(ctx, big.NewInt(i))
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// IsActive reports the governance active flag of version id
func (s *GovernanceSession) IsActive(ctx context.Context, id *big.Int) (bool, error) {
	return contracts.CallAs[bool](ctx, s.governance, "isActive", id)
}

// IsShutDown reports whether the version contract itself is shut down
func (s *GovernanceSession) IsShutDown(ctx context.Context, version common.Address) (bool, error) {
	v, err := contracts.Bind(contracts.Version, version, s.backend)
	if err != nil {
		return false, err
	}
	return contracts.CallAs[bool](ctx, v, "isShutDown")
}
