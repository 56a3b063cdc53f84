package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/testutil/chainfake"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

var (
	deployer = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	manager  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	stranger = common.HexToAddress("0x00000000000000000000000000000000000000b1")
)

// memStore is an in-memory DeploymentStore
type memStore struct {
	mu      sync.Mutex
	records  map[string]map[string]*models.Deployment
	dirs     map[string]bool
	chainIDs map[string]uint64
}

func newMemStore() *memStore {
	return &memStore{
		records:  make(map[string]map[string]*models.Deployment),
		dirs:     make(map[string]bool),
		chainIDs: make(map[string]uint64),
	}
}

func (s *memStore) GetDeployment(_ context.Context, network, name string) (*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.records[network][name]
	if !ok {
		return nil, fmt.Errorf("deployment %s on %s: %w", name, network, domain.ErrNotFound)
	}
	clone := *d
	return &clone, nil
}

func (s *memStore) HasDeployment(_ context.Context, network, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[network][name]
	return ok, nil
}

func (s *memStore) SaveDeployment(_ context.Context, network string, d *models.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[network] == nil {
		s.records[network] = make(map[string]*models.Deployment)
	}
	clone := *d
	clone.NewlyDeployed = false
	s.records[network][d.Name] = &clone
	return nil
}

func (s *memStore) ListDeployments(_ context.Context, network string, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Deployment
	for _, d := range s.records[network] {
		if filter.Prefix != "" && !strings.HasPrefix(d.Name, filter.Prefix) {
			continue
		}
		if filter.Contract != "" && d.Contract != filter.Contract {
			continue
		}
		if filter.LinkedOnly && len(d.LinkedData) == 0 {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memStore) EnsureDir(_ context.Context, network, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs[path.Join(network, dir)] = true
	return nil
}

func (s *memStore) WriteChainID(network string, chainID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainIDs[network] = chainID
	return nil
}

// embeddedArtifacts serves the embedded ABIs as artifacts for the chain double
type embeddedArtifacts struct{}

func (embeddedArtifacts) GetArtifact(_ context.Context, contract string) (*models.Artifact, error) {
	return contracts.InterfaceArtifact(contract)
}

// staticAccounts resolves a fixed set of named accounts
type staticAccounts map[string]common.Address

func (a staticAccounts) NamedAccount(name string) (common.Address, error) {
	addr, ok := a[name]
	if !ok {
		return common.Address{}, fmt.Errorf("%s: %w", name, domain.ErrUnknownAccount)
	}
	return addr, nil
}

func (a staticAccounts) AccountNames() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(prompt string) (bool, error) {
	args := m.Called(prompt)
	return args.Bool(0), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
}

func (m *MockProgressSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(string) {}

// testEnv wires the use cases against the chain double and an in-memory store
type testEnv struct {
	chain    *chainfake.Chain
	store    *memStore
	cfg      *config.RuntimeConfig
	accounts staticAccounts
	log      *slog.Logger
	registry *usecase.DeploymentRegistry
}

func newTestEnv(t *testing.T, network string) *testEnv {
	t.Helper()

	env := &testEnv{
		chain: chainfake.New(),
		store: newMemStore(),
		cfg: &config.RuntimeConfig{
			Network:          &config.Network{Name: network, ChainID: chainfake.DefaultChainID},
			FinalizeNetworks: []string{"kovan"},
			NonInteractive:   true,
		},
		accounts: staticAccounts{usecase.DeployerAccount: deployer, "manager": manager},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	env.registry = usecase.NewDeploymentRegistry(env.cfg, env.store, embeddedArtifacts{}, env.chain, env.accounts, env.log)
	return env
}

// deploy creates a contract on the chain double and records it under name
func (e *testEnv) deploy(t *testing.T, name, contract string, args ...any) common.Address {
	t.Helper()
	d, err := e.registry.DeployIfMissing(context.Background(), name, usecase.DeployOptions{
		Contract: contract,
		Args:     args,
	})
	require.NoError(t, err)
	return d.Address
}
