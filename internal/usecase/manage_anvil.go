package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/fundops/internal/domain"
)

// Node operations
const (
	NodeStart   = "start"
	NodeStop    = "stop"
	NodeRestart = "restart"
	NodeStatus  = "status"
)

// ManageAnvil handles local anvil node operations
type ManageAnvil struct {
	anvilManager AnvilManager
	progress     ProgressSink
}

// NewManageAnvil creates a new anvil management use case
func NewManageAnvil(anvilManager AnvilManager, progress ProgressSink) *ManageAnvil {
	if progress == nil {
		progress = NopProgress{}
	}
	return &ManageAnvil{
		anvilManager: anvilManager,
		progress:     progress,
	}
}

// ManageAnvilParams contains parameters for anvil operations
type ManageAnvilParams struct {
	Operation string
	Name      string
	// Port 0 picks a free port on start
	Port     int
	ChainID  uint64
	Mnemonic string
}

// ManageAnvilResult contains the result of anvil operations
type ManageAnvilResult struct {
	Operation string
	Instance  *domain.AnvilInstance
	Status    *domain.AnvilStatus
	Message   string
}

// Execute performs the anvil management operation
func (m *ManageAnvil) Execute(ctx context.Context, params ManageAnvilParams) (*ManageAnvilResult, error) {
	instance := &domain.AnvilInstance{
		Name:     params.Name,
		Port:     params.Port,
		ChainID:  params.ChainID,
		Mnemonic: params.Mnemonic,
	}

	switch params.Operation {
	case NodeStart:
		return m.start(ctx, instance)
	case NodeStop:
		return m.stop(ctx, instance)
	case NodeRestart:
		if _, err := m.stop(ctx, instance); err != nil {
			return nil, err
		}
		return m.start(ctx, instance)
	case NodeStatus:
		return m.status(ctx, instance)
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

func (m *ManageAnvil) start(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		return nil, fmt.Errorf("anvil '%s' is already running (PID %d): %w", instance.Name, status.PID, domain.ErrAlreadyExists)
	}

	m.progress.Info(fmt.Sprintf("Starting local anvil node '%s'...", instance.Name))
	if err := m.anvilManager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	status, err = m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageAnvilResult{
		Operation: NodeStart,
		Instance:  instance,
		Status:    status,
		Message:   fmt.Sprintf("Anvil '%s' started with PID %d at %s", instance.Name, status.PID, status.RPCURL),
	}, nil
}

func (m *ManageAnvil) stop(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil || !status.Running {
		return &ManageAnvilResult{
			Operation: NodeStop,
			Instance:  instance,
			Message:   fmt.Sprintf("Anvil '%s' is not running", instance.Name),
		}, nil
	}

	m.progress.Info(fmt.Sprintf("Stopping anvil '%s'...", instance.Name))
	if err := m.anvilManager.Stop(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to stop anvil: %w", err)
	}

	return &ManageAnvilResult{
		Operation: NodeStop,
		Instance:  instance,
		Message:   fmt.Sprintf("Anvil '%s' stopped", instance.Name),
	}, nil
}

func (m *ManageAnvil) status(ctx context.Context, instance *domain.AnvilInstance) (*ManageAnvilResult, error) {
	status, err := m.anvilManager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return &ManageAnvilResult{
		Operation: NodeStatus,
		Instance:  instance,
		Status:    status,
	}, nil
}
