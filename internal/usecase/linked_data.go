package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// LinkedData stores arbitrary JSON configuration as a deployment record with a
// zero address and an empty ABI, next to the contract deployments.
type LinkedData struct {
	cfg   *config.RuntimeConfig
	store DeploymentStore
}

// NewLinkedData creates a new linked data store
func NewLinkedData(cfg *config.RuntimeConfig, store DeploymentStore) *LinkedData {
	return &LinkedData{cfg: cfg, store: store}
}

// Save persists v under name, replacing any previous linked data record
func (l *LinkedData) Save(ctx context.Context, name string, v any) error {
	network, err := activeNetwork(l.cfg)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal linked data for %s: %w", name, err)
	}

	record := &models.Deployment{
		Name:       name,
		ABI:        json.RawMessage("[]"),
		LinkedData: data,
		CreatedAt:  time.Now().UTC(),
	}
	if dir := record.Dir(); dir != "" {
		if err := l.store.EnsureDir(ctx, network, dir); err != nil {
			return err
		}
	}
	return l.store.SaveDeployment(ctx, network, record)
}

// LoadRaw returns the linked JSON saved under name
func (l *LinkedData) LoadRaw(ctx context.Context, name string) (json.RawMessage, error) {
	network, err := activeNetwork(l.cfg)
	if err != nil {
		return nil, err
	}

	record, err := l.store.GetDeployment(ctx, network, name)
	if err != nil {
		return nil, err
	}
	if len(record.LinkedData) == 0 {
		return nil, fmt.Errorf("deployment %s has no linked data", name)
	}
	return record.LinkedData, nil
}

// Load decodes the linked data saved under name into out
func (l *LinkedData) Load(ctx context.Context, name string, out any) error {
	data, err := l.LoadRaw(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode linked data of %s: %w", name, err)
	}
	return nil
}

// Has reports whether any deployment record exists under name
func (l *LinkedData) Has(ctx context.Context, name string) (bool, error) {
	network, err := activeNetwork(l.cfg)
	if err != nil {
		return false, err
	}

	has, err := l.store.HasDeployment(ctx, network, name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	return has, nil
}
