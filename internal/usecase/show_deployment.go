package usecase

import (
	"context"
	"errors"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

const maxSuggestions = 3

// ShowDeployment is the use case for showing one deployment record
type ShowDeployment struct {
	config *config.RuntimeConfig
	store  DeploymentStore
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		store:  store,
	}
}

// Run returns the record saved under name. A missing name returns a
// DeploymentNotFoundErr with the closest known names.
func (uc *ShowDeployment) Run(ctx context.Context, name string) (*models.Deployment, error) {
	network, err := activeNetwork(uc.config)
	if err != nil {
		return nil, err
	}

	deployment, err := uc.store.GetDeployment(ctx, network, name)
	if err == nil {
		return deployment, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	all, listErr := uc.store.ListDeployments(ctx, network, domain.DeploymentFilter{})
	if listErr != nil {
		return nil, err
	}
	names := lo.Map(all, func(d *models.Deployment, _ int) string { return d.Name })

	return nil, domain.DeploymentNotFoundErr{
		Network:     network,
		Name:        name,
		Suggestions: suggestNames(name, names),
	}
}

func suggestNames(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}
