package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Prefix     string
	Contract   string
	LinkedOnly bool
}

// DeploymentListResult contains the listed records and per-kind counts
type DeploymentListResult struct {
	Network     string
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary counts the listed records by kind
type DeploymentSummary struct {
	Total      int
	Mocks      int
	LinkedData int
	ByContract map[string]int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentStore, sink ProgressSink) *ListDeployments {
	if sink == nil {
		sink = NopProgress{}
	}
	return &ListDeployments{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run lists the records of the active network sorted by name
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	network, err := activeNetwork(uc.config)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	deployments, err := uc.store.ListDeployments(ctx, network, domain.DeploymentFilter{
		Prefix:     params.Prefix,
		Contract:   params.Contract,
		LinkedOnly: params.LinkedOnly,
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(deployments, func(i, j int) bool {
		return deployments[i].Name < deployments[j].Name
	})

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Network:     network,
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:      len(deployments),
		ByContract: make(map[string]int),
	}

	for _, dep := range deployments {
		if dep.IsMock() {
			summary.Mocks++
		}
		if dep.IsLinkedData() {
			summary.LinkedData++
		}
		if dep.Contract != "" {
			summary.ByContract[dep.Contract]++
		}
	}

	return summary
}
