package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// Step names and tags of the built-in deploy steps
const (
	MocksStep    = "Mocks"
	MocksTag     = "mocks"
	FinalizeStep = "Finalize"
	FinalizeTag  = "finalize"
)

// RunDeploy runs the deploy pipeline: mocks from the manifest, the contract
// steps configured in fundops.toml, then release finalization.
type RunDeploy struct {
	cfg         *config.RuntimeConfig
	registry    *DeploymentRegistry
	artifacts   ArtifactRepository
	accounts    AccountResolver
	deployMocks *DeployMocks
	finalize    *FinalizeRelease
	progress    ProgressSink
	log         *slog.Logger
}

// NewRunDeploy creates a new deploy pipeline use case
func NewRunDeploy(
	cfg *config.RuntimeConfig,
	registry *DeploymentRegistry,
	artifacts ArtifactRepository,
	accounts AccountResolver,
	deployMocks *DeployMocks,
	finalize *FinalizeRelease,
	progress ProgressSink,
	log *slog.Logger,
) *RunDeploy {
	if progress == nil {
		progress = NopProgress{}
	}
	return &RunDeploy{
		cfg:         cfg,
		registry:    registry,
		artifacts:   artifacts,
		accounts:    accounts,
		deployMocks: deployMocks,
		finalize:    finalize,
		progress:    progress,
		log:         log,
	}
}

// RunDeployParams contains parameters for a deploy run
type RunDeployParams struct {
	Tags []string
	// Manifest is nil when the project has no mocks manifest
	Manifest *domain.MocksManifest
}

// StepResult is the outcome of one pipeline step
type StepResult struct {
	Name        string
	Deployments []*models.Deployment
	Finalize    *FinalizeResult
}

// RunDeployResult contains the results of every executed step
type RunDeployResult struct {
	Network string
	Steps   []*StepResult
}

// Execute plans and runs the pipeline, stopping at the first failing step
func (uc *RunDeploy) Execute(ctx context.Context, params RunDeployParams) (*RunDeployResult, error) {
	network, err := activeNetwork(uc.cfg)
	if err != nil {
		return nil, err
	}

	result := &RunDeployResult{Network: network}
	steps := uc.buildSteps(params, result)

	plan, err := PlanSteps(steps, params.Tags)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("deploy plan", "network", network, "steps", len(plan))

	for i, step := range plan {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   step.Name,
			Current: i + 1,
			Total:   len(plan),
			Message: fmt.Sprintf("Running %s", step.Name),
			Spinner: true,
		})
		if err := step.Run(ctx); err != nil {
			return result, fmt.Errorf("step %s failed: %w", step.Name, err)
		}
	}

	return result, nil
}

func (uc *RunDeploy) buildSteps(params RunDeployParams, result *RunDeployResult) []*Step {
	var steps []*Step

	if params.Manifest != nil {
		steps = append(steps, &Step{
			Name: MocksStep,
			Tags: []string{MocksTag},
			Run: func(ctx context.Context) error {
				res, err := uc.deployMocks.Execute(ctx, params.Manifest)
				if err != nil {
					return err
				}
				result.Steps = append(result.Steps, &StepResult{Name: MocksStep, Deployments: res.Deployments})
				return nil
			},
		})
	}

	if uc.cfg.Project != nil {
		for _, c := range uc.cfg.Project.Deploy.Contracts {
			steps = append(steps, &Step{
				Name:         c.Name,
				Tags:         c.Tags,
				Dependencies: c.Deps,
				Run: func(ctx context.Context) error {
					d, err := uc.deployContract(ctx, c)
					if err != nil {
						return err
					}
					result.Steps = append(result.Steps, &StepResult{Name: c.Name, Deployments: []*models.Deployment{d}})
					return nil
				},
			})
		}
	}

	steps = append(steps, &Step{
		Name:         FinalizeStep,
		Tags:         []string{FinalizeTag},
		Dependencies: []string{contracts.FundDeployer},
		RunAtTheEnd:  true,
		Run: func(ctx context.Context) error {
			res, err := uc.finalize.Execute(ctx)
			if err != nil {
				return err
			}
			result.Steps = append(result.Steps, &StepResult{Name: FinalizeStep, Finalize: res})
			return nil
		},
	})

	return steps
}

func (uc *RunDeploy) deployContract(ctx context.Context, step config.ContractStepConfig) (*models.Deployment, error) {
	contract := step.Contract
	if contract == "" {
		contract = step.Name
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, contract)
	if err != nil {
		return nil, err
	}
	parsed, err := artifact.ParsedABI()
	if err != nil {
		return nil, err
	}

	args, err := ConvertArgs(parsed.Constructor.Inputs, step.Args, func(name string) (common.Address, error) {
		d, err := uc.registry.Get(ctx, name)
		if err != nil {
			return common.Address{}, err
		}
		return d.Address, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid args for %s: %w", step.Name, err)
	}

	var from common.Address
	if step.From != "" {
		from, err = uc.accounts.NamedAccount(step.From)
		if err != nil {
			return nil, err
		}
	}

	return uc.registry.DeployIfMissing(ctx, step.Name, DeployOptions{
		Contract: contract,
		Args:     args,
		From:     from,
	})
}
