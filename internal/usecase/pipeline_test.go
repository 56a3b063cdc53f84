package usecase_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

func step(name string, deps []string, tags ...string) *usecase.Step {
	return &usecase.Step{
		Name:         name,
		Tags:         tags,
		Dependencies: deps,
		Run:          func(context.Context) error { return nil },
	}
}

func stepNames(steps []*usecase.Step) []string {
	return lo.Map(steps, func(s *usecase.Step, _ int) string { return s.Name })
}

func TestPlanSteps(t *testing.T) {
	tests := []struct {
		name     string
		steps    func() []*usecase.Step
		tags     []string
		expected []string
		err      error
	}{
		{
			name: "declaration order without dependencies",
			steps: func() []*usecase.Step {
				return []*usecase.Step{step("A", nil), step("B", nil), step("C", nil)}
			},
			expected: []string{"A", "B", "C"},
		},
		{
			name: "dependencies run first",
			steps: func() []*usecase.Step {
				return []*usecase.Step{
					step("FundDeployer", []string{"Dispatcher"}),
					step("Dispatcher", nil),
					step("PolicyManager", []string{"FundDeployer"}),
				}
			},
			expected: []string{"Dispatcher", "FundDeployer", "PolicyManager"},
		},
		{
			name: "dependencies by tag",
			steps: func() []*usecase.Step {
				return []*usecase.Step{
					step("Fund", []string{"mocks"}),
					step("Tokens", nil, "mocks"),
					step("Pairs", nil, "mocks"),
				}
			},
			expected: []string{"Tokens", "Pairs", "Fund"},
		},
		{
			name: "run at the end goes last",
			steps: func() []*usecase.Step {
				finalize := step("Finalize", []string{"FundDeployer"})
				finalize.RunAtTheEnd = true
				return []*usecase.Step{
					finalize,
					step("FundDeployer", nil),
					step("Other", nil),
				}
			},
			expected: []string{"FundDeployer", "Other", "Finalize"},
		},
		{
			name: "tags select steps and their dependencies",
			steps: func() []*usecase.Step {
				return []*usecase.Step{
					step("Dispatcher", nil, "core"),
					step("FundDeployer", []string{"Dispatcher"}, "release"),
					step("Unrelated", nil, "extra"),
				}
			},
			tags:     []string{"release"},
			expected: []string{"Dispatcher", "FundDeployer"},
		},
		{
			name: "unknown dependencies are ignored",
			steps: func() []*usecase.Step {
				return []*usecase.Step{step("Finalize", []string{"FundDeployer"})}
			},
			expected: []string{"Finalize"},
		},
		{
			name: "cycle",
			steps: func() []*usecase.Step {
				return []*usecase.Step{step("A", []string{"B"}), step("B", []string{"A"})}
			},
			err: domain.ErrCyclicDependency,
		},
		{
			name: "self dependency",
			steps: func() []*usecase.Step {
				return []*usecase.Step{step("A", []string{"A"})}
			},
			err: domain.ErrCyclicDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := usecase.PlanSteps(tt.steps(), tt.tags)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stepNames(plan))
		})
	}
}

func TestPlanStepsRejectsDependencyOnEndStep(t *testing.T) {
	end := step("Finalize", nil)
	end.RunAtTheEnd = true

	_, err := usecase.PlanSteps([]*usecase.Step{end, step("After", []string{"Finalize"})}, nil)
	assert.ErrorContains(t, err, "runs at the end")
}

func TestPlanStepsDuplicateName(t *testing.T) {
	_, err := usecase.PlanSteps([]*usecase.Step{step("A", nil), step("A", nil)}, nil)
	assert.ErrorContains(t, err, "duplicate step")
}
