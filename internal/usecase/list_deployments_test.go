package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

func seedDeployments(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	records := []*models.Deployment{
		{Name: "mocks/MockToken (WETH)", Address: common.HexToAddress("0x01"), Contract: "MockToken"},
		{Name: "mocks/MockToken (MLN)", Address: common.HexToAddress("0x02"), Contract: "MockToken"},
		{Name: "FundDeployer", Address: common.HexToAddress("0x03"), Contract: "FundDeployer"},
		{Name: "Config", ABI: json.RawMessage("[]"), LinkedData: json.RawMessage(`{"network":"kovan"}`)},
	}
	for _, r := range records {
		require.NoError(t, env.store.SaveDeployment(ctx, "kovan", r))
	}
}

func TestListDeployments(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		params   usecase.ListDeploymentsParams
		expected []string
	}{
		{
			name:     "all sorted by name",
			expected: []string{"Config", "FundDeployer", "mocks/MockToken (MLN)", "mocks/MockToken (WETH)"},
		},
		{
			name:     "by prefix",
			params:   usecase.ListDeploymentsParams{Prefix: "mocks/"},
			expected: []string{"mocks/MockToken (MLN)", "mocks/MockToken (WETH)"},
		},
		{
			name:     "by contract",
			params:   usecase.ListDeploymentsParams{Contract: "FundDeployer"},
			expected: []string{"FundDeployer"},
		},
		{
			name:     "linked data only",
			params:   usecase.ListDeploymentsParams{LinkedOnly: true},
			expected: []string{"Config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "kovan")
			seedDeployments(t, env)
			sink := &MockProgressSink{}

			result, err := usecase.NewListDeployments(env.cfg, env.store, sink).Run(ctx, tt.params)
			require.NoError(t, err)

			names := make([]string, 0, len(result.Deployments))
			for _, d := range result.Deployments {
				names = append(names, d.Name)
			}
			assert.Equal(t, tt.expected, names)
			assert.Equal(t, "kovan", result.Network)
			assert.NotEmpty(t, sink.events)
		})
	}

	t.Run("summary", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		seedDeployments(t, env)

		result, err := usecase.NewListDeployments(env.cfg, env.store, nil).Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.Mocks)
		assert.Equal(t, 1, result.Summary.LinkedData)
		assert.Equal(t, 2, result.Summary.ByContract["MockToken"])
	})
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		seedDeployments(t, env)

		d, err := usecase.NewShowDeployment(env.cfg, env.store).Run(ctx, "FundDeployer")
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x03"), d.Address)
	})

	t.Run("suggests close names", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		seedDeployments(t, env)

		_, err := usecase.NewShowDeployment(env.cfg, env.store).Run(ctx, "WETH")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var notFound domain.DeploymentNotFoundErr
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, []string{"mocks/MockToken (WETH)"}, notFound.Suggestions)
	})

	t.Run("no suggestions", func(t *testing.T) {
		env := newTestEnv(t, "kovan")

		_, err := usecase.NewShowDeployment(env.cfg, env.store).Run(ctx, "Anything")
		var notFound domain.DeploymentNotFoundErr
		require.ErrorAs(t, err, &notFound)
		assert.Empty(t, notFound.Suggestions)
	})
}
