package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/testutil/chainfake"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

func TestDeployMock(t *testing.T) {
	ctx := context.Background()

	t.Run("second deploy reuses the record", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		uc := usecase.NewDeployMock(env.registry)
		params := usecase.DeployMockParams{
			Contract: contracts.MockToken,
			Name:     "WETH",
			Args:     []any{"Wrapped Ether", "WETH", uint8(18)},
		}

		first, err := uc.Execute(ctx, params)
		require.NoError(t, err)
		assert.True(t, first.NewlyDeployed)
		assert.Equal(t, "mocks/MockToken (WETH)", first.Name)
		assert.Equal(t, deployer.Hex(), first.Deployer)
		assert.NotEmpty(t, first.Args)

		second, err := uc.Execute(ctx, params)
		require.NoError(t, err)
		assert.False(t, second.NewlyDeployed)
		assert.Equal(t, first.Address, second.Address)

		assert.Len(t, env.chain.Deployments(), 1)
		assert.True(t, env.store.dirs["kovan/mocks"])
		assert.Equal(t, uint64(chainfake.DefaultChainID), env.store.chainIDs["kovan"])
	})

	t.Run("names without label", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		uc := usecase.NewDeployMock(env.registry)

		d, err := uc.Execute(ctx, usecase.DeployMockParams{Contract: contracts.Doppelganger})
		require.NoError(t, err)
		assert.Equal(t, "mocks/Doppelganger", d.Name)
	})

	t.Run("distinct names deploy distinct contracts", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		uc := usecase.NewDeployMock(env.registry)

		a, err := uc.Execute(ctx, usecase.DeployMockParams{
			Contract: contracts.MockToken,
			Name:     "DAI",
			Args:     []any{"Dai", "DAI", uint8(18)},
		})
		require.NoError(t, err)
		b, err := uc.Execute(ctx, usecase.DeployMockParams{
			Contract: contracts.MockToken,
			Name:     "USDC",
			Args:     []any{"USD Coin", "USDC", uint8(6)},
		})
		require.NoError(t, err)
		assert.NotEqual(t, a.Address, b.Address)
	})

	t.Run("explicit sender", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		uc := usecase.NewDeployMock(env.registry)

		d, err := uc.Execute(ctx, usecase.DeployMockParams{
			Contract: contracts.Doppelganger,
			From:     manager,
		})
		require.NoError(t, err)
		assert.Equal(t, manager.Hex(), d.Deployer)
	})

	t.Run("records are per network", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		uc := usecase.NewDeployMock(env.registry)
		params := usecase.DeployMockParams{Contract: contracts.Doppelganger}

		_, err := uc.Execute(ctx, params)
		require.NoError(t, err)

		env.cfg.Network = &config.Network{Name: "mainnet"}
		d, err := uc.Execute(ctx, params)
		require.NoError(t, err)
		assert.True(t, d.NewlyDeployed)
	})

	t.Run("no network selected", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		env.cfg.Network = nil
		uc := usecase.NewDeployMock(env.registry)

		_, err := uc.Execute(ctx, usecase.DeployMockParams{Contract: contracts.Doppelganger})
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
	})

	t.Run("unknown deployer account", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		delete(env.accounts, usecase.DeployerAccount)
		uc := usecase.NewDeployMock(env.registry)

		_, err := uc.Execute(ctx, usecase.DeployMockParams{Contract: contracts.Doppelganger})
		assert.ErrorIs(t, err, domain.ErrUnknownAccount)
		assert.Empty(t, env.chain.Deployments())
	})

	t.Run("concurrent deploys of one name create one contract", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		uc := usecase.NewDeployMock(env.registry)

		var wg sync.WaitGroup
		addresses := make([]common.Address, 8)
		for i := range addresses {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d, err := uc.Execute(ctx, usecase.DeployMockParams{Contract: contracts.Doppelganger, Name: "shared"})
				if assert.NoError(t, err) {
					addresses[i] = d.Address
				}
			}()
		}
		wg.Wait()

		assert.Len(t, env.chain.Deployments(), 1)
		for _, addr := range addresses {
			assert.Equal(t, addresses[0], addr)
		}
	})
}
