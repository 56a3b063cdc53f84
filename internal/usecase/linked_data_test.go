package usecase_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

func TestLinkedData(t *testing.T) {
	ctx := context.Background()

	t.Run("load returns what was saved", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		linked := usecase.NewLinkedData(env.cfg, env.store)

		saved := domain.DeploymentConfig{
			Network: "kovan",
			Tokens: map[string]common.Address{
				"WETH": common.HexToAddress("0x1111111111111111111111111111111111111111"),
				"MLN":  common.HexToAddress("0x2222222222222222222222222222222222222222"),
			},
			Pairs: map[string]common.Address{
				"WETH-MLN": common.HexToAddress("0x3333333333333333333333333333333333333333"),
			},
		}
		require.NoError(t, linked.Save(ctx, "Config", saved))

		var loaded domain.DeploymentConfig
		require.NoError(t, linked.Load(ctx, "Config", &loaded))
		if diff := cmp.Diff(saved, loaded); diff != "" {
			t.Errorf("loaded config mismatch (-saved +loaded):\n%s", diff)
		}

		record, err := env.store.GetDeployment(ctx, "kovan", "Config")
		require.NoError(t, err)
		assert.Equal(t, common.Address{}, record.Address)
		assert.JSONEq(t, "[]", string(record.ABI))
		assert.True(t, record.IsLinkedData())
	})

	t.Run("save overwrites", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		linked := usecase.NewLinkedData(env.cfg, env.store)

		require.NoError(t, linked.Save(ctx, "Settings", map[string]int{"a": 1}))
		require.NoError(t, linked.Save(ctx, "Settings", map[string]int{"a": 2}))

		raw, err := linked.LoadRaw(ctx, "Settings")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":2}`, string(raw))
	})

	t.Run("has", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		linked := usecase.NewLinkedData(env.cfg, env.store)

		has, err := linked.Has(ctx, "Config")
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, linked.Save(ctx, "Config", struct{}{}))
		has, err = linked.Has(ctx, "Config")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("missing record", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		linked := usecase.NewLinkedData(env.cfg, env.store)

		var out map[string]any
		err := linked.Load(ctx, "Missing", &out)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("contract record without linked data", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		env.deploy(t, "Token", "MockToken", "Token", "TKN", uint8(18))
		linked := usecase.NewLinkedData(env.cfg, env.store)

		_, err := linked.LoadRaw(ctx, "Token")
		assert.ErrorContains(t, err, "has no linked data")
	})
}
