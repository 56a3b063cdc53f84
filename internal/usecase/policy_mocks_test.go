package usecase_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/testutil/chainfake"
	"github.com/trebuchet-org/fundops/internal/usecase"
	"github.com/trebuchet-org/fundops/pkg/encoding"
)

func setupPolicyManager(t *testing.T, env *testEnv) (common.Address, *chainfake.PolicyManager) {
	t.Helper()
	addr := env.deploy(t, contracts.PolicyManager, contracts.PolicyManager)
	model, ok := env.chain.At(addr)
	require.True(t, ok)
	return addr, model.(*chainfake.PolicyManager)
}

func TestBootstrapMockPolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("registers one mock per hook", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		pmAddress, pm := setupPolicyManager(t, env)
		uc := usecase.NewBootstrapMockPolicies(env.chain, embeddedArtifacts{}, env.accounts, env.log)

		mocks, err := uc.Execute(ctx, usecase.BootstrapMockPoliciesParams{PolicyManager: pmAddress})
		require.NoError(t, err)
		require.Len(t, mocks, 4)
		assert.Equal(t, 1, pm.RegisterCalls)

		policyManager, err := contracts.Bind(contracts.PolicyManager, pmAddress, env.chain)
		require.NoError(t, err)

		registered, err := contracts.CallAs[[]common.Address](ctx, policyManager, "getRegisteredPolicies")
		require.NoError(t, err)
		assert.Equal(t, mocks.Addresses(), registered)

		for _, hook := range models.PolicyHooks {
			forHook, err := contracts.CallAs[[]common.Address](ctx, policyManager, "getPoliciesForHook", uint8(hook))
			require.NoError(t, err)
			assert.Equal(t, []common.Address{mocks[hook].Address}, forHook, hook.String())
		}
	})

	t.Run("stubs every IPolicy method", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		pmAddress, _ := setupPolicyManager(t, env)
		uc := usecase.NewBootstrapMockPolicies(env.chain, embeddedArtifacts{}, env.accounts, env.log)

		mocks, err := uc.Execute(ctx, usecase.BootstrapMockPoliciesParams{PolicyManager: pmAddress})
		require.NoError(t, err)

		for _, hook := range models.PolicyHooks {
			policy := mocks[hook]

			identifier, err := contracts.CallAs[string](ctx, policy, "identifier")
			require.NoError(t, err)
			assert.Equal(t, hook.MockIdentifier(), identifier)

			hooks, err := contracts.CallAs[[]uint8](ctx, policy, "implementedHooks")
			require.NoError(t, err)
			assert.Equal(t, []uint8{uint8(hook)}, hooks)

			valid, err := contracts.CallAs[bool](ctx, policy, "validateRule", stranger, stranger, uint8(hook), []byte{0x01})
			require.NoError(t, err)
			assert.True(t, valid)

			_, err = policy.Call(ctx, "addFundSettings", stranger, []byte{})
			assert.NoError(t, err)
			_, err = policy.Call(ctx, "activateForFund", stranger, stranger)
			assert.NoError(t, err)

			model, ok := env.chain.At(policy.Address)
			require.True(t, ok)
			doppelganger := model.(*chainfake.Doppelganger)
			for _, method := range []string{"identifier", "implementedHooks", "validateRule", "addFundSettings", "activateForFund"} {
				assert.True(t, doppelganger.Stubbed(contracts.MustABI(contracts.IPolicy).Methods[method].ID), method)
			}
			assert.False(t, doppelganger.Stubbed([]byte{0xde, 0xad, 0xbe, 0xef}))
		}
	})

	t.Run("registration failure aborts", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		pmAddress, pm := setupPolicyManager(t, env)
		pm.Owner = stranger
		uc := usecase.NewBootstrapMockPolicies(env.chain, embeddedArtifacts{}, env.accounts, env.log)

		_, err := uc.Execute(ctx, usecase.BootstrapMockPoliciesParams{PolicyManager: pmAddress})
		assert.ErrorContains(t, err, "Only the owner")
		assert.Equal(t, 0, pm.RegisterCalls)
	})

	t.Run("policy manager config", func(t *testing.T) {
		env := newTestEnv(t, "kovan")
		pmAddress, _ := setupPolicyManager(t, env)
		uc := usecase.NewBootstrapMockPolicies(env.chain, embeddedArtifacts{}, env.accounts, env.log)

		data, mocks, err := usecase.PolicyManagerConfigWithMockPolicies(ctx, uc, usecase.BootstrapMockPoliciesParams{PolicyManager: pmAddress})
		require.NoError(t, err)

		decoded, err := encoding.DecodeArgs([]string{"address[]", "bytes[]"}, data)
		require.NoError(t, err)
		assert.Equal(t, mocks.Addresses(), decoded[0])

		settings := decoded[1].([][]byte)
		require.Len(t, settings, 4)
		assert.Len(t, settings[0], 10)
		assert.Equal(t, make([]byte, 32), settings[1])
		assert.Equal(t, make([]byte, 32), settings[2])
		assert.Len(t, settings[3], 2)
	})
}

func TestPolicyHookEncodersAgainstMocks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "kovan")
	pmAddress, _ := setupPolicyManager(t, env)
	uc := usecase.NewBootstrapMockPolicies(env.chain, embeddedArtifacts{}, env.accounts, env.log)

	mocks, err := uc.Execute(ctx, usecase.BootstrapMockPoliciesParams{PolicyManager: pmAddress})
	require.NoError(t, err)

	args, err := encoding.ValidateRulePreBuySharesArgs(encoding.PreBuySharesArgs{InvestmentAmount: big.NewInt(5)})
	require.NoError(t, err)

	valid, err := contracts.CallAs[bool](ctx, mocks[models.PreBuyShares], "validateRule",
		stranger, stranger, uint8(models.PreBuyShares), args)
	require.NoError(t, err)
	assert.True(t, valid)
}
