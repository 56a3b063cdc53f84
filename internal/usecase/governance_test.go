package usecase_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/testutil/chainfake"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

type governanceFixture struct {
	env        *testEnv
	session    *usecase.GovernanceSession
	version    *chainfake.Version
	versionAdr common.Address
}

func setupGovernance(t *testing.T) *governanceFixture {
	t.Helper()

	env := newTestEnv(t, "development")
	govAddr := env.deploy(t, contracts.Governance, contracts.Governance,
		[]common.Address{deployer}, big.NewInt(1), big.NewInt(100000))

	versionAddr := common.HexToAddress("0x00000000000000000000000000000000000000e1")
	version := chainfake.NewVersion("V1", govAddr)
	env.chain.Install(versionAddr, version)

	uc := usecase.NewGovernance(env.chain, env.registry, env.accounts, env.log)
	session, err := uc.Session(context.Background(), usecase.GovernanceParams{})
	require.NoError(t, err)
	require.Equal(t, govAddr, session.Address())

	return &governanceFixture{env: env, session: session, version: version, versionAdr: versionAddr}
}

func TestGovernance(t *testing.T) {
	ctx := context.Background()

	t.Run("triggering a version activates it", func(t *testing.T) {
		f := setupGovernance(t)

		before, err := f.session.VersionsLength(ctx)
		require.NoError(t, err)
		assert.Zero(t, before.Sign())

		id, err := f.session.ActivateVersion(ctx, f.versionAdr)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id.Int64())

		after, err := f.session.VersionsLength(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), after.Int64())

		info, err := f.session.VersionByID(ctx, big.NewInt(0))
		require.NoError(t, err)
		assert.Equal(t, f.versionAdr, info.Address)
		assert.True(t, info.Active)
		assert.Positive(t, info.ActivationTime.Sign())
	})

	t.Run("governance can shut down a version", func(t *testing.T) {
		f := setupGovernance(t)
		_, err := f.session.ActivateVersion(ctx, f.versionAdr)
		require.NoError(t, err)

		activeBefore, err := f.session.IsActive(ctx, big.NewInt(0))
		require.NoError(t, err)
		assert.True(t, activeBefore)

		id, err := f.session.ShutDownVersion(ctx, big.NewInt(0))
		require.NoError(t, err)
		assert.Equal(t, int64(2), id.Int64())

		shutDown, err := f.session.IsShutDown(ctx, f.versionAdr)
		require.NoError(t, err)
		assert.True(t, shutDown)

		activeAfter, err := f.session.IsActive(ctx, big.NewInt(0))
		require.NoError(t, err)
		assert.False(t, activeAfter)
	})

	t.Run("shutdown leaves other versions untouched", func(t *testing.T) {
		f := setupGovernance(t)
		otherAddr := common.HexToAddress("0x00000000000000000000000000000000000000e2")
		other := chainfake.NewVersion("V2", f.session.Address())
		f.env.chain.Install(otherAddr, other)

		_, err := f.session.ActivateVersion(ctx, f.versionAdr)
		require.NoError(t, err)
		_, err = f.session.ActivateVersion(ctx, otherAddr)
		require.NoError(t, err)

		_, err = f.session.ShutDownVersion(ctx, big.NewInt(0))
		require.NoError(t, err)

		versions, err := f.session.Versions(ctx)
		require.NoError(t, err)
		require.Len(t, versions, 2)
		assert.False(t, versions[0].Active)
		assert.True(t, versions[1].Active)
		assert.False(t, other.ShutDown)
	})

	t.Run("only authorities can propose", func(t *testing.T) {
		f := setupGovernance(t)
		session, err := usecase.NewGovernanceSession(f.env.chain, f.session.Address(), stranger, f.env.log)
		require.NoError(t, err)

		_, err = session.ActivateVersion(ctx, f.versionAdr)
		var revert *domain.RevertError
		require.ErrorAs(t, err, &revert)
		assert.Equal(t, "Governance.propose", revert.Method)
	})

	t.Run("trigger without confirmation fails", func(t *testing.T) {
		f := setupGovernance(t)
		calldata, err := contracts.MustABI(contracts.Governance).Pack("addVersion", f.versionAdr)
		require.NoError(t, err)

		_, err = f.session.Propose(ctx, f.session.Address(), calldata, nil)
		require.NoError(t, err)
		id, err := f.session.ActionCount(ctx)
		require.NoError(t, err)

		_, err = f.session.Trigger(ctx, id)
		assert.ErrorContains(t, err, "quorum not reached")
	})
}
