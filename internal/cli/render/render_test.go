package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestHookTitle(t *testing.T) {
	tests := []struct {
		hook models.PolicyHook
		want string
	}{
		{models.PreBuyShares, "Pre Buy Shares"},
		{models.PostBuyShares, "Post Buy Shares"},
		{models.PreCallOnIntegration, "Pre Call On Integration"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HookTitle(tt.hook))
		})
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "innermost cause of a chain",
			err:  fmt.Errorf("failed to deploy FundDeployer: %w", errors.New("insufficient funds")),
			want: "❌ Insufficient funds",
		},
		{
			name: "precondition keeps its full message",
			err:  fmt.Errorf("finalize: %w", &domain.PreconditionError{Check: "fundDeployerOwner", Reason: "caller is not the owner"}),
			want: "❌ Finalize: precondition fundDeployerOwner failed: caller is not the owner",
		},
		{
			name: "missing deployment keeps suggestions",
			err:  domain.DeploymentNotFoundErr{Network: "kovan", Name: "FundDeployr", Suggestions: []string{"FundDeployer"}},
			want: "❌ No deployment named \"FundDeployr\" on kovan - did you mean:\n  - FundDeployer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatError(tt.err))
		})
	}
}

func TestRenderDeploymentList(t *testing.T) {
	t.Run("empty network", func(t *testing.T) {
		var out bytes.Buffer
		err := NewDeploymentsRenderer(&out).RenderDeploymentList(&usecase.DeploymentListResult{Network: "kovan"})
		require.NoError(t, err)
		assert.Equal(t, "No deployments found on kovan\n", out.String())
	})

	t.Run("grouped sections", func(t *testing.T) {
		var out bytes.Buffer
		result := &usecase.DeploymentListResult{
			Network: "kovan",
			Deployments: []*models.Deployment{
				{Name: "FundDeployer", Contract: "FundDeployer", Address: common.HexToAddress("0x01")},
				{Name: models.MockName("MockToken", "DAI"), Contract: "MockToken", Address: common.HexToAddress("0x02")},
				{Name: "config", LinkedData: json.RawMessage(`{"tokens":{}}`)},
			},
			Summary: usecase.DeploymentSummary{
				Total:      3,
				Mocks:      1,
				LinkedData: 1,
				ByContract: map[string]int{"MockToken": 1, "FundDeployer": 1},
			},
		}

		require.NoError(t, NewDeploymentsRenderer(&out).RenderDeploymentList(result))
		got := out.String()

		assert.Contains(t, got, "kovan")
		assert.Contains(t, got, "CONTRACTS")
		assert.Contains(t, got, "MOCKS")
		assert.Contains(t, got, "mocks/MockToken (DAI)")
		assert.Contains(t, got, "LINKED DATA")
		assert.Contains(t, got, "config (13 bytes)")
		assert.Contains(t, got, "Total: 3 (mocks: 1, linked data: 1)")
		assert.Contains(t, got, "By contract: FundDeployer: 1, MockToken: 1")
		assert.Less(t, bytes.Index(out.Bytes(), []byte("CONTRACTS")), bytes.Index(out.Bytes(), []byte("MOCKS")))
	})
}

func TestDeploymentsByName(t *testing.T) {
	deployments := []*models.Deployment{
		{Name: "FundDeployer", Address: common.HexToAddress("0x01")},
		{Name: "config", LinkedData: json.RawMessage(`{}`)},
	}

	var out bytes.Buffer
	require.NoError(t, RenderJSON(&out, DeploymentsByName(deployments)))

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", decoded["FundDeployer"]["address"])
}

func TestRenderFinalize(t *testing.T) {
	tests := []struct {
		name   string
		result *usecase.FinalizeResult
		want   string
	}{
		{
			name:   "skipped network",
			result: &usecase.FinalizeResult{Network: "mainnet", Skipped: true, SkipReason: "mainnet is not a finalize network"},
			want:   "mainnet is not a finalize network",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, NewDeployRenderer(&out).RenderFinalize(tt.result))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRenderAction(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewGovernanceRenderer(&out).RenderAction("activateVersion", big.NewInt(3)))
	assert.Equal(t, "✅ activateVersion triggered as action #3\n", out.String())
}
