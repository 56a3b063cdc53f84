package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/fundops/internal/domain"
)

const testMocksYAML = `
tokens:
  - symbol: WETH
    name: Wrapped Ether
    decimals: 18
  - symbol: USDC
    name: USD Coin
    decimals: 6
synths:
  - symbol: sUSD
    name: Synth sUSD
    decimals: 18
rateProvider: CentralizedRateProvider
ctokens:
  - symbol: cDAI
    name: Compound Dai
    decimals: 8
    underlying: DAI
    rate: 0.02
pairs:
  - name: WETH-USDC
    tokenA: WETH
    tokenB: USDC
`

func TestLoadMocksManifest(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid manifest", func(t *testing.T) {
		path := filepath.Join(dir, "mocks.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testMocksYAML), 0644))

		manifest, err := LoadMocksManifest(path)
		require.NoError(t, err)

		assert.Equal(t, []domain.MockTokenSpec{
			{Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18},
			{Symbol: "USDC", Name: "USD Coin", Decimals: 6},
		}, manifest.Tokens)
		assert.Equal(t, "CentralizedRateProvider", manifest.RateProvider)
		require.Len(t, manifest.CTokens, 1)
		assert.Equal(t, "cDAI", manifest.CTokens[0].Symbol)
		assert.Equal(t, "DAI", manifest.CTokens[0].Underlying)
		assert.InDelta(t, 0.02, manifest.CTokens[0].Rate, 1e-12)
		assert.Equal(t, []domain.MockPairSpec{{Name: "WETH-USDC", TokenA: "WETH", TokenB: "USDC"}}, manifest.Pairs)
	})

	t.Run("invalid manifest", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			errMsg  string
		}{
			{name: "token without symbol", content: "tokens:\n  - name: X\n", errMsg: "invalid mocks manifest"},
			{name: "ctoken with zero rate", content: "ctokens:\n  - symbol: cX\n    name: X\n    underlying: X\n", errMsg: "invalid mocks manifest"},
			{name: "malformed yaml", content: "tokens: [\n", errMsg: "failed to parse"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(dir, tt.name+".yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
				_, err := LoadMocksManifest(path)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})

	t.Run("missing manifest", func(t *testing.T) {
		manifest, err := LoadMocksManifestIfExists(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Nil(t, manifest)

		_, err = LoadMocksManifest(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}
