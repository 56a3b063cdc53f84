package encoding

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSighash(t *testing.T) {
	assert.Equal(t, [4]byte{0xa9, 0x05, 0x9c, 0xbb}, Sighash("transfer(address,uint256)"))
	assert.Equal(t, [4]byte{0x09, 0x5e, 0xa7, 0xb3}, Sighash("approve(address,uint256)"))
	assert.NotEqual(t, MockGenericSwapASelector, MockGenericSwapBSelector)
	assert.NotEqual(t, MockGenericSwapBSelector, MockGenericSwapCSelector)
}

func TestEncodeArgs(t *testing.T) {
	t.Run("uint256 is left padded", func(t *testing.T) {
		encoded, err := EncodeArgs([]string{"uint256"}, []any{big.NewInt(1)})
		require.NoError(t, err)
		require.Len(t, encoded, 32)
		assert.Equal(t, byte(1), encoded[31])
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := EncodeArgs([]string{"address", "uint256"}, []any{common.Address{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "got 1 values for 2 types")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := EncodeArgs([]string{"uint257"}, []any{big.NewInt(1)})
		require.Error(t, err)
	})

	t.Run("wrong go type", func(t *testing.T) {
		_, err := EncodeArgs([]string{"address"}, []any{"0x01"})
		require.Error(t, err)
	})
}

func TestPolicyManagerConfigArgs(t *testing.T) {
	policies := []common.Address{
		common.HexToAddress("0x1111111111111111111111111111111111111111"),
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
	}
	settings := [][]byte{{0x01, 0x02}, HashZero.Bytes()}

	encoded, err := PolicyManagerConfigArgs(policies, settings)
	require.NoError(t, err)

	decoded, err := DecodeArgs([]string{"address[]", "bytes[]"}, encoded)
	require.NoError(t, err)
	assert.Equal(t, policies, decoded[0])
	if diff := cmp.Diff(settings, decoded[1]); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRulePreBuySharesArgsDefaults(t *testing.T) {
	encoded, err := ValidateRulePreBuySharesArgs(PreBuySharesArgs{})
	require.NoError(t, err)

	decoded, err := DecodeArgs([]string{"address", "uint256", "uint256", "uint256"}, encoded)
	require.NoError(t, err)
	assert.NotEqual(t, common.Address{}, decoded[0])
	assert.Equal(t, ParseEther("1"), decoded[1])
	assert.Equal(t, ParseEther("1"), decoded[2])
	assert.Equal(t, 0, decoded[3].(*big.Int).Sign())
}

func TestValidateRulePostCoIArgs(t *testing.T) {
	adapter := common.HexToAddress("0x3333333333333333333333333333333333333333")
	asset := common.HexToAddress("0x4444444444444444444444444444444444444444")

	encoded, err := ValidateRulePostCoIArgs(PostCoIArgs{
		Adapter:              adapter,
		Selector:             MockGenericSwapASelector,
		IncomingAssets:       []common.Address{asset},
		IncomingAssetAmounts: []*big.Int{big.NewInt(10)},
	})
	require.NoError(t, err)

	decoded, err := DecodeArgs(
		[]string{"address", "bytes4", "address[]", "uint256[]", "address[]", "uint256[]"},
		encoded,
	)
	require.NoError(t, err)
	assert.Equal(t, adapter, decoded[0])
	assert.Equal(t, MockGenericSwapASelector, decoded[1])
	assert.Equal(t, []common.Address{asset}, decoded[2])
	assert.Equal(t, []*big.Int{big.NewInt(10)}, decoded[3])
	assert.Empty(t, decoded[4])
	assert.Empty(t, decoded[5])
}

func TestInvestorWhitelistArgsNilLists(t *testing.T) {
	encoded, err := InvestorWhitelistArgs(nil, nil)
	require.NoError(t, err)

	decoded, err := DecodeArgs([]string{"address[]", "address[]"}, encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded[0])
	assert.Empty(t, decoded[1])
}

func TestCallOnIntegrationArgsWrapsSwapArgs(t *testing.T) {
	spend := common.HexToAddress("0x5555555555555555555555555555555555555555")
	swapArgs, err := MockGenericSwapArgs(MockGenericSwapParams{
		SpendAssets:       []common.Address{spend},
		SpendAssetAmounts: []*big.Int{big.NewInt(7)},
	})
	require.NoError(t, err)

	adapter := common.HexToAddress("0x6666666666666666666666666666666666666666")
	callArgs, err := CallOnIntegrationArgs(adapter, MockGenericSwapBSelector, swapArgs)
	require.NoError(t, err)

	decoded, err := DecodeArgs([]string{"address", "bytes4", "bytes"}, callArgs)
	require.NoError(t, err)
	assert.Equal(t, adapter, decoded[0])
	assert.Equal(t, MockGenericSwapBSelector, decoded[1])
	assert.Equal(t, swapArgs, decoded[2])

	inner, err := DecodeArgs([]string{"address[]", "uint256[]", "address[]", "uint256[]", "uint256[]"}, decoded[2].([]byte))
	require.NoError(t, err)
	assert.Equal(t, []common.Address{spend}, inner[0])
	assert.Equal(t, []*big.Int{big.NewInt(7)}, inner[1])
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{name: "whole", value: "1", decimals: 18, want: "1000000000000000000"},
		{name: "fraction", value: "0.02", decimals: 18, want: "20000000000000000"},
		{name: "trailing zeros beyond precision", value: "1.500", decimals: 2, want: "150"},
		{name: "leading dot", value: ".5", decimals: 1, want: "5"},
		{name: "negative", value: "-2", decimals: 0, want: "-2"},
		{name: "too precise", value: "1.234", decimals: 2, wantErr: true},
		{name: "garbage", value: "abc", decimals: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.value, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatBytes32String(t *testing.T) {
	out, err := FormatBytes32String("sUSD")
	require.NoError(t, err)
	assert.Equal(t, []byte("sUSD"), out[:4])
	assert.Equal(t, byte(0), out[4])

	_, err = FormatBytes32String("this string is definitely longer than 31")
	require.Error(t, err)
}
