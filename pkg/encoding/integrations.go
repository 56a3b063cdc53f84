package encoding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// IntegrationManagerActionCallOnIntegration is the action id of callOnIntegration
const IntegrationManagerActionCallOnIntegration = 0

// Selectors of the mock generic adapter
var (
	MockGenericSwapASelector = Sighash("swapA(address,bytes,bytes)")
	MockGenericSwapBSelector = Sighash("swapB(address,bytes,bytes)")
	MockGenericSwapCSelector = Sighash("swapC(address,bytes,bytes)")
)

// MockGenericSwapParams are the encoded call args of a mock generic swap
type MockGenericSwapParams struct {
	SpendAssets             []common.Address
	SpendAssetAmounts       []*big.Int
	IncomingAssets          []common.Address
	MinIncomingAssetAmounts []*big.Int
	IncomingAssetAmounts    []*big.Int
}

// MockGenericSwapArgs encodes (address[],uint256[],address[],uint256[],uint256[])
func MockGenericSwapArgs(p MockGenericSwapParams) ([]byte, error) {
	return EncodeArgs(
		[]string{"address[]", "uint256[]", "address[]", "uint256[]", "uint256[]"},
		[]any{
			addresses(p.SpendAssets),
			orZero(p.SpendAssetAmounts),
			addresses(p.IncomingAssets),
			orZero(p.MinIncomingAssetAmounts),
			orZero(p.IncomingAssetAmounts),
		},
	)
}

// CallOnIntegrationArgs encodes (address adapter, bytes4 selector, bytes encodedCallArgs)
func CallOnIntegrationArgs(adapter common.Address, selector [4]byte, encodedCallArgs []byte) ([]byte, error) {
	if encodedCallArgs == nil {
		encodedCallArgs = []byte{}
	}
	return EncodeArgs(
		[]string{"address", "bytes4", "bytes"},
		[]any{adapter, selector, encodedCallArgs},
	)
}
