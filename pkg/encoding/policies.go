package encoding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PolicyManagerConfigArgs encodes the policy manager settings for a new fund
func PolicyManagerConfigArgs(policies []common.Address, settingsData [][]byte) ([]byte, error) {
	if settingsData == nil {
		settingsData = [][]byte{}
	}
	return EncodeArgs(
		[]string{"address[]", "bytes[]"},
		[]any{addresses(policies), settingsData},
	)
}

// PreBuySharesArgs are the arguments of the PreBuyShares hook. Zero values
// are replaced by a random buyer, 1 ether investment, 1 ether min shares and 0 GAV.
type PreBuySharesArgs struct {
	Buyer             common.Address
	InvestmentAmount  *big.Int
	MinSharesQuantity *big.Int
	GAV               *big.Int
}

// ValidateRulePreBuySharesArgs encodes (address,uint256,uint256,uint256)
func ValidateRulePreBuySharesArgs(args PreBuySharesArgs) ([]byte, error) {
	buyer := args.Buyer
	if buyer == (common.Address{}) {
		buyer = RandomAddress()
	}
	return EncodeArgs(
		[]string{"address", "uint256", "uint256", "uint256"},
		[]any{
			buyer,
			bigOr(args.InvestmentAmount, ParseEther("1")),
			bigOr(args.MinSharesQuantity, ParseEther("1")),
			bigOr(args.GAV, new(big.Int)),
		},
	)
}

// ValidateRulePostBuySharesArgs encodes (address,uint256,uint256)
func ValidateRulePostBuySharesArgs(buyer common.Address, investmentAmount, sharesBought *big.Int) ([]byte, error) {
	return EncodeArgs(
		[]string{"address", "uint256", "uint256"},
		[]any{buyer, bigOr(investmentAmount, new(big.Int)), bigOr(sharesBought, new(big.Int))},
	)
}

// ValidateRulePreCoIArgs encodes (address,bytes4) for PreCallOnIntegration
func ValidateRulePreCoIArgs(adapter common.Address, selector [4]byte) ([]byte, error) {
	return EncodeArgs([]string{"address", "bytes4"}, []any{adapter, selector})
}

// PostCoIArgs are the arguments of the PostCallOnIntegration hook
type PostCoIArgs struct {
	Adapter              common.Address
	Selector             [4]byte
	IncomingAssets       []common.Address
	IncomingAssetAmounts []*big.Int
	OutgoingAssets       []common.Address
	OutgoingAssetAmounts []*big.Int
}

// ValidateRulePostCoIArgs encodes (address,bytes4,address[],uint256[],address[],uint256[])
func ValidateRulePostCoIArgs(args PostCoIArgs) ([]byte, error) {
	return EncodeArgs(
		[]string{"address", "bytes4", "address[]", "uint256[]", "address[]", "uint256[]"},
		[]any{
			args.Adapter,
			args.Selector,
			addresses(args.IncomingAssets),
			orZero(args.IncomingAssetAmounts),
			addresses(args.OutgoingAssets),
			orZero(args.OutgoingAssetAmounts),
		},
	)
}

// AdapterBlacklistArgs encodes the settings of the adapter blacklist policy
func AdapterBlacklistArgs(adapters []common.Address) ([]byte, error) {
	return addressListArgs(adapters)
}

// AdapterWhitelistArgs encodes the settings of the adapter whitelist policy
func AdapterWhitelistArgs(adapters []common.Address) ([]byte, error) {
	return addressListArgs(adapters)
}

// AssetBlacklistArgs encodes the settings of the asset blacklist policy
func AssetBlacklistArgs(assets []common.Address) ([]byte, error) {
	return addressListArgs(assets)
}

// AssetWhitelistArgs encodes the settings of the asset whitelist policy
func AssetWhitelistArgs(assets []common.Address) ([]byte, error) {
	return addressListArgs(assets)
}

func addressListArgs(list []common.Address) ([]byte, error) {
	return EncodeArgs([]string{"address[]"}, []any{addresses(list)})
}

// InvestorWhitelistArgs encodes (address[] toAdd, address[] toRemove)
func InvestorWhitelistArgs(investorsToAdd, investorsToRemove []common.Address) ([]byte, error) {
	return EncodeArgs(
		[]string{"address[]", "address[]"},
		[]any{addresses(investorsToAdd), addresses(investorsToRemove)},
	)
}

// MaxConcentrationArgs encodes (uint256)
func MaxConcentrationArgs(maxConcentration *big.Int) ([]byte, error) {
	return EncodeArgs([]string{"uint256"}, []any{bigOr(maxConcentration, new(big.Int))})
}
