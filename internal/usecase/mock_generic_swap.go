package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/pkg/encoding"
)

// MockGenericSwapParams describes a swap through the mock generic adapter
type MockGenericSwapParams struct {
	ComptrollerProxy   common.Address
	VaultProxy         common.Address
	IntegrationManager common.Address
	Adapter            common.Address
	FundOwner          common.Address
	// Selector defaults to swapA
	Selector                   [4]byte
	SpendAssets                []common.Address
	SpendAssetAmounts          []*big.Int
	IncomingAssets             []common.Address
	MinIncomingAssetAmounts    []*big.Int
	ActualIncomingAssetAmounts []*big.Int
	// SeedFund transfers the spend amounts to the vault from Seeder first
	SeedFund bool
	Seeder   common.Address
}

// MockGenericSwap calls the integration manager through the fund's comptroller
func MockGenericSwap(ctx context.Context, backend contracts.Backend, params MockGenericSwapParams) (*domain.Receipt, error) {
	if params.SeedFund {
		if len(params.SpendAssetAmounts) < len(params.SpendAssets) {
			return nil, fmt.Errorf("got %d spend amounts for %d spend assets", len(params.SpendAssetAmounts), len(params.SpendAssets))
		}
		for i, asset := range params.SpendAssets {
			token, err := contracts.Bind(contracts.ERC20, asset, backend)
			if err != nil {
				return nil, err
			}
			if _, err := token.Connect(params.Seeder).Transact(ctx, "transfer", params.VaultProxy, params.SpendAssetAmounts[i]); err != nil {
				return nil, fmt.Errorf("failed to seed vault: %w", err)
			}
		}
	}

	swapArgs, err := encoding.MockGenericSwapArgs(encoding.MockGenericSwapParams{
		SpendAssets:             params.SpendAssets,
		SpendAssetAmounts:       params.SpendAssetAmounts,
		IncomingAssets:          params.IncomingAssets,
		MinIncomingAssetAmounts: params.MinIncomingAssetAmounts,
		IncomingAssetAmounts:    params.ActualIncomingAssetAmounts,
	})
	if err != nil {
		return nil, err
	}

	selector := params.Selector
	if selector == ([4]byte{}) {
		selector = encoding.MockGenericSwapASelector
	}
	callArgs, err := encoding.CallOnIntegrationArgs(params.Adapter, selector, swapArgs)
	if err != nil {
		return nil, err
	}

	comptroller, err := contracts.Bind(contracts.ComptrollerLib, params.ComptrollerProxy, backend)
	if err != nil {
		return nil, err
	}
	return comptroller.Connect(params.FundOwner).Transact(ctx, "callOnExtension",
		params.IntegrationManager,
		big.NewInt(encoding.IntegrationManagerActionCallOnIntegration),
		callArgs,
	)
}
