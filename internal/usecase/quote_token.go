package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// GetQuoteToken returns the token a price source quotes prices in
func GetQuoteToken(ctx context.Context, backend contracts.Backend, priceSource common.Address) (*models.Token, error) {
	source, err := contracts.Bind(contracts.PriceSource, priceSource, backend)
	if err != nil {
		return nil, err
	}

	quote, err := contracts.CallAs[common.Address](ctx, source, "getQuoteAsset")
	if err != nil {
		return nil, err
	}
	return GetToken(ctx, backend, quote)
}

// GetToken reads the ERC20 metadata of a token
func GetToken(ctx context.Context, backend contracts.Backend, address common.Address) (*models.Token, error) {
	erc20, err := contracts.Bind(contracts.ERC20, address, backend)
	if err != nil {
		return nil, err
	}

	symbol, err := contracts.CallAs[string](ctx, erc20, "symbol")
	if err != nil {
		return nil, err
	}
	decimals, err := contracts.CallAs[uint8](ctx, erc20, "decimals")
	if err != nil {
		return nil, err
	}
	name, err := contracts.CallAs[string](ctx, erc20, "name")
	if err != nil {
		return nil, err
	}

	return &models.Token{
		Address:  address,
		Symbol:   symbol,
		Name:     name,
		Decimals: decimals,
	}, nil
}
