package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token describes an ERC20 token
type Token struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name"`
	Decimals uint8          `json:"decimals"`
}

// Quantity is an amount of a token in its smallest unit
type Quantity struct {
	Token  Token
	Amount *big.Int
}

// NewQuantity creates a quantity, treating a nil amount as zero
func NewQuantity(token Token, amount *big.Int) Quantity {
	if amount == nil {
		amount = new(big.Int)
	}
	return Quantity{Token: token, Amount: amount}
}

// Normalized returns the quantity with a nil amount replaced by zero
func (q Quantity) Normalized() Quantity {
	return NewQuantity(q.Token, q.Amount)
}
