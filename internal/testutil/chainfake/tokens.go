package chainfake

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
)

// Token is an ERC20 model shared by every mock token
type Token struct {
	*Dispatcher

	Name     string
	Symbol   string
	Decimals uint8

	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int
	totalSupply *big.Int

	// Set on the token variants
	CurrencyKey  [32]byte
	Underlying   common.Address
	RateProvider common.Address
	Rate         *big.Int
	Token0       common.Address
	Token1       common.Address
}

// NewToken creates an ERC20 model dispatched through the ABI of contract
func NewToken(contract, name, symbol string, decimals uint8) *Token {
	t := &Token{
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		balances:    make(map[common.Address]*big.Int),
		allowances:  make(map[common.Address]map[common.Address]*big.Int),
		totalSupply: new(big.Int),
	}

	handlers := map[string]Handler{
		"name":         func(*Context, []any) ([]any, error) { return []any{t.Name}, nil },
		"symbol":       func(*Context, []any) ([]any, error) { return []any{t.Symbol}, nil },
		"decimals":     func(*Context, []any) ([]any, error) { return []any{t.Decimals}, nil },
		"totalSupply":  func(*Context, []any) ([]any, error) { return []any{new(big.Int).Set(t.totalSupply)}, nil },
		"balanceOf":    t.balanceOf,
		"allowance":    t.allowance,
		"transfer":     t.transfer,
		"approve":      t.approve,
		"transferFrom": t.transferFrom,
		"mintFor":      t.mintFor,
		"currencyKey":  func(*Context, []any) ([]any, error) { return []any{t.CurrencyKey}, nil },
		"underlying":   func(*Context, []any) ([]any, error) { return []any{t.Underlying}, nil },
		"exchangeRateStored": func(*Context, []any) ([]any, error) {
			return []any{new(big.Int).Set(t.Rate)}, nil
		},
		"token0": func(*Context, []any) ([]any, error) { return []any{t.Token0}, nil },
		"token1": func(*Context, []any) ([]any, error) { return []any{t.Token1}, nil },
		"getReserves": func(*Context, []any) ([]any, error) {
			return []any{new(big.Int), new(big.Int), uint32(0)}, nil
		},
	}
	t.Dispatcher = NewDispatcher(contract, handlers)
	return t
}

// Mint credits amount to holder
func (t *Token) Mint(holder common.Address, amount *big.Int) {
	t.credit(holder, amount)
	t.totalSupply.Add(t.totalSupply, amount)
}

// BalanceOf returns the balance of holder
func (t *Token) BalanceOf(holder common.Address) *big.Int {
	if b, ok := t.balances[holder]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (t *Token) credit(holder common.Address, amount *big.Int) {
	t.balances[holder] = new(big.Int).Add(t.BalanceOf(holder), amount)
}

func (t *Token) move(from, to common.Address, amount *big.Int) error {
	balance := t.BalanceOf(from)
	if balance.Cmp(amount) < 0 {
		return Revert(t.Symbol, "transfer", "ERC20: transfer amount exceeds balance")
	}
	t.balances[from] = balance.Sub(balance, amount)
	t.credit(to, amount)
	return nil
}

func (t *Token) balanceOf(_ *Context, args []any) ([]any, error) {
	return []any{t.BalanceOf(args[0].(common.Address))}, nil
}

func (t *Token) allowance(_ *Context, args []any) ([]any, error) {
	owner, spender := args[0].(common.Address), args[1].(common.Address)
	if a, ok := t.allowances[owner][spender]; ok {
		return []any{new(big.Int).Set(a)}, nil
	}
	return []any{new(big.Int)}, nil
}

func (t *Token) transfer(c *Context, args []any) ([]any, error) {
	if err := t.move(c.From, args[0].(common.Address), args[1].(*big.Int)); err != nil {
		return nil, err
	}
	return []any{true}, nil
}

func (t *Token) approve(c *Context, args []any) ([]any, error) {
	spender, amount := args[0].(common.Address), args[1].(*big.Int)
	if t.allowances[c.From] == nil {
		t.allowances[c.From] = make(map[common.Address]*big.Int)
	}
	t.allowances[c.From][spender] = new(big.Int).Set(amount)
	return []any{true}, nil
}

func (t *Token) transferFrom(c *Context, args []any) ([]any, error) {
	from, to, amount := args[0].(common.Address), args[1].(common.Address), args[2].(*big.Int)
	allowed, ok := t.allowances[from][c.From]
	if !ok || allowed.Cmp(amount) < 0 {
		return nil, Revert(t.Symbol, "transferFrom", "ERC20: transfer amount exceeds allowance")
	}
	if err := t.move(from, to, amount); err != nil {
		return nil, err
	}
	t.allowances[from][c.From] = new(big.Int).Sub(allowed, amount)
	return []any{true}, nil
}

func (t *Token) mintFor(_ *Context, args []any) ([]any, error) {
	t.Mint(args[0].(common.Address), args[1].(*big.Int))
	return nil, nil
}

func tokenFactory(contract string) Factory {
	return func(_ common.Address, args []any) (Contract, error) {
		switch contract {
		case contracts.MockUniswapV2PriceSource:
			if len(args) != 2 {
				return nil, fmt.Errorf("%s takes 2 args, got %d", contract, len(args))
			}
			t := NewToken(contract, "Uniswap V2", "UNI-V2", 18)
			t.Token0, t.Token1 = args[0].(common.Address), args[1].(common.Address)
			return t, nil
		case contracts.ERC20:
			return NewToken(contract, "", "", 18), nil
		}

		if len(args) < 3 {
			return nil, fmt.Errorf("%s takes at least 3 args, got %d", contract, len(args))
		}
		t := NewToken(contract, args[0].(string), args[1].(string), args[2].(uint8))

		switch contract {
		case contracts.MockSynthetixToken:
			t.CurrencyKey = args[3].([32]byte)
		case contracts.MockCTokenIntegratee:
			t.Underlying = args[3].(common.Address)
			t.RateProvider = args[4].(common.Address)
			t.Rate = new(big.Int).Set(args[5].(*big.Int))
		}
		return t, nil
	}
}
