package chainfake

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
)

// FundDeployer models the release status gate
type FundDeployer struct {
	*Dispatcher

	Owner         common.Address
	ReleaseStatus uint8
	// StatusChanges counts successful setReleaseStatus calls
	StatusChanges int
}

// NewFundDeployer creates a fund deployer in PreLaunch
func NewFundDeployer(owner common.Address) *FundDeployer {
	fd := &FundDeployer{Owner: owner}
	fd.Dispatcher = NewDispatcher(contracts.FundDeployer, map[string]Handler{
		"getReleaseStatus": func(*Context, []any) ([]any, error) { return []any{fd.ReleaseStatus}, nil },
		"getOwner":         func(*Context, []any) ([]any, error) { return []any{fd.Owner}, nil },
		"setReleaseStatus": func(c *Context, args []any) ([]any, error) {
			if c.From != fd.Owner {
				return nil, Revert(contracts.FundDeployer, "setReleaseStatus", "Only the contract owner can call this function")
			}
			next := args[0].(uint8)
			if next == 0 {
				return nil, Revert(contracts.FundDeployer, "setReleaseStatus", "Cannot return to PreLaunch status")
			}
			if next == fd.ReleaseStatus {
				return nil, Revert(contracts.FundDeployer, "setReleaseStatus", "_nextStatus is the current status")
			}
			fd.ReleaseStatus = next
			fd.StatusChanges++
			return nil, nil
		},
	})
	return fd
}

// Hub models a legacy fund hub
type Hub struct {
	*Dispatcher

	Manager  common.Address
	ShutDown bool
	Routes   contracts.HubRoutes
}

// NewHub creates a hub managed by manager
func NewHub(manager common.Address, routes contracts.HubRoutes) *Hub {
	h := &Hub{Manager: manager, Routes: routes}
	h.Dispatcher = NewDispatcher(contracts.Hub, map[string]Handler{
		"manager":    func(*Context, []any) ([]any, error) { return []any{h.Manager}, nil },
		"isShutDown": func(*Context, []any) ([]any, error) { return []any{h.ShutDown}, nil },
		"routes": func(*Context, []any) ([]any, error) {
			r := h.Routes
			return []any{
				r.Accounting, r.FeeManager, r.Participation, r.PolicyManager,
				r.Shares, r.Trading, r.Vault, r.PriceSource,
				r.Registry, r.Version, r.Engine, r.MlnToken,
			}, nil
		},
	})
	return h
}

// ExchangeCall is a recorded callOnExchange
type ExchangeCall struct {
	Index     *big.Int
	Signature string
	Addresses [6]common.Address
	Values    [8]*big.Int
}

// Trading models a legacy fund trading component
type Trading struct {
	*Dispatcher

	Hub       common.Address
	Exchanges []common.Address
	Adapters  []common.Address
	Calls     []ExchangeCall
}

// NewTrading creates a trading component of hub
func NewTrading(hub common.Address, exchanges, adapters []common.Address) *Trading {
	t := &Trading{Hub: hub, Exchanges: exchanges, Adapters: adapters}
	t.Dispatcher = NewDispatcher(contracts.Trading, map[string]Handler{
		"hub": func(*Context, []any) ([]any, error) { return []any{t.Hub}, nil },
		"getExchangeInfo": func(*Context, []any) ([]any, error) {
			custody := make([]bool, len(t.Exchanges))
			return []any{t.Exchanges, t.Adapters, custody}, nil
		},
		"callOnExchange": func(_ *Context, args []any) ([]any, error) {
			index := args[0].(*big.Int)
			if !index.IsInt64() || index.Int64() >= int64(len(t.Exchanges)) {
				return nil, Revert(contracts.Trading, "callOnExchange", fmt.Sprintf("unknown exchange %s", index))
			}
			t.Calls = append(t.Calls, ExchangeCall{
				Index:     index,
				Signature: args[1].(string),
				Addresses: args[2].([6]common.Address),
				Values:    args[3].([8]*big.Int),
			})
			return nil, nil
		},
	})
	return t
}

// LegacyPolicyManager models pre-trade policy validation
type LegacyPolicyManager struct {
	*Dispatcher

	// Reject makes preValidate revert with this reason when set
	Reject string
}

// NewLegacyPolicyManager creates a policy manager that permits everything
func NewLegacyPolicyManager() *LegacyPolicyManager {
	pm := &LegacyPolicyManager{}
	pm.Dispatcher = NewDispatcher(contracts.LegacyPolicyManager, map[string]Handler{
		"preValidate": func(*Context, []any) ([]any, error) {
			if pm.Reject != "" {
				return nil, Revert(contracts.LegacyPolicyManager, "preValidate", pm.Reject)
			}
			return nil, nil
		},
	})
	return pm
}

// PriceSource models a price feed quoting in one asset
type PriceSource struct {
	*Dispatcher

	Quote common.Address
}

// NewPriceSource creates a price source quoting in quote
func NewPriceSource(quote common.Address) *PriceSource {
	ps := &PriceSource{Quote: quote}
	ps.Dispatcher = NewDispatcher(contracts.PriceSource, map[string]Handler{
		"getQuoteAsset": func(*Context, []any) ([]any, error) { return []any{ps.Quote}, nil },
	})
	return ps
}

// ExtensionCall is a recorded callOnExtension
type ExtensionCall struct {
	Extension common.Address
	Action    *big.Int
	CallArgs  []byte
}

// Comptroller models a fund comptroller proxy
type Comptroller struct {
	*Dispatcher

	Owner common.Address
	Vault common.Address
	Calls []ExtensionCall
}

// NewComptroller creates a comptroller owned by owner
func NewComptroller(owner, vault common.Address) *Comptroller {
	cp := &Comptroller{Owner: owner, Vault: vault}
	cp.Dispatcher = NewDispatcher(contracts.ComptrollerLib, map[string]Handler{
		"getVaultProxy": func(*Context, []any) ([]any, error) { return []any{cp.Vault}, nil },
		"callOnExtension": func(c *Context, args []any) ([]any, error) {
			if c.From != cp.Owner {
				return nil, Revert(contracts.ComptrollerLib, "callOnExtension", "Only fund owner callable")
			}
			cp.Calls = append(cp.Calls, ExtensionCall{
				Extension: args[0].(common.Address),
				Action:    args[1].(*big.Int),
				CallArgs:  args[2].([]byte),
			})
			return nil, nil
		},
	})
	return cp
}

func registerDefaultFactories(c *Chain) {
	for _, name := range []string{
		contracts.ERC20,
		contracts.MockToken,
		contracts.MockSynthetixToken,
		contracts.MockCTokenIntegratee,
		contracts.MockUniswapV2PriceSource,
	} {
		c.factories[name] = tokenFactory(name)
	}

	c.factories[contracts.Doppelganger] = func(common.Address, []any) (Contract, error) {
		return NewDoppelganger(), nil
	}
	c.factories[contracts.PolicyManager] = func(deployer common.Address, _ []any) (Contract, error) {
		return NewPolicyManager(deployer), nil
	}
	c.factories[contracts.FundDeployer] = func(deployer common.Address, _ []any) (Contract, error) {
		return NewFundDeployer(deployer), nil
	}
	c.factories[contracts.Governance] = func(_ common.Address, args []any) (Contract, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("Governance takes 3 args, got %d", len(args))
		}
		return NewGovernance(args[0].([]common.Address), args[1].(*big.Int).Uint64(), args[2].(*big.Int)), nil
	}
	c.factories[contracts.Version] = func(common.Address, []any) (Contract, error) {
		return NewVersion("", common.Address{}), nil
	}
	c.factories[contracts.LegacyPolicyManager] = func(common.Address, []any) (Contract, error) {
		return NewLegacyPolicyManager(), nil
	}
}
