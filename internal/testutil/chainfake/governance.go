package chainfake

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
)

type action struct {
	dest       common.Address
	data       []byte
	value      *big.Int
	confirmers map[common.Address]bool
	triggered  bool
}

type versionEntry struct {
	address        common.Address
	active         bool
	activationTime *big.Int
}

// Governance models a multisig that executes confirmed actions. Action ids
// start at 1; versions are indexed from 0.
type Governance struct {
	*Dispatcher

	Authorities []common.Address
	Quorum      uint64
	Window      *big.Int

	actions  []*action
	versions []versionEntry
}

// NewGovernance creates a governance model
func NewGovernance(authorities []common.Address, quorum uint64, window *big.Int) *Governance {
	g := &Governance{
		Authorities: authorities,
		Quorum:      quorum,
		Window:      window,
	}
	g.Dispatcher = NewDispatcher(contracts.Governance, map[string]Handler{
		"propose":           g.propose,
		"actionCount":       func(*Context, []any) ([]any, error) { return []any{big.NewInt(int64(len(g.actions)))}, nil },
		"confirm":           g.confirm,
		"trigger":           g.trigger,
		"addVersion":        g.addVersion,
		"shutDownVersion":   g.shutDownVersion,
		"getVersionsLength": func(*Context, []any) ([]any, error) { return []any{big.NewInt(int64(len(g.versions)))}, nil },
		"getVersionById":    g.getVersionByID,
		"isActive":          g.isActive,
	})
	return g
}

func (g *Governance) isAuthority(addr common.Address) bool {
	return slices.Contains(g.Authorities, addr)
}

func (g *Governance) action(method string, id *big.Int) (*action, error) {
	if !id.IsUint64() || id.Uint64() == 0 || id.Uint64() > uint64(len(g.actions)) {
		return nil, Revert(contracts.Governance, method, fmt.Sprintf("unknown action %s", id))
	}
	return g.actions[id.Uint64()-1], nil
}

func (g *Governance) propose(c *Context, args []any) ([]any, error) {
	if !g.isAuthority(c.From) {
		return nil, Revert(contracts.Governance, "propose", "sender is not an authority")
	}
	g.actions = append(g.actions, &action{
		dest:       args[0].(common.Address),
		data:       args[1].([]byte),
		value:      args[2].(*big.Int),
		confirmers: make(map[common.Address]bool),
	})
	return []any{big.NewInt(int64(len(g.actions)))}, nil
}

func (g *Governance) confirm(c *Context, args []any) ([]any, error) {
	if !g.isAuthority(c.From) {
		return nil, Revert(contracts.Governance, "confirm", "sender is not an authority")
	}
	a, err := g.action("confirm", args[0].(*big.Int))
	if err != nil {
		return nil, err
	}
	if a.confirmers[c.From] {
		return nil, Revert(contracts.Governance, "confirm", "already confirmed")
	}
	a.confirmers[c.From] = true
	return nil, nil
}

func (g *Governance) trigger(c *Context, args []any) ([]any, error) {
	a, err := g.action("trigger", args[0].(*big.Int))
	if err != nil {
		return nil, err
	}
	if a.triggered {
		return nil, Revert(contracts.Governance, "trigger", "already triggered")
	}
	if uint64(len(a.confirmers)) < g.Quorum {
		return nil, Revert(contracts.Governance, "trigger", "quorum not reached")
	}
	if _, err := c.Call(a.dest, a.data); err != nil {
		return nil, err
	}
	a.triggered = true
	return nil, nil
}

func (g *Governance) onlySelf(c *Context, method string) error {
	if c.From != c.Self {
		return Revert(contracts.Governance, method, "only governance can call")
	}
	return nil
}

func (g *Governance) addVersion(c *Context, args []any) ([]any, error) {
	if err := g.onlySelf(c, "addVersion"); err != nil {
		return nil, err
	}
	g.versions = append(g.versions, versionEntry{
		address:        args[0].(common.Address),
		active:         true,
		activationTime: Timestamp(c.Block),
	})
	return nil, nil
}

func (g *Governance) version(method string, id *big.Int) (*versionEntry, error) {
	if !id.IsUint64() || id.Uint64() >= uint64(len(g.versions)) {
		return nil, Revert(contracts.Governance, method, fmt.Sprintf("unknown version %s", id))
	}
	return &g.versions[id.Uint64()], nil
}

func (g *Governance) shutDownVersion(c *Context, args []any) ([]any, error) {
	if err := g.onlySelf(c, "shutDownVersion"); err != nil {
		return nil, err
	}
	v, err := g.version("shutDownVersion", args[0].(*big.Int))
	if err != nil {
		return nil, err
	}
	if !v.active {
		return nil, Revert(contracts.Governance, "shutDownVersion", "version is not active")
	}

	shutDown, err := contracts.MustABI(contracts.Version).Pack("shutDown")
	if err != nil {
		return nil, err
	}
	if _, err := c.Call(v.address, shutDown); err != nil {
		return nil, err
	}
	v.active = false
	return nil, nil
}

func (g *Governance) getVersionByID(_ *Context, args []any) ([]any, error) {
	v, err := g.version("getVersionById", args[0].(*big.Int))
	if err != nil {
		return nil, err
	}
	return []any{v.address, v.active, new(big.Int).Set(v.activationTime)}, nil
}

func (g *Governance) isActive(_ *Context, args []any) ([]any, error) {
	v, err := g.version("isActive", args[0].(*big.Int))
	if err != nil {
		return nil, err
	}
	return []any{v.active}, nil
}

// Version models a protocol version that governance can shut down
type Version struct {
	*Dispatcher

	Name       string
	Governance common.Address
	ShutDown   bool
}

// NewVersion creates a version owned by governance. A zero governance lets
// anyone shut it down.
func NewVersion(name string, governance common.Address) *Version {
	v := &Version{Name: name, Governance: governance}
	v.Dispatcher = NewDispatcher(contracts.Version, map[string]Handler{
		"isShutDown": func(*Context, []any) ([]any, error) { return []any{v.ShutDown}, nil },
		"getName":    func(*Context, []any) ([]any, error) { return []any{v.Name}, nil },
		"shutDown": func(c *Context, _ []any) ([]any, error) {
			if v.Governance != (common.Address{}) && c.From != v.Governance {
				return nil, Revert(contracts.Version, "shutDown", "only governance can shut down")
			}
			v.ShutDown = true
			return nil, nil
		},
	})
	return v
}
