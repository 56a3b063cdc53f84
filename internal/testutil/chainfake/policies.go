package chainfake

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
)

// Doppelganger models a mock contract whose return values are stubbed per
// calldata or per selector.
type Doppelganger struct {
	abiSelectors map[[4]byte]string

	returns map[string][]byte
	reverts map[string]string
	calls   [][]byte
}

// NewDoppelganger creates an unstubbed mock
func NewDoppelganger() *Doppelganger {
	parsed := contracts.MustABI(contracts.Doppelganger)
	selectors := make(map[[4]byte]string, len(parsed.Methods))
	for name, m := range parsed.Methods {
		selectors[[4]byte(m.ID)] = name
	}
	return &Doppelganger{
		abiSelectors: selectors,
		returns:      make(map[string][]byte),
		reverts:      make(map[string]string),
	}
}

// Stubbed reports whether calldata (or its selector) has a stubbed result
func (d *Doppelganger) Stubbed(data []byte) bool {
	_, ret := d.lookup(d.returns, data)
	_, rev := d.lookupReason(data)
	return ret || rev
}

// Calls returns the non-stubbing calldata received
func (d *Doppelganger) Calls() [][]byte {
	return slices.Clone(d.calls)
}

func (d *Doppelganger) Exec(c *Context, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, Revert(contracts.Doppelganger, "fallback", "no selector")
	}

	if name, ok := d.abiSelectors[[4]byte(data[:4])]; ok {
		if c.Static {
			return nil, Revert(contracts.Doppelganger, name, "state change in static call")
		}
		parsed := contracts.MustABI(contracts.Doppelganger)
		args, err := parsed.Methods[name].Inputs.Unpack(data[4:])
		if err != nil {
			return nil, Revert(contracts.Doppelganger, name, fmt.Sprintf("bad calldata: %v", err))
		}
		key := string(args[0].([]byte))
		switch name {
		case "__doppelganger__mockReturns":
			d.returns[key] = bytes.Clone(args[1].([]byte))
			delete(d.reverts, key)
		case "__doppelganger__mockReverts":
			d.reverts[key] = args[1].(string)
			delete(d.returns, key)
		}
		return nil, nil
	}

	if !c.Static {
		d.calls = append(d.calls, bytes.Clone(data))
	}
	if reason, ok := d.lookupReason(data); ok {
		return nil, Revert(contracts.Doppelganger, fmt.Sprintf("%x", data[:4]), reason)
	}
	if ret, ok := d.lookup(d.returns, data); ok {
		return bytes.Clone(ret), nil
	}
	return nil, Revert(contracts.Doppelganger, fmt.Sprintf("%x", data[:4]), "Mock on the method is not initialized")
}

func (d *Doppelganger) lookup(m map[string][]byte, data []byte) ([]byte, bool) {
	if v, ok := m[string(data)]; ok {
		return v, true
	}
	v, ok := m[string(data[:4])]
	return v, ok
}

func (d *Doppelganger) lookupReason(data []byte) (string, bool) {
	if v, ok := d.reverts[string(data)]; ok {
		return v, true
	}
	v, ok := d.reverts[string(data[:4])]
	return v, ok
}

// PolicyManager models policy registration keyed by implemented hook
type PolicyManager struct {
	*Dispatcher

	Owner common.Address

	registered []common.Address
	byHook     map[uint8][]common.Address
	// RegisterCalls counts registerPolicies transactions
	RegisterCalls int
}

// NewPolicyManager creates a policy manager owned by owner
func NewPolicyManager(owner common.Address) *PolicyManager {
	pm := &PolicyManager{
		Owner:  owner,
		byHook: make(map[uint8][]common.Address),
	}
	pm.Dispatcher = NewDispatcher(contracts.PolicyManager, map[string]Handler{
		"registerPolicies": pm.registerPolicies,
		"getRegisteredPolicies": func(*Context, []any) ([]any, error) {
			return []any{slices.Clone(pm.registered)}, nil
		},
		"policyIsRegistered": func(_ *Context, args []any) ([]any, error) {
			return []any{slices.Contains(pm.registered, args[0].(common.Address))}, nil
		},
		"getPoliciesForHook": func(_ *Context, args []any) ([]any, error) {
			policies := slices.Clone(pm.byHook[args[0].(uint8)])
			if policies == nil {
				policies = []common.Address{}
			}
			return []any{policies}, nil
		},
	})
	return pm
}

func (pm *PolicyManager) registerPolicies(c *Context, args []any) ([]any, error) {
	if pm.Owner != (common.Address{}) && c.From != pm.Owner {
		return nil, Revert(contracts.PolicyManager, "registerPolicies", "Only the owner can call this function")
	}
	policies := args[0].([]common.Address)
	if len(policies) == 0 {
		return nil, Revert(contracts.PolicyManager, "registerPolicies", "_policies cannot be empty")
	}

	policyABI := contracts.MustABI(contracts.IPolicy)
	call, err := policyABI.Pack("implementedHooks")
	if err != nil {
		return nil, err
	}

	hooks := make(map[common.Address][]uint8, len(policies))
	for _, p := range policies {
		if slices.Contains(pm.registered, p) {
			return nil, Revert(contracts.PolicyManager, "registerPolicies", "policy already registered")
		}
		out, err := c.Call(p, call)
		if err != nil {
			return nil, err
		}
		values, err := policyABI.Unpack("implementedHooks", out)
		if err != nil {
			return nil, Revert(contracts.PolicyManager, "registerPolicies", fmt.Sprintf("bad implementedHooks: %v", err))
		}
		hooks[p] = values[0].([]uint8)
	}

	for _, p := range policies {
		pm.registered = append(pm.registered, p)
		for _, h := range hooks[p] {
			pm.byHook[h] = append(pm.byHook[h], p)
		}
	}
	pm.RegisterCalls++
	return nil, nil
}
