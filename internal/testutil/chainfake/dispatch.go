package chainfake

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
)

// Handler implements one contract method on decoded inputs
type Handler func(c *Context, args []any) ([]any, error)

// Dispatcher routes calldata to handlers by method selector
type Dispatcher struct {
	name     string
	abi      *abi.ABI
	handlers map[string]Handler
}

// NewDispatcher creates a dispatcher for the embedded ABI of name
func NewDispatcher(name string, handlers map[string]Handler) *Dispatcher {
	return &Dispatcher{
		name:     name,
		abi:      contracts.MustABI(name),
		handlers: handlers,
	}
}

// Exec decodes data, runs the handler and encodes its outputs
func (d *Dispatcher) Exec(c *Context, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, Revert(d.name, "fallback", "no selector")
	}

	method, err := d.abi.MethodById(data[:4])
	if err != nil {
		return nil, Revert(d.name, "fallback", fmt.Sprintf("unknown selector %x", data[:4]))
	}
	handler, ok := d.handlers[method.Name]
	if !ok {
		return nil, Revert(d.name, method.Name, "not implemented")
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, Revert(d.name, method.Name, fmt.Sprintf("bad calldata: %v", err))
	}
	if c.Static && !isView(method) {
		return nil, Revert(d.name, method.Name, "state change in static call")
	}

	out, err := handler(c, args)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(out...)
}

func isView(m *abi.Method) bool {
	return m.StateMutability == "view" || m.StateMutability == "pure"
}

// Revert returns the error a reverted call produces
func Revert(contract, method, reason string) error {
	return &domain.RevertError{Method: contract + "." + method, Reason: reason}
}
