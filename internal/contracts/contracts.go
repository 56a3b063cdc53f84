// Package contracts binds the protocol's contract ABIs to a chain backend.
package contracts

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// Contract names with embedded ABIs
const (
	ERC20                    = "ERC20"
	MockToken                = "MockToken"
	MockSynthetixToken       = "MockSynthetixToken"
	MockCTokenIntegratee     = "MockCTokenIntegratee"
	MockUniswapV2PriceSource = "MockUniswapV2PriceSource"
	Doppelganger             = "Doppelganger"
	IPolicy                  = "IPolicy"
	PolicyManager            = "PolicyManager"
	FundDeployer             = "FundDeployer"
	Governance               = "Governance"
	Version                  = "Version"
	Hub                      = "Hub"
	Trading                  = "Trading"
	LegacyPolicyManager      = "LegacyPolicyManager"
	PriceSource              = "PriceSource"
	ComptrollerLib           = "ComptrollerLib"
)

//go:embed abis/*.json
var abiFS embed.FS

var (
	cacheMu sync.Mutex
	cache   = map[string]*abi.ABI{}
)

// RawABI returns the embedded ABI JSON of a contract
func RawABI(name string) (json.RawMessage, error) {
	data, err := abiFS.ReadFile(path.Join("abis", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("no embedded ABI for %s: %w", name, domain.ErrArtifactNotFound)
	}
	return data, nil
}

// ABI returns the parsed embedded ABI of a contract
func ABI(name string) (*abi.ABI, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if parsed, ok := cache[name]; ok {
		return parsed, nil
	}
	data, err := RawABI(name)
	if err != nil {
		return nil, err
	}
	parsed, err := abi.JSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded ABI %s: %w", name, err)
	}
	cache[name] = &parsed
	return &parsed, nil
}

// MustABI is ABI that panics, for package-level selector tables
func MustABI(name string) *abi.ABI {
	parsed, err := ABI(name)
	if err != nil {
		panic(err)
	}
	return parsed
}

// InterfaceArtifact returns an artifact carrying only the embedded ABI.
// It cannot be deployed on a real chain since it has no bytecode.
func InterfaceArtifact(name string) (*models.Artifact, error) {
	data, err := RawABI(name)
	if err != nil {
		return nil, err
	}
	return &models.Artifact{ContractName: name, ABI: data}, nil
}

// Backend is the minimal chain access a bound contract needs
type Backend interface {
	Call(ctx context.Context, msg domain.CallMsg) ([]byte, error)
	Transact(ctx context.Context, req domain.TxRequest) (*domain.Receipt, error)
}

// Contract is an ABI bound to an address and a backend
type Contract struct {
	Name    string
	Address common.Address

	abi     *abi.ABI
	backend Backend
	from    common.Address
}

// Bind binds the embedded ABI of name to address
func Bind(name string, address common.Address, backend Backend) (*Contract, error) {
	parsed, err := ABI(name)
	if err != nil {
		return nil, err
	}
	return NewContract(name, parsed, address, backend), nil
}

// NewContract binds an already parsed ABI
func NewContract(name string, parsed *abi.ABI, address common.Address, backend Backend) *Contract {
	return &Contract{
		Name:    name,
		Address: address,
		abi:     parsed,
		backend: backend,
	}
}

// Connect returns a copy of the contract that sends and calls from the given account
func (c *Contract) Connect(from common.Address) *Contract {
	clone := *c
	clone.from = from
	return &clone
}

// From returns the account the contract is connected to
func (c *Contract) From() common.Address {
	return c.from
}

// ABI returns the bound ABI
func (c *Contract) ABI() *abi.ABI {
	return c.abi
}

// Pack encodes a method call
func (c *Contract) Pack(method string, args ...any) ([]byte, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s.%s: %w", c.Name, method, err)
	}
	return data, nil
}

// Call performs an eth_call and unpacks the outputs
func (c *Contract) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := c.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	out, err := c.backend.Call(ctx, domain.CallMsg{From: c.from, To: c.Address, Data: data})
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.Name, method, err)
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s.%s: %w", c.Name, method, err)
	}
	return values, nil
}

// CallInto performs an eth_call and copies multiple named outputs into out,
// which must be a pointer to a struct with matching fields.
func (c *Contract) CallInto(ctx context.Context, out any, method string, args ...any) error {
	data, err := c.Pack(method, args...)
	if err != nil {
		return err
	}

	raw, err := c.backend.Call(ctx, domain.CallMsg{From: c.from, To: c.Address, Data: data})
	if err != nil {
		return fmt.Errorf("%s.%s: %w", c.Name, method, err)
	}

	if err := c.abi.UnpackIntoInterface(out, method, raw); err != nil {
		return fmt.Errorf("failed to unpack %s.%s: %w", c.Name, method, err)
	}
	return nil
}

// Transact sends a transaction calling method and waits for it to be mined
func (c *Contract) Transact(ctx context.Context, method string, args ...any) (*domain.Receipt, error) {
	data, err := c.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	receipt, err := c.backend.Transact(ctx, domain.TxRequest{
		From:   c.from,
		To:     c.Address,
		Data:   data,
		Method: c.Name + "." + method,
	})
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.Name, method, err)
	}
	return receipt, nil
}

// CallAs calls a method with a single output and converts it to T
func CallAs[T any](ctx context.Context, c *Contract, method string, args ...any) (T, error) {
	var zero T

	values, err := c.Call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	if len(values) != 1 {
		return zero, fmt.Errorf("%s.%s returned %d values, expected 1", c.Name, method, len(values))
	}

	converted, ok := values[0].(T)
	if !ok {
		return zero, fmt.Errorf("%s.%s returned %T, expected %T", c.Name, method, values[0], zero)
	}
	return converted, nil
}

// HubRoutes are the component addresses of a fund returned by Hub.routes()
type HubRoutes struct {
	Accounting    common.Address
	FeeManager    common.Address
	Participation common.Address
	PolicyManager common.Address
	Shares        common.Address
	Trading       common.Address
	Vault         common.Address
	PriceSource   common.Address
	Registry      common.Address
	Version       common.Address
	Engine        common.Address
	MlnToken      common.Address
}
