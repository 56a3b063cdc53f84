// Package chainfake is an in-process chain double for use case tests. It
// dispatches calldata by 4-byte selector to Go models of the protocol
// contracts, keyed by the embedded ABIs.
package chainfake

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/fundops/internal/domain"
)

// DefaultChainID is the chain id reported by New
const DefaultChainID = 1337

// Contract is a deployed model. Exec runs calldata and returns the encoded output.
type Contract interface {
	Exec(c *Context, data []byte) ([]byte, error)
}

// Factory creates a model from constructor args
type Factory func(deployer common.Address, args []any) (Contract, error)

// Context is the execution context of a call
type Context struct {
	chain  *Chain
	From   common.Address
	Self   common.Address
	Static bool
	Block  uint64
}

// Call executes a nested call from the current contract
func (c *Context) Call(to common.Address, data []byte) ([]byte, error) {
	return c.chain.exec(c.Self, to, data, c.Static)
}

// Chain is an in-memory chain with instant mining
type Chain struct {
	mu        sync.Mutex
	chainID   uint64
	block     uint64
	nonces    map[common.Address]uint64
	contracts map[common.Address]Contract
	factories map[string]Factory
	sent      []domain.TxRequest
	deployed  []domain.DeployRequest
}

// New creates a chain with factories for every embedded mock and protocol contract
func New() *Chain {
	c := &Chain{
		chainID:   DefaultChainID,
		nonces:    make(map[common.Address]uint64),
		contracts: make(map[common.Address]Contract),
		factories: make(map[string]Factory),
	}
	registerDefaultFactories(c)
	return c
}

// RegisterFactory makes contract deployable by artifact name
func (c *Chain) RegisterFactory(contract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[contract] = factory
}

// Install places a model at address
func (c *Chain) Install(address common.Address, contract Contract) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contracts[address] = contract
}

// At returns the model at address
func (c *Chain) At(address common.Address) (Contract, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	contract, ok := c.contracts[address]
	return contract, ok
}

// Transactions returns every transaction sent, including reverted ones
func (c *Chain) Transactions() []domain.TxRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.TxRequest(nil), c.sent...)
}

// Deployments returns every contract creation request
func (c *Chain) Deployments() []domain.DeployRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.DeployRequest(nil), c.deployed...)
}

// ChainID returns the chain id
func (c *Chain) ChainID(context.Context) (uint64, error) {
	return c.chainID, nil
}

// Call runs a read-only call
func (c *Chain) Call(ctx context.Context, msg domain.CallMsg) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exec(msg.From, msg.To, msg.Data, true)
}

// Transact runs a state-changing call and mines it into a new block
func (c *Chain) Transact(ctx context.Context, req domain.TxRequest) (*domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sent = append(c.sent, req)
	hash := c.txHash(req.From, req.Data)
	c.nonces[req.From]++
	c.block++

	if _, err := c.exec(req.From, req.To, req.Data, false); err != nil {
		var revert *domain.RevertError
		if errors.As(err, &revert) {
			revert.TxHash = hash.Hex()
			if req.Method != "" {
				revert.Method = req.Method
			}
		}
		return nil, err
	}

	return &domain.Receipt{
		TransactionHash: hash,
		BlockNumber:     c.block,
		GasUsed:         21000,
		Status:          domain.ReceiptStatusSuccessful,
	}, nil
}

// Deploy creates a model by artifact contract name at the CREATE address of the sender
func (c *Chain) Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Artifact == nil {
		return nil, fmt.Errorf("no artifact")
	}

	var ctorArgs []byte
	parsed, err := req.Artifact.ParsedABI()
	if err != nil {
		return nil, err
	}
	if len(parsed.Constructor.Inputs) > 0 || len(req.Args) > 0 {
		ctorArgs, err = parsed.Constructor.Inputs.Pack(req.Args...)
		if err != nil {
			return nil, fmt.Errorf("failed to pack constructor args of %s: %w", req.Artifact.ContractName, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	factory, ok := c.factories[req.Artifact.ContractName]
	if !ok {
		return nil, fmt.Errorf("no model for %s: %w", req.Artifact.ContractName, domain.ErrArtifactNotFound)
	}
	contract, err := factory(req.From, req.Args)
	if err != nil {
		return nil, err
	}

	c.deployed = append(c.deployed, req)
	nonce := c.nonces[req.From]
	address := crypto.CreateAddress(req.From, nonce)
	hash := c.txHash(req.From, ctorArgs)
	c.nonces[req.From]++
	c.block++
	c.contracts[address] = contract

	return &domain.DeployResult{
		Address:         address,
		TransactionHash: hash,
		ConstructorArgs: ctorArgs,
		Receipt: &domain.Receipt{
			TransactionHash: hash,
			BlockNumber:     c.block,
			GasUsed:         100000,
			Status:          domain.ReceiptStatusSuccessful,
		},
	}, nil
}

func (c *Chain) exec(from, to common.Address, data []byte, static bool) ([]byte, error) {
	contract, ok := c.contracts[to]
	if !ok {
		// Calls to accounts without code succeed with empty output
		return nil, nil
	}
	return contract.Exec(&Context{
		chain:  c,
		From:   from,
		Self:   to,
		Static: static,
		Block:  c.block,
	}, data)
}

func (c *Chain) txHash(from common.Address, data []byte) common.Hash {
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, c.nonces[from])
	return crypto.Keccak256Hash(from.Bytes(), nonce, data)
}

// Timestamp is the fake block time of block n
func Timestamp(block uint64) *big.Int {
	return new(big.Int).SetUint64(1_600_000_000 + block*15)
}
