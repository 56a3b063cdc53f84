package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/config"
	"github.com/trebuchet-org/fundops/internal/usecase"
)

// Backend is what the client needs from a node connection. Both
// *ethclient.Client and the simulated backend's client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// KeyStore gives access to the signing keys of named accounts
type KeyStore interface {
	PrivateKey(address common.Address) (*ecdsa.PrivateKey, error)
}

// Client implements ChainClient on top of go-ethereum's bind package.
// Sends are serialized so concurrent callers never race on nonces.
type Client struct {
	keys KeyStore
	log  *slog.Logger

	// connMu guards backend and chainID. Failures are not cached so a later
	// call dials again.
	connMu  sync.Mutex
	dial    func(ctx context.Context) (Backend, error)
	backend Backend
	chainID *big.Int

	sendMu    sync.Mutex
	afterSend func()
}

// Option configures a Client
type Option func(*Client)

// WithAfterSend runs fn after every broadcast, before waiting for the receipt.
// The simulated backend uses it to mine a block.
func WithAfterSend(fn func()) Option {
	return func(c *Client) {
		c.afterSend = fn
	}
}

// NewClient creates a client over an existing backend
func NewClient(backend Backend, keys KeyStore, log *slog.Logger, opts ...Option) *Client {
	return NewClientWithDialer(func(context.Context) (Backend, error) { return backend, nil }, keys, log, opts...)
}

// NewClientWithDialer creates a client that connects with dial on first use
func NewClientWithDialer(dial func(ctx context.Context) (Backend, error), keys KeyStore, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		keys: keys,
		log:  log,
		dial: dial,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a client for the selected network. The node is
// dialed on first use, so commands that never touch the chain work without
// --network. The returned cleanup closes the connection.
func NewClientFromConfig(cfg *config.RuntimeConfig, keys KeyStore, log *slog.Logger) (*Client, func()) {
	var eth *ethclient.Client
	c := NewClientWithDialer(func(ctx context.Context) (Backend, error) {
		conn, err := dial(ctx, cfg.Network, log)
		if err != nil {
			return nil, err
		}
		eth = conn
		return conn, nil
	}, keys, log)
	return c, func() {
		if eth != nil {
			eth.Close()
		}
	}
}

// dial connects to the RPC endpoint of a network and checks its chain ID
func dial(ctx context.Context, network *config.Network, log *slog.Logger) (*ethclient.Client, error) {
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	eth, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to get chain ID of %s: %w", network.Name, err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		eth.Close()
		return nil, fmt.Errorf("chain ID mismatch on %s: expected %d, got %d", network.Name, network.ChainID, chainID)
	}

	log.Debug("connected", "network", network.Name, "chainId", chainID)
	return eth, nil
}

func (c *Client) conn(ctx context.Context) (Backend, error) {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}
	backend, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	c.backend = backend
	return backend, nil
}

// ChainID returns the chain ID of the connected node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	backend, err := c.conn(ctx)
	if err != nil {
		return 0, err
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.chainID == nil {
		chainID, err := backend.ChainID(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get chain ID: %w", err)
		}
		c.chainID = chainID
	}
	return c.chainID.Uint64(), nil
}

// Call performs an eth_call against the latest block
func (c *Client) Call(ctx context.Context, msg domain.CallMsg) ([]byte, error) {
	backend, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	to := msg.To
	out, err := backend.CallContract(ctx, ethereum.CallMsg{
		From: msg.From,
		To:   &to,
		Data: msg.Data,
	}, nil)
	if err != nil {
		return nil, asRevert("eth_call", err)
	}
	return out, nil
}

// Transact signs and sends a transaction from req.From and waits for it to be mined
func (c *Client) Transact(ctx context.Context, req domain.TxRequest) (*domain.Receipt, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	opts, err := c.transactOpts(ctx, req.From)
	if err != nil {
		return nil, err
	}
	if req.Value != nil {
		opts.Value = req.Value
	}

	bound := bind.NewBoundContract(req.To, abi.ABI{}, c.backend, c.backend, c.backend)
	tx, err := bound.RawTransact(opts, req.Data)
	if err != nil {
		return nil, asRevert(req.Method, err)
	}
	c.log.Debug("sent transaction", "method", req.Method, "tx", tx.Hash().Hex(), "to", req.To.Hex())

	return c.wait(ctx, req.Method, tx)
}

// Deploy sends a contract creation and waits for it to be mined
func (c *Client) Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployResult, error) {
	parsed, err := req.Artifact.ParsedABI()
	if err != nil {
		return nil, err
	}
	bytecode, err := req.Artifact.BytecodeBytes()
	if err != nil {
		return nil, err
	}
	packedArgs, err := parsed.Pack("", req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack constructor args of %s: %w", req.Artifact.ContractName, err)
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	opts, err := c.transactOpts(ctx, req.From)
	if err != nil {
		return nil, err
	}

	method := req.Artifact.ContractName + ".constructor"
	address, tx, _, err := bind.DeployContract(opts, *parsed, bytecode, c.backend, req.Args...)
	if err != nil {
		return nil, asRevert(method, err)
	}
	c.log.Debug("sent deployment", "contract", req.Artifact.ContractName, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := c.wait(ctx, method, tx)
	if err != nil {
		return nil, err
	}

	return &domain.DeployResult{
		Address:         address,
		TransactionHash: tx.Hash(),
		ConstructorArgs: packedArgs,
		Receipt:         receipt,
	}, nil
}

func (c *Client) transactOpts(ctx context.Context, from common.Address) (*bind.TransactOpts, error) {
	key, err := c.keys.PrivateKey(from)
	if err != nil {
		return nil, err
	}
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor for %s: %w", from.Hex(), err)
	}
	opts.Context = ctx
	return opts, nil
}

func (c *Client) wait(ctx context.Context, method string, tx *types.Transaction) (*domain.Receipt, error) {
	if c.afterSend != nil {
		c.afterSend()
	}

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s (tx %s): %w", method, tx.Hash().Hex(), err)
	}

	result := &domain.Receipt{
		TransactionHash: receipt.TxHash,
		BlockNumber:     receipt.BlockNumber.Uint64(),
		GasUsed:         receipt.GasUsed,
		Status:          receipt.Status,
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return result, &domain.RevertError{Method: method, TxHash: receipt.TxHash.Hex(), Reason: "transaction failed"}
	}
	return result, nil
}

// asRevert turns an execution-reverted node error into a RevertError,
// decoding the Error(string) reason when the node returns revert data
func asRevert(method string, err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if reason, ok := revertReason(dataErr.ErrorData()); ok {
			return &domain.RevertError{Method: method, Reason: reason, Err: err}
		}
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return &domain.RevertError{Method: method, Err: err}
	}
	return err
}

func revertReason(data any) (string, bool) {
	s, ok := data.(string)
	if !ok {
		return "", false
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return "", false
	}
	reason, err := abi.UnpackRevert(raw)
	if err != nil {
		return "", false
	}
	return reason, true
}

// Ensure Client implements ChainClient
var _ usecase.ChainClient = (*Client)(nil)
