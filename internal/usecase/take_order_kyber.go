package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
	"github.com/trebuchet-org/fundops/pkg/encoding"
)

// TakeOrderSignature is the exchange adapter method called through callOnExchange
const TakeOrderSignature = "takeOrder(address,address[6],uint256[8],bytes32,bytes,bytes,bytes)"

// KyberAdapterName is the deployment name of the Kyber exchange adapter
const KyberAdapterName = "KyberAdapter"

// TakeOrderOnKyberArgs describes an order taken on Kyber by a fund
type TakeOrderOnKyberArgs struct {
	MakerQuantity models.Quantity
	TakerQuantity models.Quantity
	// FillTakerQuantity defaults to TakerQuantity
	FillTakerQuantity *models.Quantity
	// Adapter is the Kyber adapter registered on the fund's trading component
	Adapter common.Address
}

func (a TakeOrderOnKyberArgs) fillTaker() models.Quantity {
	if a.FillTakerQuantity != nil {
		return a.FillTakerQuantity.Normalized()
	}
	return a.TakerQuantity.Normalized()
}

// normalized replaces nil amounts with zero
func (a TakeOrderOnKyberArgs) normalized() TakeOrderOnKyberArgs {
	a.MakerQuantity = a.MakerQuantity.Normalized()
	a.TakerQuantity = a.TakerQuantity.Normalized()
	if a.FillTakerQuantity != nil {
		fill := a.FillTakerQuantity.Normalized()
		a.FillTakerQuantity = &fill
	}
	return a
}

// TakeOrderOnKyberTx calls Trading.callOnExchange with a Kyber take order
var TakeOrderOnKyberTx = TransactionFactory[TakeOrderOnKyberArgs]{
	Method:   "callOnExchange",
	Contract: contracts.Trading,
	Guard:    guardTakeOrderOnKyber,
	Prepare:  prepareTakeOrderOnKyber,
}

func guardTakeOrderOnKyber(ctx context.Context, env TxEnv, args TakeOrderOnKyberArgs, trading *contracts.Contract) error {
	args = args.normalized()
	hub, err := fundHub(ctx, env, trading)
	if err != nil {
		return err
	}

	var routes contracts.HubRoutes
	if err := hub.CallInto(ctx, &routes, "routes"); err != nil {
		return err
	}

	if err := ensureSufficientBalance(ctx, env.Backend, args.TakerQuantity, routes.Vault); err != nil {
		return err
	}
	if err := ensureFundOwner(ctx, hub, env.From); err != nil {
		return err
	}
	if err := ensureIsNotShutDown(ctx, hub); err != nil {
		return err
	}

	_, exchange, err := exchangeIndex(ctx, trading, args.Adapter)
	if err != nil {
		return err
	}

	return ensureTakePermitted(ctx, env.Backend, env.From, takePermission{
		Selector: encoding.Sighash(TakeOrderSignature),
		Addresses: [5]common.Address{
			{},
			trading.Address,
			args.MakerQuantity.Token.Address,
			args.TakerQuantity.Token.Address,
			exchange,
		},
		Values: [3]*big.Int{
			args.MakerQuantity.Amount,
			args.TakerQuantity.Amount,
			args.fillTaker().Amount,
		},
		PolicyManager: routes.PolicyManager,
	})
}

func prepareTakeOrderOnKyber(ctx context.Context, _ TxEnv, args TakeOrderOnKyberArgs, trading *contracts.Contract) ([]any, error) {
	args = args.normalized()
	index, _, err := exchangeIndex(ctx, trading, args.Adapter)
	if err != nil {
		return nil, err
	}

	zero := new(big.Int)
	empty := make([]byte, 32)

	return []any{
		big.NewInt(int64(index)),
		TakeOrderSignature,
		[6]common.Address{
			{},
			{},
			args.MakerQuantity.Token.Address,
			args.TakerQuantity.Token.Address,
			{},
			{},
		},
		[8]*big.Int{
			args.MakerQuantity.Amount,
			args.TakerQuantity.Amount,
			zero, zero, zero, zero,
			args.fillTaker().Amount,
			zero,
		},
		encoding.HashZero,
		empty,
		empty,
		empty,
	}, nil
}

func fundHub(ctx context.Context, env TxEnv, component *contracts.Contract) (*contracts.Contract, error) {
	hubAddress, err := contracts.CallAs[common.Address](ctx, component, "hub")
	if err != nil {
		return nil, err
	}
	hub, err := contracts.Bind(contracts.Hub, hubAddress, env.Backend)
	if err != nil {
		return nil, err
	}
	return hub.Connect(env.From), nil
}

// exchangeIndex finds the adapter among the exchanges registered on trading
func exchangeIndex(ctx context.Context, trading *contracts.Contract, adapter common.Address) (int, common.Address, error) {
	values, err := trading.Call(ctx, "getExchangeInfo")
	if err != nil {
		return 0, common.Address{}, err
	}
	if len(values) != 3 {
		return 0, common.Address{}, fmt.Errorf("getExchangeInfo returned %d values", len(values))
	}
	exchanges, _ := values[0].([]common.Address)
	adapters, _ := values[1].([]common.Address)

	for i, a := range adapters {
		if a == adapter && i < len(exchanges) {
			return i, exchanges[i], nil
		}
	}
	return 0, common.Address{}, fmt.Errorf("adapter %s is not registered on %s: %w", adapter.Hex(), trading.Address.Hex(), domain.ErrNotFound)
}

// TakeOrderOnKyber sends a Kyber take order from a fund manager account
type TakeOrderOnKyber struct {
	chain    ChainClient
	registry *DeploymentRegistry
}

// NewTakeOrderOnKyber creates a new take order use case
func NewTakeOrderOnKyber(chain ChainClient, registry *DeploymentRegistry) *TakeOrderOnKyber {
	return &TakeOrderOnKyber{chain: chain, registry: registry}
}

// Execute resolves the Kyber adapter when unset and sends the order
func (uc *TakeOrderOnKyber) Execute(ctx context.Context, trading, from common.Address, args TakeOrderOnKyberArgs) (*domain.Receipt, error) {
	if args.Adapter == (common.Address{}) {
		adapter, err := uc.registry.Get(ctx, KyberAdapterName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", KyberAdapterName, err)
		}
		args.Adapter = adapter.Address
	}

	return TakeOrderOnKyberTx.Send(ctx, TxEnv{Backend: uc.chain, From: from}, trading, args)
}
