package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
)

// TxEnv is the chain and sender a transaction is built for
type TxEnv struct {
	Backend contracts.Backend
	From    common.Address
}

// GuardFunc checks preconditions before anything is sent. It returns a
// *domain.PreconditionError when a check fails.
type GuardFunc[A any] func(ctx context.Context, env TxEnv, args A, contract *contracts.Contract) error

// PrepareFunc computes the method arguments
type PrepareFunc[A any] func(ctx context.Context, env TxEnv, args A, contract *contracts.Contract) ([]any, error)

// TransactionFactory builds a contract transaction in three stages: guard,
// prepare and send.
type TransactionFactory[A any] struct {
	Method   string
	Contract string
	Guard    GuardFunc[A]
	Prepare  PrepareFunc[A]
}

// PrepareTx runs the guard and prepare stages and returns the unsigned call
func (f TransactionFactory[A]) PrepareTx(ctx context.Context, env TxEnv, address common.Address, args A) (*domain.TxRequest, error) {
	contract, err := contracts.Bind(f.Contract, address, env.Backend)
	if err != nil {
		return nil, err
	}
	contract = contract.Connect(env.From)

	if f.Guard != nil {
		if err := f.Guard(ctx, env, args, contract); err != nil {
			return nil, err
		}
	}

	var methodArgs []any
	if f.Prepare != nil {
		methodArgs, err = f.Prepare(ctx, env, args, contract)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare %s.%s: %w", f.Contract, f.Method, err)
		}
	}

	data, err := contract.Pack(f.Method, methodArgs...)
	if err != nil {
		return nil, err
	}

	return &domain.TxRequest{
		From:   env.From,
		To:     address,
		Data:   data,
		Method: f.Contract + "." + f.Method,
	}, nil
}

// Send prepares the transaction and waits for it to be mined
func (f TransactionFactory[A]) Send(ctx context.Context, env TxEnv, address common.Address, args A) (*domain.Receipt, error) {
	tx, err := f.PrepareTx(ctx, env, address, args)
	if err != nil {
		return nil, err
	}

	receipt, err := env.Backend.Transact(ctx, *tx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tx.Method, err)
	}
	return receipt, nil
}
