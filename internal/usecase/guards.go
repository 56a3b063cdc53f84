package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/fundops/internal/contracts"
	"github.com/trebuchet-org/fundops/internal/domain"
	"github.com/trebuchet-org/fundops/internal/domain/models"
)

// Guard check names reported in PreconditionError.Check
const (
	CheckSufficientBalance = "sufficient-balance"
	CheckFundOwner         = "fund-owner"
	CheckNotShutDown       = "not-shut-down"
	CheckTakePermitted     = "take-permitted"
)

func ensureSufficientBalance(ctx context.Context, backend contracts.Backend, quantity models.Quantity, holder common.Address) error {
	quantity = quantity.Normalized()
	token, err := contracts.Bind(contracts.ERC20, quantity.Token.Address, backend)
	if err != nil {
		return err
	}

	balance, err := contracts.CallAs[*big.Int](ctx, token, "balanceOf", holder)
	if err != nil {
		return err
	}
	if balance.Cmp(quantity.Amount) < 0 {
		return domain.NewPreconditionError(CheckSufficientBalance,
			"insufficient %s: %s has %s, needs %s", quantity.Token.Symbol, holder.Hex(), balance, quantity.Amount)
	}
	return nil
}

func ensureFundOwner(ctx context.Context, hub *contracts.Contract, from common.Address) error {
	manager, err := contracts.CallAs[common.Address](ctx, hub, "manager")
	if err != nil {
		return err
	}
	if manager != from {
		return domain.NewPreconditionError(CheckFundOwner,
			"%s is not the manager of fund %s (manager is %s)", from.Hex(), hub.Address.Hex(), manager.Hex())
	}
	return nil
}

func ensureIsNotShutDown(ctx context.Context, hub *contracts.Contract) error {
	shutDown, err := contracts.CallAs[bool](ctx, hub, "isShutDown")
	if err != nil {
		return err
	}
	if shutDown {
		return domain.NewPreconditionError(CheckNotShutDown, "fund %s is shut down", hub.Address.Hex())
	}
	return nil
}

// takePermission is the policy manager pre-validation of a take order
type takePermission struct {
	Selector      [4]byte
	Addresses     [5]common.Address
	Values        [3]*big.Int
	Identifier    [32]byte
	PolicyManager common.Address
}

func ensureTakePermitted(ctx context.Context, backend contracts.Backend, from common.Address, p takePermission) error {
	policyManager, err := contracts.Bind(contracts.LegacyPolicyManager, p.PolicyManager, backend)
	if err != nil {
		return err
	}

	_, err = policyManager.Connect(from).Call(ctx, "preValidate", p.Selector, p.Addresses, p.Values, p.Identifier)
	if err == nil {
		return nil
	}

	var revert *domain.RevertError
	if errors.As(err, &revert) {
		reason := revert.Reason
		if reason == "" {
			reason = "rejected by policy manager"
		}
		return domain.NewPreconditionError(CheckTakePermitted, "%s", reason)
	}
	return fmt.Errorf("failed to pre-validate take order: %w", err)
}
