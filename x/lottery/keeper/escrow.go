package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

// GetBalance returns the escrow balance of owner.
func (k Keeper) GetBalance(ctx context.Context, owner sdk.Address) (math.Int, error) {
	bal, err := k.Balances.Get(ctx, owner)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return bal, err
}

// Deposit pulls amount TL from owner into escrow. Owner must have approved
// the module address as spender.
func (k Keeper) Deposit(ctx context.Context, owner sdk.Address, amount math.Int) (math.Int, error) {
	if err := validAmount(amount); err != nil {
		return math.Int{}, err
	}
	if amount.IsZero() {
		return k.GetBalance(ctx, owner)
	}

	tmpCtx, commit := ledger.CacheContext(ctx)

	if err := k.tokenKeeper.TransferFrom(tmpCtx, k.moduleAddress, owner, k.moduleAddress, amount); err != nil {
		return math.Int{}, errorsmod.Wrapf(types.ErrTransferFailed, "deposit of %s from %s: %s", amount, owner, err)
	}
	balance, err := k.credit(tmpCtx, owner, amount)
	if err != nil {
		return math.Int{}, err
	}
	if err := k.emitEscrowEvent(tmpCtx, types.EventTypeDeposit, owner, amount, balance); err != nil {
		return math.Int{}, err
	}

	commit()

	k.Logger().Info("TL deposited", "owner", owner.String(), "amount", amount.String(), "balance", balance.String())
	return balance, nil
}

// Withdraw pushes amount TL from escrow back to owner.
func (k Keeper) Withdraw(ctx context.Context, owner sdk.Address, amount math.Int) (math.Int, error) {
	if err := validAmount(amount); err != nil {
		return math.Int{}, err
	}
	if amount.IsZero() {
		return k.GetBalance(ctx, owner)
	}

	tmpCtx, commit := ledger.CacheContext(ctx)

	balance, err := k.debit(tmpCtx, owner, amount)
	if err != nil {
		return math.Int{}, err
	}
	if err := k.tokenKeeper.Transfer(tmpCtx, k.moduleAddress, owner, amount); err != nil {
		return math.Int{}, errorsmod.Wrapf(types.ErrTransferFailed, "withdrawal of %s to %s: %s", amount, owner, err)
	}
	if err := k.emitEscrowEvent(tmpCtx, types.EventTypeWithdraw, owner, amount, balance); err != nil {
		return math.Int{}, err
	}

	commit()

	k.Logger().Info("TL withdrawn", "owner", owner.String(), "amount", amount.String(), "balance", balance.String())
	return balance, nil
}

// debit removes amount from the escrow of owner and returns the new balance.
func (k Keeper) debit(ctx context.Context, owner sdk.Address, amount math.Int) (math.Int, error) {
	bal, err := k.GetBalance(ctx, owner)
	if err != nil {
		return math.Int{}, err
	}
	if amount.GT(bal) {
		return math.Int{}, errorsmod.Wrapf(types.ErrInsufficientBalance, "%s has %s in escrow, needs %s", owner, bal, amount)
	}

	bal = bal.Sub(amount)
	if err := k.Balances.Set(ctx, owner, bal); err != nil {
		return math.Int{}, err
	}
	return bal, nil
}

// credit adds amount to the escrow of owner and returns the new balance.
func (k Keeper) credit(ctx context.Context, owner sdk.Address, amount math.Int) (math.Int, error) {
	bal, err := k.GetBalance(ctx, owner)
	if err != nil {
		return math.Int{}, err
	}

	bal = bal.Add(amount)
	if err := k.Balances.Set(ctx, owner, bal); err != nil {
		return math.Int{}, err
	}
	return bal, nil
}

func (k Keeper) emitEscrowEvent(ctx context.Context, ty string, owner sdk.Address, amount, balance math.Int) error {
	event, err := types.NewEscrowEvent(ty, types.EscrowEvent{Owner: owner, Amount: amount, Balance: balance})
	if err != nil {
		return err
	}
	ledger.EmitEvent(ctx, event)
	return nil
}

func validAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrap(types.ErrInvalidAmount, "amount must be a non-negative integer")
	}
	return nil
}
