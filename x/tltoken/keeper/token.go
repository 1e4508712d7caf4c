package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/tltoken/types"
)

// Symbol returns the token symbol.
func (k Keeper) Symbol(ctx context.Context) (string, error) {
	meta, err := k.Metadata.Get(ctx)
	if err != nil {
		return "", err
	}
	return meta.Symbol, nil
}

// TotalSupply returns the amount of tokens in existence.
func (k Keeper) TotalSupply(ctx context.Context) (math.Int, error) {
	return k.getOrZero(ctx, k.Supply.Get)
}

// BalanceOf returns the balance of owner. Unknown accounts hold zero.
func (k Keeper) BalanceOf(ctx context.Context, owner sdk.Address) (math.Int, error) {
	bal, err := k.Balances.Get(ctx, owner)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return bal, err
}

// Allowance returns how much spender may still move on behalf of owner.
func (k Keeper) Allowance(ctx context.Context, owner, spender sdk.Address) (math.Int, error) {
	amt, err := k.Allowances.Get(ctx, collections.Join(owner, spender))
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return amt, err
}

// Transfer moves amount from the balance of from to the balance of to.
func (k Keeper) Transfer(ctx context.Context, from, to sdk.Address, amount math.Int) error {
	if from.IsZero() || to.IsZero() {
		return errorsmod.Wrap(types.ErrInvalidAddress, "transfer from or to the zero address")
	}
	if err := validAmount(amount); err != nil {
		return err
	}

	fromBal, err := k.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "%s has %s, needs %s", from, fromBal, amount)
	}
	if err := k.Balances.Set(ctx, from, fromBal.Sub(amount)); err != nil {
		return err
	}

	toBal, err := k.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	if err := k.Balances.Set(ctx, to, toBal.Add(amount)); err != nil {
		return err
	}

	return k.emitTransfer(ctx, from, to, amount)
}

// TransferFrom moves amount from from to to, spending the allowance granted
// by from to spender.
func (k Keeper) TransferFrom(ctx context.Context, spender, from, to sdk.Address, amount math.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	allowed, err := k.Allowance(ctx, from, spender)
	if err != nil {
		return err
	}
	if allowed.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientAllowance, "%s allowed %s to spend %s, needs %s", from, spender, allowed, amount)
	}

	tmpCtx, commit := ledger.CacheContext(ctx)
	if err := k.setAllowance(tmpCtx, from, spender, allowed.Sub(amount)); err != nil {
		return err
	}
	if err := k.Transfer(tmpCtx, from, to, amount); err != nil {
		return err
	}
	commit()
	return nil
}

// Approve sets the allowance of spender over the tokens of owner.
func (k Keeper) Approve(ctx context.Context, owner, spender sdk.Address, amount math.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return errorsmod.Wrap(types.ErrInvalidAddress, "approve from or to the zero address")
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	return k.setAllowance(ctx, owner, spender, amount)
}

// IncreaseAllowance atomically raises the allowance of spender.
func (k Keeper) IncreaseAllowance(ctx context.Context, owner, spender sdk.Address, added math.Int) error {
	cur, err := k.Allowance(ctx, owner, spender)
	if err != nil {
		return err
	}
	if err := validAmount(added); err != nil {
		return err
	}
	return k.Approve(ctx, owner, spender, cur.Add(added))
}

// DecreaseAllowance atomically lowers the allowance of spender. It fails
// rather than going below zero.
func (k Keeper) DecreaseAllowance(ctx context.Context, owner, spender sdk.Address, subtracted math.Int) error {
	cur, err := k.Allowance(ctx, owner, spender)
	if err != nil {
		return err
	}
	if err := validAmount(subtracted); err != nil {
		return err
	}
	if cur.LT(subtracted) {
		return errorsmod.Wrap(types.ErrInsufficientAllowance, "decreased allowance below zero")
	}
	return k.Approve(ctx, owner, spender, cur.Sub(subtracted))
}

// Mint creates amount tokens for to. Only genesis mints.
func (k Keeper) Mint(ctx context.Context, to sdk.Address, amount math.Int) error {
	if to.IsZero() {
		return errorsmod.Wrap(types.ErrInvalidAddress, "mint to the zero address")
	}
	if err := validAmount(amount); err != nil {
		return err
	}

	supply, err := k.TotalSupply(ctx)
	if err != nil {
		return err
	}
	if err := k.Supply.Set(ctx, supply.Add(amount)); err != nil {
		return err
	}

	bal, err := k.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	if err := k.Balances.Set(ctx, to, bal.Add(amount)); err != nil {
		return err
	}

	return k.emitTransfer(ctx, sdk.ZeroAddress, to, amount)
}

func (k Keeper) setAllowance(ctx context.Context, owner, spender sdk.Address, amount math.Int) error {
	if err := k.Allowances.Set(ctx, collections.Join(owner, spender), amount); err != nil {
		return err
	}

	event, err := types.NewApprovalEvent(types.ApprovalEvent{Owner: owner, Spender: spender, Value: amount})
	if err != nil {
		return err
	}
	ledger.EmitEvent(ctx, event)
	return nil
}

func (k Keeper) emitTransfer(ctx context.Context, from, to sdk.Address, amount math.Int) error {
	event, err := types.NewTransferEvent(types.TransferEvent{From: from, To: to, Value: amount})
	if err != nil {
		return err
	}
	ledger.EmitEvent(ctx, event)
	return nil
}

func (k Keeper) getOrZero(ctx context.Context, get func(context.Context) (math.Int, error)) (math.Int, error) {
	v, err := get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return v, err
}

func validAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "amount must be non-negative, got %v", amount)
	}
	return nil
}
