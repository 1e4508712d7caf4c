package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/tl-lottery/ledger"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

// now is the block time of the running operation in unix seconds.
func now(ctx context.Context) int64 {
	return ledger.BlockTime(ctx).Unix()
}

// GetParams returns the lottery configuration.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.Params{}, errorsmod.Wrap(err, "failed to get params")
	}
	return params, nil
}

// GetLotteryNo returns the round containing unix time ts.
func (k Keeper) GetLotteryNo(ctx context.Context, ts int64) (uint64, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}
	return params.RoundNo(ts)
}

// CurrentRound returns the round of the running operation.
func (k Keeper) CurrentRound(ctx context.Context) (uint64, error) {
	return k.GetLotteryNo(ctx, now(ctx))
}

// IsPurchaseActive reports whether tickets can be bought right now.
func (k Keeper) IsPurchaseActive(ctx context.Context) (bool, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return false, err
	}
	return params.IsPurchaseActive(now(ctx)), nil
}

// IsRevealActive reports whether tickets can be revealed or refunded right now.
func (k Keeper) IsRevealActive(ctx context.Context) (bool, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return false, err
	}
	return params.IsRevealActive(now(ctx)), nil
}

// requirePhase fails with ErrWrongPhase unless the running operation is in
// phase of round.
func requirePhase(ctx context.Context, params types.Params, round uint64, phase types.Phase) error {
	t := now(ctx)

	current, err := params.RoundNo(t)
	if err != nil {
		return errorsmod.Wrapf(types.ErrWrongPhase, "lottery has not started (starts at %d)", params.RoundZeroStart)
	}
	if current != round || params.PhaseAt(t) != phase {
		return errorsmod.Wrapf(types.ErrWrongPhase, "%s of round %d is not active (round %d, %s)", phase, round, current, params.PhaseAt(t))
	}
	return nil
}

// requireClosed fails with ErrRoundNotClosed while round is still running.
func requireClosed(ctx context.Context, params types.Params, round uint64) error {
	if !params.IsRoundClosed(round, now(ctx)) {
		return errorsmod.Wrapf(types.ErrRoundNotClosed, "round %d closes at %d", round, params.Schedule(round).End)
	}
	return nil
}
