package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

// RevealedTicketIds lists the revealed tickets of round in id order.
func (k Keeper) RevealedTicketIds(ctx context.Context, round uint64) ([]uint64, error) {
	var ids []uint64
	rng := collections.NewPrefixedPairRange[uint64, uint64](round)
	err := k.RevealedTickets.Walk(ctx, rng, func(key collections.Pair[uint64, uint64]) (bool, error) {
		ids = append(ids, key.K2())
		return false, nil
	})
	return ids, err
}

// rankedTickets returns the revealed tickets of round in draw order.
func (k Keeper) rankedTickets(ctx context.Context, round uint64) ([]uint64, error) {
	ids, err := k.RevealedTicketIds(ctx, round)
	if err != nil {
		return nil, err
	}
	entropy, err := k.GetEntropy(ctx, round)
	if err != nil {
		return nil, err
	}
	return types.RankTickets(entropy, ids), nil
}

// Outcome returns the prize of ticket id. The round must be closed and the
// ticket must have been revealed.
func (k Keeper) Outcome(ctx context.Context, id uint64) (math.Int, error) {
	ticket, err := k.GetTicket(ctx, id)
	if err != nil {
		return math.Int{}, err
	}
	return k.outcome(ctx, ticket)
}

func (k Keeper) outcome(ctx context.Context, ticket types.Ticket) (math.Int, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}
	if err := requireClosed(ctx, params, ticket.Round); err != nil {
		return math.Int{}, err
	}
	if !ticket.State.WasRevealed() {
		return math.Int{}, errorsmod.Wrapf(types.ErrTicketNotRevealed, "ticket %d is %s", ticket.Id, ticket.State)
	}

	ranked, err := k.rankedTickets(ctx, ticket.Round)
	if err != nil {
		return math.Int{}, err
	}
	pool, err := k.GetTotalCollected(ctx, ticket.Round)
	if err != nil {
		return math.Int{}, err
	}

	for i, id := range ranked {
		if id == ticket.Id {
			return types.PrizeForRank(pool, i+1, len(ranked)), nil
		}
	}
	return math.Int{}, errorsmod.Wrapf(types.ErrTicketNotRevealed, "ticket %d is missing from the draw of round %d", ticket.Id, ticket.Round)
}

// CollectPrize credits the prize of ticket id to its owner's escrow and marks
// the ticket claimed.
func (k Keeper) CollectPrize(ctx context.Context, caller sdk.Address, id uint64) (math.Int, error) {
	ticket, err := k.GetTicket(ctx, id)
	if err != nil {
		return math.Int{}, err
	}
	if ticket.Owner != caller {
		return math.Int{}, errorsmod.Wrapf(types.ErrNotTicketOwner, "ticket %d", id)
	}
	if ticket.State == types.TicketStateClaimed {
		return math.Int{}, errorsmod.Wrapf(types.ErrAlreadyClaimed, "ticket %d", id)
	}

	prize, err := k.outcome(ctx, ticket)
	if err != nil {
		return math.Int{}, err
	}

	tmpCtx, commit := ledger.CacheContext(ctx)

	if err := k.setTicketState(tmpCtx, &ticket, types.TicketStateClaimed); err != nil {
		return math.Int{}, err
	}
	if _, err := k.credit(tmpCtx, caller, prize); err != nil {
		return math.Int{}, err
	}
	paid, err := k.GetPrizesPaid(tmpCtx, ticket.Round)
	if err != nil {
		return math.Int{}, err
	}
	if err := k.PrizesPaid.Set(tmpCtx, ticket.Round, paid.Add(prize)); err != nil {
		return math.Int{}, err
	}

	if err := k.emitTicketEvent(tmpCtx, types.EventTypePrizeCollected, ticket, prize); err != nil {
		return math.Int{}, err
	}

	commit()

	k.Logger().Info("Prize collected", "id", id, "round", ticket.Round, "prize", prize.String())
	return prize, nil
}

// IthWinningTicket returns the ticket at rank i (1 based) of a closed round
// and its prize.
func (k Keeper) IthWinningTicket(ctx context.Context, round, i uint64) (uint64, math.Int, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, math.Int{}, err
	}
	if err := requireClosed(ctx, params, round); err != nil {
		return 0, math.Int{}, err
	}

	ranked, err := k.rankedTickets(ctx, round)
	if err != nil {
		return 0, math.Int{}, err
	}
	if i == 0 || i > uint64(len(ranked)) {
		return 0, math.Int{}, errorsmod.Wrapf(types.ErrUnknownTicket, "round %d has %d revealed tickets, asked for rank %d", round, len(ranked), i)
	}

	pool, err := k.GetTotalCollected(ctx, round)
	if err != nil {
		return 0, math.Int{}, err
	}
	return ranked[i-1], types.PrizeForRank(pool, int(i), len(ranked)), nil
}

// GetRoundInfo summarizes round at the time of the running operation.
func (k Keeper) GetRoundInfo(ctx context.Context, round uint64) (types.RoundInfo, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.RoundInfo{}, err
	}
	entropy, err := k.GetEntropy(ctx, round)
	if err != nil {
		return types.RoundInfo{}, err
	}
	pool, err := k.GetTotalCollected(ctx, round)
	if err != nil {
		return types.RoundInfo{}, err
	}
	paid, err := k.GetPrizesPaid(ctx, round)
	if err != nil {
		return types.RoundInfo{}, err
	}
	ids, err := k.RevealedTicketIds(ctx, round)
	if err != nil {
		return types.RoundInfo{}, err
	}

	return types.RoundInfo{
		Schedule:       params.Schedule(round),
		Closed:         params.IsRoundClosed(round, now(ctx)),
		Entropy:        entropy,
		TotalCollected: pool,
		PrizesPaid:     paid,
		RevealedCount:  uint64(len(ids)),
	}, nil
}
