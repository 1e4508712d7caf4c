package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

// commit binds commitment to a freshly minted ticket. A ticket is committed
// exactly once.
func (k Keeper) commit(ticket *types.Ticket, commitment types.Hash) error {
	if !ticket.Commitment.IsZero() {
		return errorsmod.Wrapf(types.ErrInvalidCommitment, "ticket %d is already committed", ticket.Id)
	}
	ticket.Commitment = commitment
	return nil
}

// RevealTicket opens the commitment of ticket id with secret. The ticket
// enters the draw of its round and the secret is folded into the round
// entropy.
func (k Keeper) RevealTicket(ctx context.Context, caller sdk.Address, id uint64, secret *uint256.Int) error {
	ticket, err := k.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if err := requirePhase(ctx, params, ticket.Round, types.PhaseReveal); err != nil {
		return err
	}
	if ticket.Owner != caller {
		return errorsmod.Wrapf(types.ErrNotTicketOwner, "ticket %d", id)
	}

	switch ticket.State {
	case types.TicketStateRevealed, types.TicketStateClaimed:
		return errorsmod.Wrapf(types.ErrAlreadyRevealed, "ticket %d", id)
	case types.TicketStateRefunded:
		return errorsmod.Wrapf(types.ErrAlreadyRefunded, "ticket %d", id)
	}

	if secret == nil || types.ComputeCommitment(secret, caller) != ticket.Commitment {
		return errorsmod.Wrapf(types.ErrCommitmentMismatch, "ticket %d", id)
	}

	tmpCtx, commit := ledger.CacheContext(ctx)

	if err := k.setTicketState(tmpCtx, &ticket, types.TicketStateRevealed); err != nil {
		return err
	}
	if err := k.RevealedTickets.Set(tmpCtx, collections.Join(ticket.Round, id)); err != nil {
		return err
	}
	if err := k.foldEntropy(tmpCtx, ticket.Round, types.EntropyOf(secret)); err != nil {
		return err
	}

	if err := k.emitTicketEvent(tmpCtx, types.EventTypeTicketRevealed, ticket, math.ZeroInt()); err != nil {
		return err
	}

	commit()

	k.Logger().Info("Ticket revealed", "id", id, "round", ticket.Round)
	return nil
}

// GetEntropy returns the entropy accumulator of round. It is zero until the
// first reveal.
func (k Keeper) GetEntropy(ctx context.Context, round uint64) (types.Hash, error) {
	bz, err := k.Entropy.Get(ctx, round)
	if errors.Is(err, collections.ErrNotFound) {
		return types.Hash{}, nil
	}
	if err != nil {
		return types.Hash{}, err
	}
	return types.HashFromBytes(bz)
}

func (k Keeper) foldEntropy(ctx context.Context, round uint64, contribution types.Hash) error {
	acc, err := k.GetEntropy(ctx, round)
	if err != nil {
		return err
	}
	acc = acc.Xor(contribution)
	return k.Entropy.Set(ctx, round, acc.Bytes())
}

// GetTotalCollected returns the prize pool of round.
func (k Keeper) GetTotalCollected(ctx context.Context, round uint64) (math.Int, error) {
	return getIntOrZero(ctx, k.TotalCollected, round)
}

// GetPrizesPaid returns the prizes already collected in round.
func (k Keeper) GetPrizesPaid(ctx context.Context, round uint64) (math.Int, error) {
	return getIntOrZero(ctx, k.PrizesPaid, round)
}

func (k Keeper) addToPool(ctx context.Context, round uint64, amount math.Int) error {
	pool, err := k.GetTotalCollected(ctx, round)
	if err != nil {
		return err
	}
	return k.TotalCollected.Set(ctx, round, pool.Add(amount))
}

func (k Keeper) removeFromPool(ctx context.Context, round uint64, amount math.Int) error {
	pool, err := k.GetTotalCollected(ctx, round)
	if err != nil {
		return err
	}
	if pool.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "round %d pool %s cannot cover %s", round, pool, amount)
	}
	return k.TotalCollected.Set(ctx, round, pool.Sub(amount))
}

func getIntOrZero(ctx context.Context, m collections.Map[uint64, math.Int], key uint64) (math.Int, error) {
	v, err := m.Get(ctx, key)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return v, err
}
