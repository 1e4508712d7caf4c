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

// GetTicket returns the ticket with id.
func (k Keeper) GetTicket(ctx context.Context, id uint64) (types.Ticket, error) {
	ticket, err := k.Tickets.Get(ctx, id)
	if errors.Is(err, collections.ErrNotFound) {
		return types.Ticket{}, errorsmod.Wrapf(types.ErrUnknownTicket, "ticket %d", id)
	}
	return ticket, err
}

// OwnerOf returns the owner of ticket id.
func (k Keeper) OwnerOf(ctx context.Context, id uint64) (sdk.Address, error) {
	ticket, err := k.GetTicket(ctx, id)
	if err != nil {
		return sdk.Address{}, err
	}
	return ticket.Owner, nil
}

// MintTicket sells a ticket of the current round to owner, paying the
// ticket price from escrow.
func (k Keeper) MintTicket(ctx context.Context, owner sdk.Address, commitment types.Hash) (types.Ticket, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Ticket{}, err
	}

	t := now(ctx)
	if !params.IsPurchaseActive(t) {
		return types.Ticket{}, errorsmod.Wrapf(types.ErrWrongPhase, "purchase is not active (%s)", params.PhaseAt(t))
	}
	round, err := params.RoundNo(t)
	if err != nil {
		return types.Ticket{}, err
	}
	if commitment.IsZero() {
		return types.Ticket{}, errorsmod.Wrap(types.ErrInvalidCommitment, "commitment cannot be empty")
	}

	tmpCtx, commit := ledger.CacheContext(ctx)

	if _, err := k.debit(tmpCtx, owner, params.TicketPrice); err != nil {
		return types.Ticket{}, err
	}

	id, err := k.NextTicketId.Next(tmpCtx)
	if err != nil {
		return types.Ticket{}, errorsmod.Wrap(err, "failed to allocate ticket id")
	}

	ticket := types.Ticket{
		Id:          id,
		Round:       round,
		Owner:       owner,
		State:       types.TicketStateOpen,
		PurchasedAt: t,
	}
	if err := k.commit(&ticket, commitment); err != nil {
		return types.Ticket{}, err
	}
	if err := k.Tickets.Set(tmpCtx, id, ticket); err != nil {
		return types.Ticket{}, err
	}

	if err := k.addToPool(tmpCtx, round, params.TicketPrice); err != nil {
		return types.Ticket{}, err
	}
	if err := k.LastTicket.Set(tmpCtx, collections.Join(round, owner), id); err != nil {
		return types.Ticket{}, err
	}
	if err := k.OwnerTickets.Set(tmpCtx, collections.Join3(round, owner, id)); err != nil {
		return types.Ticket{}, err
	}

	if err := k.emitTicketEvent(tmpCtx, types.EventTypeTicketPurchased, ticket, params.TicketPrice); err != nil {
		return types.Ticket{}, err
	}

	commit()

	k.Logger().Info("Ticket purchased", "id", id, "round", round, "owner", owner.String())
	return ticket, nil
}

// RefundTicket forfeits an open ticket during its reveal window. Half the
// ticket price (rounded down) returns to the owner's escrow; the rest stays
// in the round's pool.
func (k Keeper) RefundTicket(ctx context.Context, caller sdk.Address, id uint64) (math.Int, error) {
	ticket, err := k.GetTicket(ctx, id)
	if err != nil {
		return math.Int{}, err
	}
	if ticket.Owner != caller {
		return math.Int{}, errorsmod.Wrapf(types.ErrNotTicketOwner, "ticket %d", id)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}
	if err := requirePhase(ctx, params, ticket.Round, types.PhaseReveal); err != nil {
		return math.Int{}, err
	}
	if ticket.State != types.TicketStateOpen {
		return math.Int{}, errorsmod.Wrapf(types.ErrAlreadyResolved, "ticket %d is %s", id, ticket.State)
	}

	tmpCtx, commit := ledger.CacheContext(ctx)

	refund := params.RefundAmount()
	if err := k.setTicketState(tmpCtx, &ticket, types.TicketStateRefunded); err != nil {
		return math.Int{}, err
	}
	if err := k.removeFromPool(tmpCtx, ticket.Round, refund); err != nil {
		return math.Int{}, err
	}
	if _, err := k.credit(tmpCtx, caller, refund); err != nil {
		return math.Int{}, err
	}

	if err := k.emitTicketEvent(tmpCtx, types.EventTypeTicketRefunded, ticket, refund); err != nil {
		return math.Int{}, err
	}

	commit()

	k.Logger().Info("Ticket refunded", "id", id, "round", ticket.Round, "refund", refund.String())
	return refund, nil
}

// LastOwnedTicket returns the most recent ticket of owner in round.
func (k Keeper) LastOwnedTicket(ctx context.Context, owner sdk.Address, round uint64) (types.Ticket, error) {
	id, err := k.LastTicket.Get(ctx, collections.Join(round, owner))
	if errors.Is(err, collections.ErrNotFound) {
		return types.Ticket{}, errorsmod.Wrapf(types.ErrUnknownTicket, "%s owns no ticket in round %d", owner, round)
	}
	if err != nil {
		return types.Ticket{}, err
	}
	return k.GetTicket(ctx, id)
}

// IthOwnedTicket returns the i-th (1 based, purchase order) ticket of owner
// in round.
func (k Keeper) IthOwnedTicket(ctx context.Context, owner sdk.Address, round, i uint64) (types.Ticket, error) {
	if i == 0 {
		return types.Ticket{}, errorsmod.Wrap(types.ErrUnknownTicket, "ticket index is 1 based")
	}

	var (
		found uint64
		seen  uint64
	)
	rng := collections.NewSuperPrefixedTripleRange[uint64, sdk.Address, uint64](round, owner)
	err := k.OwnerTickets.Walk(ctx, rng, func(key collections.Triple[uint64, sdk.Address, uint64]) (bool, error) {
		seen++
		if seen == i {
			found = key.K3()
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return types.Ticket{}, err
	}
	if found == 0 {
		return types.Ticket{}, errorsmod.Wrapf(types.ErrUnknownTicket, "%s owns %d tickets in round %d, asked for #%d", owner, seen, round, i)
	}
	return k.GetTicket(ctx, found)
}

// setTicketState advances the state of ticket and stores it.
func (k Keeper) setTicketState(ctx context.Context, ticket *types.Ticket, next types.TicketState) error {
	if !ticket.State.CanTransitionTo(next) {
		return errorsmod.Wrapf(types.ErrAlreadyResolved, "ticket %d cannot move from %s to %s", ticket.Id, ticket.State, next)
	}
	ticket.State = next
	return k.Tickets.Set(ctx, ticket.Id, *ticket)
}

func (k Keeper) emitTicketEvent(ctx context.Context, ty string, ticket types.Ticket, amount math.Int) error {
	event, err := types.NewTicketEvent(ty, types.TicketEvent{
		TicketId: ticket.Id,
		Round:    ticket.Round,
		Owner:    ticket.Owner,
		State:    ticket.State,
		Amount:   amount,
	})
	if err != nil {
		return err
	}
	ledger.EmitEvent(ctx, event)
	return nil
}
