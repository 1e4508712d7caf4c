package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

// Invariant checks one property of the module state. It returns a message
// and whether the property is broken.
type Invariant func(ctx context.Context) (string, bool)

// RegisteredInvariants names every invariant of the module.
func RegisteredInvariants(k Keeper) map[string]Invariant {
	return map[string]Invariant{
		"funds":        FundsInvariant(k),
		"pools":        PoolsInvariant(k),
		"ticket-index": TicketIndexInvariant(k),
	}
}

// AllInvariants runs every invariant and stops at the first broken one.
func AllInvariants(k Keeper) Invariant {
	invariants := RegisteredInvariants(k)
	return func(ctx context.Context) (string, bool) {
		for _, name := range []string{"funds", "pools", "ticket-index"} {
			if msg, broken := invariants[name](ctx); broken {
				return msg, true
			}
		}
		return "", false
	}
}

func formatInvariant(route, msg string) string {
	return fmt.Sprintf("%s: %s invariant\n%s\n", types.ModuleName, route, msg)
}

// FundsInvariant checks that the module's token balance equals every escrow
// balance plus every unpaid prize pool.
func FundsInvariant(k Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		held, err := k.tokenKeeper.BalanceOf(ctx, k.moduleAddress)
		if err != nil {
			return formatInvariant("funds", err.Error()), true
		}

		owed := math.ZeroInt()
		err = k.Balances.Walk(ctx, nil, func(_ sdk.Address, bal math.Int) (bool, error) {
			owed = owed.Add(bal)
			return false, nil
		})
		if err != nil {
			return formatInvariant("funds", err.Error()), true
		}

		err = k.TotalCollected.Walk(ctx, nil, func(round uint64, pool math.Int) (bool, error) {
			paid, err := k.GetPrizesPaid(ctx, round)
			if err != nil {
				return true, err
			}
			owed = owed.Add(pool.Sub(paid))
			return false, nil
		})
		if err != nil {
			return formatInvariant("funds", err.Error()), true
		}

		broken := !held.Equal(owed)
		return formatInvariant("funds", fmt.Sprintf("\tmodule holds %s, owes %s", held, owed)), broken
	}
}

// PoolsInvariant checks that no round paid out more than it collected.
func PoolsInvariant(k Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)
		err := k.PrizesPaid.Walk(ctx, nil, func(round uint64, paid math.Int) (bool, error) {
			pool, err := k.GetTotalCollected(ctx, round)
			if err != nil {
				return true, err
			}
			if paid.GT(pool) {
				broken = true
				msg += fmt.Sprintf("\tround %d paid %s out of a pool of %s\n", round, paid, pool)
			}
			return false, nil
		})
		if err != nil {
			return formatInvariant("pools", err.Error()), true
		}
		return formatInvariant("pools", msg), broken
	}
}

// TicketIndexInvariant checks that the secondary ticket indexes agree with
// the stored tickets.
func TicketIndexInvariant(k Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)
		report := func(format string, args ...any) {
			broken = true
			msg += fmt.Sprintf("\t"+format+"\n", args...)
		}

		next, err := k.NextTicketId.Peek(ctx)
		if err != nil {
			return formatInvariant("ticket-index", err.Error()), true
		}

		err = k.Tickets.Walk(ctx, nil, func(id uint64, ticket types.Ticket) (bool, error) {
			if id >= next {
				report("ticket %d is not below the next ticket id %d", id, next)
			}
			has, err := k.OwnerTickets.Has(ctx, collections.Join3(ticket.Round, ticket.Owner, id))
			if err != nil {
				return true, err
			}
			if !has {
				report("ticket %d is missing from the owner index", id)
			}
			revealed, err := k.RevealedTickets.Has(ctx, collections.Join(ticket.Round, id))
			if err != nil {
				return true, err
			}
			if revealed != ticket.State.WasRevealed() {
				report("ticket %d is %s but revealed index says %t", id, ticket.State, revealed)
			}
			return false, nil
		})
		if err != nil {
			return formatInvariant("ticket-index", err.Error()), true
		}

		pairs, err := k.ownerRounds(ctx)
		if err != nil {
			return formatInvariant("ticket-index", err.Error()), true
		}
		for _, key := range pairs {
			last, err := k.LastTicket.Get(ctx, key)
			if err != nil {
				return formatInvariant("ticket-index", err.Error()), true
			}
			ticket, err := k.GetTicket(ctx, last)
			if err != nil {
				report("last ticket %d of %s in round %d does not exist", last, key.K2(), key.K1())
				continue
			}
			if ticket.Round != key.K1() || ticket.Owner != key.K2() {
				report("last ticket %d of %s in round %d belongs to %s in round %d", last, key.K2(), key.K1(), ticket.Owner, ticket.Round)
			}
		}

		return formatInvariant("ticket-index", msg), broken
	}
}
