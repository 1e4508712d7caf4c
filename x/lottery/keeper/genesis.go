package keeper

import (
	"context"
	"sort"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

// InitGenesis initializes the module's state from a genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}

	if err := k.Params.Set(ctx, data.Params); err != nil {
		return err
	}
	if err := k.NextTicketId.Set(ctx, data.NextTicketId); err != nil {
		return err
	}

	for _, ticket := range data.Tickets {
		if err := k.Tickets.Set(ctx, ticket.Id, ticket); err != nil {
			return err
		}
		if err := k.OwnerTickets.Set(ctx, collections.Join3(ticket.Round, ticket.Owner, ticket.Id)); err != nil {
			return err
		}

		key := collections.Join(ticket.Round, ticket.Owner)
		last, err := k.LastTicket.Get(ctx, key)
		if err != nil || last < ticket.Id {
			if err := k.LastTicket.Set(ctx, key, ticket.Id); err != nil {
				return err
			}
		}

		if ticket.State.WasRevealed() {
			if err := k.RevealedTickets.Set(ctx, collections.Join(ticket.Round, ticket.Id)); err != nil {
				return err
			}
		}
	}

	for _, b := range data.Balances {
		if err := k.Balances.Set(ctx, b.Owner, b.Amount); err != nil {
			return err
		}
	}

	for _, r := range data.Rounds {
		if !r.Entropy.IsZero() {
			if err := k.Entropy.Set(ctx, r.Round, r.Entropy.Bytes()); err != nil {
				return err
			}
		}
		if err := k.TotalCollected.Set(ctx, r.Round, r.TotalCollected); err != nil {
			return err
		}
		if err := k.PrizesPaid.Set(ctx, r.Round, r.PrizesPaid); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis exports the module's state to a genesis state.
func (k *Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	params, err := k.Params.Get(ctx)
	if err != nil {
		panic(err)
	}
	next, err := k.NextTicketId.Peek(ctx)
	if err != nil {
		panic(err)
	}

	tickets, err := k.Tickets.Iterate(ctx, nil)
	if err != nil {
		panic(err)
	}
	allTickets, err := tickets.Values()
	if err != nil {
		panic(err)
	}

	balances, err := k.Balances.Iterate(ctx, nil)
	if err != nil {
		panic(err)
	}
	kvs, err := balances.KeyValues()
	if err != nil {
		panic(err)
	}
	escrow := make([]types.EscrowBalance, 0, len(kvs))
	for _, kv := range kvs {
		escrow = append(escrow, types.EscrowBalance{Owner: kv.Key, Amount: kv.Value})
	}

	rounds, err := k.exportRounds(ctx)
	if err != nil {
		panic(err)
	}

	return &types.GenesisState{
		Params:       params,
		NextTicketId: next,
		Tickets:      allTickets,
		Balances:     escrow,
		Rounds:       rounds,
	}
}

// exportRounds collects every round that has a pool or entropy stored.
func (k Keeper) exportRounds(ctx context.Context) ([]types.RoundState, error) {
	seen := make(map[uint64]struct{})
	collect := func(round uint64, _ math.Int) (bool, error) {
		seen[round] = struct{}{}
		return false, nil
	}
	if err := k.TotalCollected.Walk(ctx, nil, collect); err != nil {
		return nil, err
	}
	if err := k.PrizesPaid.Walk(ctx, nil, collect); err != nil {
		return nil, err
	}
	if err := k.Entropy.Walk(ctx, nil, func(round uint64, _ []byte) (bool, error) {
		seen[round] = struct{}{}
		return false, nil
	}); err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(seen))
	for round := range seen {
		ids = append(ids, round)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]types.RoundState, 0, len(ids))
	for _, round := range ids {
		entropy, err := k.GetEntropy(ctx, round)
		if err != nil {
			return nil, err
		}
		pool, err := k.GetTotalCollected(ctx, round)
		if err != nil {
			return nil, err
		}
		paid, err := k.GetPrizesPaid(ctx, round)
		if err != nil {
			return nil, err
		}
		out = append(out, types.RoundState{
			Round:          round,
			Entropy:        entropy,
			TotalCollected: pool,
			PrizesPaid:     paid,
		})
	}
	return out, nil
}

// ownerRounds lists (round, owner) pairs with at least one ticket.
func (k Keeper) ownerRounds(ctx context.Context) ([]collections.Pair[uint64, sdk.Address], error) {
	var out []collections.Pair[uint64, sdk.Address]
	err := k.LastTicket.Walk(ctx, nil, func(key collections.Pair[uint64, sdk.Address], _ uint64) (bool, error) {
		out = append(out, key)
		return false, nil
	})
	return out, err
}
