package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
)

// FirstTicketId is the id of the first ticket ever sold.
const FirstTicketId uint64 = 1

// EscrowBalance is the genesis escrow balance of one owner.
type EscrowBalance struct {
	Owner  sdk.Address `json:"owner"`
	Amount math.Int    `json:"amount"`
}

// RoundState holds the stored aggregates of one round.
type RoundState struct {
	Round          uint64   `json:"round"`
	Entropy        Hash     `json:"entropy"`
	TotalCollected math.Int `json:"total_collected"`
	PrizesPaid     math.Int `json:"prizes_paid"`
}

// GenesisState is the lottery module genesis. Secondary indexes are rebuilt
// from Tickets on import.
type GenesisState struct {
	Params       Params          `json:"params"`
	NextTicketId uint64          `json:"next_ticket_id"`
	Tickets      []Ticket        `json:"tickets"`
	Balances     []EscrowBalance `json:"balances"`
	Rounds       []RoundState    `json:"rounds"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:       DefaultParams(),
		NextTicketId: FirstTicketId,
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.ValidateBasic(); err != nil {
		return err
	}
	if gs.NextTicketId < FirstTicketId {
		return errorsmod.Wrapf(ErrInvalidGenesis, "next ticket id must be at least %d", FirstTicketId)
	}

	ids := make(map[uint64]struct{}, len(gs.Tickets))
	for _, t := range gs.Tickets {
		if err := t.ValidateBasic(); err != nil {
			return errorsmod.Wrap(ErrInvalidGenesis, err.Error())
		}
		if t.Id >= gs.NextTicketId {
			return errorsmod.Wrapf(ErrInvalidGenesis, "ticket %d not below next ticket id %d", t.Id, gs.NextTicketId)
		}
		if _, dup := ids[t.Id]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate ticket %d", t.Id)
		}
		ids[t.Id] = struct{}{}
	}

	owners := make(map[sdk.Address]struct{}, len(gs.Balances))
	for _, b := range gs.Balances {
		if b.Owner.IsZero() {
			return errorsmod.Wrap(ErrInvalidGenesis, "escrow balance for zero address")
		}
		if _, dup := owners[b.Owner]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate escrow balance for %s", b.Owner)
		}
		owners[b.Owner] = struct{}{}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return errorsmod.Wrapf(ErrInvalidGenesis, "negative escrow balance for %s", b.Owner)
		}
	}

	rounds := make(map[uint64]struct{}, len(gs.Rounds))
	for _, r := range gs.Rounds {
		if _, dup := rounds[r.Round]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate round %d", r.Round)
		}
		rounds[r.Round] = struct{}{}
		if r.TotalCollected.IsNil() || r.TotalCollected.IsNegative() ||
			r.PrizesPaid.IsNil() || r.PrizesPaid.IsNegative() || r.PrizesPaid.GT(r.TotalCollected) {
			return errorsmod.Wrapf(ErrInvalidGenesis, "invalid aggregates for round %d", r.Round)
		}
	}
	return nil
}
