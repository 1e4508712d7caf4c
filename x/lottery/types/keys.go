package types

import (
	"cosmossdk.io/collections"

	sdk "github.com/pushchain/tl-lottery/types"
)

var (
	// ParamsKey saves the current module params.
	ParamsKey = collections.NewPrefix(0)

	// ParamsName is the name of the params collection.
	ParamsName = "params"

	// NextTicketIdKey saves the last allocated ticket id.
	NextTicketIdKey = collections.NewPrefix(1)

	// NextTicketIdName is the name of the NextTicketId collection.
	NextTicketIdName = "next_ticket_id"

	// TicketsKey saves tickets by id.
	TicketsKey = collections.NewPrefix(2)

	// TicketsName is the name of the Tickets collection.
	TicketsName = "tickets"

	// BalancesKey saves escrow balances by owner.
	BalancesKey = collections.NewPrefix(3)

	// BalancesName is the name of the Balances collection.
	BalancesName = "balances"

	// LastTicketKey saves the latest ticket of an owner in a round.
	LastTicketKey = collections.NewPrefix(4)

	// LastTicketName is the name of the LastTicket collection.
	LastTicketName = "last_ticket"

	// OwnerTicketsKey indexes tickets by (round, owner, id).
	OwnerTicketsKey = collections.NewPrefix(5)

	// OwnerTicketsName is the name of the OwnerTickets collection.
	OwnerTicketsName = "owner_tickets"

	// RevealedTicketsKey indexes revealed tickets by (round, id).
	RevealedTicketsKey = collections.NewPrefix(6)

	// RevealedTicketsName is the name of the RevealedTickets collection.
	RevealedTicketsName = "revealed_tickets"

	// EntropyKey saves the entropy accumulator of a round.
	EntropyKey = collections.NewPrefix(7)

	// EntropyName is the name of the Entropy collection.
	EntropyName = "entropy"

	// TotalCollectedKey saves the prize pool of a round.
	TotalCollectedKey = collections.NewPrefix(8)

	// TotalCollectedName is the name of the TotalCollected collection.
	TotalCollectedName = "total_collected"

	// PrizesPaidKey saves the prizes already claimed in a round.
	PrizesPaidKey = collections.NewPrefix(9)

	// PrizesPaidName is the name of the PrizesPaid collection.
	PrizesPaidName = "prizes_paid"
)

const (
	ModuleName = "lottery"

	StoreKey = ModuleName

	QuerierRoute = ModuleName
)

// ModuleAddress is the account that custodies escrowed and pooled tokens.
var ModuleAddress = sdk.NewModuleAddress(ModuleName)
