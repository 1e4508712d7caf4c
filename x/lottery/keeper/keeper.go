package keeper

import (
	"cosmossdk.io/collections"
	"cosmossdk.io/collections/corecompat"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

type Keeper struct {
	logger log.Logger
	schema collections.Schema

	// Module State
	Params       collections.Item[types.Params]        // immutable after genesis
	NextTicketId collections.Sequence                  // next ticket id to allocate
	Tickets      collections.Map[uint64, types.Ticket] // ticket id → ticket

	// Escrow
	Balances collections.Map[sdk.Address, math.Int] // owner → escrowed TL

	// Indexes
	LastTicket      collections.Map[collections.Pair[uint64, sdk.Address], uint64]      // (round, owner) → latest ticket id
	OwnerTickets    collections.KeySet[collections.Triple[uint64, sdk.Address, uint64]] // (round, owner, ticket id)
	RevealedTickets collections.KeySet[collections.Pair[uint64, uint64]]                // (round, ticket id)

	// Round aggregates
	Entropy        collections.Map[uint64, []byte]   // round → xor of keccak256(secret)
	TotalCollected collections.Map[uint64, math.Int] // round → prize pool
	PrizesPaid     collections.Map[uint64, math.Int] // round → prizes already collected

	// keepers
	tokenKeeper types.TokenKeeper

	moduleAddress sdk.Address
}

// NewKeeper creates a new Keeper instance
func NewKeeper(
	storeService corecompat.KVStoreService,
	logger log.Logger,
	tokenKeeper types.TokenKeeper,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger: logger,

		Params:       collections.NewItem(sb, types.ParamsKey, types.ParamsName, sdk.JSONValue[types.Params]()),
		NextTicketId: collections.NewSequence(sb, types.NextTicketIdKey, types.NextTicketIdName),
		Tickets:      collections.NewMap(sb, types.TicketsKey, types.TicketsName, collections.Uint64Key, sdk.JSONValue[types.Ticket]()),

		Balances: collections.NewMap(sb, types.BalancesKey, types.BalancesName, sdk.AddressKey, sdk.IntValue),

		LastTicket: collections.NewMap(sb, types.LastTicketKey, types.LastTicketName,
			collections.PairKeyCodec(collections.Uint64Key, sdk.AddressKey), collections.Uint64Value),
		OwnerTickets: collections.NewKeySet(sb, types.OwnerTicketsKey, types.OwnerTicketsName,
			collections.TripleKeyCodec(collections.Uint64Key, sdk.AddressKey, collections.Uint64Key)),
		RevealedTickets: collections.NewKeySet(sb, types.RevealedTicketsKey, types.RevealedTicketsName,
			collections.PairKeyCodec(collections.Uint64Key, collections.Uint64Key)),

		Entropy:        collections.NewMap(sb, types.EntropyKey, types.EntropyName, collections.Uint64Key, collections.BytesValue),
		TotalCollected: collections.NewMap(sb, types.TotalCollectedKey, types.TotalCollectedName, collections.Uint64Key, sdk.IntValue),
		PrizesPaid:     collections.NewMap(sb, types.PrizesPaidKey, types.PrizesPaidName, collections.Uint64Key, sdk.IntValue),

		tokenKeeper:   tokenKeeper,
		moduleAddress: types.ModuleAddress,
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.schema = schema

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

// ModuleAddress is the custody account of escrowed and pooled TL.
func (k Keeper) ModuleAddress() sdk.Address {
	return k.moduleAddress
}

func (k Keeper) GetTokenKeeper() types.TokenKeeper {
	return k.tokenKeeper
}
