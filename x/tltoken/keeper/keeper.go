package keeper

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/collections/corecompat"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
	"github.com/pushchain/tl-lottery/x/tltoken/types"
)

// Keeper holds the TL token ledger: an ERC20-equivalent fungible token.
type Keeper struct {
	logger log.Logger
	schema collections.Schema

	Metadata   collections.Item[types.Metadata]
	Supply     collections.Item[math.Int]
	Balances   collections.Map[sdk.Address, math.Int]
	Allowances collections.Map[collections.Pair[sdk.Address, sdk.Address], math.Int] // (owner, spender) -> amount
}

// NewKeeper creates a new Keeper instance
func NewKeeper(storeService corecompat.KVStoreService, logger log.Logger) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger: logger,

		Metadata:   collections.NewItem(sb, types.MetadataKey, types.MetadataName, sdk.JSONValue[types.Metadata]()),
		Supply:     collections.NewItem(sb, types.SupplyKey, types.SupplyName, sdk.IntValue),
		Balances:   collections.NewMap(sb, types.BalancesKey, types.BalancesName, sdk.AddressKey, sdk.IntValue),
		Allowances: collections.NewMap(sb, types.AllowancesKey, types.AllowancesName, collections.PairKeyCodec(sdk.AddressKey, sdk.AddressKey), sdk.IntValue),
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

// InitGenesis mints the genesis balances and sets allowances.
func (k Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}

	if err := k.Metadata.Set(ctx, data.Metadata); err != nil {
		return err
	}
	if err := k.Supply.Set(ctx, math.ZeroInt()); err != nil {
		return err
	}

	for _, b := range data.Balances {
		if err := k.Mint(ctx, b.Address, b.Amount); err != nil {
			return err
		}
	}

	for _, a := range data.Allowances {
		if err := k.Approve(ctx, a.Owner, a.Spender, a.Amount); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis exports the module's state to a genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	meta, err := k.Metadata.Get(ctx)
	if err != nil {
		panic(err)
	}

	gs := &types.GenesisState{Metadata: meta}

	err = k.Balances.Walk(ctx, nil, func(addr sdk.Address, amt math.Int) (bool, error) {
		if amt.IsPositive() {
			gs.Balances = append(gs.Balances, types.Balance{Address: addr, Amount: amt})
		}
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.Allowances.Walk(ctx, nil, func(key collections.Pair[sdk.Address, sdk.Address], amt math.Int) (bool, error) {
		if amt.IsPositive() {
			gs.Allowances = append(gs.Allowances, types.Allowance{Owner: key.K1(), Spender: key.K2(), Amount: amt})
		}
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	return gs
}
