package types

import (
	"cosmossdk.io/collections"
)

var (
	// MetadataKey saves the token metadata.
	MetadataKey = collections.NewPrefix(0)

	// MetadataName is the name of the metadata collection.
	MetadataName = "metadata"

	// SupplyKey saves the total supply.
	SupplyKey = collections.NewPrefix(1)

	// SupplyName is the name of the supply collection.
	SupplyName = "supply"

	// BalancesKey saves balances by owner.
	BalancesKey = collections.NewPrefix(2)

	// BalancesName is the name of the balances collection.
	BalancesName = "balances"

	// AllowancesKey saves allowances by (owner, spender).
	AllowancesKey = collections.NewPrefix(3)

	// AllowancesName is the name of the allowances collection.
	AllowancesName = "allowances"
)

const (
	ModuleName = "tltoken"

	StoreKey = ModuleName
)
