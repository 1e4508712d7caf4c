package types

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
)

// TokenKeeper is the fungible token the lottery escrows.
type TokenKeeper interface {
	Symbol(ctx context.Context) (string, error)
	BalanceOf(ctx context.Context, owner sdk.Address) (math.Int, error)
	Transfer(ctx context.Context, from, to sdk.Address, amount math.Int) error
	TransferFrom(ctx context.Context, spender, from, to sdk.Address, amount math.Int) error
}
