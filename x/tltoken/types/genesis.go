package types

import (
	"encoding/json"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
)

// Metadata describes the token.
type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
}

// DefaultMetadata is the TL token.
func DefaultMetadata() Metadata {
	return Metadata{Name: "TL Token", Symbol: "TL", Decimals: 18}
}

func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Symbol) == "" {
		return errorsmod.Wrap(ErrInvalidGenesis, "symbol cannot be empty")
	}
	if m.Decimals > 77 {
		return errorsmod.Wrapf(ErrInvalidGenesis, "decimals %d out of range", m.Decimals)
	}
	return nil
}

// Balance is the genesis balance of one account.
type Balance struct {
	Address sdk.Address `json:"address"`
	Amount  math.Int    `json:"amount"`
}

// Allowance is a genesis allowance.
type Allowance struct {
	Owner   sdk.Address `json:"owner"`
	Spender sdk.Address `json:"spender"`
	Amount  math.Int    `json:"amount"`
}

// GenesisState is the tltoken module genesis. The total supply is the sum of
// all balances.
type GenesisState struct {
	Metadata   Metadata    `json:"metadata"`
	Balances   []Balance   `json:"balances"`
	Allowances []Allowance `json:"allowances"`
}

// DefaultGenesis returns a genesis with no accounts.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Metadata: DefaultMetadata()}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Metadata.Validate(); err != nil {
		return err
	}

	seen := make(map[sdk.Address]struct{}, len(gs.Balances))
	for _, b := range gs.Balances {
		if b.Address.IsZero() {
			return errorsmod.Wrap(ErrInvalidGenesis, "balance for zero address")
		}
		if _, dup := seen[b.Address]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate balance for %s", b.Address)
		}
		seen[b.Address] = struct{}{}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return errorsmod.Wrapf(ErrInvalidGenesis, "invalid balance for %s", b.Address)
		}
	}

	for _, a := range gs.Allowances {
		if a.Owner.IsZero() || a.Spender.IsZero() {
			return errorsmod.Wrap(ErrInvalidGenesis, "allowance with zero address")
		}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return errorsmod.Wrapf(ErrInvalidGenesis, "invalid allowance %s -> %s", a.Owner, a.Spender)
		}
	}
	return nil
}

func (gs GenesisState) String() string {
	bz, err := json.Marshal(gs)
	if err != nil {
		panic(err)
	}
	return string(bz)
}
