package types

import (
	"encoding/json"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

const (
	// DefaultRoundZeroStart is 2022-05-01T21:00:00Z.
	DefaultRoundZeroStart int64 = 1651438800

	// DefaultPurchaseDuration is four days.
	DefaultPurchaseDuration int64 = 4 * 24 * 60 * 60

	// DefaultRevealDuration is three days.
	DefaultRevealDuration int64 = 3 * 24 * 60 * 60

	DefaultTokenSymbol = "TL"
)

// Params are fixed at genesis. Durations are in seconds, RoundZeroStart is a
// unix timestamp.
type Params struct {
	RoundZeroStart   int64    `json:"round_zero_start"`
	PurchaseDuration int64    `json:"purchase_duration"`
	RevealDuration   int64    `json:"reveal_duration"`
	TicketPrice      math.Int `json:"ticket_price"`
	Token            string   `json:"token"`
}

// DefaultParams returns default module parameters.
func DefaultParams() Params {
	return Params{
		RoundZeroStart:   DefaultRoundZeroStart,
		PurchaseDuration: DefaultPurchaseDuration,
		RevealDuration:   DefaultRevealDuration,
		TicketPrice:      math.NewInt(10),
		Token:            DefaultTokenSymbol,
	}
}

// Stringer method for Params.
func (p Params) String() string {
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}

	return string(bz)
}

// Validate does the sanity check on the params.
func (p Params) ValidateBasic() error {
	if p.RoundZeroStart < 0 {
		return errorsmod.Wrapf(ErrInvalidParams, "round zero start %d is negative", p.RoundZeroStart)
	}
	if p.PurchaseDuration <= 0 {
		return errorsmod.Wrapf(ErrInvalidParams, "purchase duration must be positive, got %d", p.PurchaseDuration)
	}
	if p.RevealDuration <= 0 {
		return errorsmod.Wrapf(ErrInvalidParams, "reveal duration must be positive, got %d", p.RevealDuration)
	}
	if p.PurchaseDuration > (1<<62)-p.RevealDuration {
		return errorsmod.Wrap(ErrInvalidParams, "round duration overflows")
	}
	if p.TicketPrice.IsNil() || !p.TicketPrice.IsPositive() {
		return errorsmod.Wrap(ErrInvalidParams, "ticket price must be positive")
	}
	if strings.TrimSpace(p.Token) == "" {
		return errorsmod.Wrap(ErrInvalidParams, "token symbol cannot be empty")
	}
	return nil
}

// RefundAmount is what a forfeited ticket returns to its owner.
func (p Params) RefundAmount() math.Int {
	return p.TicketPrice.QuoRaw(2)
}
