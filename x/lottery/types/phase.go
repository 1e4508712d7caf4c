package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Phase is the position of a timestamp inside a round.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePurchase
	PhaseReveal
)

func (p Phase) String() string {
	switch p {
	case PhasePurchase:
		return "purchase"
	case PhaseReveal:
		return "reveal"
	default:
		return "not_started"
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// RoundSchedule holds the unix boundaries of one round. A round spans
// [PurchaseStart, End); reveal starts at RevealStart.
type RoundSchedule struct {
	Round         uint64 `json:"round"`
	PurchaseStart int64  `json:"purchase_start"`
	RevealStart   int64  `json:"reveal_start"`
	End           int64  `json:"end"`
}

// CycleDuration is the length of one round in seconds.
func (p Params) CycleDuration() int64 {
	return p.PurchaseDuration + p.RevealDuration
}

// RoundNo returns the round containing unix time t.
func (p Params) RoundNo(t int64) (uint64, error) {
	if t < p.RoundZeroStart {
		return 0, errorsmod.Wrapf(ErrInvalidTime, "%d is before round zero start %d", t, p.RoundZeroStart)
	}
	return uint64((t - p.RoundZeroStart) / p.CycleDuration()), nil
}

// PhaseOffset returns the seconds elapsed since the start of the round
// containing t.
func (p Params) PhaseOffset(t int64) (int64, error) {
	if t < p.RoundZeroStart {
		return 0, errorsmod.Wrapf(ErrInvalidTime, "%d is before round zero start %d", t, p.RoundZeroStart)
	}
	return (t - p.RoundZeroStart) % p.CycleDuration(), nil
}

// PhaseAt returns the phase of unix time t. Exactly one of purchase and
// reveal holds for any t at or after round zero start.
func (p Params) PhaseAt(t int64) Phase {
	offset, err := p.PhaseOffset(t)
	if err != nil {
		return PhaseNotStarted
	}
	if offset < p.PurchaseDuration {
		return PhasePurchase
	}
	return PhaseReveal
}

func (p Params) IsPurchaseActive(t int64) bool { return p.PhaseAt(t) == PhasePurchase }

func (p Params) IsRevealActive(t int64) bool { return p.PhaseAt(t) == PhaseReveal }

// Schedule returns the boundaries of round.
func (p Params) Schedule(round uint64) RoundSchedule {
	start := p.roundStart(round)
	return RoundSchedule{
		Round:         round,
		PurchaseStart: start,
		RevealStart:   satAdd(start, p.PurchaseDuration),
		End:           satAdd(start, p.CycleDuration()),
	}
}

// IsRoundClosed reports whether round has ended at unix time t.
func (p Params) IsRoundClosed(round uint64, t int64) bool {
	return t >= p.Schedule(round).End
}

const maxTime = int64(^uint64(0) >> 1)

// roundStart saturates at maxTime for rounds that can never begin.
func (p Params) roundStart(round uint64) int64 {
	cycle := uint64(p.CycleDuration())
	if round > uint64(maxTime-p.RoundZeroStart)/cycle {
		return maxTime
	}
	return p.RoundZeroStart + int64(round*cycle)
}

func satAdd(a, b int64) int64 {
	if a > maxTime-b {
		return maxTime
	}
	return a + b
}
