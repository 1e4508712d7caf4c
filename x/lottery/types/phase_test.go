package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundNo(t *testing.T) {
	p := DefaultParams()
	start := p.RoundZeroStart
	cycle := p.CycleDuration()

	_, err := p.RoundNo(start - 1)
	require.ErrorIs(t, err, ErrInvalidTime)

	testCases := []struct {
		name string
		t    int64
		want uint64
	}{
		{"first second", start, 0},
		{"last second of round zero", start + cycle - 1, 0},
		{"round one", start + cycle, 1},
		{"deep future", start + 100*cycle + 5, 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.RoundNo(tc.t)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPhasesAreDisjointAndExhaustive(t *testing.T) {
	p := DefaultParams()
	p.PurchaseDuration = 7
	p.RevealDuration = 5
	p.RoundZeroStart = 1000

	require.False(t, p.IsPurchaseActive(999))
	require.False(t, p.IsRevealActive(999))
	require.Equal(t, PhaseNotStarted, p.PhaseAt(999))

	for ts := p.RoundZeroStart; ts < p.RoundZeroStart+5*p.CycleDuration(); ts++ {
		purchase, reveal := p.IsPurchaseActive(ts), p.IsRevealActive(ts)
		require.True(t, purchase != reveal, "t=%d purchase=%v reveal=%v", ts, purchase, reveal)

		offset, err := p.PhaseOffset(ts)
		require.NoError(t, err)
		require.Equal(t, offset < 7, purchase, "t=%d", ts)
	}
}

func TestRevealWindowOfRoundZero(t *testing.T) {
	p := DefaultParams()
	ts := p.RoundZeroStart + 345600 + 259200/2

	require.True(t, p.IsRevealActive(ts))
	round, err := p.RoundNo(ts)
	require.NoError(t, err)
	require.Zero(t, round)
}

func TestScheduleAndClose(t *testing.T) {
	p := DefaultParams()
	s := p.Schedule(2)

	require.Equal(t, p.RoundZeroStart+2*p.CycleDuration(), s.PurchaseStart)
	require.Equal(t, s.PurchaseStart+p.PurchaseDuration, s.RevealStart)
	require.Equal(t, s.PurchaseStart+p.CycleDuration(), s.End)

	require.False(t, p.IsRoundClosed(2, s.End-1))
	require.True(t, p.IsRoundClosed(2, s.End))
	require.False(t, p.IsRoundClosed(^uint64(0), s.End))
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().ValidateBasic())

	p := DefaultParams()
	p.RevealDuration = 0
	require.ErrorIs(t, p.ValidateBasic(), ErrInvalidParams)

	p = DefaultParams()
	p.TicketPrice = p.TicketPrice.SubRaw(10)
	require.ErrorIs(t, p.ValidateBasic(), ErrInvalidParams)

	require.Equal(t, "5", DefaultParams().RefundAmount().String())
}
