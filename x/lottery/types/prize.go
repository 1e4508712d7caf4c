package types

import (
	"math/big"
	"sort"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// DrawValue is the score of a revealed ticket in its round's draw.
func DrawValue(entropy Hash, ticketId uint64) Hash {
	word := uint256.NewInt(ticketId).Bytes32()
	return Keccak256(entropy[:], word[:])
}

// RankTickets orders ticket ids by descending draw value, ties broken by
// ascending id. The first element is the rank one ticket.
func RankTickets(entropy Hash, ids []uint64) []uint64 {
	type scored struct {
		id    uint64
		score *uint256.Int
	}

	all := make([]scored, len(ids))
	for i, id := range ids {
		dv := DrawValue(entropy, id)
		all[i] = scored{id: id, score: dv.Big()}
	}

	sort.Slice(all, func(i, j int) bool {
		if c := all[i].score.Cmp(all[j].score); c != 0 {
			return c > 0
		}
		return all[i].id < all[j].id
	})

	ranked := make([]uint64, len(all))
	for i, s := range all {
		ranked[i] = s.id
	}
	return ranked
}

// PrizeTierCount is the number of paying ranks for a pool shared by n
// revealed tickets: min(n, bitlen(pool)).
func PrizeTierCount(pool math.Int, n int) int {
	k := pool.BigInt().BitLen()
	if n < k {
		return n
	}
	return k
}

// PrizeForRank returns the payout of the ticket at rank (1 based) among n
// revealed tickets sharing pool.
//
// Rank i pays floor(pool/2^i) + (floor(pool/2^(i-1)) mod 2). These tiers
// telescope to pool - floor(pool/2^m) over the m paying ranks, so rank one
// also receives floor(pool/2^m) and the payouts add up to exactly pool.
func PrizeForRank(pool math.Int, rank, n int) math.Int {
	if rank < 1 || rank > n || pool.IsNil() || !pool.IsPositive() {
		return math.ZeroInt()
	}

	m := PrizeTierCount(pool, n)
	if rank > m {
		return math.ZeroInt()
	}

	total := pool.BigInt()
	prize := new(big.Int).Rsh(total, uint(rank))
	prize.Add(prize, big.NewInt(int64(total.Bit(rank-1))))

	if rank == 1 {
		prize.Add(prize, new(big.Int).Rsh(total, uint(m)))
	}
	return math.NewIntFromBigInt(prize)
}
