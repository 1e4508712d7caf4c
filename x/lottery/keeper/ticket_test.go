package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/tl-lottery/ledger"
	"github.com/pushchain/tl-lottery/x/lottery/types"
)

func TestBuyTicket(t *testing.T) {
	f := SetupTest(t)
	alice, bob := f.addrs[0], f.addrs[1]
	ctx := f.purchaseCtx(0)

	f.deposit(t, ctx, alice, 25)

	t.Run("fail; empty commitment", func(t *testing.T) {
		_, err := f.msgServer.BuyTicket(ctx, &types.MsgBuyTicket{Sender: alice})
		require.ErrorIs(t, err, types.ErrInvalidCommitment)
	})

	t.Run("fail; reveal phase", func(t *testing.T) {
		_, err := f.msgServer.BuyTicket(f.revealCtx(0), &types.MsgBuyTicket{Sender: alice, Commitment: types.ComputeCommitment(secret(1), alice)})
		require.ErrorIs(t, err, types.ErrWrongPhase)
	})

	t.Run("fail; before round zero", func(t *testing.T) {
		_, err := f.msgServer.BuyTicket(f.at(-10), &types.MsgBuyTicket{Sender: alice, Commitment: types.ComputeCommitment(secret(1), alice)})
		require.ErrorIs(t, err, types.ErrWrongPhase)
	})

	t.Run("fail; empty escrow", func(t *testing.T) {
		_, err := f.msgServer.BuyTicket(ctx, &types.MsgBuyTicket{Sender: bob, Commitment: types.ComputeCommitment(secret(1), bob)})
		require.ErrorIs(t, err, types.ErrInsufficientBalance)
	})

	first := f.buy(t, ctx, alice, secret(1))
	second := f.buy(t, ctx, alice, secret(2))
	require.Equal(t, types.FirstTicketId, first)
	require.Equal(t, first+1, second)
	require.Equal(t, "5", f.balance(t, ctx, alice))

	_, err := f.msgServer.BuyTicket(ctx, &types.MsgBuyTicket{Sender: alice, Commitment: types.ComputeCommitment(secret(3), alice)})
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	require.Equal(t, "5", f.balance(t, ctx, alice))

	owner, err := f.queryServer.OwnerOf(ctx, &types.QueryOwnerOfRequest{TicketId: second})
	require.NoError(t, err)
	require.Equal(t, alice, owner.Owner)

	_, err = f.queryServer.OwnerOf(ctx, &types.QueryOwnerOfRequest{TicketId: 99})
	require.ErrorIs(t, err, types.ErrUnknownTicket)

	last, err := f.queryServer.LastOwnedTicketNo(ctx, &types.QueryLastOwnedTicketNoRequest{Owner: alice, Round: 0})
	require.NoError(t, err)
	require.Equal(t, second, last.TicketId)
	require.Equal(t, types.TicketStateOpen, last.State)

	ith, err := f.queryServer.IthOwnedTicketNo(ctx, &types.QueryIthOwnedTicketNoRequest{Owner: alice, Round: 0, Index: 1})
	require.NoError(t, err)
	require.Equal(t, first, ith.TicketId)

	_, err = f.queryServer.IthOwnedTicketNo(ctx, &types.QueryIthOwnedTicketNoRequest{Owner: alice, Round: 0, Index: 3})
	require.ErrorIs(t, err, types.ErrUnknownTicket)

	_, err = f.queryServer.LastOwnedTicketNo(ctx, &types.QueryLastOwnedTicketNoRequest{Owner: bob, Round: 0})
	require.ErrorIs(t, err, types.ErrUnknownTicket)

	total, err := f.queryServer.TotalLotteryMoneyCollected(ctx, &types.QueryTotalLotteryMoneyCollectedRequest{Round: 0})
	require.NoError(t, err)
	require.Equal(t, "20", total.Amount.String())

	ticket, err := f.queryServer.Ticket(ctx, &types.QueryTicketRequest{TicketId: first})
	require.NoError(t, err)
	require.Equal(t, uint64(0), ticket.Ticket.Round)
	require.Equal(t, types.ComputeCommitment(secret(1), alice), ticket.Ticket.Commitment)

	f.requireInvariants(t, ctx)
}

func TestBuyTicketEmitsEvent(t *testing.T) {
	f := SetupTest(t)
	alice := f.addrs[0]
	ctx, _ := ledger.CacheContext(f.purchaseCtx(0))

	f.deposit(t, ctx, alice, 10)
	id := f.buy(t, ctx, alice, secret(1))

	var purchased []ledger.Event
	for _, ev := range ledger.EventsFromContext(ctx) {
		if ev.Type == types.EventTypeTicketPurchased {
			purchased = append(purchased, ev)
		}
	}
	require.Len(t, purchased, 1)
	tid, _ := purchased[0].Attribute("ticket_id")
	require.Equal(t, "1", tid)
	require.Equal(t, types.FirstTicketId, id)
}

func TestTicketRoundsAreSeparate(t *testing.T) {
	f := SetupTest(t)
	alice := f.addrs[0]

	f.deposit(t, f.ctx, alice, 20)
	r0 := f.buy(t, f.purchaseCtx(0), alice, secret(1))
	r1 := f.buy(t, f.purchaseCtx(1), alice, secret(2))

	res, err := f.queryServer.LastOwnedTicketNo(f.ctx, &types.QueryLastOwnedTicketNoRequest{Owner: alice, Round: 0})
	require.NoError(t, err)
	require.Equal(t, r0, res.TicketId)

	res, err = f.queryServer.LastOwnedTicketNo(f.ctx, &types.QueryLastOwnedTicketNoRequest{Owner: alice, Round: 1})
	require.NoError(t, err)
	require.Equal(t, r1, res.TicketId)

	for _, round := range []uint64{0, 1} {
		total, err := f.queryServer.TotalLotteryMoneyCollected(f.ctx, &types.QueryTotalLotteryMoneyCollectedRequest{Round: round})
		require.NoError(t, err)
		require.Equal(t, "10", total.Amount.String())
	}
}

func TestCollectTicketRefund(t *testing.T) {
	f := SetupTest(t)
	alice, bob := f.addrs[0], f.addrs[1]

	f.deposit(t, f.ctx, alice, 10)
	id := f.buy(t, f.purchaseCtx(0), alice, secret(1))
	require.Equal(t, "0", f.balance(t, f.ctx, alice))

	refund := func(offset int64, sender int) error {
		_, err := f.msgServer.CollectTicketRefund(f.at(offset), &types.MsgCollectTicketRefund{Sender: f.addrs[sender], TicketId: id})
		return err
	}

	require.ErrorIs(t, refund(10, 0), types.ErrWrongPhase)
	require.ErrorIs(t, refund(purchase+10, 1), types.ErrNotTicketOwner)
	require.ErrorIs(t, refund(cycle+purchase+10, 0), types.ErrWrongPhase)

	_, err := f.msgServer.CollectTicketRefund(f.revealCtx(0), &types.MsgCollectTicketRefund{Sender: alice, TicketId: 42})
	require.ErrorIs(t, err, types.ErrUnknownTicket)

	res, err := f.msgServer.CollectTicketRefund(f.revealCtx(0), &types.MsgCollectTicketRefund{Sender: alice, TicketId: id})
	require.NoError(t, err)
	require.Equal(t, "5", res.Refund.String())
	require.Equal(t, "5", f.balance(t, f.ctx, alice))
	require.Equal(t, "0", f.balance(t, f.ctx, bob))

	total, err := f.queryServer.TotalLotteryMoneyCollected(f.ctx, &types.QueryTotalLotteryMoneyCollectedRequest{Round: 0})
	require.NoError(t, err)
	require.Equal(t, "5", total.Amount.String())

	require.ErrorIs(t, refund(purchase+20, 0), types.ErrAlreadyResolved)
	require.Equal(t, "5", f.balance(t, f.ctx, alice))

	f.requireInvariants(t, f.ctx)
}

func TestRefundOddPrice(t *testing.T) {
	f := SetupTest(t)
	alice := f.addrs[0]

	params, err := f.k.GetParams(f.ctx)
	require.NoError(t, err)
	params.TicketPrice = math.NewInt(7)
	require.NoError(t, f.k.Params.Set(f.ctx, params))

	f.deposit(t, f.ctx, alice, 7)
	id := f.buy(t, f.purchaseCtx(0), alice, secret(9))

	refund, err := f.k.RefundTicket(f.revealCtx(0), alice, id)
	require.NoError(t, err)
	require.Equal(t, "3", refund.String())

	pool, err := f.k.GetTotalCollected(f.ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "4", pool.String())

	f.requireInvariants(t, f.ctx)
}

func TestRevealRndNumber(t *testing.T) {
	f := SetupTest(t)
	alice, bob := f.addrs[0], f.addrs[1]

	f.deposit(t, f.ctx, alice, 20)
	id := f.buy(t, f.purchaseCtx(0), alice, secret(7))
	refunded := f.buy(t, f.purchaseCtx(0), alice, secret(8))

	reveal := func(offset int64, sender int, ticket uint64, s uint64) error {
		_, err := f.msgServer.RevealRndNumber(f.at(offset), &types.MsgRevealRndNumber{Sender: f.addrs[sender], TicketId: ticket, Secret: secret(s)})
		return err
	}
	rev := purchase + 10

	require.ErrorIs(t, reveal(rev, 0, 99, 7), types.ErrUnknownTicket)
	require.ErrorIs(t, reveal(10, 0, id, 7), types.ErrWrongPhase)
	require.ErrorIs(t, reveal(cycle+purchase+10, 0, id, 7), types.ErrWrongPhase)
	require.ErrorIs(t, reveal(rev, 1, id, 7), types.ErrNotTicketOwner)

	_, err := f.msgServer.RevealRndNumber(f.revealCtx(0), &types.MsgRevealRndNumber{Sender: alice, TicketId: id, Secret: secret(6)})
	require.ErrorIs(t, err, types.ErrCommitmentMismatch)

	ticket, err := f.k.GetTicket(f.ctx, id)
	require.NoError(t, err)
	require.Equal(t, types.TicketStateOpen, ticket.State)

	_, err = f.msgServer.RevealRndNumber(f.revealCtx(0), &types.MsgRevealRndNumber{Sender: alice, TicketId: id})
	require.ErrorIs(t, err, types.ErrCommitmentMismatch)

	f.reveal(t, f.revealCtx(0), alice, id, secret(7))

	ticket, err = f.k.GetTicket(f.ctx, id)
	require.NoError(t, err)
	require.Equal(t, types.TicketStateRevealed, ticket.State)

	entropy, err := f.k.GetEntropy(f.ctx, 0)
	require.NoError(t, err)
	require.Equal(t, types.EntropyOf(secret(7)), entropy)

	require.ErrorIs(t, reveal(rev+5, 0, id, 7), types.ErrAlreadyRevealed)

	_, err = f.k.RefundTicket(f.revealCtx(0), alice, refunded)
	require.NoError(t, err)
	require.ErrorIs(t, reveal(rev+5, 0, refunded, 8), types.ErrAlreadyRefunded)

	_, err = f.k.RefundTicket(f.revealCtx(0), alice, id)
	require.ErrorIs(t, err, types.ErrAlreadyResolved)

	ids, err := f.k.RevealedTicketIds(f.ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []uint64{id}, ids)
	require.Equal(t, "0", f.balance(t, f.ctx, bob))

	f.requireInvariants(t, f.ctx)
}

func TestRevealFoldsEntropy(t *testing.T) {
	f := SetupTest(t)
	alice, bob := f.addrs[0], f.addrs[1]

	f.deposit(t, f.ctx, alice, 10)
	f.deposit(t, f.ctx, bob, 10)
	a := f.buy(t, f.purchaseCtx(0), alice, secret(11))
	b := f.buy(t, f.purchaseCtx(0), bob, secret(12))

	f.reveal(t, f.revealCtx(0), bob, b, secret(12))
	f.reveal(t, f.revealCtx(0), alice, a, secret(11))

	entropy, err := f.k.GetEntropy(f.ctx, 0)
	require.NoError(t, err)
	require.Equal(t, types.EntropyOf(secret(11)).Xor(types.EntropyOf(secret(12))), entropy)
}

func TestFailedRefundLeavesTicketOpen(t *testing.T) {
	f := SetupTest(t)
	alice := f.addrs[0]

	f.deposit(t, f.ctx, alice, 10)
	id := f.buy(t, f.purchaseCtx(0), alice, secret(1))

	// a pool that cannot cover the refund fails after the ticket state changed
	require.NoError(t, f.k.TotalCollected.Set(f.ctx, 0, math.NewInt(1)))

	ctx, _ := ledger.CacheContext(f.revealCtx(0))
	_, err := f.k.RefundTicket(ctx, alice, id)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	ticket, err := f.k.GetTicket(ctx, id)
	require.NoError(t, err)
	require.Equal(t, types.TicketStateOpen, ticket.State)
	require.Equal(t, "0", f.balance(t, ctx, alice))
	require.Empty(t, ledger.EventsFromContext(ctx))
}

func TestFailedRevealLeavesTicketOpen(t *testing.T) {
	f := SetupTest(t)
	alice := f.addrs[0]

	f.deposit(t, f.ctx, alice, 10)
	id := f.buy(t, f.purchaseCtx(0), alice, secret(1))

	// a corrupt entropy record fails the fold after the ticket state changed
	require.NoError(t, f.k.Entropy.Set(f.ctx, 0, []byte{1, 2, 3}))

	ctx, _ := ledger.CacheContext(f.revealCtx(0))
	require.Error(t, f.k.RevealTicket(ctx, alice, id, secret(1)))

	ticket, err := f.k.GetTicket(ctx, id)
	require.NoError(t, err)
	require.Equal(t, types.TicketStateOpen, ticket.State)

	revealed, err := f.k.RevealedTicketIds(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, revealed)
	require.Empty(t, ledger.EventsFromContext(ctx))
}
