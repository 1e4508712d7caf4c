package keeper

import (
	"context"

	"github.com/pushchain/tl-lottery/x/lottery/types"
)

type msgServer struct {
	k Keeper
}

var _ types.MsgServer = msgServer{}

// NewMsgServerImpl returns an implementation of the module MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{k: keeper}
}

// DepositTL implements types.MsgServer.
func (ms msgServer) DepositTL(ctx context.Context, msg *types.MsgDepositTL) (*types.MsgDepositTLResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	balance, err := ms.k.Deposit(ctx, msg.Sender, msg.Amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgDepositTLResponse{Balance: balance}, nil
}

// WithdrawTL implements types.MsgServer.
func (ms msgServer) WithdrawTL(ctx context.Context, msg *types.MsgWithdrawTL) (*types.MsgWithdrawTLResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	balance, err := ms.k.Withdraw(ctx, msg.Sender, msg.Amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawTLResponse{Balance: balance}, nil
}

// BuyTicket implements types.MsgServer.
func (ms msgServer) BuyTicket(ctx context.Context, msg *types.MsgBuyTicket) (*types.MsgBuyTicketResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	ticket, err := ms.k.MintTicket(ctx, msg.Sender, msg.Commitment)
	if err != nil {
		return nil, err
	}
	return &types.MsgBuyTicketResponse{TicketId: ticket.Id, Round: ticket.Round}, nil
}

// CollectTicketRefund implements types.MsgServer.
func (ms msgServer) CollectTicketRefund(ctx context.Context, msg *types.MsgCollectTicketRefund) (*types.MsgCollectTicketRefundResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	refund, err := ms.k.RefundTicket(ctx, msg.Sender, msg.TicketId)
	if err != nil {
		return nil, err
	}
	return &types.MsgCollectTicketRefundResponse{Refund: refund}, nil
}

// RevealRndNumber implements types.MsgServer.
func (ms msgServer) RevealRndNumber(ctx context.Context, msg *types.MsgRevealRndNumber) (*types.MsgRevealRndNumberResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := ms.k.RevealTicket(ctx, msg.Sender, msg.TicketId, msg.Secret); err != nil {
		return nil, err
	}
	return &types.MsgRevealRndNumberResponse{}, nil
}

// CollectTicketPrize implements types.MsgServer.
func (ms msgServer) CollectTicketPrize(ctx context.Context, msg *types.MsgCollectTicketPrize) (*types.MsgCollectTicketPrizeResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	prize, err := ms.k.CollectPrize(ctx, msg.Sender, msg.TicketId)
	if err != nil {
		return nil, err
	}
	return &types.MsgCollectTicketPrizeResponse{Prize: prize}, nil
}
