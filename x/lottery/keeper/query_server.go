package keeper

import (
	"context"

	"github.com/pushchain/tl-lottery/x/lottery/types"
)

var _ types.QueryServer = Querier{}

type Querier struct {
	Keeper
}

func NewQuerier(keeper Keeper) Querier {
	return Querier{Keeper: keeper}
}

func (k Querier) Params(ctx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	p, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryParamsResponse{Params: p}, nil
}

func (k Querier) LotteryNo(ctx context.Context, req *types.QueryLotteryNoRequest) (*types.QueryLotteryNoResponse, error) {
	round, err := k.GetLotteryNo(ctx, req.Timestamp)
	if err != nil {
		return nil, err
	}
	return &types.QueryLotteryNoResponse{LotteryNo: round}, nil
}

func (k Querier) IsPurchaseActive(ctx context.Context, req *types.QueryIsPurchaseActiveRequest) (*types.QueryIsPurchaseActiveResponse, error) {
	active, err := k.Keeper.IsPurchaseActive(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryIsPurchaseActiveResponse{Active: active}, nil
}

func (k Querier) IsRevealActive(ctx context.Context, req *types.QueryIsRevealActiveRequest) (*types.QueryIsRevealActiveResponse, error) {
	active, err := k.Keeper.IsRevealActive(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryIsRevealActiveResponse{Active: active}, nil
}

func (k Querier) Balance(ctx context.Context, req *types.QueryBalanceRequest) (*types.QueryBalanceResponse, error) {
	bal, err := k.GetBalance(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	return &types.QueryBalanceResponse{Balance: bal}, nil
}

func (k Querier) LastOwnedTicketNo(ctx context.Context, req *types.QueryLastOwnedTicketNoRequest) (*types.QueryOwnedTicketNoResponse, error) {
	ticket, err := k.LastOwnedTicket(ctx, req.Owner, req.Round)
	if err != nil {
		return nil, err
	}
	return &types.QueryOwnedTicketNoResponse{TicketId: ticket.Id, State: ticket.State}, nil
}

func (k Querier) IthOwnedTicketNo(ctx context.Context, req *types.QueryIthOwnedTicketNoRequest) (*types.QueryOwnedTicketNoResponse, error) {
	ticket, err := k.IthOwnedTicket(ctx, req.Owner, req.Round, req.Index)
	if err != nil {
		return nil, err
	}
	return &types.QueryOwnedTicketNoResponse{TicketId: ticket.Id, State: ticket.State}, nil
}

func (k Querier) TotalLotteryMoneyCollected(ctx context.Context, req *types.QueryTotalLotteryMoneyCollectedRequest) (*types.QueryTotalLotteryMoneyCollectedResponse, error) {
	amount, err := k.GetTotalCollected(ctx, req.Round)
	if err != nil {
		return nil, err
	}
	return &types.QueryTotalLotteryMoneyCollectedResponse{Amount: amount}, nil
}

func (k Querier) CheckIfTicketWon(ctx context.Context, req *types.QueryCheckIfTicketWonRequest) (*types.QueryCheckIfTicketWonResponse, error) {
	prize, err := k.Outcome(ctx, req.TicketId)
	if err != nil {
		return nil, err
	}
	return &types.QueryCheckIfTicketWonResponse{Prize: prize}, nil
}

func (k Querier) IthWinningTicket(ctx context.Context, req *types.QueryIthWinningTicketRequest) (*types.QueryIthWinningTicketResponse, error) {
	id, prize, err := k.Keeper.IthWinningTicket(ctx, req.Round, req.Index)
	if err != nil {
		return nil, err
	}
	return &types.QueryIthWinningTicketResponse{TicketId: id, Prize: prize}, nil
}

func (k Querier) OwnerOf(ctx context.Context, req *types.QueryOwnerOfRequest) (*types.QueryOwnerOfResponse, error) {
	owner, err := k.Keeper.OwnerOf(ctx, req.TicketId)
	if err != nil {
		return nil, err
	}
	return &types.QueryOwnerOfResponse{Owner: owner}, nil
}

func (k Querier) Ticket(ctx context.Context, req *types.QueryTicketRequest) (*types.QueryTicketResponse, error) {
	ticket, err := k.GetTicket(ctx, req.TicketId)
	if err != nil {
		return nil, err
	}
	return &types.QueryTicketResponse{Ticket: ticket}, nil
}

func (k Querier) Round(ctx context.Context, req *types.QueryRoundRequest) (*types.QueryRoundResponse, error) {
	info, err := k.GetRoundInfo(ctx, req.Round)
	if err != nil {
		return nil, err
	}
	return &types.QueryRoundResponse{Round: info}, nil
}
