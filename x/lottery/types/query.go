package types

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/pushchain/tl-lottery/types"
)

// QueryServer is the read-only surface of the lottery.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	LotteryNo(context.Context, *QueryLotteryNoRequest) (*QueryLotteryNoResponse, error)
	IsPurchaseActive(context.Context, *QueryIsPurchaseActiveRequest) (*QueryIsPurchaseActiveResponse, error)
	IsRevealActive(context.Context, *QueryIsRevealActiveRequest) (*QueryIsRevealActiveResponse, error)
	Balance(context.Context, *QueryBalanceRequest) (*QueryBalanceResponse, error)
	LastOwnedTicketNo(context.Context, *QueryLastOwnedTicketNoRequest) (*QueryOwnedTicketNoResponse, error)
	IthOwnedTicketNo(context.Context, *QueryIthOwnedTicketNoRequest) (*QueryOwnedTicketNoResponse, error)
	TotalLotteryMoneyCollected(context.Context, *QueryTotalLotteryMoneyCollectedRequest) (*QueryTotalLotteryMoneyCollectedResponse, error)
	CheckIfTicketWon(context.Context, *QueryCheckIfTicketWonRequest) (*QueryCheckIfTicketWonResponse, error)
	IthWinningTicket(context.Context, *QueryIthWinningTicketRequest) (*QueryIthWinningTicketResponse, error)
	OwnerOf(context.Context, *QueryOwnerOfRequest) (*QueryOwnerOfResponse, error)
	Ticket(context.Context, *QueryTicketRequest) (*QueryTicketResponse, error)
	Round(context.Context, *QueryRoundRequest) (*QueryRoundResponse, error)
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryLotteryNoRequest asks for the round containing unix time Timestamp.
type QueryLotteryNoRequest struct {
	Timestamp int64 `json:"timestamp"`
}

type QueryLotteryNoResponse struct {
	LotteryNo uint64 `json:"lottery_no"`
}

type QueryIsPurchaseActiveRequest struct{}

type QueryIsPurchaseActiveResponse struct {
	Active bool `json:"active"`
}

type QueryIsRevealActiveRequest struct{}

type QueryIsRevealActiveResponse struct {
	Active bool `json:"active"`
}

type QueryBalanceRequest struct {
	Owner sdk.Address `json:"owner"`
}

type QueryBalanceResponse struct {
	Balance math.Int `json:"balance"`
}

type QueryLastOwnedTicketNoRequest struct {
	Owner sdk.Address `json:"owner"`
	Round uint64      `json:"round"`
}

// QueryIthOwnedTicketNoRequest selects the Index-th (1 based, by purchase
// order) ticket of Owner in Round.
type QueryIthOwnedTicketNoRequest struct {
	Owner sdk.Address `json:"owner"`
	Round uint64      `json:"round"`
	Index uint64      `json:"index"`
}

type QueryOwnedTicketNoResponse struct {
	TicketId uint64      `json:"ticket_id"`
	State    TicketState `json:"state"`
}

type QueryTotalLotteryMoneyCollectedRequest struct {
	Round uint64 `json:"round"`
}

type QueryTotalLotteryMoneyCollectedResponse struct {
	Amount math.Int `json:"amount"`
}

type QueryCheckIfTicketWonRequest struct {
	TicketId uint64 `json:"ticket_id"`
}

type QueryCheckIfTicketWonResponse struct {
	Prize math.Int `json:"prize"`
}

// QueryIthWinningTicketRequest selects the ticket at rank Index (1 based) of
// a closed round.
type QueryIthWinningTicketRequest struct {
	Round uint64 `json:"round"`
	Index uint64 `json:"index"`
}

type QueryIthWinningTicketResponse struct {
	TicketId uint64   `json:"ticket_id"`
	Prize    math.Int `json:"prize"`
}

type QueryOwnerOfRequest struct {
	TicketId uint64 `json:"ticket_id"`
}

type QueryOwnerOfResponse struct {
	Owner sdk.Address `json:"owner"`
}

type QueryTicketRequest struct {
	TicketId uint64 `json:"ticket_id"`
}

type QueryTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type QueryRoundRequest struct {
	Round uint64 `json:"round"`
}

// RoundInfo summarizes a round at the time of the query.
type RoundInfo struct {
	Schedule       RoundSchedule `json:"schedule"`
	Closed         bool          `json:"closed"`
	Entropy        Hash          `json:"entropy"`
	TotalCollected math.Int      `json:"total_collected"`
	PrizesPaid     math.Int      `json:"prizes_paid"`
	RevealedCount  uint64        `json:"revealed_count"`
}

type QueryRoundResponse struct {
	Round RoundInfo `json:"round"`
}
