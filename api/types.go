package api

import (
	"time"

	"github.com/pushchain/tl-lottery/app"
)

// QueryResponse represents the standard query response format
type QueryResponse struct {
	Data   interface{} `json:"data"`
	Height int64       `json:"height"`
	Time   time.Time   `json:"time"`
}

// TxResponse is returned for every state changing request.
type TxResponse struct {
	app.Receipt
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Codespace string `json:"codespace,omitempty"`
	Code      uint32 `json:"code,omitempty"`
	Height    int64  `json:"height,omitempty"`
}

// StatusResponse summarizes the node and the current round.
type StatusResponse struct {
	Height         int64  `json:"height"`
	BlockTime      string `json:"block_time"`
	Now            string `json:"now"`
	LotteryNo      uint64 `json:"lottery_no"`
	PurchaseActive bool   `json:"purchase_active"`
	RevealActive   bool   `json:"reveal_active"`
	DevMode        bool   `json:"dev_mode"`
}

type senderRequest struct {
	From string `json:"from"`
}

type amountRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
}

type buyTicketRequest struct {
	From       string `json:"from"`
	Commitment string `json:"commitment"`
}

type revealRequest struct {
	From   string `json:"from"`
	Secret string `json:"secret"`
}

type approveRequest struct {
	From    string `json:"from"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type commitmentRequest struct {
	Owner  string `json:"owner"`
	Secret string `json:"secret"`
}

type commitmentResponse struct {
	Commitment string `json:"commitment"`
}

type increaseTimeRequest struct {
	Seconds int64 `json:"seconds"`
}

type setTimeRequest struct {
	Timestamp int64 `json:"timestamp"`
}

type timeResponse struct {
	Now    time.Time `json:"now"`
	Offset string    `json:"offset"`
}
