package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
)

const (
	EventTypeDeposit         = "lottery_deposit"
	EventTypeWithdraw        = "lottery_withdraw"
	EventTypeTicketPurchased = "ticket_purchased"
	EventTypeTicketRefunded  = "ticket_refunded"
	EventTypeTicketRevealed  = "ticket_revealed"
	EventTypePrizeCollected  = "prize_collected"
)

// EscrowEvent is emitted for deposits and withdrawals.
type EscrowEvent struct {
	Owner   sdk.Address `json:"owner"`
	Amount  math.Int    `json:"amount"`
	Balance math.Int    `json:"balance"`
}

// TicketEvent is emitted on every ticket state change.
type TicketEvent struct {
	TicketId uint64      `json:"ticket_id"`
	Round    uint64      `json:"round"`
	Owner    sdk.Address `json:"owner"`
	State    TicketState `json:"state"`
	Amount   math.Int    `json:"amount"` // price, refund or prize depending on the event
}

// String returns a readable log for CLI
func (e TicketEvent) String() string {
	return fmt.Sprintf(
		"Ticket %d | Round: %d | Owner: %s | State: %s | Amount: %s",
		e.TicketId, e.Round, e.Owner, e.State, e.Amount,
	)
}

// NewEscrowEvent creates the ledger event for a deposit or withdrawal.
func NewEscrowEvent(ty string, e EscrowEvent) (ledger.Event, error) {
	bz, err := json.Marshal(e)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return ledger.NewEvent(
		ty,
		ledger.NewAttribute("owner", e.Owner.String()),
		ledger.NewAttribute("amount", e.Amount.String()),
		ledger.NewAttribute("balance", e.Balance.String()),
		ledger.NewAttribute("data", string(bz)),
	), nil
}

// NewTicketEvent creates the ledger event for a ticket state change.
func NewTicketEvent(ty string, e TicketEvent) (ledger.Event, error) {
	bz, err := json.Marshal(e)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return ledger.NewEvent(
		ty,
		ledger.NewAttribute("ticket_id", fmt.Sprintf("%d", e.TicketId)),
		ledger.NewAttribute("round", fmt.Sprintf("%d", e.Round)),
		ledger.NewAttribute("owner", e.Owner.String()),
		ledger.NewAttribute("state", e.State.String()),
		ledger.NewAttribute("amount", e.Amount.String()),
		ledger.NewAttribute("data", string(bz)), // full JSON payload for off-chain consumption
	), nil
}
