package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
)

const (
	EventTypeTransfer = "tl_transfer"
	EventTypeApproval = "tl_approval"
)

// TransferEvent is emitted for every balance movement, including the mint
// at genesis (From is the zero address).
type TransferEvent struct {
	From  sdk.Address `json:"from"`
	To    sdk.Address `json:"to"`
	Value math.Int    `json:"value"`
}

// NewTransferEvent creates the ledger event for e.
func NewTransferEvent(e TransferEvent) (ledger.Event, error) {
	bz, err := json.Marshal(e)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return ledger.NewEvent(
		EventTypeTransfer,
		ledger.NewAttribute("from", e.From.String()),
		ledger.NewAttribute("to", e.To.String()),
		ledger.NewAttribute("value", e.Value.String()),
		ledger.NewAttribute("data", string(bz)),
	), nil
}

// ApprovalEvent is emitted whenever an allowance is set.
type ApprovalEvent struct {
	Owner   sdk.Address `json:"owner"`
	Spender sdk.Address `json:"spender"`
	Value   math.Int    `json:"value"`
}

// NewApprovalEvent creates the ledger event for e.
func NewApprovalEvent(e ApprovalEvent) (ledger.Event, error) {
	bz, err := json.Marshal(e)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return ledger.NewEvent(
		EventTypeApproval,
		ledger.NewAttribute("owner", e.Owner.String()),
		ledger.NewAttribute("spender", e.Spender.String()),
		ledger.NewAttribute("value", e.Value.String()),
		ledger.NewAttribute("data", string(bz)),
	), nil
}
