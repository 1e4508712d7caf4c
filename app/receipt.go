package app

import (
	"context"
	"time"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
)

// Receipt describes one delivered operation.
type Receipt struct {
	Height    int64          `json:"height"`
	Time      time.Time      `json:"time"`
	Operation string         `json:"operation"`
	Sender    sdk.Address    `json:"sender"`
	Success   bool           `json:"success"`
	Result    any            `json:"result,omitempty"`
	Events    []ledger.Event `json:"events,omitempty"`
	Err       error          `json:"-"`
}

// ReceiptSink consumes receipts of delivered operations. Record must not
// block for long; it runs on the delivery path.
type ReceiptSink interface {
	Record(ctx context.Context, r Receipt)
}

type nopSink struct{}

func (nopSink) Record(context.Context, Receipt) {}
