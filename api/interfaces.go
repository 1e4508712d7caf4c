package api

import (
	"time"

	"github.com/pushchain/tl-lottery/indexer/db"
	"github.com/pushchain/tl-lottery/indexer/store"
)

// ReceiptReader serves indexed receipts.
type ReceiptReader interface {
	Receipts(f db.ReceiptFilter) ([]store.Receipt, error)
}

// TimeMachine moves the node clock forward in dev mode.
type TimeMachine interface {
	Now() time.Time
	Offset() time.Duration
	Advance(d time.Duration) (time.Time, error)
	Set(t time.Time) (time.Time, error)
}
