// Package indexer persists node receipts into the SQLite receipt index.
package indexer

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/pushchain/tl-lottery/app"
	"github.com/pushchain/tl-lottery/indexer/db"
	"github.com/pushchain/tl-lottery/indexer/store"
)

// Indexer is an app.ReceiptSink backed by a receipt database.
type Indexer struct {
	database *db.DB
	logger   zerolog.Logger
}

var _ app.ReceiptSink = (*Indexer)(nil)

// New creates an Indexer writing to database.
func New(database *db.DB, logger zerolog.Logger) *Indexer {
	return &Indexer{
		database: database,
		logger:   logger.With().Str("component", "indexer").Logger(),
	}
}

// Record stores r. Indexing failures are logged and never fail the operation.
func (ix *Indexer) Record(_ context.Context, r app.Receipt) {
	row, err := ToModel(r)
	if err != nil {
		ix.logger.Error().Err(err).Str("operation", r.Operation).Msg("failed to encode receipt")
		return
	}
	if err := ix.database.SaveReceipt(row); err != nil {
		ix.logger.Error().Err(err).Str("operation", r.Operation).Int64("height", r.Height).Msg("failed to index receipt")
		return
	}
	ix.logger.Debug().
		Str("operation", r.Operation).
		Int64("height", r.Height).
		Bool("success", r.Success).
		Int("events", len(r.Events)).
		Msg("receipt indexed")
}

// Receipts lists indexed receipts matching f.
func (ix *Indexer) Receipts(f db.ReceiptFilter) ([]store.Receipt, error) {
	return ix.database.ListReceipts(f)
}

// ToModel converts a receipt into its database row.
func ToModel(r app.Receipt) (*store.Receipt, error) {
	row := &store.Receipt{
		Height:    r.Height,
		BlockTime: r.Time,
		Operation: r.Operation,
		Sender:    r.Sender.String(),
		Success:   r.Success,
	}

	if r.Err != nil {
		codespace, code, log := errorsmod.ABCIInfo(r.Err, false)
		row.Codespace, row.Code, row.ErrorMsg = codespace, code, log
	}

	if r.Result != nil {
		bz, err := json.Marshal(r.Result)
		if err != nil {
			return nil, err
		}
		row.Result = bz
	}

	for _, ev := range r.Events {
		attrs, err := json.Marshal(ev.Attributes)
		if err != nil {
			return nil, err
		}
		row.Events = append(row.Events, store.EventRecord{Type: ev.Type, Attributes: attrs})
	}
	return row, nil
}
