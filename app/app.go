// Package app wires the state store, the module keepers and the node's
// runtime concerns (clock, metrics, receipts) into a single lottery node.
package app

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
	lotterykeeper "github.com/pushchain/tl-lottery/x/lottery/keeper"
	lotterytypes "github.com/pushchain/tl-lottery/x/lottery/types"
	tokenkeeper "github.com/pushchain/tl-lottery/x/tltoken/keeper"
	tokentypes "github.com/pushchain/tl-lottery/x/tltoken/types"
)

const Name = "lotteryd"

// App is a single-node lottery ledger. Every state change is delivered as
// one block through Deliver; reads go through Query.
type App struct {
	logger   log.Logger
	store    *ledger.Store
	clock    Clock
	registry *prometheus.Registry
	metrics  *Metrics
	sink     ReceiptSink

	checkInvariants bool

	TokenKeeper   tokenkeeper.Keeper
	LotteryKeeper lotterykeeper.Keeper

	MsgServer   lotterytypes.MsgServer
	QueryServer lotterytypes.QueryServer
}

// Option configures an App.
type Option func(*App)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithReceiptSink hands every receipt to sink.
func WithReceiptSink(sink ReceiptSink) Option {
	return func(a *App) { a.sink = sink }
}

// WithInvariantChecks runs the lottery invariants after every committed
// operation.
func WithInvariantChecks(enabled bool) Option {
	return func(a *App) { a.checkInvariants = enabled }
}

// New builds an App over store.
func New(store *ledger.Store, logger log.Logger, opts ...Option) *App {
	a := &App{
		logger:   logger.With(log.ModuleKey, "app"),
		store:    store,
		clock:    SystemClock{},
		registry: prometheus.NewRegistry(),
		sink:     nopSink{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.metrics = NewMetrics(a.registry)

	a.TokenKeeper = tokenkeeper.NewKeeper(ledger.NewKVStoreService(tokentypes.StoreKey), logger)
	a.LotteryKeeper = lotterykeeper.NewKeeper(ledger.NewKVStoreService(lotterytypes.StoreKey), logger, a.TokenKeeper)

	a.MsgServer = lotterykeeper.NewMsgServerImpl(a.LotteryKeeper)
	a.QueryServer = lotterykeeper.NewQuerier(a.LotteryKeeper)

	return a
}

func (a *App) Logger() log.Logger { return a.logger }

func (a *App) Clock() Clock { return a.clock }

// Gatherer exposes the node metrics.
func (a *App) Gatherer() prometheus.Gatherer { return a.registry }

// Initialized reports whether genesis was imported.
func (a *App) Initialized() bool {
	return a.store.LastHeader().Height > 0
}

// LastHeader returns the last committed block header.
func (a *App) LastHeader() ledger.Header {
	return a.store.LastHeader()
}

// Deliver executes fn as one block on behalf of sender. The writes and events
// of fn are committed only when it succeeds. The receipt is produced for
// failed operations too.
func (a *App) Deliver(ctx context.Context, op string, sender sdk.Address, fn func(ctx context.Context) (any, error)) (Receipt, error) {
	started := time.Now()

	var result any
	res, err := a.store.Update(ctx, a.clock.Now(), func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})

	receipt := Receipt{
		Height:    res.Header.Height,
		Time:      res.Header.Time,
		Operation: op,
		Sender:    sender,
		Success:   err == nil,
		Result:    result,
		Events:    res.Events,
		Err:       err,
	}
	if err != nil {
		receipt.Result = nil
		receipt.Events = nil
		a.logger.Debug("Operation failed", "operation", op, "sender", sender.String(), "error", err)
	} else {
		a.logger.Debug("Operation committed", "operation", op, "sender", sender.String(), "height", res.Header.Height, "events", len(res.Events))
		a.assertInvariants(ctx)
	}

	a.metrics.observe(op, started, res, err)
	a.sink.Record(ctx, receipt)

	return receipt, err
}

// Query runs fn against the committed state at the current clock time.
func (a *App) Query(ctx context.Context, fn func(ctx context.Context) error) error {
	return a.store.View(ctx, a.clock.Now(), fn)
}

func (a *App) assertInvariants(ctx context.Context) {
	if !a.checkInvariants {
		return
	}

	check := lotterykeeper.AllInvariants(a.LotteryKeeper)
	err := a.Query(ctx, func(ctx context.Context) error {
		if msg, broken := check(ctx); broken {
			a.metrics.BrokenInvariants.Inc()
			a.logger.Error("Invariant broken", "details", msg)
		}
		return nil
	})
	if err != nil {
		a.logger.Error("Failed to check invariants", "error", err)
	}
}

// Close closes the state store.
func (a *App) Close() error {
	return a.store.Close()
}
