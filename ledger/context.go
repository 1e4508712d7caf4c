package ledger

import (
	"context"
	"time"

	"cosmossdk.io/store/dbadapter"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
)

// Header describes the block an operation executes in.
type Header struct {
	Height int64     `json:"height"`
	Time   time.Time `json:"time"`
}

type frameKey struct{}

// frame is one level of branching. The root frame is created per operation
// by Store, nested frames by CacheContext.
type frame struct {
	header Header
	kv     storetypes.CacheKVStore
	events *[]Event
}

func newFrame(header Header, kv storetypes.CacheKVStore) *frame {
	return &frame{header: header, kv: kv, events: new([]Event)}
}

func frameFrom(ctx context.Context) *frame {
	f, ok := ctx.Value(frameKey{}).(*frame)
	if !ok {
		panic("ledger: context does not carry a ledger transaction")
	}
	return f
}

// HeaderFromContext returns the block header of the running operation.
func HeaderFromContext(ctx context.Context) (Header, bool) {
	f, ok := ctx.Value(frameKey{}).(*frame)
	if !ok {
		return Header{}, false
	}
	return f.header, true
}

// BlockTime returns the time of the running operation. It panics when ctx
// was not produced by Store.Update or Store.View.
func BlockTime(ctx context.Context) time.Time {
	return frameFrom(ctx).header.Time
}

// BlockHeight returns the height of the running operation.
func BlockHeight(ctx context.Context) int64 {
	return frameFrom(ctx).header.Height
}

// CacheContext branches the state of ctx. Writes made through the returned
// context become visible to ctx only once commit is called; events are
// forwarded on commit as well.
func CacheContext(ctx context.Context) (cc context.Context, commit func()) {
	parent := frameFrom(ctx)
	child := newFrame(parent.header, branch(parent.kv))

	commit = func() {
		child.kv.Write()
		*parent.events = append(*parent.events, *child.events...)
		*child.events = nil
	}

	return context.WithValue(ctx, frameKey{}, child), commit
}

// NewContext opens a branch over db that is never committed. Tests and
// tooling use it to drive keepers without a Store.
func NewContext(ctx context.Context, db dbm.DB, header Header) context.Context {
	return context.WithValue(ctx, frameKey{}, newFrame(header, branch(dbadapter.Store{DB: db})))
}

// WithHeader returns a copy of ctx that sees the same state and records into
// the same events under header.
func WithHeader(ctx context.Context, header Header) context.Context {
	f := frameFrom(ctx)
	return context.WithValue(ctx, frameKey{}, &frame{
		header: header,
		kv:     f.kv,
		events: f.events,
	})
}

// WithBlockTime returns a copy of ctx at block time t.
func WithBlockTime(ctx context.Context, t time.Time) context.Context {
	h := frameFrom(ctx).header
	h.Time = t.UTC()
	return WithHeader(ctx, h)
}
