// Package ledger provides the transactional key/value state every module of
// the lottery node reads and writes. Each operation runs in its own branch of
// the store and is committed atomically, together with a new block header,
// or discarded as a whole.
package ledger

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/pkg/errors"
)

// headerKey lives outside every module namespace (module keys are
// "<storeKey>/...").
var headerKey = []byte("_ledger/header")

// Result describes a committed (or failed) operation.
type Result struct {
	Header Header
	Events []Event
}

// Store serializes operations over a cosmos-db database.
type Store struct {
	mu   sync.RWMutex
	db   dbm.DB
	last Header
}

// OpenDB opens the state database named name under dir.
func OpenDB(name, backend, dir string) (dbm.DB, error) {
	db, err := dbm.NewDB(name, dbm.BackendType(backend), dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database %q", backend, name)
	}
	return db, nil
}

// NewStore wraps db, restoring the last committed header if any.
func NewStore(db dbm.DB) (*Store, error) {
	s := &Store{db: db}

	bz, err := db.Get(headerKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read last header")
	}
	if bz != nil {
		if err := json.Unmarshal(bz, &s.last); err != nil {
			return nil, errors.Wrap(err, "failed to decode last header")
		}
	}
	return s, nil
}

// NewMemStore returns a Store over an in-memory database.
func NewMemStore() *Store {
	s, err := NewStore(dbm.NewMemDB())
	if err != nil {
		panic(err)
	}
	return s
}

// LastHeader returns the header of the last committed operation. Height is
// zero when nothing was committed yet.
func (s *Store) LastHeader() Header {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Update runs fn as a new block at time now and commits its writes when fn
// returns nil. Block time never goes backwards: an earlier now is raised to
// the last committed time.
func (s *Store) Update(ctx context.Context, now time.Time, fn func(ctx context.Context) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := Header{Height: s.last.Height + 1, Time: now.UTC()}
	if header.Time.Before(s.last.Time) {
		header.Time = s.last.Time
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	root := newFrame(header, branch(newBatchStore(s.db, batch)))
	if err := fn(context.WithValue(ctx, frameKey{}, root)); err != nil {
		return Result{Header: header}, err
	}

	bz, err := json.Marshal(header)
	if err != nil {
		return Result{Header: header}, errors.Wrap(err, "failed to encode header")
	}
	root.kv.Set(headerKey, bz)

	if err := flush(root.kv); err != nil {
		return Result{Header: header}, errors.Wrap(err, "failed to stage writes")
	}
	if err := batch.WriteSync(); err != nil {
		return Result{Header: header}, errors.Wrap(err, "failed to commit block")
	}

	s.last = header
	return Result{Header: header, Events: *root.events}, nil
}

// View runs fn against the committed state at time now (never earlier than
// the last committed block). Writes made by fn are discarded.
func (s *Store) View(ctx context.Context, now time.Time, fn func(ctx context.Context) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	header := Header{Height: s.last.Height, Time: now.UTC()}
	if header.Time.Before(s.last.Time) {
		header.Time = s.last.Time
	}

	root := newFrame(header, branch(dbadapter.Store{DB: s.db}))
	return fn(context.WithValue(ctx, frameKey{}, root))
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
