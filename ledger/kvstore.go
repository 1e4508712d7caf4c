package ledger

import (
	"fmt"

	"cosmossdk.io/collections/corecompat"
	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/dbadapter"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/pkg/errors"
)

var (
	errKeyEmpty = errors.New("key cannot be empty")
	errValueNil = errors.New("value cannot be nil")
)

// batchStore reads committed state from the database and stages every write
// into batch, so a block lands on disk in one WriteSync.
type batchStore struct {
	dbadapter.Store
	batch dbm.Batch
}

func newBatchStore(db dbm.DB, batch dbm.Batch) batchStore {
	return batchStore{Store: dbadapter.Store{DB: db}, batch: batch}
}

func (s batchStore) Set(key, value []byte) {
	storetypes.AssertValidKey(key)
	storetypes.AssertValidValue(value)
	if err := s.batch.Set(key, value); err != nil {
		panic(err)
	}
}

func (s batchStore) Delete(key []byte) {
	storetypes.AssertValidKey(key)
	if err := s.batch.Delete(key); err != nil {
		panic(err)
	}
}

// branch opens a write cache over parent.
func branch(parent storetypes.KVStore) storetypes.CacheKVStore {
	return cachekv.NewStore(parent)
}

// flush writes a branch into its parent, turning store panics into errors.
func flush(kv storetypes.CacheKVStore) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to write branch: %v", r)
		}
	}()
	kv.Write()
	return nil
}

// coreKVStore exposes a store KVStore through the error returning interface
// collections works with.
type coreKVStore struct {
	kv storetypes.KVStore
}

var _ corecompat.KVStore = coreKVStore{}

func (s coreKVStore) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errKeyEmpty
	}
	return s.kv.Get(key), nil
}

func (s coreKVStore) Has(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, errKeyEmpty
	}
	return s.kv.Has(key), nil
}

func (s coreKVStore) Set(key, value []byte) error {
	if len(key) == 0 {
		return errKeyEmpty
	}
	if value == nil {
		return errValueNil
	}
	s.kv.Set(key, value)
	return nil
}

func (s coreKVStore) Delete(key []byte) error {
	if len(key) == 0 {
		return errKeyEmpty
	}
	s.kv.Delete(key)
	return nil
}

func (s coreKVStore) Iterator(start, end []byte) (corecompat.Iterator, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, errKeyEmpty
	}
	return s.kv.Iterator(start, end), nil
}

func (s coreKVStore) ReverseIterator(start, end []byte) (corecompat.Iterator, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, errKeyEmpty
	}
	return s.kv.ReverseIterator(start, end), nil
}
