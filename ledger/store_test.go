package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"cosmossdk.io/collections"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSchema struct {
	counter collections.Sequence
	values  collections.Map[string, uint64]
}

func newTestSchema(t *testing.T, storeKey string) testSchema {
	sb := collections.NewSchemaBuilder(NewKVStoreService(storeKey))
	s := testSchema{
		counter: collections.NewSequence(sb, collections.NewPrefix(0), "counter"),
		values:  collections.NewMap(sb, collections.NewPrefix(1), "values", collections.StringKey, collections.Uint64Value),
	}
	_, err := sb.Build()
	require.NoError(t, err)
	return s
}

var t0 = time.Unix(1651438800, 0).UTC()

func TestStore_UpdateCommits(t *testing.T) {
	store := NewMemStore()
	s := newTestSchema(t, "mod")
	ctx := context.Background()

	res, err := store.Update(ctx, t0, func(ctx context.Context) error {
		require.Equal(t, t0, BlockTime(ctx))
		require.EqualValues(t, 1, BlockHeight(ctx))
		EmitEvent(ctx, NewEvent("set", NewAttribute("key", "a")))
		return s.values.Set(ctx, "a", 7)
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Header.Height)
	require.Len(t, res.Events, 1)

	err = store.View(ctx, t0, func(ctx context.Context) error {
		v, err := s.values.Get(ctx, "a")
		require.NoError(t, err)
		require.EqualValues(t, 7, v)
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, store.LastHeader().Height)
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	store := NewMemStore()
	s := newTestSchema(t, "mod")
	ctx := context.Background()
	boom := errors.New("boom")

	res, err := store.Update(ctx, t0, func(ctx context.Context) error {
		EmitEvent(ctx, NewEvent("lost"))
		require.NoError(t, s.values.Set(ctx, "a", 1))
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Empty(t, res.Events)

	_ = store.View(ctx, t0, func(ctx context.Context) error {
		_, err := s.values.Get(ctx, "a")
		require.ErrorIs(t, err, collections.ErrNotFound)
		return nil
	})
	require.EqualValues(t, 0, store.LastHeader().Height)
}

func TestStore_TimeIsMonotonic(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.Update(ctx, t0.Add(time.Hour), func(context.Context) error { return nil })
	require.NoError(t, err)

	res, err := store.Update(ctx, t0, func(ctx context.Context) error {
		require.Equal(t, t0.Add(time.Hour), BlockTime(ctx))
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Header.Height)
}

func TestStore_ReopenRestoresHeaderAndState(t *testing.T) {
	db := dbm.NewMemDB()
	store, err := NewStore(db)
	require.NoError(t, err)
	s := newTestSchema(t, "mod")
	ctx := context.Background()

	_, err = store.Update(ctx, t0, func(ctx context.Context) error {
		_, err := s.counter.Next(ctx)
		return err
	})
	require.NoError(t, err)

	reopened, err := NewStore(db)
	require.NoError(t, err)
	require.Equal(t, store.LastHeader(), reopened.LastHeader())

	_ = reopened.View(ctx, t0, func(ctx context.Context) error {
		n, err := s.counter.Peek(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		return nil
	})
}

func TestCacheContext(t *testing.T) {
	store := NewMemStore()
	s := newTestSchema(t, "mod")
	ctx := context.Background()

	_, err := store.Update(ctx, t0, func(ctx context.Context) error {
		// discarded branch
		tmp, _ := CacheContext(ctx)
		require.NoError(t, s.values.Set(tmp, "dropped", 1))
		EmitEvent(tmp, NewEvent("dropped"))

		ok, err := s.values.Has(ctx, "dropped")
		require.NoError(t, err)
		require.False(t, ok)

		// committed branch
		tmp, commit := CacheContext(ctx)
		require.NoError(t, s.values.Set(tmp, "kept", 2))
		EmitEvent(tmp, NewEvent("kept"))
		commit()

		v, err := s.values.Get(ctx, "kept")
		require.NoError(t, err)
		require.EqualValues(t, 2, v)

		events := EventsFromContext(ctx)
		require.Len(t, events, 1)
		assert.Equal(t, "kept", events[0].Type)
		return nil
	})
	require.NoError(t, err)
}

func TestPrefixStore_IsolationAndOrdering(t *testing.T) {
	store := NewMemStore()
	a := newTestSchema(t, "a")
	ab := newTestSchema(t, "ab")
	ctx := context.Background()

	_, err := store.Update(ctx, t0, func(ctx context.Context) error {
		for _, k := range []string{"c", "a", "b"} {
			require.NoError(t, a.values.Set(ctx, k, 1))
		}
		require.NoError(t, ab.values.Set(ctx, "z", 9))
		return nil
	})
	require.NoError(t, err)

	_, err = store.Update(ctx, t0, func(ctx context.Context) error {
		// pending delete and insert must show through iteration
		require.NoError(t, a.values.Remove(ctx, "b"))
		require.NoError(t, a.values.Set(ctx, "d", 4))

		iter, err := a.values.Iterate(ctx, nil)
		require.NoError(t, err)
		keys, err := iter.Keys()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "c", "d"}, keys)

		rev, err := a.values.Iterate(ctx, new(collections.Range[string]).Descending())
		require.NoError(t, err)
		keys, err = rev.Keys()
		require.NoError(t, err)
		require.Equal(t, []string{"d", "c", "a"}, keys)

		iter, err = ab.values.Iterate(ctx, nil)
		require.NoError(t, err)
		keys, err = iter.Keys()
		require.NoError(t, err)
		require.Equal(t, []string{"z"}, keys)
		return nil
	})
	require.NoError(t, err)
}

func TestWithBlockTime_SharesEvents(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	res, err := store.Update(ctx, t0, func(ctx context.Context) error {
		later := WithBlockTime(ctx, t0.Add(time.Minute))
		require.Equal(t, t0.Add(time.Minute), BlockTime(later))
		EmitEvent(later, NewEvent("later"))
		EmitEvent(ctx, NewEvent("now"))

		require.Len(t, EventsFromContext(later), 2)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "later", res.Events[0].Type)
	assert.Equal(t, "now", res.Events[1].Type)
}

func TestStore_WritesLandUnderModulePrefix(t *testing.T) {
	db := dbm.NewMemDB()
	store, err := NewStore(db)
	require.NoError(t, err)
	s := newTestSchema(t, "mod")
	ctx := context.Background()

	_, err = store.Update(ctx, t0, func(ctx context.Context) error {
		require.NoError(t, s.values.Set(ctx, "a", 1))

		// nothing reaches the database before the block commits
		iter, err := db.Iterator(nil, nil)
		require.NoError(t, err)
		defer iter.Close()
		require.False(t, iter.Valid())
		return nil
	})
	require.NoError(t, err)

	iter, err := db.Iterator([]byte("mod/"), []byte("mod0"))
	require.NoError(t, err)
	defer iter.Close()
	require.True(t, iter.Valid())

	ok, err := db.Has(headerKey)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCoreKVStore_RejectsEmptyKeys(t *testing.T) {
	ctx := NewContext(context.Background(), dbm.NewMemDB(), Header{Height: 1, Time: t0})
	kv := NewKVStoreService("mod").OpenKVStore(ctx)

	_, err := kv.Get(nil)
	require.Error(t, err)
	require.Error(t, kv.Set([]byte("k"), nil))
	require.NoError(t, kv.Set([]byte("k"), []byte("v")))

	v, err := kv.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}
