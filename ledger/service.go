package ledger

import (
	"context"

	"cosmossdk.io/collections/corecompat"
	"cosmossdk.io/store/prefix"
)

// KVStoreService hands out a module namespace of the running transaction.
// It satisfies the store service expected by collections.NewSchemaBuilder.
type KVStoreService struct {
	prefix []byte
}

var _ corecompat.KVStoreService = KVStoreService{}

// NewKVStoreService returns the service for the module identified by storeKey.
func NewKVStoreService(storeKey string) KVStoreService {
	return KVStoreService{prefix: []byte(storeKey + "/")}
}

// OpenKVStore implements corecompat.KVStoreService.
func (s KVStoreService) OpenKVStore(ctx context.Context) corecompat.KVStore {
	return coreKVStore{kv: prefix.NewStore(frameFrom(ctx).kv, s.prefix)}
}
