//nolint
package store

import "github.com/tidewater-labs/submarine"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = submarine.ReadOnlyKVStore
type KVStore = submarine.KVStore
type SetDeleter = submarine.SetDeleter
type Batch = submarine.Batch
type Iterator = submarine.Iterator
type CacheableKVStore = submarine.CacheableKVStore
type KVCacheWrap = submarine.KVCacheWrap

// Model groups a key-value pair, mostly for test fixtures.
type Model struct {
	Key   []byte
	Value []byte
}
