package weave

// ReadOnlyKVStore reads the application state. Handlers that only check
// a sale receive it through KVStore as well.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is absent. A nil key panics.
	Get(key []byte) []byte
	Has(key []byte) bool

	// Iterator walks [start, end) in ascending key order. Nil bounds are
	// open. The range must not be written while the iterator is open.
	Iterator(start, end []byte) Iterator
	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter writes. Callers must not modify key or value afterwards.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is the state every handler and decorator works on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch queues writes until Write.
type Batch interface {
	SetDeleter
	Write()
}

// Iterator is a cursor over a key range:
//
//   it := db.Iterator(start, end)
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//     key, value := it.Key(), it.Value()
//   }
//
// Next, Key and Value panic once Valid returned false. Returned slices
// are read only.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a write cache on itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of another store. Reads see the
// buffered writes. Write flushes them below and Discard drops them, which
// is how a failed transaction leaves no trace.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent root store of the node.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) []byte
	// CacheWrap returns a cache whose Write lands in the next version.
	CacheWrap() KVCacheWrap
	// Commit persists the next version.
	Commit() (CommitID, error)
	// LoadLatestVersion opens the last complete version, even after a
	// crash during a commit.
	LoadLatestVersion() error
	LatestVersion() CommitID
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
