// Package iavl persists application state in a versioned merkle tree.
package iavl

import (
	"path/filepath"

	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const cacheSize = 10000

// CommitStore keeps the sale state in an iavl tree. Every Commit saves
// a new tree version whose root hash is the app hash.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing. An empty dir keeps
// all data in memory, which is useful for tests.
func NewCommitStore(dir, name string) (CommitStore, error) {
	var db dbm.DB
	if dir == "" {
		db = dbm.NewMemDB()
	} else {
		path, err := filepath.Abs(dir)
		if err != nil {
			return CommitStore{}, errors.Wrapf(errors.ErrInput, "data dir %q: %s", dir, err)
		}
		db, err = dbm.NewGoLevelDB(name, path)
		if err != nil {
			return CommitStore{}, errors.Wrapf(errors.ErrInternal, "open database: %s", err)
		}
	}
	return CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
		db:   db,
	}, nil
}

// Get reads the last saved version.
func (s CommitStore) Get(key []byte) []byte {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val
}

// Commit saves the working tree as the next version.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrInternal, "save version: %s", err)
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion opens the last version saved to the database.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrInternal, "load tree: %s", err)
	}
	return nil
}

func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// Close releases the underlying database.
func (s CommitStore) Close() {
	s.db.Close()
}

// Adapter returns a wrapper around the working tree. All writes land in the
// next version and are persisted by Commit.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{s.tree}
}

// CacheWrap wraps the working tree with a btree cache. Writing the cache
// updates the working tree, which is persisted on Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// adapter reads and writes the working tree of the next version.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

func (a adapter) Get(key []byte) []byte {
	_, val := a.tree.Get(key)
	return val
}

func (a adapter) Has(key []byte) bool {
	return a.tree.Has(key)
}

func (a adapter) Set(key, value []byte) {
	a.tree.Set(key, value)
}

func (a adapter) Delete(key []byte) {
	a.tree.Remove(key)
}

func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// Iterator loads every pair of [start, end) before returning.
func (a adapter) Iterator(start, end []byte) store.Iterator {
	return a.collect(start, end, true)
}

func (a adapter) ReverseIterator(start, end []byte) store.Iterator {
	return a.collect(start, end, false)
}

func (a adapter) collect(start, end []byte, ascending bool) store.Iterator {
	var pairs []store.Model
	a.tree.IterateRange(start, end, ascending, func(k, v []byte) (stop bool) {
		pairs = append(pairs, store.Model{Key: k, Value: v})
		return false
	})
	return store.NewSliceIterator(pairs)
}
