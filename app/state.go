package app

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// CommitStore keeps two write caches over the committed state. CheckTx
// runs against one of them and DeliverTx against the other, so that a
// sale checked in the mempool never leaks into the block being built.
type CommitStore struct {
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

// NewCommitStore opens the latest version of store. The node cannot run
// without its state, so a failure to load it panics.
func NewCommitStore(store weave.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(errors.Wrap(err, "load latest state version"))
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and app hash of the last commit.
func (cs *CommitStore) CommitInfo() weave.CommitID {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered in the current block. Changes made
// while checking are thrown away.
func (cs *CommitStore) Commit() (weave.CommitID, error) {
	cs.check.Discard()
	cs.deliver.Write()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() weave.CacheableKVStore   { return cs.check }
func (cs *CommitStore) DeliverStore() weave.CacheableKVStore { return cs.deliver }

// Committed returns a view of the last committed state, used by queries.
func (cs *CommitStore) Committed() weave.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// chainIDKey lives outside of any bucket key space.
var chainIDKey = []byte("_wv:chainID")

func loadChainID(db weave.ReadOnlyKVStore) string {
	return string(db.Get(chainIDKey))
}

// saveChainID writes the chain id once. A second write is refused.
func saveChainID(db weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	if db.Has(chainIDKey) {
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	db.Set(chainIDKey, []byte(chainID))
	return nil
}
