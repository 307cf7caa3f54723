package store

import (
	"bytes"

	"github.com/google/btree"
)

// MemStore returns an empty in memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap buffers writes over a read only store in a btree. Reads
// see the buffered writes first. Write replays them through batch.
type BTreeCacheWrap struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over back. Nested caches pass their
// free list down so that btree nodes are recycled. A nil free list
// allocates a new one.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:  btree.NewWithFreeList(2, free),
		free:  free,
		back:  back,
		batch: batch,
	}
}

// CacheWrap stacks another cache on top, as used by savepoints.
func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

func (c BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes the buffered writes to the store below and empties the
// cache.
func (c BTreeCacheWrap) Write() {
	c.batch.Write()
	c.Discard()
}

// Discard drops the buffered writes.
func (c BTreeCacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
	if b, ok := c.batch.(*NonAtomicBatch); ok {
		b.Reset()
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	c.batch.Set(key, value)
}

// Delete records a tombstone, hiding the key of the store below.
func (c BTreeCacheWrap) Delete(key []byte) {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	c.batch.Delete(key)
}

func (c BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	found := c.tree.Get(entry{key: key})
	if found == nil {
		return entry{}, false
	}
	return found.(entry), true
}

func (c BTreeCacheWrap) Get(key []byte) []byte {
	e, ok := c.lookup(key)
	if !ok {
		return c.back.Get(key)
	}
	if e.deleted {
		return nil
	}
	return e.value
}

func (c BTreeCacheWrap) Has(key []byte) bool {
	e, ok := c.lookup(key)
	if !ok {
		return c.back.Has(key)
	}
	return !e.deleted
}

// Iterator merges the cache with the store below over [start, end).
func (c BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	return newMergeIterator(c.entries(start, end, false), c.back.Iterator(start, end), false)
}

// ReverseIterator merges the cache with the store below over [start, end)
// in descending order.
func (c BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	return newMergeIterator(c.entries(start, end, true), c.back.ReverseIterator(start, end), true)
}

// entries copies the cached entries within [start, end). Nil bounds are
// open.
func (c BTreeCacheWrap) entries(start, end []byte, descending bool) []entry {
	var list []entry
	collect := func(it btree.Item) bool {
		list = append(list, it.(entry))
		return true
	}
	lo, hi := entry{key: start}, entry{key: end}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(collect)
	case start == nil:
		c.tree.AscendLessThan(hi, collect)
	case end == nil:
		c.tree.AscendGreaterOrEqual(lo, collect)
	default:
		c.tree.AscendRange(lo, hi, collect)
	}
	if descending {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
	return list
}

// entry is a buffered write. A deleted entry is a tombstone.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
