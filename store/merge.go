package store

import "bytes"

// mergeIterator walks the cached entries and the iterator of the store
// below side by side. A cached entry wins over a parent entry with the
// same key and a tombstone hides it.
type mergeIterator struct {
	cached     []entry
	pos        int
	parent     Iterator
	descending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []entry, parent Iterator, descending bool) *mergeIterator {
	it := &mergeIterator{cached: cached, parent: parent, descending: descending}
	it.skipTombstones()
	return it
}

// head tells which side holds the current key.
type head int

const (
	headNone head = iota
	headCached
	headParent
	headBoth
)

func (it *mergeIterator) head() head {
	cached := it.pos < len(it.cached)
	parent := it.parent != nil && it.parent.Valid()
	switch {
	case !cached && !parent:
		return headNone
	case !parent:
		return headCached
	case !cached:
		return headParent
	}
	cmp := bytes.Compare(it.cached[it.pos].key, it.parent.Key())
	if it.descending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return headCached
	case cmp > 0:
		return headParent
	}
	return headBoth
}

func (it *mergeIterator) skipTombstones() {
	for {
		h := it.head()
		if h != headCached && h != headBoth {
			return
		}
		if !it.cached[it.pos].deleted {
			return
		}
		it.pos++
		if h == headBoth {
			it.parent.Next()
		}
	}
}

func (it *mergeIterator) Valid() bool {
	return it.head() != headNone
}

func (it *mergeIterator) Next() {
	switch it.head() {
	case headCached:
		it.pos++
	case headParent:
		it.parent.Next()
	case headBoth:
		it.pos++
		it.parent.Next()
	default:
		panic("iterator is exhausted")
	}
	it.skipTombstones()
}

func (it *mergeIterator) Key() []byte {
	switch it.head() {
	case headCached, headBoth:
		return it.cached[it.pos].key
	case headParent:
		return it.parent.Key()
	}
	panic("iterator is exhausted")
}

func (it *mergeIterator) Value() []byte {
	switch it.head() {
	case headCached, headBoth:
		return it.cached[it.pos].value
	case headParent:
		return it.parent.Value()
	}
	panic("iterator is exhausted")
}

func (it *mergeIterator) Close() {
	it.cached = nil
	if it.parent != nil {
		it.parent.Close()
	}
}
