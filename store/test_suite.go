package store

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sort"
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/weavetest/assert"
)

// TestSuite runs the same KVStore checks against any store implementation.
// It is shared by btree_test.go and iavl/adapter_test.go.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function releasing its
// resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that cache layers see the data below them, and that writes
// are visible below only after Write.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	minted, price := []byte("asset:1"), []byte("600")
	s.AssertGetHas(t, base, minted, nil, false)
	base.Set(minted, price)
	s.AssertGetHas(t, base, minted, price, true)

	tx := base.CacheWrap()
	s.AssertGetHas(t, tx, minted, price, true)

	paid, amount := []byte("paid:1"), []byte("250")
	tx.Set(paid, amount)
	s.AssertGetHas(t, tx, paid, amount, true)
	s.AssertGetHas(t, base, paid, nil, false)
	tx.Write()
	s.AssertGetHas(t, base, paid, amount, true)

	failed := base.CacheWrap()
	failed.Set([]byte("asset:2"), []byte("900"))
	failed.Delete(minted)
	failed.Discard()
	s.AssertGetHas(t, base, []byte("asset:2"), nil, false)
	s.AssertGetHas(t, base, minted, price, true)

	transfer := base.CacheWrap()
	transfer.Delete(paid)
	transfer.Write()

	view := base.CacheWrap()
	s.AssertGetHas(t, view, paid, nil, false)
	s.AssertGetHas(t, view, minted, price, true)
}

// CacheConflicts checks overwrites and deletes of values stored in the
// parent.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	k := assetPairs(4)
	cases := map[string]struct {
		parent []Op
		child  []Op
		// what the parent holds before the child is written
		before []Model
		// what both hold once the child is written
		after []Model
	}{
		"overwrite one, delete another, add a third": {
			parent: sets(k[1], k[2]),
			child:  []Op{SetOp(k[1].Key, []byte("changed")), SetOp(k[3].Key, k[3].Value), DelOp(k[2].Key)},
			before: []Model{k[1], k[2], weave.Pair(k[3].Key, nil)},
			after:  []Model{weave.Pair(k[1].Key, []byte("changed")), weave.Pair(k[2].Key, nil), k[3]},
		},
		"delete and set again": {
			parent: sets(k[0]),
			child:  []Op{DelOp(k[0].Key), SetOp(k[0].Key, []byte("again"))},
			before: []Model{k[0]},
			after:  []Model{weave.Pair(k[0].Key, []byte("again"))},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()
			apply(parent, tc.parent)

			child := parent.CacheWrap()
			apply(child, tc.child)
			for _, q := range tc.before {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.after {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			child.Write()
			for _, q := range tc.after {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// FuzzIterator iterates over random data split between a parent and a child
// layer, in both directions and with every kind of bound.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	const size = 40

	child := randomPairs(size, 8, 32)
	parent := randomPairs(size, 8, 32)
	noise := randomPairs(10, 8, 32)

	onlyChild := sortedByKey(child)
	both := sortedByKey(append(append([]Model{}, child...), parent...))

	cases := map[string]iterCase{
		"child over empty parent": {
			child:   append(sets(child...), dels(noise...)...),
			queries: rangesOf(onlyChild),
		},
		"child over filled parent": {
			pre:     append(sets(parent...), dels(noise...)...),
			child:   sets(child...),
			queries: rangesOf(both),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// IteratorWithConflicts covers iteration when the child overwrites or deletes
// keys of the parent.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	ms := assetPairs(4)
	a, b, c, d := ms[0], ms[1], ms[2], ms[3]
	a2 := weave.Pair(a.Key, []byte("overwritten a"))
	b2 := weave.Pair(b.Key, []byte("overwritten b"))

	abc := []Model{a, b, c}
	overwritten := []Model{a2, b2, c, d}

	cases := map[string]iterCase{
		"child only": {
			child:   sets(a, b, c),
			queries: []rangeQuery{{nil, nil, false, abc}, {b.Key, c.Key, false, abc[1:2]}, {nil, nil, true, reversed(abc)}},
		},
		"parent only": {
			pre:     sets(a, b, c),
			queries: []rangeQuery{{nil, nil, false, abc}, {b.Key, c.Key, false, abc[1:2]}, {nil, nil, true, reversed(abc)}},
		},
		"split between layers": {
			pre:     sets(a, b),
			child:   sets(c),
			queries: []rangeQuery{{nil, nil, false, abc}, {nil, nil, true, reversed(abc)}},
		},
		"child values win": {
			pre:     sets(a, b, c),
			child:   sets(a2, b2, d),
			queries: []rangeQuery{{nil, nil, false, overwritten}, {b.Key, d.Key, false, overwritten[1:3]}, {nil, nil, true, reversed(overwritten)}},
		},
		"deleted keys are skipped": {
			pre:     sets(a, c, d),
			child:   dels(a, b, d),
			queries: []rangeQuery{{nil, nil, false, []Model{c}}, {nil, c.Key, false, nil}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	assert.Equal(t, val, kv.Get(key))
	assert.Equal(t, has, kv.Has(key))
}

// assetPairs returns count models with ordered asset keys.
func assetPairs(count int) []Model {
	res := make([]Model, count)
	for i := range res {
		res[i] = weave.Pair([]byte(fmt.Sprintf("asset:%04d", i)), []byte(fmt.Sprintf("price %d", i*100)))
	}
	return res
}

func randomPairs(count, keySize, valueSize int) []Model {
	var out []Model
	for len(out) < count {
		out = append(out, weave.Pair(randomBytes(keySize), randomBytes(valueSize)))
	}
	return out
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// rangesOf returns forward and reverse queries over sorted data, with
// no bound, a start bound, an end bound and both.
func rangesOf(sorted []Model) []rangeQuery {
	n := len(sorted)
	lo, hi := n/4, 3*n/4
	return []rangeQuery{
		{nil, nil, false, sorted},
		{sorted[lo].Key, nil, false, sorted[lo:]},
		{nil, sorted[hi].Key, false, sorted[:hi]},
		{sorted[lo].Key, sorted[hi].Key, false, sorted[lo:hi]},
		{nil, nil, true, reversed(sorted)},
		{sorted[lo].Key, nil, true, reversed(sorted[lo:])},
		{nil, sorted[hi].Key, true, reversed(sorted[:hi])},
		{sorted[lo].Key, sorted[hi].Key, true, reversed(sorted[lo:hi])},
	}
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (c iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	apply(base, c.pre)
	child := base.CacheWrap()
	apply(child, c.child)

	for _, q := range c.queries {
		it := child.Iterator
		if q.reverse {
			it = child.ReverseIterator
		}
		got := drain(it(q.start, q.end))
		if len(got) != len(q.expected) {
			t.Fatalf("want %d elements, got %d", len(q.expected), len(got))
		}
		for n, want := range q.expected {
			if !bytes.Equal(want.Key, got[n].Key) {
				t.Fatalf("element %d: want key %X, got %X", n, want.Key, got[n].Key)
			}
			assert.Equal(t, want.Value, got[n].Value)
		}
	}
}

// drain reads the iterator to the end and closes it.
func drain(it Iterator) []Model {
	defer it.Close()
	var out []Model
	for it.Valid() {
		out = append(out, weave.Pair(it.Key(), it.Value()))
		it.Next()
	}
	return out
}

func apply(db SetDeleter, ops []Op) {
	for _, op := range ops {
		op.Apply(db)
	}
}

func reversed(models []Model) []Model {
	out := make([]Model, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		out = append(out, models[i])
	}
	return out
}

func sortedByKey(models []Model) []Model {
	out := append([]Model(nil), models...)
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].Key, out[j].Key) < 0 })
	return out
}

func sets(ms ...Model) []Op {
	var out []Op
	for _, m := range ms {
		out = append(out, SetOp(m.Key, m.Value))
	}
	return out
}

func dels(ms ...Model) []Op {
	var out []Op
	for _, m := range ms {
		out = append(out, DelOp(m.Key))
	}
	return out
}
