package orm

import (
	"bytes"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// Indexer returns the value an object is indexed under. A nil value keeps
// the object out of the index.
type Indexer func(Object) ([]byte, error)

// index maps an indexed value to primary keys. A unique index stores the
// primary key itself, any other index stores a MultiRef.
type index struct {
	name   string
	prefix []byte
	fn     Indexer
	unique bool
	// dbKey turns a primary key into the key of the bucket entry.
	dbKey func([]byte) []byte
}

var _ weave.QueryHandler = (*index)(nil)

func newIndex(name string, fn Indexer, unique bool, dbKey func([]byte) []byte) *index {
	return &index{
		name:   name,
		prefix: []byte("_i." + name + ":"),
		fn:     fn,
		unique: unique,
		dbKey:  dbKey,
	}
}

func (i *index) key(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(value))
	return append(append(out, i.prefix...), value...)
}

func (i *index) valueOf(obj Object) ([]byte, error) {
	if obj == nil {
		return nil, nil
	}
	return i.fn(obj)
}

// update replaces the entry produced by prev with the one produced by
// next. Either object can be nil.
func (i *index) update(db weave.KVStore, pk []byte, prev, next Object) error {
	before, err := i.valueOf(prev)
	if err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	after, err := i.valueOf(next)
	if err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	if prev != nil && next != nil && bytes.Equal(before, after) {
		return nil
	}
	if len(after) != 0 {
		if err := i.add(db, after, pk); err != nil {
			return err
		}
	}
	if len(before) != 0 {
		return i.remove(db, before, pk)
	}
	return nil
}

func (i *index) add(db weave.KVStore, value, pk []byte) error {
	key := i.key(value)
	raw := db.Get(key)
	if i.unique {
		if raw != nil && !bytes.Equal(raw, pk) {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		db.Set(key, pk)
		return nil
	}

	refs, err := i.decode(raw)
	if err != nil {
		return err
	}
	if err := refs.Add(pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	return i.store(db, key, refs)
}

func (i *index) remove(db weave.KVStore, value, pk []byte) error {
	key := i.key(value)
	raw := db.Get(key)
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s: no entry to remove", i.name)
	}
	if i.unique {
		if !bytes.Equal(raw, pk) {
			return errors.Wrapf(errors.ErrNotFound, "index %s: entry references another key", i.name)
		}
		db.Delete(key)
		return nil
	}

	refs, err := i.decode(raw)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	if len(refs.Refs) == 0 {
		db.Delete(key)
		return nil
	}
	return i.store(db, key, refs)
}

func (i *index) decode(raw []byte) (*MultiRef, error) {
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrSchema, "index %s: %s", i.name, err)
	}
	return &refs, nil
}

func (i *index) store(db weave.KVStore, key []byte, refs *MultiRef) error {
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrSchema, "index %s: %s", i.name, err)
	}
	db.Set(key, raw)
	return nil
}

// refs returns the primary keys indexed under value.
func (i *index) refs(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw := db.Get(i.key(value))
	switch {
	case raw == nil:
		return nil, nil
	case i.unique:
		return [][]byte{raw}, nil
	}
	refs, err := i.decode(raw)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the bucket entries indexed under the exact value. Prefix
// scans over an index are not supported.
func (i *index) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "index %s: unsupported query mod %q", i.name, mod)
	}
	refs, err := i.refs(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]weave.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.dbKey(ref)
		res = append(res, weave.Pair(key, db.Get(key)))
	}
	return res, nil
}
