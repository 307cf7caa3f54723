package orm

import (
	"fmt"
	"regexp"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects of a single type under a common key prefix and
// keeps its indexes in sync on every write.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Object
	indexes map[string]*index
}

var _ weave.QueryHandler = Bucket{}

// NewBucket returns a bucket decoding stored values into copies of proto.
// It panics on a malformed name, as buckets are declared at start up.
func NewBucket(name string, proto Object) Bucket {
	if !validBucketName(name) {
		panic(fmt.Sprintf("bucket name %q must be 3 to 10 lowercase letters", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

// WithIndex returns a copy of the bucket maintaining one more index.
func (b Bucket) WithIndex(name string, fn Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("bucket %s: index %q declared twice", b.name, name))
	}
	indexes := make(map[string]*index, len(b.indexes)+1)
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	indexes[name] = newIndex(b.name+"_"+name, fn, unique, b.dbKey)
	b.indexes = indexes
	return b
}

func (b Bucket) dbKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get returns the object stored under key, or nil if there is none.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) (Object, error) {
	raw := db.Get(b.dbKey(key))
	if raw == nil {
		return nil, nil
	}
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrSchema, "bucket %s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Has returns true if an object is stored under key.
func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.dbKey(key))
}

// Save validates and writes the object, updating every index.
func (b Bucket) Save(db weave.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrSchema, "bucket %s: %s", b.name, err)
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	db.Set(b.dbKey(obj.Key()), raw)
	return nil
}

// Delete removes the object stored under key together with its index
// entries.
func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	db.Delete(b.dbKey(key))
	return nil
}

// reindex moves the index entries of the object stored under key to the
// ones of next. A nil next only drops the current entries.
func (b Bucket) reindex(db weave.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, key, prev, next); err != nil {
			return err
		}
	}
	return nil
}

// GetIndexed returns all objects referenced by the named index under value.
func (b Bucket) GetIndexed(db weave.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "bucket %s has no %q index", b.name, name)
	}
	refs, err := idx.refs(db, value)
	if err != nil {
		return nil, err
	}
	objs := make([]Object, 0, len(refs))
	for _, ref := range refs {
		obj, err := b.Get(db, ref)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			objs = append(objs, obj)
		}
	}
	return objs, nil
}

// Register exposes the bucket to queries under "/name" and each index
// under "/name/index". An empty name defaults to the bucket name.
func (b Bucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
	for n, idx := range b.indexes {
		r.Register("/"+name+"/"+n, idx)
	}
}

// Query serves key and prefix lookups of stored objects. Keys in the
// result carry the bucket prefix.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		key := b.dbKey(data)
		if raw := db.Get(key); raw != nil {
			return []weave.Model{weave.Pair(key, raw)}, nil
		}
		return nil, nil
	case weave.PrefixQueryMod:
		return scanPrefix(db, b.dbKey(data)), nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "bucket %s: unknown query mod %q", b.name, mod)
}
