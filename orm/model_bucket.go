package orm

import (
	"reflect"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// ModelBucket stores models of a single type by primary key.
type ModelBucket interface {
	// One loads the model stored under key into dest. It fails with
	// ErrNotFound when there is none and with ErrType when dest is of
	// another type than the stored model.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	Has(db weave.ReadOnlyKVStore, key []byte) bool

	// ByIndex appends to dest every model indexed under key by the named
	// index and returns their primary keys. dest must be a pointer to a
	// slice of the bucket model type.
	ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put validates and stores m under key, replacing any previous value.
	Put(db weave.KVStore, key []byte, m Model) error

	// Delete fails with ErrNotFound when nothing is stored under key.
	Delete(db weave.KVStore, key []byte) error

	Register(name string, r weave.QueryRouter)
}

// ModelSlicePtr is a pointer to a slice of models, like *[]*asset.Asset.
type ModelSlicePtr interface{}

// ModelBucketOption configures a model bucket on creation.
type ModelBucketOption func(*modelBucket)

// WithIndex adds a secondary index. A unique index refuses a second model
// with the same indexed value.
func WithIndex(name string, fn Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, fn, unique)
	}
}

// NewModelBucket returns a bucket storing models of the same type as m.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	mb := &modelBucket{
		b:     NewBucket(name, NewSimpleObj(nil, m)),
		model: reflect.TypeOf(m),
	}
	for _, opt := range opts {
		opt(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil {
		return errors.Wrapf(errors.ErrNotFound, "no %T under key %q", dest, key)
	}
	src := reflect.ValueOf(obj.Value())
	if !src.Type().AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "cannot load %s into %T", src.Type(), dest)
	}
	reflect.ValueOf(dest).Elem().Set(src.Elem())
	return nil
}

func (mb *modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) bool {
	return mb.b.Has(db, key)
}

func (mb *modelBucket) ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil || len(objs) == 0 {
		return nil, err
	}

	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination %T is not a pointer to a slice", dest)
	}
	if ptr.IsNil() {
		return nil, errors.Wrap(errors.ErrImmutable, "nil destination")
	}
	slice := ptr.Elem()
	if elem := slice.Type().Elem(); !mb.model.AssignableTo(elem) {
		return nil, errors.Wrapf(errors.ErrType, "bucket stores %s, not %s", mb.model, elem)
	}

	keys := make([][]byte, len(objs))
	for i, obj := range objs {
		slice = reflect.Append(slice, reflect.ValueOf(obj.Value()))
		keys[i] = obj.Key()
	}
	ptr.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Put(db weave.KVStore, key []byte, m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "bucket stores %s, not %s", mb.model, t)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	return mb.b.Save(db, NewSimpleObj(key, m))
}

func (mb *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if !mb.b.Has(db, key) {
		return errors.Wrapf(errors.ErrNotFound, "no model under key %q", key)
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Register(name string, r weave.QueryRouter) {
	mb.b.Register(name, r)
}
