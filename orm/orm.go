/*
Package orm stores typed models in prefixed key spaces of a KVStore.

Every bucket owns the keys that start with its name and a colon. A bucket
may keep secondary indexes. An index owns the keys starting with "_i.",
its bucket name and its own name, and maps an indexed value to the primary
keys of the models that produced it.
*/
package orm

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// ErrInvalidIndex is returned when a bucket has no index of requested name.
var ErrInvalidIndex = errors.Register(100, "invalid index")

// CloneableData is a persistent value that validates and copies itself.
type CloneableData interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}

// Model is an alias used by ModelBucket signatures.
type Model = CloneableData

// Object binds a value to the primary key it is stored under.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Value() weave.Persistent
	Validate() error
	Clone() Object
}

// SimpleObj is the only Object implementation. It is exported so that
// extensions can build objects for Bucket.Save.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj returns an object storing value under key.
func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o *SimpleObj) Key() []byte             { return o.key }
func (o *SimpleObj) SetKey(key []byte)       { o.key = key }
func (o *SimpleObj) Value() weave.Persistent { return o.value }

// Validate requires both a key and a valid value.
func (o *SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "object key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "object value")
	}
	return o.value.Validate()
}

// Clone returns a deep copy, used as a fresh destination when a bucket
// decodes a stored value.
func (o *SimpleObj) Clone() Object {
	c := &SimpleObj{value: o.value.Copy()}
	if len(o.key) != 0 {
		c.key = append([]byte(nil), o.key...)
	}
	return c
}
