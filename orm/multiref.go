package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/wire"
)

// MultiRef is a sorted set of primary keys, stored as the value of a
// non unique index entry.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

func (m *MultiRef) Reset()         { *m = MultiRef{} }
func (m *MultiRef) String() string { return proto.CompactTextString(m) }
func (*MultiRef) ProtoMessage()    {}

func init() {
	proto.RegisterType((*MultiRef)(nil), "orm.MultiRef")
}

// Marshal serializes the set.
func (m *MultiRef) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.RepeatedBytes(1, m.Refs)
	return e.Result()
}

// Unmarshal loads the set from its serialized form.
func (m *MultiRef) Unmarshal(bz []byte) error {
	*m = MultiRef{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			var ref []byte
			ref, err = f.Bytes()
			m.Refs = append(m.Refs, ref)
		}
		return err
	})
}

var _ CloneableData = (*MultiRef)(nil)

// NewMultiRef returns a set holding the given references.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := &MultiRef{}
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// search returns the position of ref in the sorted set, or the position
// it would be inserted at.
func (m *MultiRef) search(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Add inserts ref keeping the set sorted. Adding a present reference
// fails with ErrDuplicate.
func (m *MultiRef) Add(ref []byte) error {
	i, ok := m.search(ref)
	if ok {
		return errors.Wrap(errors.ErrDuplicate, "reference already present")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove drops ref from the set. Removing an absent reference fails with
// ErrNotFound.
func (m *MultiRef) Remove(ref []byte) error {
	i, ok := m.search(ref)
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "reference not present")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// Copy returns a new set sharing the reference slices.
func (m *MultiRef) Copy() CloneableData {
	return &MultiRef{Refs: append([][]byte(nil), m.Refs...)}
}

// Validate rejects an empty set.
func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}
