package sigs

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/crypto"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
)

// BucketName keys signer sequences by public key address.
const BucketName = "sigs"

// maxSequence keeps sequences exact in a javascript client
// (Number.MAX_SAFE_INTEGER).
const maxSequence = 1<<53 - 1

var _ orm.CloneableData = (*UserData)(nil)

// Validate rejects a negative sequence, and a used sequence without a
// public key.
func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Field("Sequence", ErrInvalidSequence, "used without a public key")
	}
	return nil
}

func (u *UserData) Copy() orm.CloneableData {
	c := *u
	return &c
}

// CheckAndIncrementSequence consumes the expected sequence.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "signed with %d, next is %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	u.Sequence++
	return nil
}

// AsUser returns the UserData of a bucket object, or nil.
func AsUser(obj orm.Object) *UserData {
	if obj == nil {
		return nil
	}
	u, _ := obj.Value().(*UserData)
	return u
}

// NewUser returns a fresh signer record keyed by the address of pubkey.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var addr weave.Address
	if pubkey != nil {
		addr = pubkey.Address()
	}
	return orm.NewSimpleObj(addr, &UserData{Pubkey: pubkey})
}

// Bucket stores signer records.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewUser(nil))}
}

// GetOrCreate loads the record of pubkey, or returns a new one that is
// stored by the next Save.
func (b Bucket) GetOrCreate(db weave.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil || obj != nil {
		return obj, err
	}
	return NewUser(pubkey), nil
}
