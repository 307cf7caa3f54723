package signers

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
)

// Reader gives read access to the roster. Other extensions should depend on
// this interface rather than on the bucket.
type Reader interface {
	Registry(db weave.ReadOnlyKVStore) (*Registry, error)
}

// Controller manages the roster.
type Controller interface {
	Reader
	Save(db weave.KVStore, r *Registry) error
	AddSigner(db weave.KVStore, signer weave.Address) (bool, error)
	RemoveSigner(db weave.KVStore, signer weave.Address) (bool, error)
}

// NewController returns a controller operating on the default bucket.
func NewController() Controller {
	return controller{bucket: NewBucket()}
}

type controller struct {
	bucket orm.ModelBucket
}

var _ Controller = controller{}

// Registry loads the roster. ErrNotFound is returned if the chain was
// never initialized with one.
func (c controller) Registry(db weave.ReadOnlyKVStore) (*Registry, error) {
	var r Registry
	if err := c.bucket.One(db, registryKey, &r); err != nil {
		return nil, errors.Wrap(err, "signer registry")
	}
	return &r, nil
}

func (c controller) Save(db weave.KVStore, r *Registry) error {
	return c.bucket.Put(db, registryKey, r)
}

// AddSigner inserts a member. Adding a present member changes nothing and
// returns false.
func (c controller) AddSigner(db weave.KVStore, signer weave.Address) (bool, error) {
	if err := signer.Validate(); err != nil {
		return false, errors.Wrap(err, "signer")
	}
	r, err := c.Registry(db)
	if err != nil {
		return false, err
	}
	if !r.Add(signer) {
		return false, nil
	}
	return true, c.Save(db, r)
}

// RemoveSigner removes a member. Removing an absent member changes nothing
// and returns false. Signatures already collected by the member are not
// affected.
func (c controller) RemoveSigner(db weave.KVStore, signer weave.Address) (bool, error) {
	if err := signer.Validate(); err != nil {
		return false, errors.Wrap(err, "signer")
	}
	r, err := c.Registry(db)
	if err != nil {
		return false, err
	}
	if !r.Remove(signer) {
		return false, nil
	}
	return true, c.Save(db, r)
}
