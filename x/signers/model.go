package signers

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
)

const (
	// BucketName is where the roster is stored.
	BucketName = "signers"
)

// registryKey is the primary key of the singleton roster.
var registryKey = []byte("registry")

var _ orm.Model = (*Registry)(nil)

// NewRegistry returns a roster ready to be stored. This is the only place
// where the threshold is checked against the member count, members may
// shrink below the threshold later on.
func NewRegistry(custodian weave.Address, members []weave.Address, threshold uint32) (*Registry, error) {
	r := &Registry{Custodian: custodian, Threshold: threshold}
	for _, m := range members {
		r.Add(m)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if int(threshold) > len(r.Members) {
		return nil, errors.Wrapf(errors.ErrInput, "threshold %d exceeds %d members", threshold, len(r.Members))
	}
	return r, nil
}

// Validate ensures the roster is well formed.
func (r *Registry) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Custodian", r.Custodian.Validate())
	errs = errors.AppendField(errs, "Members", weave.AddressSet(r.Members).Validate())
	if r.Threshold == 0 {
		errs = errors.Append(errs, errors.Field("Threshold", errors.ErrInput, "must be at least 1"))
	}
	return errs
}

// Copy returns a deep copy of the roster.
func (r *Registry) Copy() orm.CloneableData {
	members := make([]weave.Address, len(r.Members))
	for i, m := range r.Members {
		members[i] = append(weave.Address(nil), m...)
	}
	return &Registry{
		Custodian: append(weave.Address(nil), r.Custodian...),
		Members:   members,
		Threshold: r.Threshold,
	}
}

// IsMember returns true if given address is a company signer.
func (r *Registry) IsMember(a weave.Address) bool {
	return weave.AddressSet(r.Members).Contains(a)
}

// Add inserts a member. It returns false if it was already present.
func (r *Registry) Add(a weave.Address) bool {
	set, added := weave.AddressSet(r.Members).Add(a)
	r.Members = set
	return added
}

// Remove deletes a member. It returns false if it was not present.
func (r *Registry) Remove(a weave.Address) bool {
	set, removed := weave.AddressSet(r.Members).Remove(a)
	r.Members = set
	return removed
}

// NewBucket returns the bucket holding the roster.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Registry{})
}
