package asset

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// newQuorum opens a round that is satisfied by required distinct signers.
func newQuorum(required uint32) *Quorum {
	return &Quorum{Required: required}
}

// HasSigned returns true if given address signed the current round.
func (q *Quorum) HasSigned(a weave.Address) bool {
	return weave.AddressSet(q.GetSigners()).Contains(a)
}

// GetSigners returns the addresses that signed the current round. It is
// safe to call on a nil quorum.
func (q *Quorum) GetSigners() []weave.Address {
	if q != nil {
		return q.Signers
	}
	return nil
}

// add records a signature. Signing twice has no effect and returns false.
func (q *Quorum) add(signer weave.Address) bool {
	set, added := weave.AddressSet(q.Signers).Add(signer)
	q.Signers = set
	return added
}

// evaluate marks the round satisfied once enough distinct signers are
// collected. When company is true, the client signature alone is never
// enough, at least one other signer must be present.
func (q *Quorum) evaluate(client weave.Address, company bool) bool {
	if q.Satisfied {
		return true
	}
	if uint32(len(q.Signers)) < q.Required {
		return false
	}
	if company {
		found := false
		for _, s := range q.Signers {
			if !s.Equals(client) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	q.Satisfied = true
	return true
}

func (q *Quorum) validate(cleared bool) error {
	var errs error
	errs = errors.AppendField(errs, "Signers", weave.AddressSet(q.Signers).Validate())
	if cleared {
		if len(q.Signers) != 0 || q.Satisfied {
			errs = errors.Append(errs, errors.Field("Signers", errors.ErrState, "must be cleared"))
		}
		return errs
	}
	if q.Required == 0 {
		errs = errors.Append(errs, errors.Field("Required", errors.ErrInput, "must be at least 1"))
	}
	return errs
}

func (q *Quorum) copy() *Quorum {
	if q == nil {
		return nil
	}
	signers := make([]weave.Address, len(q.Signers))
	for i, s := range q.Signers {
		signers[i] = append(weave.Address(nil), s...)
	}
	return &Quorum{
		Signers:   signers,
		Required:  q.Required,
		Satisfied: q.Satisfied,
	}
}

// isEligibleSigner returns true if given address may sign rounds of the
// asset. Company signers are checked by the caller against the registry.
func isEligibleSigner(a *Asset, signer weave.Address) bool {
	return signer.Equals(a.Client) || (len(a.Delegate) != 0 && signer.Equals(a.Delegate))
}
