package sigs

import "github.com/iov-one/nftsale/errors"

// SignedTx is a transaction the Decorator can authenticate.
type SignedTx interface {
	// GetSignBytes returns the bytes covered by the signatures. They must
	// not include the signatures themselves.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// Validate checks that every part of the signature is present. It does
// not verify the signature.
func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrapf(ErrInvalidSequence, "negative sequence %d", s.Sequence)
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Pubkey.Validate() != nil:
		return errors.Wrap(errors.ErrUnauthorized, "malformed public key")
	case s.Signature == nil || len(s.Signature.Ed25519) == 0:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
