package weavetest

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/crypto"
)

// NewKey returns a freshly generated ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key. Use it
// wherever a test needs a distinct party.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
