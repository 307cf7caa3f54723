// Package crypto holds the ed25519 keys that sign sale transactions. A
// public key maps to the "sigs/ed25519" condition and through it to the
// signer address.
package crypto

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// DefaultDerivationPath is the SLIP-0010 path of the first account.
const DefaultDerivationPath = "m/44'/234'/0'"

// Signer produces signatures without exposing the private key, so a
// hardware wallet can stand in for a PrivateKey.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

var _ Signer = (*PrivateKey)(nil)

// Verify reports whether sig signs message under this key. Malformed keys
// and signatures never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p.Validate() != nil || sig == nil {
		return false
	}
	return ed25519.Verify(p.Ed25519, message, sig.Ed25519)
}

func (p *PublicKey) Condition() weave.Condition {
	return weave.NewCondition("sigs", "ed25519", p.Ed25519)
}

func (p *PublicKey) Address() weave.Address { return p.Condition().Address() }

func (p *PublicKey) Validate() error {
	switch {
	case p == nil:
		return errors.Wrap(errors.ErrEmpty, "public key")
	case len(p.Ed25519) != ed25519.PublicKeySize:
		return errors.Wrapf(errors.ErrInput, "public key of %d bytes", len(p.Ed25519))
	}
	return nil
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "private key of %d bytes", len(p.Ed25519))
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a key from the system random source. It
// panics if that source fails.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed expands a 32 byte seed into a key. The same seed
// always gives the same key.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// DeriveEd25519 derives the key at a hardened SLIP-0010 path from a
// master seed.
func DeriveEd25519(path string, seed []byte) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
