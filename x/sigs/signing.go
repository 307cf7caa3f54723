package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/crypto"
	"github.com/iov-one/nftsale/errors"
)

// SignCodeV1 starts every signed payload. Changing the payload layout
// requires a new code.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// BuildSignBytes returns the sha512 digest a signer signs:
//
//	code (4) | len(chainID) (1) | chainID | sequence (8, big endian) | tx bytes
//
// The chain id and the sequence bind a signature to one chain and one use.
func BuildSignBytes(txBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "negative sequence %d", seq)
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	payload := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(txBytes))
	payload = append(payload, SignCodeV1...)
	payload = append(payload, byte(len(chainID)))
	payload = append(payload, chainID...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	payload = append(payload, nonce[:]...)
	payload = append(payload, txBytes...)

	digest := sha512.Sum512(payload)
	return digest[:], nil
}

// BuildSignBytesTx is BuildSignBytes over the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(raw, chainID, seq)
}

// SignTx signs tx with the given sequence of the signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// VerifyTxSignatures verifies every signature of tx and returns the signer
// conditions in signature order. Each valid signature bumps the sequence
// of its signer, so a replayed transaction fails.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]weave.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(db, sig, raw, chainID); err != nil {
			return nil, err
		}
	}
	return signers, nil
}

// VerifySignature verifies one signature of txBytes and returns the
// condition of its signer.
func VerifySignature(db weave.KVStore, sig *StdSignature, txBytes []byte, chainID string) (weave.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(txBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature does not match")
	}

	b := NewBucket()
	obj, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := AsUser(obj).CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := b.Save(db, obj); err != nil {
		return nil, err
	}
	return sig.Pubkey.Condition(), nil
}
