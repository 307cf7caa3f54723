package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	require.NoError(t, pub.Validate())

	msg := []byte("deposit 1000 for asset 111")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)

	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("deposit 1 for asset 111"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
	assert.False(t, pub.Verify(msg, nil))
	assert.False(t, (&PublicKey{Ed25519: []byte{1, 2}}).Verify(msg, sig))
}

func TestSeedIsDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.Ed25519, b.Ed25519)
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())
	assert.Equal(t, "sigs", string(a.PublicKey().Condition()[:4]))
}

func TestDeriveEd25519(t *testing.T) {
	// SLIP-0010 test vector 1 for ed25519
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	priv, err := DeriveEd25519("m/0'", seed)
	require.NoError(t, err)
	wantPub, err := hex.DecodeString("8c8a13df77a28f3445213a0f432fde644acaa215fc72dcdf300d5efaa85d350c")
	require.NoError(t, err)
	assert.Equal(t, wantPub, []byte(priv.PublicKey().Ed25519))

	_, err = DeriveEd25519("m/0", seed)
	assert.Error(t, err, "non hardened paths are not supported")
}

func TestKeySerialization(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	bz, err := proto.Marshal(pub)
	require.NoError(t, err)

	var got PublicKey
	require.NoError(t, proto.Unmarshal(bz, &got))
	assert.Equal(t, pub.Ed25519, got.Ed25519)
	assert.Equal(t, pub.Address(), got.Address())
}
