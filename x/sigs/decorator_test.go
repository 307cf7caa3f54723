package sigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/crypto"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/iov-one/nftsale/weavetest"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := weave.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []weave.Condition{priv.PublicKey().Condition()}

	tx := NewStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec weave.Decorator, my weave.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec weave.Decorator, my weave.Tx) (*weave.CheckResult, error) {
		return dec.Check(ctx, checkKv, my, signers)
	}

	// no signature, fail
	err = deliver(d, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = check(d, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// an empty signature list is rejected as well
	tx.Signatures = []*StdSignature{}
	err = deliver(d, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Empty(t, signers.Signers)

	// a plain transaction without signature support is rejected
	err = deliver(d, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/mock"}})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// one signature as first tx
	tx.Signatures = []*StdSignature{sig}
	res, err := check(d, tx)
	require.NoError(t, err)
	assert.EqualValues(t, signatureVerifyCost, res.GasAllocated)
	err = deliver(d, tx)
	require.NoError(t, err)
	assert.Equal(t, perms, signers.Signers)

	// a replayed signature fails
	err = deliver(d, tx)
	assert.True(t, ErrInvalidSequence.Is(err))

	// the next one passes
	tx.Signatures = []*StdSignature{sig1}
	err = deliver(d, tx)
	require.NoError(t, err)
	assert.Equal(t, perms, signers.Signers)
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []weave.Condition
}

var _ weave.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &weave.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &weave.DeliverResult{}, nil
}
