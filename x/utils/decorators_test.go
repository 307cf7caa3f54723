package utils

import (
	"context"
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorated handler
	ok, ov := []byte("asset:1"), []byte("minted")
	// written by the decorated handler
	nk, nv := []byte("asset:1:phase"), []byte("deposit_open")

	cases := map[string]struct {
		Save    Savepoint
		Err     error
		Check   bool
		Written [][]byte
		Missing [][]byte
	}{
		"inactive savepoint keeps failed writes": {
			Save:    NewSavepoint(),
			Err:     errors.ErrState,
			Check:   true,
			Written: [][]byte{ok, nk},
		},
		"check savepoint drops failed writes": {
			Save:    NewSavepoint().OnCheck(),
			Err:     errors.ErrState,
			Check:   true,
			Written: [][]byte{ok},
			Missing: [][]byte{nk},
		},
		"deliver savepoint drops failed writes": {
			Save:    NewSavepoint().OnDeliver(),
			Err:     errors.ErrState,
			Written: [][]byte{ok},
			Missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			Save:    NewSavepoint().OnCheck(),
			Err:     errors.ErrState,
			Written: [][]byte{ok, nk},
		},
		"success is written": {
			Save:    NewSavepoint().OnCheck().OnDeliver(),
			Written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			db.Set(ok, ov)
			h := weavetest.Decorate(&weavetest.WriteHandler{Key: nk, Value: nv, Err: tc.Err}, tc.Save)

			var err error
			if tc.Check {
				_, err = h.Check(context.Background(), db, &weavetest.Tx{})
			} else {
				_, err = h.Deliver(context.Background(), db, &weavetest.Tx{})
			}
			assert.IsErr(t, tc.Err, err)

			for _, k := range tc.Written {
				if !db.Has(k) {
					t.Errorf("missing key %q", k)
				}
			}
			for _, k := range tc.Missing {
				if db.Has(k) {
					t.Errorf("unexpected key %q", k)
				}
			}
		})
	}
}

type panicHandler struct{}

func (panicHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic("boom")
}

func (panicHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic("boom")
}

func TestRecovery(t *testing.T) {
	h := weavetest.Decorate(panicHandler{}, NewRecovery())
	_, err := h.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)

	// regular errors pass through untouched
	h = weavetest.Decorate(&weavetest.Handler{CheckErr: errors.ErrNotFound}, NewRecovery())
	_, err = h.Check(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestLogging(t *testing.T) {
	handler := &weavetest.Handler{DeliverErr: errors.ErrUnauthorized}
	h := weavetest.Decorate(handler, NewLogging())

	_, err := h.Check(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.Nil(t, err)
	_, err = h.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 2, handler.CallCount())
}

func TestActionTagger(t *testing.T) {
	h := weavetest.Decorate(&weavetest.Handler{}, NewActionTagger())
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "asset/transfer"}}

	res, err := h.Deliver(context.Background(), store.MemStore(), tx)
	require.NoError(t, err)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, []byte(ActionKey), res.Tags[0].Key)
	assert.Equal(t, []byte("asset/transfer"), res.Tags[0].Value)

	// a transaction without a message is rejected
	_, err = h.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{Err: errors.ErrInput})
	assert.IsErr(t, errors.ErrInput, err)
}
