package app

import (
	"context"
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/weavetest/assert"
)

func TestRouter(t *testing.T) {
	var (
		r    = NewRouter()
		good = &weavetest.Handler{}
		bad  = &weavetest.Handler{DeliverErr: errors.ErrState}
	)
	r.Handle("asset/mint", good)
	r.Handle("asset/sign", bad)

	assert.Panics(t, func() { r.Handle("asset/mint", good) })
	assert.Panics(t, func() { r.Handle("asset mint", good) })

	ctx := context.Background()
	db := store.MemStore()
	mintTx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "asset/mint"}}

	_, err := r.Check(ctx, db, mintTx)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, mintTx)
	assert.Nil(t, err)
	assert.Equal(t, 2, good.CallCount())

	signTx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "asset/sign"}}
	_, err = r.Deliver(ctx, db, signTx)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, bad.CallCount())

	missingTx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "asset/burn"}}
	_, err = r.Check(ctx, db, missingTx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, missingTx)
	assert.IsErr(t, errors.ErrNotFound, err)

	brokenTx := &weavetest.Tx{Err: errors.ErrMsg}
	_, err = r.Deliver(ctx, db, brokenTx)
	assert.IsErr(t, errors.ErrMsg, err)

	// the handlers are untouched by failed routing
	assert.Equal(t, 2, good.CallCount())
	assert.Equal(t, 1, bad.CallCount())
}

func TestRouterIsRegistry(t *testing.T) {
	var reg weave.Registry = NewRouter()
	reg.Handle("cash/send", &weavetest.Handler{})
}
