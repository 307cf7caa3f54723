package app

import (
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func pathDecoder(bz []byte) (weave.Tx, error) {
	if len(bz) == 0 {
		panic("empty transaction")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(bz)}}, nil
}

func TestBaseApp(t *testing.T) {
	rt := NewRouter()
	rt.Handle("test/write", &weavetest.WriteHandler{
		Key:   []byte("written"),
		Value: []byte("yes"),
	})
	rt.Handle("test/fail", &weavetest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	})

	store := newTestStoreApp(t)
	base := NewBaseApp(store, pathDecoder, rt, false)
	base.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})

	chk := base.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(0), chk.Code, chk.Log)
	assert.Equal(t, []byte("yes"), base.CheckStore().Get([]byte("written")))
	assert.Nil(t, base.DeliverStore().Get([]byte("written")))

	dres := base.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, []byte("yes"), base.DeliverStore().Get([]byte("written")))

	dres = base.DeliverTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), dres.Code)
	chk = base.CheckTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), chk.Code)

	dres = base.DeliverTx([]byte("test/unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), dres.Code)

	// a panicking decoder does not crash the application
	dres = base.DeliverTx(nil)
	assert.Equal(t, errors.ErrPanic.ABCICode(), dres.Code)
}
