package app

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the complete ABCI application. It decodes every transaction
// and passes it to the handler stack, against the check or the deliver
// cache of the embedded StoreApp.
type BaseApp struct {
	*StoreApp
	decode  weave.TxDecoder
	handler weave.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp wraps store. With debug set, failed responses carry full
// error details.
func NewBaseApp(store *StoreApp, decode weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decode:   decode,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return weave.CheckTxError(err, b.debug)
	}
	ctx := weave.WithLogInfo(b.BlockContext(), "call", "check_tx", "path", weave.GetPath(tx))
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return weave.CheckOrError(res, err, b.debug)
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return weave.DeliverTxError(err, b.debug)
	}
	ctx := weave.WithLogInfo(b.BlockContext(), "call", "deliver_tx", "path", weave.GetPath(tx))
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return weave.DeliverOrError(res, err, b.debug)
}

// decodeTx turns a decoder panic into an ErrPanic error, so that malformed
// bytes never stop the node.
func (b BaseApp) decodeTx(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return b.decode(raw)
}
