package cash

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/x"
)

// RegisterRoutes registers the transfer handler. Deposits do not go
// through here, the asset package moves funds with the same controller.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, ctrl))
}

// RegisterQuery exposes balances under /wallets.
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves funds between two wallets on behalf of the source
// wallet owner.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{auth: auth, ctrl: ctrl}
}

// Check does not look at balances. An overdraft is only detected on
// delivery.
func (h SendHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.load(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}
	return &weave.DeliverResult{}, nil
}

func (h SendHandler) load(ctx weave.Context, tx weave.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "send message")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "wallet %s did not sign", msg.Src)
	}
	return &msg, nil
}
