package signers

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/x"
)

const (
	updateSignersCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathAddSignerMsg, AddSignerHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathRemoveSignerMsg, RemoveSignerHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the roster as "/signers"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("signers", qr)
}

// AddSignerHandler inserts a company signer on behalf of the custodian.
type AddSignerHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = AddSignerHandler{}

func (h AddSignerHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg AddSignerMsg
	if err := h.validate(ctx, db, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateSignersCost}, nil
}

func (h AddSignerHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg AddSignerMsg
	if err := h.validate(ctx, db, tx, &msg); err != nil {
		return nil, err
	}
	added, err := h.ctrl.AddSigner(db, msg.Signer)
	if err != nil {
		return nil, err
	}
	if added {
		weave.GetLogger(ctx).Info("signer added", "signer", msg.Signer)
	}
	return &weave.DeliverResult{}, nil
}

func (h AddSignerHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx, msg *AddSignerMsg) error {
	if err := weave.LoadMsg(tx, msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	return requireCustodian(ctx, db, h.auth, h.ctrl)
}

// RemoveSignerHandler removes a company signer on behalf of the custodian.
type RemoveSignerHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = RemoveSignerHandler{}

func (h RemoveSignerHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg RemoveSignerMsg
	if err := h.validate(ctx, db, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateSignersCost}, nil
}

func (h RemoveSignerHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg RemoveSignerMsg
	if err := h.validate(ctx, db, tx, &msg); err != nil {
		return nil, err
	}
	removed, err := h.ctrl.RemoveSigner(db, msg.Signer)
	if err != nil {
		return nil, err
	}
	if removed {
		weave.GetLogger(ctx).Info("signer removed", "signer", msg.Signer)
	}
	return &weave.DeliverResult{}, nil
}

func (h RemoveSignerHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx, msg *RemoveSignerMsg) error {
	if err := weave.LoadMsg(tx, msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	return requireCustodian(ctx, db, h.auth, h.ctrl)
}

func requireCustodian(ctx weave.Context, db weave.ReadOnlyKVStore, auth x.Authenticator, r Reader) error {
	reg, err := r.Registry(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, reg.Custodian) {
		return errors.Wrap(errors.ErrUnauthorized, "custodian signature required")
	}
	return nil
}
