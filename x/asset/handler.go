package asset

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/x"
	"github.com/iov-one/nftsale/x/signers"
)

const (
	mintCost     int64 = 100
	signCost     int64 = 20
	depositCost  int64 = 50
	transferCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl *Controller, registry signers.Reader) {
	r.Handle(pathMintMsg, MintHandler{auth: auth, ctrl: ctrl, registry: registry})
	r.Handle(pathSignMsg, SignHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathDepositMsg, DepositHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, ctrl: ctrl, registry: registry})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth, registry))
}

// RegisterQuery will register assets as "/assets" together with the
// "/assets/client" and "/assets/delegate" indexes.
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("assets", qr)
}

// MintHandler creates assets on behalf of the custodian.
type MintHandler struct {
	auth     x.Authenticator
	ctrl     *Controller
	registry signers.Reader
}

var _ weave.Handler = MintHandler{}

func (h MintHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: mintCost}, nil
}

func (h MintHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	a, err := h.ctrl.Mint(db, caller, msg.AssetID, msg.Client, msg.Price, msg.Delegate)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("asset minted",
		"id", msg.AssetID, "client", a.Client, "price", a.Price)
	return &weave.DeliverResult{Data: a.ID}, nil
}

func (h MintHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*MintMsg, weave.Address, error) {
	var msg MintMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	reg, err := h.registry.Registry(db)
	if err != nil {
		return nil, nil, err
	}
	caller, err := callerOf(ctx, h.auth, reg.Custodian)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// SignHandler adds the signature of the main transaction signer to the
// current round of an asset.
type SignHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = SignHandler{}

func (h SignHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg SignMsg
	if _, err := h.validate(ctx, db, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: signCost}, nil
}

func (h SignHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg SignMsg
	caller, err := h.validate(ctx, db, tx, &msg)
	if err != nil {
		return nil, err
	}
	a, err := h.ctrl.Sign(db, caller, msg.AssetID)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("asset signed",
		"id", msg.AssetID, "signer", caller, "phase", a.Phase, "satisfied", a.Quorum.Satisfied)
	return &weave.DeliverResult{Data: a.ID}, nil
}

func (h SignHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx, msg *SignMsg) (weave.Address, error) {
	if err := weave.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Asset(db, msg.AssetID); err != nil {
		return nil, err
	}
	return x.Caller(ctx, h.auth)
}

// DepositHandler books a payment of the client.
type DepositHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg DepositMsg
	if _, err := h.validate(ctx, db, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg DepositMsg
	caller, err := h.validate(ctx, db, tx, &msg)
	if err != nil {
		return nil, err
	}
	a, err := h.ctrl.Deposit(db, caller, msg.AssetID, msg.Amount)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("asset deposit",
		"id", msg.AssetID, "amount", msg.Amount, "paid", a.AmountPaid, "price", a.Price)
	return &weave.DeliverResult{Data: a.ID}, nil
}

func (h DepositHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx, msg *DepositMsg) (weave.Address, error) {
	if err := weave.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	a, err := h.ctrl.Asset(db, msg.AssetID)
	if err != nil {
		return nil, err
	}
	return callerOf(ctx, h.auth, a.Client)
}

// TransferHandler hands an asset over to its client.
type TransferHandler struct {
	auth     x.Authenticator
	ctrl     *Controller
	registry signers.Reader
}

var _ weave.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg TransferMsg
	if _, err := h.validate(ctx, db, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg TransferMsg
	caller, err := h.validate(ctx, db, tx, &msg)
	if err != nil {
		return nil, err
	}
	a, err := h.ctrl.Transfer(db, caller, msg.AssetID)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("asset transferred",
		"id", msg.AssetID, "client", a.Client, "by", caller)
	return &weave.DeliverResult{Data: a.ID}, nil
}

func (h TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx, msg *TransferMsg) (weave.Address, error) {
	if err := weave.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	a, err := h.ctrl.Asset(db, msg.AssetID)
	if err != nil {
		return nil, err
	}
	reg, err := h.registry.Registry(db)
	if err != nil {
		return nil, err
	}
	return callerOf(ctx, h.auth, reg.Custodian, a.Delegate)
}

// callerOf returns the first of the preferred addresses that signed the
// transaction. If none did, the main signer is the caller.
func callerOf(ctx weave.Context, auth x.Authenticator, preferred ...weave.Address) (weave.Address, error) {
	candidates := make([]weave.Address, 0, len(preferred))
	for _, p := range preferred {
		if len(p) != 0 {
			candidates = append(candidates, p)
		}
	}
	if a := x.FirstSigned(ctx, auth, candidates); a != nil {
		return a, nil
	}
	return x.Caller(ctx, auth)
}
