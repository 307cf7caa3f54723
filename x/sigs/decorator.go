/*
Package sigs verifies the signatures of a transaction and keeps a sequence
per signer so that a signed transaction cannot be replayed.
*/
package sigs

import (
	"context"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/x"
)

// signatureVerifyCost is charged in CheckTx for every valid signature.
const signatureVerifyCost = 500

// RegisterQuery serves signer sequences under "/auth".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("auth", qr)
}

type ctxKey struct{}

// Decorator rejects a transaction unless it carries at least one
// signature and all of them are valid. Signers are put in the context for
// Authenticate.
type Decorator struct{}

var _ weave.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	signers, err := verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(context.WithValue(ctx, ctxKey{}, signers), db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(len(signers)) * signatureVerifyCost
	return res, nil
}

func (d Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	signers, err := verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(context.WithValue(ctx, ctxKey{}, signers), db, tx)
}

func verify(ctx weave.Context, db weave.KVStore, tx weave.Tx) ([]weave.Condition, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%T carries no signatures", tx)
	}
	signers, err := VerifyTxSignatures(db, stx, weave.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "signatures")
	}
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "unsigned transaction")
	}
	return signers, nil
}

// Authenticate reports the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	signers, _ := ctx.Value(ctxKey{}).([]weave.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
