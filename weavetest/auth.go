package weavetest

import (
	"context"
	"fmt"

	weave "github.com/iov-one/nftsale"
)

// Auth authenticates a fixed set of conditions: Signers followed by
// Signer when it is set.
type Auth struct {
	Signer  weave.Condition
	Signers []weave.Condition
}

func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(a.Signers, a.Signer)
}

func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions that SetConditions stored in the
// context under Key. Two CtxAuth with different keys do not see each
// other's conditions.
type CtxAuth struct {
	Key string
}

func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []weave.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

func signedBy(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
