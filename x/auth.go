package x

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// Authenticator reports which conditions signed the current transaction.
// Handlers receive one through their constructor and never read signatures
// themselves.
type Authenticator interface {
	GetConditions(weave.Context) []weave.Condition
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth merges the answers of several Authenticators. Conditions are
// reported in the order of the Authenticators, each one at most once.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

func ChainAuth(impls ...Authenticator) MultiAuth { return MultiAuth(impls) }

func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var conds []weave.Condition
	for _, impl := range m {
	next:
		for _, c := range impl.GetConditions(ctx) {
			for _, seen := range conds {
				if seen.Equals(c) {
					continue next
				}
			}
			conds = append(conds, c)
		}
	}
	return conds
}

func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// Caller returns the address of the first signer. Deposits, votes and
// transfers all act on behalf of one account, so an unsigned transaction
// fails with ErrUnauthorized.
func Caller(ctx weave.Context, auth Authenticator) (weave.Address, error) {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction is not signed")
	}
	return conds[0].Address(), nil
}

// FirstSigned returns the first candidate that signed the transaction, or
// nil when none did.
func FirstSigned(ctx weave.Context, auth Authenticator, candidates []weave.Address) weave.Address {
	for _, addr := range candidates {
		if auth.HasAddress(ctx, addr) {
			return addr
		}
	}
	return nil
}
