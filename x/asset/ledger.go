package asset

import (
	"math"

	"github.com/iov-one/nftsale/errors"
)

const (
	// PolicyInstallments accepts any amount in every satisfied round.
	PolicyInstallments = "installments"
	// PolicySingle accepts exactly one payment of the full price.
	PolicySingle = "single"
)

// DepositPolicy decides when a deposit can be applied to an asset.
type DepositPolicy interface {
	// Allows returns an error unless the current round of the asset
	// accepts a deposit.
	Allows(a *Asset) error
	// Accepts returns an error unless given amount can be deposited.
	Accepts(a *Asset, amount uint64) error
}

// PolicyByName returns the deposit policy registered under given name. An
// empty name is the default installments policy.
func PolicyByName(name string) (DepositPolicy, error) {
	switch name {
	case "", PolicyInstallments:
		return InstallmentsPolicy{}, nil
	case PolicySingle:
		return SinglePolicy{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown deposit policy %q", name)
	}
}

// InstallmentsPolicy allows a deposit when the deposit round is satisfied
// and again in every satisfied transfer round. Each deposit consumes the
// round it was made in.
type InstallmentsPolicy struct{}

var _ DepositPolicy = InstallmentsPolicy{}

// Allows accepts deposits while the deposit round is open and again after
// every satisfied transfer round.
func (InstallmentsPolicy) Allows(a *Asset) error {
	switch a.Phase {
	case PhaseDepositOpen:
		return nil
	case PhaseAwaitingTransferQuorum:
		if a.Quorum.Satisfied {
			return nil
		}
	}
	return errors.Wrapf(ErrQuorumNotSatisfied, "deposit in phase %s", a.Phase)
}

// Accepts takes any amount. The price is checked at transfer.
func (InstallmentsPolicy) Accepts(a *Asset, amount uint64) error {
	return nil
}

// SinglePolicy allows one deposit of exactly the price, right after the
// deposit round is satisfied.
type SinglePolicy struct{}

var _ DepositPolicy = SinglePolicy{}

// Allows accepts a deposit only while the deposit round is open.
func (SinglePolicy) Allows(a *Asset) error {
	if a.Phase != PhaseDepositOpen {
		return errors.Wrapf(ErrQuorumNotSatisfied, "deposit in phase %s", a.Phase)
	}
	return nil
}

// Accepts takes exactly the price.
func (SinglePolicy) Accepts(a *Asset, amount uint64) error {
	if amount < a.Price {
		return errors.Wrapf(ErrInsufficientPayment, "paid %d of %d", amount, a.Price)
	}
	if amount != a.Price {
		return errors.Wrapf(errors.ErrAmount, "paid %d, price is %d", amount, a.Price)
	}
	return nil
}

// applyDeposit books the payment and opens a fresh transfer round that
// requires given number of signatures.
func applyDeposit(a *Asset, amount uint64, required uint32) error {
	if a.AmountPaid > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "paid %d plus %d", a.AmountPaid, amount)
	}
	a.AmountPaid += amount
	a.Rounds++
	a.Phase = PhaseAwaitingTransferQuorum
	a.Quorum = newQuorum(required)
	return nil
}
