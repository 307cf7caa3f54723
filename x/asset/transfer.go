package asset

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// authorizeTransfer checks every precondition of handing the asset over to
// the client.
func authorizeTransfer(a *Asset, caller, custodian weave.Address) error {
	if a.IsTerminal() {
		return errors.Wrap(ErrTerminalPhase, "transfer")
	}
	if a.Phase != PhaseAwaitingTransferQuorum || !a.Quorum.Satisfied {
		return errors.Wrapf(ErrQuorumNotSatisfied, "transfer in phase %s", a.Phase)
	}
	if a.AmountPaid < a.Price {
		return errors.Wrapf(ErrInsufficientPayment, "paid %d of %d", a.AmountPaid, a.Price)
	}
	if !caller.Equals(custodian) && (len(a.Delegate) == 0 || !caller.Equals(a.Delegate)) {
		return errors.Wrap(ErrUnauthorizedCaller, "transfer")
	}
	return nil
}

// applyTransfer hands the asset over to the client. This is final.
func applyTransfer(a *Asset) {
	a.Custody = CustodyHeldByClient
	a.Phase = PhaseTransferred
	a.Quorum = &Quorum{}
}
