package weave

import (
	"github.com/iov-one/nftsale/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is returned by a handler that accepted a transaction for
// the mempool. Failures are reported as errors, never as results.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated caps the work the transaction may take. Every sale
	// message declares a fixed cost.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverResult is returned by a handler that applied a transaction.
type DeliverResult struct {
	// Data is read by clients, for example the id of a minted asset.
	Data []byte
	Log  string
	// Tags are indexed by tendermint, so that the history of an asset
	// can be searched.
	Tags []common.KVPair
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags}
}

// CheckOrError builds the CheckTx response of a handler call.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverOrError builds the DeliverTx response of a handler call.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckTxError reports a rejected transaction. Outside of debug mode the
// log of an error without a registered code is redacted.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = "check: " + log
	}
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// DeliverTxError reports a failed transaction. Nothing it wrote is
// committed.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = "deliver: " + log
	}
	return abci.ResponseDeliverTx{Code: code, Log: log}
}
