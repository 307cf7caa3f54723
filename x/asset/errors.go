package asset

import (
	"github.com/iov-one/nftsale/errors"
)

// Asset extension reserves 150~159 error codes
var (
	ErrDuplicateAsset      = errors.Register(150, "duplicate asset")
	ErrUnknownAsset        = errors.Register(151, "unknown asset")
	ErrUnauthorizedSigner  = errors.Register(152, "unauthorized signer")
	ErrUnauthorizedPayer   = errors.Register(153, "unauthorized payer")
	ErrUnauthorizedCaller  = errors.Register(154, "caller is not token owner nor approved")
	ErrQuorumNotSatisfied  = errors.Register(155, "quorum not satisfied")
	ErrInsufficientPayment = errors.Register(156, "loan not paid off")
	ErrTerminalPhase       = errors.Register(157, "asset already transferred")
)
