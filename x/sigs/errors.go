package sigs

import "github.com/iov-one/nftsale/errors"

// ErrInvalidSequence is returned when a signature does not carry the
// signer's next expected sequence.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
