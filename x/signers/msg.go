package signers

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

const (
	pathAddSignerMsg    = "signers/add"
	pathRemoveSignerMsg = "signers/remove"
)

var _ weave.Msg = (*AddSignerMsg)(nil)
var _ weave.Msg = (*RemoveSignerMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (AddSignerMsg) Path() string {
	return pathAddSignerMsg
}

// Validate makes sure that this is sensible
func (m *AddSignerMsg) Validate() error {
	return errors.AppendField(nil, "Signer", m.Signer.Validate())
}

// Path fulfills weave.Msg interface to allow routing
func (RemoveSignerMsg) Path() string {
	return pathRemoveSignerMsg
}

// Validate makes sure that this is sensible
func (m *RemoveSignerMsg) Validate() error {
	return errors.AppendField(nil, "Signer", m.Signer.Validate())
}
