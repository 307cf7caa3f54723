package asset

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

const (
	pathMintMsg                = "asset/mint"
	pathSignMsg                = "asset/sign"
	pathDepositMsg             = "asset/deposit"
	pathTransferMsg            = "asset/transfer"
	pathUpdateConfigurationMsg = "asset/update_configuration"
)

var _ weave.Msg = (*MintMsg)(nil)
var _ weave.Msg = (*SignMsg)(nil)
var _ weave.Msg = (*DepositMsg)(nil)
var _ weave.Msg = (*TransferMsg)(nil)
var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (MintMsg) Path() string {
	return pathMintMsg
}

// Validate makes sure that this is sensible
func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Client", m.Client.Validate())
	if len(m.Delegate) != 0 {
		errs = errors.AppendField(errs, "Delegate", m.Delegate.Validate())
	}
	return errs
}

// Path fulfills weave.Msg interface to allow routing
func (SignMsg) Path() string {
	return pathSignMsg
}

// Validate always passes, any asset id is valid.
func (m *SignMsg) Validate() error {
	return nil
}

// Path fulfills weave.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate always passes. Any amount, including zero, may be deposited.
func (m *DepositMsg) Validate() error {
	return nil
}

// Path fulfills weave.Msg interface to allow routing
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate always passes, any asset id is valid.
func (m *TransferMsg) Validate() error {
	return nil
}

// Path fulfills weave.Msg interface to allow routing
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate will skip any zero fields and validate the set ones
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	return m.Patch.Validate()
}
