package contract

import (
	"github.com/iov-one/nftsale/x/asset"
	"github.com/tendermint/tendermint/libs/log"
)

// Option configures a Contract.
type Option func(*Contract)

// WithBank makes deposits move funds into the asset escrow and transfers
// release them to the custodian.
func WithBank(bank asset.Bank) Option {
	return func(c *Contract) {
		c.bank = bank
	}
}

// WithLogger sets the logger used to report state transitions.
func WithLogger(logger log.Logger) Option {
	return func(c *Contract) {
		c.logger = logger
	}
}

// WithConfiguration stores given configuration when the contract is
// created.
func WithConfiguration(conf asset.Configuration) Option {
	return func(c *Contract) {
		c.conf = &conf
	}
}
