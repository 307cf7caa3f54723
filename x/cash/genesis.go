package cash

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// GenesisAccount is one entry of the "cash" genesis section. The address
// is written in any form ParseAddress accepts.
type GenesisAccount struct {
	Address weave.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// Initializer funds the genesis accounts.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "genesis account #%d", i)
		}
		if err := ctrl.IssueCoins(db, a.Address, a.Balance); err != nil {
			return errors.Wrapf(err, "genesis account #%d", i)
		}
	}
	return nil
}
