package signers

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis will parse the initial roster from genesis and save it in the
// database. The roster is mandatory.
func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var genesis struct {
		Custodian weave.Address   `json:"custodian"`
		Members   []weave.Address `json:"members"`
		Threshold uint32          `json:"threshold"`
	}
	if err := opts.ReadOptions("signers", &genesis); err != nil {
		return err
	}
	reg, err := NewRegistry(genesis.Custodian, genesis.Members, genesis.Threshold)
	if err != nil {
		return errors.Wrap(err, "signers genesis")
	}
	return NewController().Save(db, reg)
}
