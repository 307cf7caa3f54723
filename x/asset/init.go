package asset

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis stores the asset configuration found under "conf.asset". The
// configuration is optional, without one the default installments policy is
// used.
func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "asset genesis")
	}
}
