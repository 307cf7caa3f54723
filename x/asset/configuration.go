package asset

import (
	"encoding/json"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/gconf"
	"github.com/iov-one/nftsale/x"
	"github.com/iov-one/nftsale/x/signers"
)

const confPkg = "asset"

var _ gconf.OwnedConfig = (*Configuration)(nil)

// Validate ensures the configuration is usable. The owner is optional, a
// configuration without an owner can only be replaced by a new genesis.
func (c *Configuration) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if _, err := PolicyByName(c.DepositPolicy); err != nil {
		errs = errors.AppendField(errs, "DepositPolicy", err)
	}
	if _, ok := CompanySigner_name[int32(c.CompanySigner)]; !ok {
		errs = errors.AppendField(errs, "CompanySigner", errors.Wrapf(errors.ErrInput, "unknown value %d", c.CompanySigner))
	}
	return errs
}

// RequiresCompanySigner returns true if the client signature alone can never
// satisfy a round.
func (c *Configuration) RequiresCompanySigner() bool {
	return c != nil && c.CompanySigner == CompanySignerRequired
}

// UnmarshalJSON accepts the name of the value, as written in genesis files,
// as well as its number.
func (c *CompanySigner) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		v, ok := CompanySigner_value[name]
		if !ok {
			return errors.Wrapf(errors.ErrInput, "unknown company signer requirement %q", name)
		}
		*c = CompanySigner(v)
		return nil
	}
	var n int32
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.Wrap(errors.ErrInput, "company signer requirement must be a name or a number")
	}
	*c = CompanySigner(n)
	return nil
}

// LoadConfiguration returns the stored configuration.
func LoadConfiguration(db weave.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db weave.KVStore, conf *Configuration) error {
	return gconf.Save(db, confPkg, conf)
}

// NewConfigHandler returns a handler for UpdateConfigurationMsg. Until a
// configuration exists, the custodian may create one.
func NewConfigHandler(auth x.Authenticator, registry signers.Reader) weave.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth, func(db weave.ReadOnlyKVStore) (weave.Address, error) {
		reg, err := registry.Registry(db)
		if err != nil {
			return nil, err
		}
		return reg.Custodian, nil
	})
}
