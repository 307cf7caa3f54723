package gconf

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// ValidMarshaler is a configuration that can be checked and stored.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is a configuration that can be loaded.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is the settings entity of one extension.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and stores it as the configuration of pkg.
func Save(db weave.KVStore, pkg string, src ValidMarshaler) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "serialize %s configuration", pkg)
	}
	db.Set(key(pkg), raw)
	return nil
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound
// if none was saved.
func Load(db weave.ReadOnlyKVStore, pkg string, dst Unmarshaler) error {
	raw := db.Get(key(pkg))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrSchema, "%s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig stores the genesis section "conf" -> pkg as the configuration
// of pkg. A missing section is ErrNotFound, so that callers can decide
// whether the extension runs with defaults.
func InitConfig(db weave.KVStore, opts weave.Options, pkg string, conf Configuration) error {
	var all weave.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return err
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %s configuration", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
