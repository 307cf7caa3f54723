package server

import (
	"encoding/json"
	"io/ioutil"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
)

// ValidateGenesis loads the app_state of each genesis file into a throw
// away store. The first file that fails to load is reported.
func ValidateGenesis(ini weave.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrInput, "no genesis file given")
	}
	for _, p := range paths {
		if err := loadGenesisFile(ini, p); err != nil {
			return errors.Wrap(err, p)
		}
	}
	return nil
}

func loadGenesisFile(ini weave.Initializer, path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read: %s", err)
	}
	var doc struct {
		AppState weave.Options `json:"app_state"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode: %s", err)
	}
	return errors.Wrap(ini.FromGenesis(doc.AppState, store.MemStore()), "app_state")
}
