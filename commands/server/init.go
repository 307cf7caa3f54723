package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/nftsale/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions builds the app_state of a new chain from the init arguments.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc keeps every genesis field raw. Only app_state is touched.
type GenesisDoc map[string]json.RawMessage

// InitCmd writes the app_state into the genesis file that "tendermint
// init" created under home. An existing app_state is kept unless -i is
// given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	overwrite := fs.Bool("i", false, "replace an existing app_state")
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(errors.ErrInput, "init flags: %s", err)
	}

	path := filepath.Join(home, "config", "genesis.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrNotFound, "%s is missing, run tendermint init first", path)
	}
	state, err := gen(fs.Args())
	if err != nil {
		return err
	}
	if err := writeAppState(path, state, *overwrite); err != nil {
		return err
	}
	logger.Info("app_state written", "genesis", path)
	return nil
}

func writeAppState(path string, state json.RawMessage, overwrite bool) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}

	if prev := doc[appStateKey]; !overwrite && len(prev) != 0 && string(prev) != "null" {
		return errors.Wrap(errors.ErrState, "app_state already set, pass -i to replace it")
	}
	doc[appStateKey] = state

	raw, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInternal, "encode genesis: %s", err)
	}
	return ioutil.WriteFile(path, raw, 0600)
}
