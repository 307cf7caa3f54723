package weave

import (
	"encoding/json"

	"github.com/iov-one/nftsale/errors"
)

// Checker decides if a transaction may enter the mempool. It must not rely
// on its writes being kept.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer applies a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes the messages of one path, for example "asset/deposit".
type Handler interface {
	Checker
	Deliverer
}

// Decorator runs around the rest of the stack. Signature verification and
// savepoints are decorators.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the genesis app_state, keyed by extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched. Malformed JSON is ErrInput.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs every initializer in order and stops at the
// first failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (list initializers) FromGenesis(opts Options, db KVStore) error {
	for _, init := range list {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
