package app

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore reads application state through ABCI queries. Wrapping it with
// a bucket gives read access to sale models over the same interface the
// handlers use, which is how the HTTP API serves its reads.
//
// ReadOnlyKVStore has no error returns, so a failed query panics.
type ABCIStore struct {
	app abci.Application
}

var _ weave.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

func (a *ABCIStore) query(path string, data []byte) []weave.Model {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != 0 {
		panic(errors.Wrapf(errors.ErrInternal, "query %q: %s", path, res.Log))
	}
	models, err := toModels(res.Key, res.Value)
	if err != nil {
		panic(errors.Wrapf(err, "query %q", path))
	}
	return models
}

func (a *ABCIStore) Get(key []byte) []byte {
	found := a.query("/", key)
	if len(found) == 0 {
		return nil
	}
	return found[0].Value
}

func (a *ABCIStore) Has(key []byte) bool {
	return len(a.Get(key)) != 0
}

// Iterator lists the whole state. Ranges are not supported.
func (a *ABCIStore) Iterator(start, end []byte) weave.Iterator {
	return store.NewSliceIterator(a.everything(start, end))
}

// ReverseIterator lists the whole state from the last key.
func (a *ABCIStore) ReverseIterator(start, end []byte) weave.Iterator {
	models := a.everything(start, end)
	n := len(models)
	for i := 0; i < n/2; i++ {
		models[i], models[n-1-i] = models[n-1-i], models[i]
	}
	return store.NewSliceIterator(models)
}

func (a *ABCIStore) everything(start, end []byte) []weave.Model {
	if start != nil || end != nil {
		panic("ABCIStore iterates over the whole state only")
	}
	return a.query("/?"+weave.PrefixQueryMod, nil)
}

func toModels(keys, values []byte) ([]weave.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "query keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "query values")
	}
	return JoinResults(&k, &v)
}
