package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
	"github.com/iov-one/nftsale/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const dummyKey = "dummy"

type dummyInit struct {
	called int
}

func (d *dummyInit) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	d.called++
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	kv.Set([]byte(dummyKey), []byte(value))
	return nil
}

func newTestStoreApp(t *testing.T) *StoreApp {
	t.Helper()
	db, err := iavl.NewCommitStore("", "app")
	require.NoError(t, err)
	qr := weave.NewQueryRouter()
	qr.RegisterAll(orm.RegisterQuery)
	return NewStoreApp("saletest", db, qr, context.Background())
}

func TestLoadGenesis(t *testing.T) {
	gen, err := LoadGenesis("testdata/genesis.json")
	require.NoError(t, err)
	assert.Equal(t, "test-chain-67", gen.ChainID)

	var value string
	require.NoError(t, gen.AppState.ReadOptions(dummyKey, &value))
	assert.Equal(t, "secret", value)

	_, err = LoadGenesis("testdata/missing.json")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestInitChain(t *testing.T) {
	gen, err := LoadGenesis("testdata/genesis.json")
	require.NoError(t, err)
	state, err := json.Marshal(gen.AppState)
	require.NoError(t, err)

	init := &dummyInit{}
	app := newTestStoreApp(t).WithInit(init)
	assert.Equal(t, "", app.GetChainID())

	app.InitChain(abci.RequestInitChain{ChainId: gen.ChainID, AppStateBytes: state})
	assert.Equal(t, 1, init.called)
	assert.Equal(t, gen.ChainID, app.GetChainID())
	assert.Equal(t, []byte("secret"), app.DeliverStore().Get([]byte(dummyKey)))

	// genesis can be loaded only once
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: gen.ChainID, AppStateBytes: state})
	})
}

func TestInitChainWithoutState(t *testing.T) {
	app := newTestStoreApp(t)
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain-67"})
	})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "x", AppStateBytes: []byte(`{}`)})
	})
}

func TestBeginBlockContext(t *testing.T) {
	app := newTestStoreApp(t)
	now := time.Now().UTC()
	app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: 7, Time: now},
	})

	height, ok := weave.GetHeight(app.BlockContext())
	assert.True(t, ok)
	assert.Equal(t, int64(7), height)
	blockTime, ok := weave.BlockTime(app.BlockContext())
	assert.True(t, ok)
	assert.Equal(t, now, blockTime)
}

func TestCommitAndQuery(t *testing.T) {
	app := newTestStoreApp(t)

	app.DeliverStore().Set([]byte("asset:1"), []byte("minted"))
	app.DeliverStore().Set([]byte("asset:2"), []byte("transferred"))
	app.DeliverStore().Set([]byte("cash:1"), []byte("wallet"))

	// uncommitted data is not visible to queries
	res := app.Query(abci.RequestQuery{Path: "/", Data: []byte("asset:1")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(res.Value))
	assert.Len(t, values.Results, 0)

	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)
	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "saletest", info.Data)

	res = app.Query(abci.RequestQuery{Path: "/", Data: []byte("asset:1")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, int64(1), res.Height)
	var raw []byte
	require.NoError(t, UnmarshalOneResult(res.Value, (*rawValue)(&raw)))
	assert.Equal(t, []byte("minted"), raw)

	res = app.Query(abci.RequestQuery{Path: "/?prefix", Data: []byte("asset:")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	models, err := toModels(res.Key, res.Value)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, []byte("asset:2"), models[1].Key)
	assert.Equal(t, []byte("transferred"), models[1].Value)

	res = app.Query(abci.RequestQuery{Path: "/nothing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
	res = app.Query(abci.RequestQuery{Path: "/?range"})
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
}

func TestReloadChainID(t *testing.T) {
	db, err := iavl.NewCommitStore("", "app")
	require.NoError(t, err)
	app := NewStoreApp("saletest", db, weave.NewQueryRouter(), context.Background())
	app.InitChain(abci.RequestInitChain{ChainId: "reload-chain", AppStateBytes: []byte(`{}`)})
	app.Commit()

	reopened := NewStoreApp("saletest", db, weave.NewQueryRouter(), context.Background())
	assert.Equal(t, "reload-chain", reopened.GetChainID())
	assert.Equal(t, "reload-chain", weave.GetChainID(reopened.BlockContext()))
}

// rawValue is a persistent that keeps the serialized bytes as they are.
type rawValue []byte

func (r *rawValue) Marshal() ([]byte, error) { return *r, nil }
func (r *rawValue) Unmarshal(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}
