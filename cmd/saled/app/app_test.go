package saled

import (
	"encoding/json"
	"testing"
	"time"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/app"
	"github.com/iov-one/nftsale/crypto"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/iov-one/nftsale/x/asset"
	"github.com/iov-one/nftsale/x/cash"
	"github.com/iov-one/nftsale/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "test-chain-saled"

type account struct {
	key *crypto.PrivateKey
	seq int64
}

func newAccount() *account {
	return &account{key: crypto.GenPrivKeyEd25519()}
}

func (a *account) Address() weave.Address {
	return a.key.PublicKey().Address()
}

// signedTx builds a transaction signed by all given accounts, bumping their
// sequences.
func signedTx(t *testing.T, msg weave.Msg, signers ...*account) []byte {
	t.Helper()
	tx := &Tx{Msg: msg}
	for _, s := range signers {
		sig, err := sigs.SignTx(s.key, tx, chainID, s.seq)
		require.NoError(t, err)
		tx.Signatures = append(tx.Signatures, sig)
		s.seq++
	}
	bz, err := tx.Marshal()
	require.NoError(t, err)
	return bz
}

func TestTxRoundTrip(t *testing.T) {
	signer := newAccount()
	bz := signedTx(t, &asset.DepositMsg{AssetID: 7, Amount: 50}, signer)

	tx, err := TxDecoder(bz)
	require.NoError(t, err)
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, &asset.DepositMsg{AssetID: 7, Amount: 50}, msg)
	assert.Len(t, tx.(*Tx).GetSignatures(), 1)

	// signatures are not part of the signed bytes
	signBytes, err := tx.(*Tx).GetSignBytes()
	require.NoError(t, err)
	unsigned, err := (&Tx{Msg: msg}).Marshal()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signBytes)

	_, err = TxDecoder([]byte("garbage"))
	assert.True(t, errors.ErrInput.Is(err))

	_, err = new(Tx).GetMsg()
	assert.True(t, errors.ErrInput.Is(err))
}

func TestSaleOverABCI(t *testing.T) {
	custodian := newAccount()
	signer := newAccount()
	client := newAccount()

	genesis := map[string]interface{}{
		"signers": map[string]interface{}{
			"custodian": custodian.Address(),
			"members":   []weave.Address{custodian.Address(), signer.Address()},
			"threshold": 2,
		},
		"cash": []cash.GenesisAccount{
			{Address: client.Address(), Balance: 1000},
		},
	}
	appState, err := json.Marshal(genesis)
	require.NoError(t, err)

	application, err := Application("saled-test", Stack(), TxDecoder, "", false)
	require.NoError(t, err)
	application.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: appState})
	assert.Equal(t, chainID, application.GetChainID())

	const assetID = 4321
	application.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: 1, Time: time.Now()},
	})

	steps := []struct {
		name string
		tx   []byte
		code uint32
	}{
		{"client cannot mint but uses a nonce", signedTx(t, &asset.MintMsg{AssetID: assetID, Client: client.Address(), Price: 700}, client), asset.ErrUnauthorizedCaller.ABCICode()},
		{"custodian mints", signedTx(t, &asset.MintMsg{AssetID: assetID, Client: client.Address(), Price: 700}, custodian), 0},
		{"signer approves deposit", signedTx(t, &asset.SignMsg{AssetID: assetID}, signer), 0},
		{"client approves deposit", signedTx(t, &asset.SignMsg{AssetID: assetID}, client), 0},
		{"client pays", signedTx(t, &asset.DepositMsg{AssetID: assetID, Amount: 700}, client), 0},
		{"signer approves transfer", signedTx(t, &asset.SignMsg{AssetID: assetID}, signer), 0},
		{"client approves transfer", signedTx(t, &asset.SignMsg{AssetID: assetID}, client), 0},
		{"custodian transfers", signedTx(t, &asset.TransferMsg{AssetID: assetID}, custodian), 0},
	}
	for _, s := range steps {
		res := application.DeliverTx(s.tx)
		require.Equal(t, s.code, res.Code, "%s: %s", s.name, res.Log)
	}
	application.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := application.Commit()
	assert.NotEmpty(t, commit.Data)

	res := application.Query(abci.RequestQuery{Path: "/assets", Data: asset.AssetKey(assetID)})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, int64(1), res.Height)
	var a asset.Asset
	require.NoError(t, app.UnmarshalOneResult(res.Value, &a))
	assert.Equal(t, asset.PhaseTransferred, a.Phase)
	assert.Equal(t, asset.CustodyHeldByClient, a.Custody)
	assert.Equal(t, uint64(700), a.AmountPaid)
	assert.Equal(t, client.Address(), a.Owner(custodian.Address()))

	res = application.Query(abci.RequestQuery{Path: "/wallets", Data: custodian.Address()})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var w cash.Wallet
	require.NoError(t, app.UnmarshalOneResult(res.Value, &w))
	assert.Equal(t, uint64(700), w.Balance)

	res = application.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
}

func TestGenInitOptions(t *testing.T) {
	a, b := newAccount(), newAccount()
	raw, err := GenInitOptions([]string{a.Address().String(), b.Address().String()})
	require.NoError(t, err)

	var opts weave.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	db := store.MemStore()
	require.NoError(t, Initializers().FromGenesis(opts, db))

	balance, err := cash.NewController(cash.NewBucket()).Balance(db, b.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(initialBalance), balance)

	_, err = GenInitOptions([]string{"not-an-address"})
	assert.Error(t, err)
}

func TestDeriveKey(t *testing.T) {
	seed := "000102030405060708090a0b0c0d0e0f"
	addr, keys, err := DeriveKey("", seed)
	require.NoError(t, err)
	again, _, err := DeriveKey(crypto.DefaultDerivationPath, seed)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Contains(t, keys, addr.String())

	other, _, err := DeriveKey("m/44'/234'/1'", seed)
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)

	_, _, err = DeriveKey("", "zz")
	assert.True(t, errors.ErrInput.Is(err))
}
