/*
Package saled assembles the sale daemon: the signer registry, the wallets
and the escrowed assets behind one transaction pipeline.
*/
package saled

import (
	"context"
	"path/filepath"
	"strings"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/app"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
	"github.com/iov-one/nftsale/store/iavl"
	"github.com/iov-one/nftsale/x"
	"github.com/iov-one/nftsale/x/asset"
	"github.com/iov-one/nftsale/x/cash"
	"github.com/iov-one/nftsale/x/signers"
	"github.com/iov-one/nftsale/x/sigs"
	"github.com/iov-one/nftsale/x/utils"
)

// Stack returns the transaction pipeline. Signatures are verified before
// any handler runs. CheckTx discards every write of a rejected transaction.
// DeliverTx keeps the nonce increment of a signed transaction even when
// its message fails, so a failed deposit cannot be replayed.
func Stack() weave.Handler {
	auth := x.ChainAuth(sigs.Authenticate{})

	r := app.NewRouter()
	wallets := cash.NewController(cash.NewBucket())
	registry := signers.NewController()
	cash.RegisterRoutes(r, auth, wallets)
	signers.RegisterRoutes(r, auth, registry)
	asset.RegisterRoutes(r, auth, asset.NewController(registry, wallets), registry)

	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)
}

// queries serves /wallets, /signers, /assets, /auth and raw keys under /.
func queries() weave.QueryRouter {
	qr := weave.NewQueryRouter()
	qr.RegisterAll(
		cash.RegisterQuery,
		signers.RegisterQuery,
		asset.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return qr
}

// Initializers loads the "signers", "cash" and "asset" genesis sections
// in that order, since assets reference registered signers.
func Initializers() weave.Initializer {
	return weave.ChainInitializers(
		&signers.Initializer{},
		cash.Initializer{},
		&asset.Initializer{},
	)
}

// Application opens the state at dbPath and serves h over ABCI. An empty
// dbPath keeps the state in memory.
func Application(name string, h weave.Handler, dec weave.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := openStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	sa := app.NewStoreApp(name, kv, queries(), context.Background())
	sa.WithInit(Initializers())
	return app.NewBaseApp(sa, dec, h, debug), nil
}

func openStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStore("", "saled")
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	// leveldb appends its own ".db" suffix
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs))
}
