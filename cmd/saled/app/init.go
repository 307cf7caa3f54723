package saled

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// initialBalance is the dev mode balance of every roster member.
const initialBalance = 123456789

// GenInitOptions will produce the genesis state for dev mode.
//
// The first argument is the custodian address, every further argument
// another company signer. Without arguments a custodian key is generated
// and printed. All members get a balance and every one of them must sign.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var members []weave.Address
	for _, a := range args {
		addr, err := weave.ParseAddress(a)
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", a)
		}
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		members = append(members, addr)
	}

	if len(members) == 0 {
		// if no address provided, auto-generate one
		// and print out the keys
		addr, keys, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		members = append(members, addr)
		fmt.Println(keys)
	}

	type account struct {
		Address weave.Address `json:"address"`
		Balance uint64        `json:"balance"`
	}
	accounts := make([]account, 0, len(members))
	for _, m := range members {
		accounts = append(accounts, account{Address: m, Balance: initialBalance})
	}

	state := map[string]interface{}{
		"signers": map[string]interface{}{
			"custodian": members[0],
			"members":   members,
			"threshold": len(members),
		},
		"cash": accounts,
		"conf": map[string]interface{}{
			"asset": map[string]interface{}{
				"owner":          members[0],
				"deposit_policy": "installments",
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(dataDir string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if dataDir != "" {
		dbPath = filepath.Join(dataDir, "sale.db")
	}

	application, err := Application("saled", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}
