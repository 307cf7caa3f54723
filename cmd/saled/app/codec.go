package saled

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/x/asset"
	"github.com/iov-one/nftsale/x/cash"
	"github.com/iov-one/nftsale/x/signers"
	amino "github.com/tendermint/go-amino"
)

// cdc encodes transactions. Every message is registered under its route, so
// that the envelope can carry any of them.
var cdc = newCodec()

func newCodec() *amino.Codec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*weave.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	cdc.RegisterConcrete(&signers.AddSignerMsg{}, "signers/add", nil)
	cdc.RegisterConcrete(&signers.RemoveSignerMsg{}, "signers/remove", nil)
	cdc.RegisterConcrete(&asset.MintMsg{}, "asset/mint", nil)
	cdc.RegisterConcrete(&asset.SignMsg{}, "asset/sign", nil)
	cdc.RegisterConcrete(&asset.DepositMsg{}, "asset/deposit", nil)
	cdc.RegisterConcrete(&asset.TransferMsg{}, "asset/transfer", nil)
	cdc.RegisterConcrete(&asset.UpdateConfigurationMsg{}, "asset/update_configuration", nil)
	cdc.Seal()
	return cdc
}
