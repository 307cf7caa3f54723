package saled

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/crypto"
	"github.com/iov-one/nftsale/errors"
)

// seedSize is the length of a generated master seed.
const seedSize = 32

type output struct {
	Address string             `json:"address"`
	Bech32  string             `json:"bech32"`
	Path    string             `json:"path,omitempty"`
	Seed    string             `json:"seed,omitempty"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateKey returns the address of a new random key,
// along with a json representation of the keys.
func GenerateKey() (weave.Address, string, error) {
	return describe(crypto.GenPrivKeyEd25519(), "", nil)
}

// DeriveKey derives a key from a hex encoded master seed using the given
// SLIP-0010 path. An empty seed creates a new random one, which is printed
// so that the key can be recovered.
func DeriveKey(path, seedHex string) (weave.Address, string, error) {
	if path == "" {
		path = crypto.DefaultDerivationPath
	}
	var seed []byte
	if seedHex == "" {
		seed = make([]byte, seedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, "", errors.Wrap(errors.ErrInternal, err.Error())
		}
	} else {
		var err error
		if seed, err = hex.DecodeString(seedHex); err != nil {
			return nil, "", errors.Wrap(errors.ErrInput, "seed must be hex encoded")
		}
	}
	key, err := crypto.DeriveEd25519(path, seed)
	if err != nil {
		return nil, "", err
	}
	return describe(key, path, seed)
}

func describe(key *crypto.PrivateKey, path string, seed []byte) (weave.Address, string, error) {
	pub := key.PublicKey()
	addr := pub.Address()
	b32, err := addr.Bech32()
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInternal, err.Error())
	}
	out := output{
		Address: addr.String(),
		Bech32:  b32,
		Path:    path,
		Pubkey:  pub,
		Secret:  key,
	}
	if seed != nil {
		out.Seed = hex.EncodeToString(seed)
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInternal, err.Error())
	}
	return addr, string(keys), nil
}
