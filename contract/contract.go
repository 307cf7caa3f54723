package contract

import (
	"sync"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/x/asset"
	"github.com/iov-one/nftsale/x/signers"
	"github.com/tendermint/tendermint/libs/log"
)

// Contract is the sale of uniquely identified assets between a custodian,
// a company signer roster and clients.
type Contract struct {
	mu sync.Mutex
	db weave.CacheableKVStore

	signers signers.Controller
	assets  *asset.Controller
	bank    asset.Bank
	conf    *asset.Configuration
	logger  log.Logger
}

// New returns a contract keeping its state in given store. If the store
// already holds a signer registry it is used as it is, otherwise a new one
// is created from the custodian, members and threshold.
func New(db weave.CacheableKVStore, custodian weave.Address, members []weave.Address, threshold uint32, opts ...Option) (*Contract, error) {
	c := &Contract{
		db:      db,
		signers: signers.NewController(),
		logger:  log.NewNopLogger(),
	}
	for _, fn := range opts {
		fn(c)
	}
	c.assets = asset.NewController(c.signers, c.bank)

	err := c.update(func(db weave.KVStore) error {
		switch _, err := c.signers.Registry(db); {
		case err == nil:
		case errors.ErrNotFound.Is(err):
			reg, err := signers.NewRegistry(custodian, members, threshold)
			if err != nil {
				return err
			}
			if err := c.signers.Save(db, reg); err != nil {
				return err
			}
		default:
			return err
		}
		if c.conf != nil {
			return asset.SaveConfiguration(db, c.conf)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot initialize contract")
	}
	return c, nil
}

// update runs fn in a cache wrap of the contract store. Changes are
// written only if fn succeeds.
func (c *Contract) update(fn func(weave.KVStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cache := c.db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}

// view runs fn against the committed contract state.
func (c *Contract) view(fn func(weave.ReadOnlyKVStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.db)
}

func (c *Contract) requireCustodian(db weave.ReadOnlyKVStore, caller weave.Address) error {
	reg, err := c.signers.Registry(db)
	if err != nil {
		return err
	}
	if !caller.Equals(reg.Custodian) {
		return errors.Wrap(asset.ErrUnauthorizedCaller, "custodian only")
	}
	return nil
}

// AddSigner adds a company signer. Adding a present signer is a noop. Only
// the custodian can change the roster.
func (c *Contract) AddSigner(caller, signer weave.Address) error {
	return c.update(func(db weave.KVStore) error {
		if err := c.requireCustodian(db, caller); err != nil {
			return err
		}
		added, err := c.signers.AddSigner(db, signer)
		if err != nil {
			return err
		}
		if added {
			c.logger.Info("signer added", "signer", signer)
		}
		return nil
	})
}

// RemoveSigner removes a company signer. Removing an absent signer is a
// noop. Signatures already collected by the signer stay counted.
func (c *Contract) RemoveSigner(caller, signer weave.Address) error {
	return c.update(func(db weave.KVStore) error {
		if err := c.requireCustodian(db, caller); err != nil {
			return err
		}
		removed, err := c.signers.RemoveSigner(db, signer)
		if err != nil {
			return err
		}
		if removed {
			c.logger.Info("signer removed", "signer", signer)
		}
		return nil
	})
}

// GetCompanySigners returns the current roster. The order is not defined.
func (c *Contract) GetCompanySigners() ([]weave.Address, error) {
	var members []weave.Address
	err := c.view(func(db weave.ReadOnlyKVStore) error {
		reg, err := c.signers.Registry(db)
		if err != nil {
			return err
		}
		members = make([]weave.Address, len(reg.Members))
		copy(members, reg.Members)
		return nil
	})
	return members, err
}

// Mint creates an asset for the client. The asset is held by the custodian
// until transferred.
func (c *Contract) Mint(caller, client weave.Address, id, price uint64) (*asset.Asset, error) {
	return c.MintWithApproved(caller, client, id, price, nil)
}

// MintWithApproved creates an asset for the client with a delegate that may
// sign every round and execute the transfer.
func (c *Contract) MintWithApproved(caller, client weave.Address, id, price uint64, delegate weave.Address) (*asset.Asset, error) {
	var a *asset.Asset
	err := c.update(func(db weave.KVStore) error {
		var err error
		a, err = c.assets.Mint(db, caller, id, client, price, delegate)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("asset minted",
		"asset", id,
		"client", client,
		"price", price)
	return a, nil
}

// SignTransaction adds the caller signature to the current round of the
// asset.
func (c *Contract) SignTransaction(caller weave.Address, id uint64) (*asset.Asset, error) {
	var a *asset.Asset
	err := c.update(func(db weave.KVStore) error {
		var err error
		a, err = c.assets.Sign(db, caller, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("asset signed",
		"asset", id,
		"signer", caller,
		"phase", a.Phase,
		"satisfied", a.Quorum.Satisfied)
	return a, nil
}

// Deposit books a payment of the client toward the asset price.
func (c *Contract) Deposit(caller weave.Address, id, amount uint64) (*asset.Asset, error) {
	var a *asset.Asset
	err := c.update(func(db weave.KVStore) error {
		var err error
		a, err = c.assets.Deposit(db, caller, id, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("deposit accepted",
		"asset", id,
		"amount", amount,
		"paid", a.AmountPaid)
	return a, nil
}

// SafeTransfer hands the asset over to the client.
func (c *Contract) SafeTransfer(caller weave.Address, id uint64) (*asset.Asset, error) {
	var a *asset.Asset
	err := c.update(func(db weave.KVStore) error {
		var err error
		a, err = c.assets.Transfer(db, caller, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("asset transferred",
		"asset", id,
		"owner", a.Client)
	return a, nil
}

// OwnerOf returns the identity currently holding the asset.
func (c *Contract) OwnerOf(id uint64) (weave.Address, error) {
	var owner weave.Address
	err := c.view(func(db weave.ReadOnlyKVStore) error {
		var err error
		owner, err = c.assets.OwnerOf(db, id)
		return err
	})
	return owner, err
}

// Contains returns true if the asset was minted.
func (c *Contract) Contains(id uint64) bool {
	var ok bool
	_ = c.view(func(db weave.ReadOnlyKVStore) error {
		ok = c.assets.Contains(db, id)
		return nil
	})
	return ok
}

// AmountPaidFor returns the total amount deposited for the asset.
func (c *Contract) AmountPaidFor(id uint64) (uint64, error) {
	a, err := c.Asset(id)
	if err != nil {
		return 0, err
	}
	return a.AmountPaid, nil
}

// Asset returns the full record of the asset.
func (c *Contract) Asset(id uint64) (*asset.Asset, error) {
	var a *asset.Asset
	err := c.view(func(db weave.ReadOnlyKVStore) error {
		var err error
		a, err = c.assets.Asset(db, id)
		return err
	})
	return a, err
}
