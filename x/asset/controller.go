package asset

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
	"github.com/iov-one/nftsale/x/cash"
	"github.com/iov-one/nftsale/x/signers"
)

// Bank holds the funds of the sale. Deposits are moved from the client to
// the escrow address of the asset and released to the custodian on
// transfer.
type Bank interface {
	cash.CoinMover
	cash.Balancer
}

// Controller implements the sale state machine. Every method either
// applies the whole state change or returns an error, callers are expected
// to run each call in a cache wrap and discard it on failure.
type Controller struct {
	bucket  orm.ModelBucket
	signers signers.Reader
	bank    Bank
}

// NewController returns a controller reading the company roster from given
// registry. Bank is optional, without it payments are only booked.
func NewController(registry signers.Reader, bank Bank) *Controller {
	return &Controller{
		bucket:  NewBucket(),
		signers: registry,
		bank:    bank,
	}
}

// Asset returns the asset with given id or ErrUnknownAsset.
func (c *Controller) Asset(db weave.ReadOnlyKVStore, id uint64) (*Asset, error) {
	var a Asset
	switch err := c.bucket.One(db, AssetKey(id), &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownAsset, "id %d", id)
	default:
		return nil, errors.Wrap(err, "load asset")
	}
}

// Contains returns true if an asset with given id was minted.
func (c *Controller) Contains(db weave.ReadOnlyKVStore, id uint64) bool {
	return c.bucket.Has(db, AssetKey(id))
}

// OwnerOf returns the current holder of the asset.
func (c *Controller) OwnerOf(db weave.ReadOnlyKVStore, id uint64) (weave.Address, error) {
	a, err := c.Asset(db, id)
	if err != nil {
		return nil, err
	}
	reg, err := c.signers.Registry(db)
	if err != nil {
		return nil, err
	}
	return a.Owner(reg.Custodian), nil
}

// ByClient returns all assets sold to given client.
func (c *Controller) ByClient(db weave.ReadOnlyKVStore, client weave.Address) ([]*Asset, error) {
	var assets []*Asset
	if _, err := c.bucket.ByIndex(db, indexClient, client, &assets); err != nil {
		return nil, errors.Wrap(err, "client index")
	}
	return assets, nil
}

// ByDelegate returns all assets given address is a delegate of.
func (c *Controller) ByDelegate(db weave.ReadOnlyKVStore, delegate weave.Address) ([]*Asset, error) {
	var assets []*Asset
	if _, err := c.bucket.ByIndex(db, indexDelegate, delegate, &assets); err != nil {
		return nil, errors.Wrap(err, "delegate index")
	}
	return assets, nil
}

// Mint creates an asset held by the custodian. Only the custodian can mint.
// Delegate is optional.
func (c *Controller) Mint(db weave.KVStore, caller weave.Address, id uint64, client weave.Address, price uint64, delegate weave.Address) (*Asset, error) {
	reg, err := c.signers.Registry(db)
	if err != nil {
		return nil, err
	}
	if !caller.Equals(reg.Custodian) {
		return nil, errors.Wrap(ErrUnauthorizedCaller, "only the custodian can mint")
	}
	if c.bucket.Has(db, AssetKey(id)) {
		return nil, errors.Wrapf(ErrDuplicateAsset, "id %d", id)
	}
	a := &Asset{
		ID:       AssetKey(id),
		Price:    price,
		Client:   client,
		Delegate: delegate,
		Custody:  CustodyHeldByCustodian,
		Phase:    PhaseAwaitingDepositQuorum,
		Quorum:   newQuorum(reg.Threshold),
	}
	if err := c.bucket.Put(db, a.ID, a); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}
	return a, nil
}

// Sign adds the caller signature to the current round of the asset. Company
// signers, the client and the delegate may sign. Signing twice is not an
// error and does not count twice.
func (c *Controller) Sign(db weave.KVStore, caller weave.Address, id uint64) (*Asset, error) {
	a, err := c.Asset(db, id)
	if err != nil {
		return nil, err
	}
	if a.IsTerminal() {
		return nil, errors.Wrap(ErrTerminalPhase, "sign")
	}
	reg, err := c.signers.Registry(db)
	if err != nil {
		return nil, err
	}
	if !reg.IsMember(caller) && !isEligibleSigner(a, caller) {
		return nil, errors.Wrapf(ErrUnauthorizedSigner, "%s", caller)
	}
	conf, err := c.config(db)
	if err != nil {
		return nil, err
	}

	if !a.Quorum.add(caller) {
		return a, nil
	}
	if a.Quorum.evaluate(a.Client, conf.RequiresCompanySigner()) && a.Phase == PhaseAwaitingDepositQuorum {
		a.Phase = PhaseDepositOpen
	}
	if err := c.bucket.Put(db, a.ID, a); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}
	return a, nil
}

// Deposit books a payment of the client. The deposit policy decides in
// which rounds a payment is accepted. Every deposit opens a fresh transfer
// round.
func (c *Controller) Deposit(db weave.KVStore, caller weave.Address, id uint64, amount uint64) (*Asset, error) {
	a, err := c.Asset(db, id)
	if err != nil {
		return nil, err
	}
	if a.IsTerminal() {
		return nil, errors.Wrap(ErrTerminalPhase, "deposit")
	}
	conf, err := c.config(db)
	if err != nil {
		return nil, err
	}
	policy, err := PolicyByName(conf.DepositPolicy)
	if err != nil {
		return nil, err
	}
	if err := policy.Allows(a); err != nil {
		return nil, err
	}
	if !caller.Equals(a.Client) {
		return nil, errors.Wrapf(ErrUnauthorizedPayer, "%s", caller)
	}
	if err := policy.Accepts(a, amount); err != nil {
		return nil, err
	}

	reg, err := c.signers.Registry(db)
	if err != nil {
		return nil, err
	}
	if err := applyDeposit(a, amount, reg.Threshold); err != nil {
		return nil, err
	}
	if c.bank != nil && amount > 0 {
		if err := c.bank.MoveCoins(db, caller, EscrowAddress(id), amount); err != nil {
			return nil, errors.Wrap(err, "escrow deposit")
		}
	}
	if err := c.bucket.Put(db, a.ID, a); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}
	return a, nil
}

// Transfer hands the asset over to the client. The transfer round must be
// satisfied, the price paid off and the caller must be either the custodian
// or the delegate of the asset.
func (c *Controller) Transfer(db weave.KVStore, caller weave.Address, id uint64) (*Asset, error) {
	a, err := c.Asset(db, id)
	if err != nil {
		return nil, err
	}
	reg, err := c.signers.Registry(db)
	if err != nil {
		return nil, err
	}
	if err := authorizeTransfer(a, caller, reg.Custodian); err != nil {
		return nil, err
	}

	applyTransfer(a)
	if c.bank != nil {
		if err := c.release(db, id, reg.Custodian); err != nil {
			return nil, err
		}
	}
	if err := c.bucket.Put(db, a.ID, a); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}
	return a, nil
}

// release moves all escrowed funds of the asset to the custodian.
func (c *Controller) release(db weave.KVStore, id uint64, custodian weave.Address) error {
	escrow := EscrowAddress(id)
	funds, err := c.bank.Balance(db, escrow)
	if err != nil {
		return errors.Wrap(err, "escrow balance")
	}
	if funds == 0 {
		return nil
	}
	return errors.Wrap(c.bank.MoveCoins(db, escrow, custodian, funds), "escrow release")
}

// config returns the stored configuration, or the default one if the chain
// was never configured.
func (c *Controller) config(db weave.ReadOnlyKVStore) (*Configuration, error) {
	switch conf, err := LoadConfiguration(db); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{DepositPolicy: PolicyInstallments}, nil
	default:
		return nil, err
	}
}
