package cash

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to the
	// destination account. This operation is atomic.
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount uint64) error
}

// Balancer is an interface to query the amount of funds an account holds.
type Balancer interface {
	// Balance returns the amount held by the account. An account that was
	// never funded holds zero.
	Balance(db weave.ReadOnlyKVStore, a weave.Address) (uint64, error)
}

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if so
// desired
type Controller interface {
	CoinMover
	Balancer
	// IssueCoins creates coins out of thin air. Only genesis may call it.
	IssueCoins(db weave.KVStore, dest weave.Address, amount uint64) error
}

// BaseController is a simple implementation of controller. Wallets must
// always be stored in the bucket returned by NewBucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the funds held by given account.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, a weave.Address) (uint64, error) {
	w, err := c.wallet(db, a)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if !c.bucket.Has(db, src) {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "sender")
	}

	// Load the recipient after the sender was saved so that moving coins
	// to self is a noop.
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return errors.Wrap(c.bucket.Put(db, dest, recipient), "recipient")
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db weave.KVStore, dest weave.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// wallet returns the wallet stored under given address or an empty one.
func (c BaseController) wallet(db weave.ReadOnlyKVStore, a weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, a, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "wallet")
	}
}
