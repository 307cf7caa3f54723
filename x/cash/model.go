package cash

import (
	"math"

	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// Validate accepts any balance. A wallet is a counter and the zero value
// is a legal state.
func (w *Wallet) Validate() error {
	return nil
}

func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{Balance: w.Balance}
}

// Add increases the balance, failing on overflow.
func (w *Wallet) Add(amount uint64) error {
	if w.Balance > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "balance %d plus %d", w.Balance, amount)
	}
	w.Balance += amount
	return nil
}

// Subtract decreases the balance. The balance may never go below zero.
func (w *Wallet) Subtract(amount uint64) error {
	if w.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, required %d", w.Balance, amount)
	}
	w.Balance -= amount
	return nil
}

// NewBucket returns the bucket holding wallets keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
