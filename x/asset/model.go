package asset

import (
	"encoding/binary"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/orm"
)

const (
	// BucketName is where we store the assets
	BucketName = "asset"

	indexClient   = "client"
	indexDelegate = "delegate"
)

var _ orm.Model = (*Asset)(nil)

// AssetKey returns the primary key of an asset with given id.
func AssetKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// EscrowCondition returns the condition controlling deposited funds of an
// asset. Nobody can sign for it, only this extension moves the funds.
func EscrowCondition(id uint64) weave.Condition {
	return weave.NewCondition("asset", "escrow", AssetKey(id))
}

// EscrowAddress returns the address holding deposited funds of an asset.
func EscrowAddress(id uint64) weave.Address {
	return EscrowCondition(id).Address()
}

// AssetID returns the numeric id of the asset.
func (a *Asset) AssetID() uint64 {
	if len(a.ID) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(a.ID)
}

// Validate ensures the asset is in a consistent state.
func (a *Asset) Validate() error {
	var errs error
	if len(a.ID) != 8 {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrInput, "must be 8 bytes"))
	}
	errs = errors.AppendField(errs, "Client", a.Client.Validate())
	if len(a.Delegate) != 0 {
		errs = errors.AppendField(errs, "Delegate", a.Delegate.Validate())
	}
	switch a.Custody {
	case CustodyHeldByCustodian, CustodyHeldByClient:
	default:
		errs = errors.Append(errs, errors.Field("Custody", errors.ErrState, "invalid custody %s", a.Custody))
	}
	if _, ok := Phase_name[int32(a.Phase)]; !ok || a.Phase == PhaseInvalid {
		errs = errors.Append(errs, errors.Field("Phase", errors.ErrState, "invalid phase %d", a.Phase))
	}
	if (a.Phase == PhaseTransferred) != (a.Custody == CustodyHeldByClient) {
		errs = errors.Append(errs, errors.Field("Custody", errors.ErrState, "custody %s in phase %s", a.Custody, a.Phase))
	}
	if a.Phase == PhaseTransferred && a.AmountPaid < a.Price {
		errs = errors.Append(errs, errors.Field("AmountPaid", errors.ErrState, "transferred before paid off"))
	}
	if a.Quorum == nil {
		errs = errors.Append(errs, errors.Field("Quorum", errors.ErrEmpty, "required"))
	} else {
		errs = errors.AppendField(errs, "Quorum", a.Quorum.validate(a.Phase == PhaseTransferred))
	}
	return errs
}

// Copy returns a deep copy of the asset.
func (a *Asset) Copy() orm.CloneableData {
	return &Asset{
		ID:         append([]byte(nil), a.ID...),
		Price:      a.Price,
		AmountPaid: a.AmountPaid,
		Client:     append(weave.Address(nil), a.Client...),
		Delegate:   cloneAddress(a.Delegate),
		Custody:    a.Custody,
		Phase:      a.Phase,
		Quorum:     a.Quorum.copy(),
		Rounds:     a.Rounds,
	}
}

// IsTerminal returns true once the asset was handed over. A terminal asset
// never changes.
func (a *Asset) IsTerminal() bool {
	return a.Phase == PhaseTransferred
}

// Owner returns the current holder of the asset. The custodian holds every
// asset until it is transferred.
func (a *Asset) Owner(custodian weave.Address) weave.Address {
	switch a.Custody {
	case CustodyHeldByClient:
		return a.Client
	case CustodyHeldByCustodian:
		return custodian
	default:
		return nil
	}
}

func cloneAddress(a weave.Address) weave.Address {
	if a == nil {
		return nil
	}
	return append(weave.Address(nil), a...)
}

func clientIndexer(obj orm.Object) ([]byte, error) {
	a, err := asAsset(obj)
	if err != nil {
		return nil, err
	}
	return a.Client, nil
}

func delegateIndexer(obj orm.Object) ([]byte, error) {
	a, err := asAsset(obj)
	if err != nil {
		return nil, err
	}
	if len(a.Delegate) == 0 {
		return nil, nil
	}
	return a.Delegate, nil
}

func asAsset(obj orm.Object) (*Asset, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	a, ok := obj.Value().(*Asset)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "can only take index of Asset, got %T", obj.Value())
	}
	return a, nil
}

// NewBucket returns the bucket holding assets, indexed by client and by
// delegate.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Asset{},
		orm.WithIndex(indexClient, clientIndexer, false),
		orm.WithIndex(indexDelegate, delegateIndexer, false),
	)
}
