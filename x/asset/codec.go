package asset

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/wire"
)

// Custody tells who holds the asset.
type Custody int32

const (
	CustodyUnassigned      Custody = 0
	CustodyHeldByCustodian Custody = 1
	CustodyHeldByClient    Custody = 2
)

var Custody_name = map[int32]string{
	0: "UNASSIGNED",
	1: "HELD_BY_CUSTODIAN",
	2: "HELD_BY_CLIENT",
}

var Custody_value = map[string]int32{
	"UNASSIGNED":        0,
	"HELD_BY_CUSTODIAN": 1,
	"HELD_BY_CLIENT":    2,
}

func (c Custody) String() string {
	return proto.EnumName(Custody_name, int32(c))
}

// Phase is the stage of the sale.
type Phase int32

const (
	PhaseInvalid                Phase = 0
	PhaseAwaitingDepositQuorum  Phase = 1
	PhaseDepositOpen            Phase = 2
	PhaseAwaitingTransferQuorum Phase = 3
	PhaseTransferred            Phase = 4
)

var Phase_name = map[int32]string{
	0: "INVALID",
	1: "AWAITING_DEPOSIT_QUORUM",
	2: "DEPOSIT_OPEN",
	3: "AWAITING_TRANSFER_QUORUM",
	4: "TRANSFERRED",
}

var Phase_value = map[string]int32{
	"INVALID":                  0,
	"AWAITING_DEPOSIT_QUORUM":  1,
	"DEPOSIT_OPEN":             2,
	"AWAITING_TRANSFER_QUORUM": 3,
	"TRANSFERRED":              4,
}

func (p Phase) String() string {
	return proto.EnumName(Phase_name, int32(p))
}

// CompanySigner tells whether a round needs a signer other than the client.
// The zero value leaves the requirement off and is never written by a
// patch, so switching the requirement off takes CompanySignerOptional.
type CompanySigner int32

const (
	CompanySignerUnset    CompanySigner = 0
	CompanySignerOptional CompanySigner = 1
	CompanySignerRequired CompanySigner = 2
)

var CompanySigner_name = map[int32]string{
	0: "UNSET",
	1: "OPTIONAL",
	2: "REQUIRED",
}

var CompanySigner_value = map[string]int32{
	"UNSET":    0,
	"OPTIONAL": 1,
	"REQUIRED": 2,
}

func (c CompanySigner) String() string {
	return proto.EnumName(CompanySigner_name, int32(c))
}

// Asset is the sale record of a single asset.
type Asset struct {
	// ID is the 8 byte big endian encoded asset id.
	ID []byte `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	// Price is immutable. Zero is a valid price.
	Price uint64 `protobuf:"varint,2,opt,name=price,proto3" json:"price,omitempty"`
	// AmountPaid never decreases.
	AmountPaid uint64 `protobuf:"varint,3,opt,name=amount_paid,json=amountPaid,proto3" json:"amount_paid,omitempty"`
	// Client is the buyer. The client co-signs every round and is the only
	// payer.
	Client weave.Address `protobuf:"bytes,4,opt,name=client,proto3" json:"client,omitempty"`
	// Delegate is optional. A delegate may sign and execute the transfer
	// of this asset only.
	Delegate weave.Address `protobuf:"bytes,5,opt,name=delegate,proto3" json:"delegate,omitempty"`
	Custody  Custody       `protobuf:"varint,6,opt,name=custody,proto3,enum=asset.Custody" json:"custody,omitempty"`
	Phase    Phase         `protobuf:"varint,7,opt,name=phase,proto3,enum=asset.Phase" json:"phase,omitempty"`
	Quorum   *Quorum       `protobuf:"bytes,8,opt,name=quorum,proto3" json:"quorum,omitempty"`
	// Rounds counts applied deposits.
	Rounds uint32 `protobuf:"varint,9,opt,name=rounds,proto3" json:"rounds,omitempty"`
}

func (m *Asset) Reset()         { *m = Asset{} }
func (m *Asset) String() string { return proto.CompactTextString(m) }
func (*Asset) ProtoMessage()    {}

// Quorum collects the signatures of the current round.
type Quorum struct {
	Signers []weave.Address `protobuf:"bytes,1,rep,name=signers,proto3" json:"signers,omitempty"`
	// Required is the registry threshold at the time the round opened.
	Required  uint32 `protobuf:"varint,2,opt,name=required,proto3" json:"required,omitempty"`
	Satisfied bool   `protobuf:"varint,3,opt,name=satisfied,proto3" json:"satisfied,omitempty"`
}

func (m *Quorum) Reset()         { *m = Quorum{} }
func (m *Quorum) String() string { return proto.CompactTextString(m) }
func (*Quorum) ProtoMessage()    {}

// Configuration is the asset extension settings, stored with gconf.
type Configuration struct {
	Owner weave.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// DepositPolicy is the name of the policy deciding when a deposit is
	// accepted. Empty means installments.
	DepositPolicy string `protobuf:"bytes,2,opt,name=deposit_policy,json=depositPolicy,proto3" json:"deposit_policy,omitempty"`
	// CompanySigner set to REQUIRED demands at least one signer other than
	// the client in every round.
	CompanySigner CompanySigner `protobuf:"varint,3,opt,name=company_signer,json=companySigner,proto3,enum=asset.CompanySigner" json:"company_signer,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) GetOwner() weave.Address {
	if m != nil {
		return m.Owner
	}
	return nil
}

// MintMsg creates an asset held by the custodian on behalf of the client.
type MintMsg struct {
	AssetID  uint64        `protobuf:"varint,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Client   weave.Address `protobuf:"bytes,2,opt,name=client,proto3" json:"client,omitempty"`
	Price    uint64        `protobuf:"varint,3,opt,name=price,proto3" json:"price,omitempty"`
	Delegate weave.Address `protobuf:"bytes,4,opt,name=delegate,proto3" json:"delegate,omitempty"`
}

func (m *MintMsg) Reset()         { *m = MintMsg{} }
func (m *MintMsg) String() string { return proto.CompactTextString(m) }
func (*MintMsg) ProtoMessage()    {}

// SignMsg adds the signature of the transaction signer to the current round.
type SignMsg struct {
	AssetID uint64 `protobuf:"varint,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
}

func (m *SignMsg) Reset()         { *m = SignMsg{} }
func (m *SignMsg) String() string { return proto.CompactTextString(m) }
func (*SignMsg) ProtoMessage()    {}

// DepositMsg pays toward the asset price.
type DepositMsg struct {
	AssetID uint64 `protobuf:"varint,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Amount  uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

// TransferMsg hands the asset over to the client.
type TransferMsg struct {
	AssetID uint64 `protobuf:"varint,1,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

// UpdateConfigurationMsg patches the stored configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("asset.Custody", Custody_name, Custody_value)
	proto.RegisterEnum("asset.Phase", Phase_name, Phase_value)
	proto.RegisterEnum("asset.CompanySigner", CompanySigner_name, CompanySigner_value)
	proto.RegisterType((*Asset)(nil), "asset.Asset")
	proto.RegisterType((*Quorum)(nil), "asset.Quorum")
	proto.RegisterType((*Configuration)(nil), "asset.Configuration")
	proto.RegisterType((*MintMsg)(nil), "asset.MintMsg")
	proto.RegisterType((*SignMsg)(nil), "asset.SignMsg")
	proto.RegisterType((*DepositMsg)(nil), "asset.DepositMsg")
	proto.RegisterType((*TransferMsg)(nil), "asset.TransferMsg")
	proto.RegisterType((*UpdateConfigurationMsg)(nil), "asset.UpdateConfigurationMsg")
}

func (m *Asset) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.ID)
	e.Uint64(2, m.Price)
	e.Uint64(3, m.AmountPaid)
	e.Bytes(4, m.Client)
	e.Bytes(5, m.Delegate)
	e.Int32(6, int32(m.Custody))
	e.Int32(7, int32(m.Phase))
	if m.Quorum != nil {
		e.Message(8, m.Quorum)
	}
	e.Uint32(9, m.Rounds)
	return e.Result()
}

func (m *Asset) Unmarshal(bz []byte) error {
	*m = Asset{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.ID, err = f.Bytes()
		case 2:
			m.Price, err = f.Uint64()
		case 3:
			m.AmountPaid, err = f.Uint64()
		case 4:
			m.Client, err = f.Bytes()
		case 5:
			m.Delegate, err = f.Bytes()
		case 6:
			var v int32
			v, err = f.Int32()
			m.Custody = Custody(v)
		case 7:
			var v int32
			v, err = f.Int32()
			m.Phase = Phase(v)
		case 8:
			m.Quorum = &Quorum{}
			err = f.Message(m.Quorum)
		case 9:
			m.Rounds, err = f.Uint32()
		}
		return err
	})
}

func (m *Quorum) Marshal() ([]byte, error) {
	var e wire.Encoder
	for _, s := range m.Signers {
		e.Element(1, s)
	}
	e.Uint32(2, m.Required)
	e.Bool(3, m.Satisfied)
	return e.Result()
}

func (m *Quorum) Unmarshal(bz []byte) error {
	*m = Quorum{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			var s []byte
			s, err = f.Bytes()
			m.Signers = append(m.Signers, s)
		case 2:
			m.Required, err = f.Uint32()
		case 3:
			m.Satisfied, err = f.Bool()
		}
		return err
	})
}

func (m *Configuration) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Owner)
	e.String(2, m.DepositPolicy)
	e.Int32(3, int32(m.CompanySigner))
	return e.Result()
}

func (m *Configuration) Unmarshal(bz []byte) error {
	*m = Configuration{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Owner, err = f.Bytes()
		case 2:
			m.DepositPolicy, err = f.Text()
		case 3:
			var v int32
			v, err = f.Int32()
			m.CompanySigner = CompanySigner(v)
		}
		return err
	})
}

func (m *MintMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Uint64(1, m.AssetID)
	e.Bytes(2, m.Client)
	e.Uint64(3, m.Price)
	e.Bytes(4, m.Delegate)
	return e.Result()
}

func (m *MintMsg) Unmarshal(bz []byte) error {
	*m = MintMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.AssetID, err = f.Uint64()
		case 2:
			m.Client, err = f.Bytes()
		case 3:
			m.Price, err = f.Uint64()
		case 4:
			m.Delegate, err = f.Bytes()
		}
		return err
	})
}

func (m *SignMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Uint64(1, m.AssetID)
	return e.Result()
}

func (m *SignMsg) Unmarshal(bz []byte) error {
	*m = SignMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.AssetID, err = f.Uint64()
		}
		return err
	})
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Uint64(1, m.AssetID)
	e.Uint64(2, m.Amount)
	return e.Result()
}

func (m *DepositMsg) Unmarshal(bz []byte) error {
	*m = DepositMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.AssetID, err = f.Uint64()
		case 2:
			m.Amount, err = f.Uint64()
		}
		return err
	})
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Uint64(1, m.AssetID)
	return e.Result()
}

func (m *TransferMsg) Unmarshal(bz []byte) error {
	*m = TransferMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.AssetID, err = f.Uint64()
		}
		return err
	})
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	if m.Patch != nil {
		e.Message(1, m.Patch)
	}
	return e.Result()
}

func (m *UpdateConfigurationMsg) Unmarshal(bz []byte) error {
	*m = UpdateConfigurationMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Patch = &Configuration{}
			err = f.Message(m.Patch)
		}
		return err
	})
}
