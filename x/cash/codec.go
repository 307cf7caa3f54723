package cash

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/wire"
)

// Wallet holds the balance of a single address, in base units.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// SendMsg is a request to move coins from one account to another.
type SendMsg struct {
	Src    weave.Address `protobuf:"bytes,1,opt,name=src,proto3" json:"src,omitempty"`
	Dest   weave.Address `protobuf:"bytes,2,opt,name=dest,proto3" json:"dest,omitempty"`
	Amount uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is an optional human readable message
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Wallet)(nil), "cash.Wallet")
	proto.RegisterType((*SendMsg)(nil), "cash.SendMsg")
}

func (m *Wallet) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Uint64(1, m.Balance)
	return e.Result()
}

func (m *Wallet) Unmarshal(bz []byte) error {
	*m = Wallet{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Balance, err = f.Uint64()
		}
		return err
	})
}

func (m *SendMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Src)
	e.Bytes(2, m.Dest)
	e.Uint64(3, m.Amount)
	e.String(4, m.Memo)
	return e.Result()
}

func (m *SendMsg) Unmarshal(bz []byte) error {
	*m = SendMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Src, err = f.Bytes()
		case 2:
			m.Dest, err = f.Bytes()
		case 3:
			m.Amount, err = f.Uint64()
		case 4:
			m.Memo, err = f.Text()
		}
		return err
	})
}
