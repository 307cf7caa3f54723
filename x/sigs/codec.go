package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/nftsale/crypto"
	"github.com/iov-one/nftsale/wire"
)

// StdSignature is the signature of one party over a transaction, bound to
// the chain and the signer's current sequence.
type StdSignature struct {
	Pubkey    *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
	Sequence  int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// UserData is the replay protection state kept for every public key that
// ever signed a transaction.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

func init() {
	proto.RegisterType((*StdSignature)(nil), "sigs.StdSignature")
	proto.RegisterType((*UserData)(nil), "sigs.UserData")
}

func (m *StdSignature) Marshal() ([]byte, error) {
	var e wire.Encoder
	if m.Pubkey != nil {
		e.Message(1, m.Pubkey)
	}
	if m.Signature != nil {
		e.Message(2, m.Signature)
	}
	e.Int64(3, m.Sequence)
	return e.Result()
}

func (m *StdSignature) Unmarshal(bz []byte) error {
	*m = StdSignature{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Pubkey = &crypto.PublicKey{}
			err = f.Message(m.Pubkey)
		case 2:
			m.Signature = &crypto.Signature{}
			err = f.Message(m.Signature)
		case 3:
			m.Sequence, err = f.Int64()
		}
		return err
	})
}

func (m *UserData) Marshal() ([]byte, error) {
	var e wire.Encoder
	if m.Pubkey != nil {
		e.Message(1, m.Pubkey)
	}
	e.Int64(2, m.Sequence)
	return e.Result()
}

func (m *UserData) Unmarshal(bz []byte) error {
	*m = UserData{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Pubkey = &crypto.PublicKey{}
			err = f.Message(m.Pubkey)
		case 2:
			m.Sequence, err = f.Int64()
		}
		return err
	})
}
