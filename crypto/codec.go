package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/nftsale/wire"
)

// PublicKey is the serialized form of a public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

// PrivateKey is the serialized form of a private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return proto.CompactTextString(m) }
func (*PrivateKey) ProtoMessage()    {}

// Signature is the serialized form of a signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

func init() {
	proto.RegisterType((*PublicKey)(nil), "crypto.PublicKey")
	proto.RegisterType((*PrivateKey)(nil), "crypto.PrivateKey")
	proto.RegisterType((*Signature)(nil), "crypto.Signature")
}

func (m *PublicKey) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Ed25519)
	return e.Result()
}

func (m *PublicKey) Unmarshal(bz []byte) error {
	*m = PublicKey{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Ed25519, err = f.Bytes()
		}
		return err
	})
}

func (m *PrivateKey) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Ed25519)
	return e.Result()
}

func (m *PrivateKey) Unmarshal(bz []byte) error {
	*m = PrivateKey{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Ed25519, err = f.Bytes()
		}
		return err
	})
}

func (m *Signature) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Ed25519)
	return e.Result()
}

func (m *Signature) Unmarshal(bz []byte) error {
	*m = Signature{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Ed25519, err = f.Bytes()
		}
		return err
	})
}
