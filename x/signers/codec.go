package signers

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/wire"
)

// Registry is the company signer roster. There is exactly one registry per
// chain.
type Registry struct {
	// Custodian is the privileged identity that mints assets and manages
	// the roster.
	Custodian weave.Address `protobuf:"bytes,1,opt,name=custodian,proto3" json:"custodian,omitempty"`
	// Members is the set of company signers.
	Members []weave.Address `protobuf:"bytes,2,rep,name=members,proto3" json:"members,omitempty"`
	// Threshold is the number of distinct signatures a quorum round needs.
	Threshold uint32 `protobuf:"varint,3,opt,name=threshold,proto3" json:"threshold,omitempty"`
}

func (m *Registry) Reset()         { *m = Registry{} }
func (m *Registry) String() string { return proto.CompactTextString(m) }
func (*Registry) ProtoMessage()    {}

// AddSignerMsg inserts a company signer.
type AddSignerMsg struct {
	Signer weave.Address `protobuf:"bytes,1,opt,name=signer,proto3" json:"signer,omitempty"`
}

func (m *AddSignerMsg) Reset()         { *m = AddSignerMsg{} }
func (m *AddSignerMsg) String() string { return proto.CompactTextString(m) }
func (*AddSignerMsg) ProtoMessage()    {}

// RemoveSignerMsg removes a company signer.
type RemoveSignerMsg struct {
	Signer weave.Address `protobuf:"bytes,1,opt,name=signer,proto3" json:"signer,omitempty"`
}

func (m *RemoveSignerMsg) Reset()         { *m = RemoveSignerMsg{} }
func (m *RemoveSignerMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveSignerMsg) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Registry)(nil), "signers.Registry")
	proto.RegisterType((*AddSignerMsg)(nil), "signers.AddSignerMsg")
	proto.RegisterType((*RemoveSignerMsg)(nil), "signers.RemoveSignerMsg")
}

func (m *Registry) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Custodian)
	for _, a := range m.Members {
		e.Element(2, a)
	}
	e.Uint32(3, m.Threshold)
	return e.Result()
}

func (m *Registry) Unmarshal(bz []byte) error {
	*m = Registry{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		switch f.Num {
		case 1:
			m.Custodian, err = f.Bytes()
		case 2:
			var a []byte
			a, err = f.Bytes()
			m.Members = append(m.Members, a)
		case 3:
			m.Threshold, err = f.Uint32()
		}
		return err
	})
}

func (m *AddSignerMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Signer)
	return e.Result()
}

func (m *AddSignerMsg) Unmarshal(bz []byte) error {
	*m = AddSignerMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Signer, err = f.Bytes()
		}
		return err
	})
}

func (m *RemoveSignerMsg) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.Bytes(1, m.Signer)
	return e.Result()
}

func (m *RemoveSignerMsg) Unmarshal(bz []byte) error {
	*m = RemoveSignerMsg{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			m.Signer, err = f.Bytes()
		}
		return err
	})
}
