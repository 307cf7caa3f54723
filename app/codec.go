package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/nftsale/wire"
)

// ResultSet contains a list of keys or values returned by a query.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func init() {
	proto.RegisterType((*ResultSet)(nil), "app.ResultSet")
}

func (m *ResultSet) Marshal() ([]byte, error) {
	var e wire.Encoder
	e.RepeatedBytes(1, m.Results)
	return e.Result()
}

func (m *ResultSet) Unmarshal(bz []byte) error {
	*m = ResultSet{}
	return wire.Decode(bz, func(f wire.Field) (err error) {
		if f.Num == 1 {
			var r []byte
			r, err = f.Bytes()
			m.Results = append(m.Results, r)
		}
		return err
	})
}
