package weavetest

import (
	"encoding/binary"

	weave "github.com/iov-one/nftsale"
)

// Tx carries Msg, or fails with Err when it is set. It cannot be
// serialized.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) { return tx.Msg, tx.Err }
func (tx *Tx) Unmarshal([]byte) error     { panic("weavetest.Tx cannot be decoded") }
func (tx *Tx) Marshal() ([]byte, error)   { panic("weavetest.Tx cannot be encoded") }

// Msg is routed to RoutePath and encodes to Serialized. Err, when set, is
// returned by validation and by both codec methods.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

// SequenceID encodes n the way the asset bucket encodes its keys.
func SequenceID(n uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return b[:]
}
