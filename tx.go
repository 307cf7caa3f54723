package weave

import (
	"reflect"
	"regexp"

	"github.com/iov-one/nftsale/errors"
)

// Marshaller serializes a value. Implementations may validate first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a value that is stored or sent over the wire. Unmarshal
// needs a pointer receiver, hence the split from Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a requested state change, such as minting an asset or signing
// a transfer. Who requested it is carried by the Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example "asset/mint".
	// It matches [0-9A-Za-z_\-/]+.
	Path() string

	// Validate checks the message alone, without reading the state.
	Validate() error
}

// Tx wraps a message together with what decorators need to authorize it,
// such as signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the message path of tx, or "(missing)" if it has none.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

var validPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`)

// ValidatePath fails with ErrInput on a malformed message path.
func ValidatePath(path string) error {
	if !validPath.MatchString(path) {
		return errors.Wrapf(errors.ErrInput, "message path %q", path)
	}
	return nil
}

// LoadMsg copies the message of tx into dest and validates it. dest points
// to either the message type or a pointer to it:
//
//   var msg asset.MintMsg
//   err := weave.LoadMsg(tx, &msg)
//
//   var msgp *asset.MintMsg
//   err := weave.LoadMsg(tx, &msgp)
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "transaction message")
	}
	if err := assignMsg(msg, dest); err != nil {
		return err
	}
	return errors.Wrap(msg.Validate(), "invalid message")
}

func assignMsg(msg Msg, dest interface{}) error {
	dst := reflect.ValueOf(dest)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "message destination %T is not a valid pointer", dest)
	}
	if msg == nil {
		return errors.Wrap(errors.ErrInput, "missing message")
	}
	want := dst.Elem().Type()
	src := reflect.ValueOf(msg)
	switch {
	case src.Type().AssignableTo(want):
		dst.Elem().Set(src)
	case src.Kind() == reflect.Ptr && !src.IsNil() && src.Elem().Type().AssignableTo(want):
		dst.Elem().Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "cannot load %T message into %s", msg, want)
	}
	return nil
}
