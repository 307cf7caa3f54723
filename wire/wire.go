/*
Package wire implements the protobuf field encoding of state models and
messages.

Models write their fields with an Encoder and read them back with Decode.
Zero values are omitted as proto3 requires, so the output of a Marshal
method is byte compatible with any protobuf implementation reading the
matching schema.
*/
package wire

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/nftsale/errors"
)

// Wire types used by proto3 schemas.
const (
	WireVarint  = 0
	WireFixed64 = 1
	WireBytes   = 2
	WireFixed32 = 5
)

// Marshaler is implemented by every model that can be nested in another.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler is implemented by every model that can be nested in another.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Encoder appends fields to a buffer. The first error is kept and returned
// by Bytes.
type Encoder struct {
	buf []byte
	err error
}

func (e *Encoder) key(field, wireType int) {
	e.buf = append(e.buf, proto.EncodeVarint(uint64(field)<<3|uint64(wireType))...)
}

func (e *Encoder) varint(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, WireVarint)
	e.buf = append(e.buf, proto.EncodeVarint(v)...)
}

func (e *Encoder) raw(field int, b []byte) {
	e.key(field, WireBytes)
	e.buf = append(e.buf, proto.EncodeVarint(uint64(len(b)))...)
	e.buf = append(e.buf, b...)
}

// Uint64 writes an unsigned varint field.
func (e *Encoder) Uint64(field int, v uint64) { e.varint(field, v) }

// Uint32 writes an unsigned varint field.
func (e *Encoder) Uint32(field int, v uint32) { e.varint(field, uint64(v)) }

// Int64 writes a signed varint field. Negative values take ten bytes.
func (e *Encoder) Int64(field int, v int64) { e.varint(field, uint64(v)) }

// Int32 writes a signed varint field, used for enums.
func (e *Encoder) Int32(field int, v int32) { e.varint(field, uint64(int64(v))) }

// Bool writes a boolean field.
func (e *Encoder) Bool(field int, v bool) {
	if v {
		e.varint(field, 1)
	}
}

// Bytes writes a length delimited field. Empty values are omitted.
func (e *Encoder) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.raw(field, b)
}

// String writes a length delimited field. Empty values are omitted.
func (e *Encoder) String(field int, s string) {
	if s == "" {
		return
	}
	e.raw(field, []byte(s))
}

// Element writes one element of a repeated length delimited field. Empty
// elements are kept.
func (e *Encoder) Element(field int, b []byte) { e.raw(field, b) }

// RepeatedBytes writes every element, empty ones included.
func (e *Encoder) RepeatedBytes(field int, list [][]byte) {
	for _, b := range list {
		e.raw(field, b)
	}
}

// Message writes a nested model. The caller skips nil pointers.
func (e *Encoder) Message(field int, m Marshaler) {
	if e.err != nil {
		return
	}
	b, err := m.Marshal()
	if err != nil {
		e.err = errors.Wrapf(err, "field %d", field)
		return
	}
	e.raw(field, b)
}

// Result returns the encoded fields.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}

// Field is a single decoded field.
type Field struct {
	Num      int
	WireType int
	varint   uint64
	raw      []byte
}

func (f Field) wrongType(want int) error {
	return errors.Wrapf(errors.ErrSchema, "field %d: wire type %d, expected %d", f.Num, f.WireType, want)
}

// Uint64 reads a varint field.
func (f Field) Uint64() (uint64, error) {
	if f.WireType != WireVarint {
		return 0, f.wrongType(WireVarint)
	}
	return f.varint, nil
}

// Uint32 reads a varint field.
func (f Field) Uint32() (uint32, error) {
	v, err := f.Uint64()
	return uint32(v), err
}

// Int64 reads a varint field.
func (f Field) Int64() (int64, error) {
	v, err := f.Uint64()
	return int64(v), err
}

// Int32 reads a varint field.
func (f Field) Int32() (int32, error) {
	v, err := f.Uint64()
	return int32(v), err
}

// Bool reads a varint field.
func (f Field) Bool() (bool, error) {
	v, err := f.Uint64()
	return v != 0, err
}

// Bytes returns a copy of a length delimited field.
func (f Field) Bytes() ([]byte, error) {
	if f.WireType != WireBytes {
		return nil, f.wrongType(WireBytes)
	}
	return append([]byte{}, f.raw...), nil
}

// Text reads a length delimited field as a string.
func (f Field) Text() (string, error) {
	if f.WireType != WireBytes {
		return "", f.wrongType(WireBytes)
	}
	return string(f.raw), nil
}

// Message decodes a nested model into m.
func (f Field) Message(m Unmarshaler) error {
	if f.WireType != WireBytes {
		return f.wrongType(WireBytes)
	}
	return m.Unmarshal(f.raw)
}

// Decode walks the fields of b in order and calls fn for each of them.
// Fields the model does not know about are expected to be ignored by fn.
func Decode(b []byte, fn func(Field) error) error {
	for len(b) > 0 {
		key, n := proto.DecodeVarint(b)
		if n == 0 {
			return errors.Wrap(errors.ErrSchema, "truncated field key")
		}
		b = b[n:]
		f := Field{Num: int(key >> 3), WireType: int(key & 0x7)}
		if f.Num <= 0 {
			return errors.Wrapf(errors.ErrSchema, "illegal field number %d", f.Num)
		}

		switch f.WireType {
		case WireVarint:
			v, n := proto.DecodeVarint(b)
			if n == 0 {
				return errors.Wrapf(errors.ErrSchema, "field %d: truncated varint", f.Num)
			}
			f.varint = v
			b = b[n:]
		case WireBytes:
			size, n := proto.DecodeVarint(b)
			if n == 0 || size > uint64(len(b)-n) {
				return errors.Wrapf(errors.ErrSchema, "field %d: truncated length", f.Num)
			}
			b = b[n:]
			f.raw = b[:size]
			b = b[size:]
		case WireFixed64:
			if len(b) < 8 {
				return errors.Wrapf(errors.ErrSchema, "field %d: truncated fixed64", f.Num)
			}
			f.raw = b[:8]
			b = b[8:]
		case WireFixed32:
			if len(b) < 4 {
				return errors.Wrapf(errors.ErrSchema, "field %d: truncated fixed32", f.Num)
			}
			f.raw = b[:4]
			b = b[4:]
		default:
			return errors.Wrapf(errors.ErrSchema, "field %d: unsupported wire type %d", f.Num, f.WireType)
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
