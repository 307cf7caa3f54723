package wire

import (
	"testing"

	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/weavetest/assert"
)

func TestEncoderOutput(t *testing.T) {
	cases := map[string]struct {
		Encode func(*Encoder)
		Want   []byte
	}{
		"price varint": {
			Encode: func(e *Encoder) { e.Uint64(1, 150) },
			Want:   []byte{0x08, 0x96, 0x01},
		},
		"zero values are omitted": {
			Encode: func(e *Encoder) {
				e.Uint64(1, 0)
				e.Bytes(2, nil)
				e.String(3, "")
				e.Bool(4, false)
			},
			Want: nil,
		},
		"client address": {
			Encode: func(e *Encoder) { e.Bytes(4, []byte{0xca, 0xfe}) },
			Want:   []byte{0x22, 0x02, 0xca, 0xfe},
		},
		"policy name": {
			Encode: func(e *Encoder) { e.String(2, "single") },
			Want:   []byte{0x12, 0x06, 's', 'i', 'n', 'g', 'l', 'e'},
		},
		"repeated signers keep empty elements": {
			Encode: func(e *Encoder) { e.RepeatedBytes(1, [][]byte{{0x01}, {}}) },
			Want:   []byte{0x0a, 0x01, 0x01, 0x0a, 0x00},
		},
		"negative sequence": {
			Encode: func(e *Encoder) { e.Int64(3, -1) },
			Want:   []byte{0x18, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var e Encoder
			tc.Encode(&e)
			got, err := e.Result()
			assert.Nil(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}

type failing struct{}

func (failing) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "cannot marshal")
}

func TestEncoderKeepsNestedError(t *testing.T) {
	var e Encoder
	e.Uint64(1, 7)
	e.Message(2, failing{})
	e.Uint64(3, 9)
	_, err := e.Result()
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestDecode(t *testing.T) {
	var e Encoder
	e.Uint64(1, 150)
	e.String(2, "installments")
	e.Int64(3, -4)
	e.Bool(4, true)
	raw, err := e.Result()
	assert.Nil(t, err)

	var (
		price  uint64
		policy string
		seq    int64
		ok     bool
	)
	err = Decode(raw, func(f Field) (err error) {
		switch f.Num {
		case 1:
			price, err = f.Uint64()
		case 2:
			policy, err = f.Text()
		case 3:
			seq, err = f.Int64()
		case 4:
			ok, err = f.Bool()
		}
		return err
	})
	assert.Nil(t, err)
	assert.Equal(t, uint64(150), price)
	assert.Equal(t, "installments", policy)
	assert.Equal(t, int64(-4), seq)
	assert.Equal(t, true, ok)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	raw := []byte{
		0x09, 1, 2, 3, 4, 5, 6, 7, 8, // field 1, fixed64
		0x15, 1, 2, 3, 4, // field 2, fixed32
		0x1a, 0x01, 0xff, // field 3, bytes
		0x20, 0x05, // field 4, varint
	}
	var amount uint64
	err := Decode(raw, func(f Field) (err error) {
		if f.Num == 4 {
			amount, err = f.Uint64()
		}
		return err
	})
	assert.Nil(t, err)
	assert.Equal(t, uint64(5), amount)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]struct {
		Raw   []byte
		Field func(Field) error
	}{
		"truncated varint": {
			Raw: []byte{0x08, 0x96},
		},
		"length past the end": {
			Raw: []byte{0x0a, 0x05, 0x01},
		},
		"truncated fixed64": {
			Raw: []byte{0x09, 0x01},
		},
		"group wire type": {
			Raw: []byte{0x0b},
		},
		"field zero": {
			Raw: []byte{0x00, 0x01},
		},
		"bytes read as varint": {
			Raw: []byte{0x0a, 0x01, 0x01},
			Field: func(f Field) error {
				_, err := f.Uint64()
				return err
			},
		},
		"varint read as bytes": {
			Raw: []byte{0x08, 0x01},
			Field: func(f Field) error {
				_, err := f.Bytes()
				return err
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fn := tc.Field
			if fn == nil {
				fn = func(Field) error { return nil }
			}
			assert.IsErr(t, errors.ErrSchema, Decode(tc.Raw, fn))
		})
	}
}

func TestDecodedBytesAreCopied(t *testing.T) {
	raw := []byte{0x0a, 0x02, 0xaa, 0xbb}
	var got []byte
	err := Decode(raw, func(f Field) (err error) {
		got, err = f.Bytes()
		return err
	})
	assert.Nil(t, err)
	raw[2] = 0x00
	assert.Equal(t, []byte{0xaa, 0xbb}, got)
}
