package weave_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/weavetest/assert"
)

func TestConditionParse(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte{0xCA, 0xFE})

	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte{0xCA, 0xFE}, data)
	assert.Equal(t, "sigs/ed25519/CAFE", cond.String())

	broken := weave.Condition("no-slashes")
	_, _, _, err = broken.Parse()
	assert.IsErr(t, errors.ErrInput, err)
	assert.IsErr(t, errors.ErrInput, broken.Validate())
}

func TestAddressDerivation(t *testing.T) {
	a := weave.NewCondition("sigs", "ed25519", []byte{1}).Address()
	b := weave.NewCondition("sigs", "ed25519", []byte{2}).Address()

	assert.Nil(t, a.Validate())
	assert.Equal(t, weave.AddressLength, len(a))
	if a.Equals(b) {
		t.Fatal("different conditions must produce different addresses")
	}
	assert.IsErr(t, errors.ErrInput, weave.Address([]byte{1, 2}).Validate())
}

func TestAddressJSON(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte{0xAB})
	addr := cond.Address()
	b32, err := addr.Bech32()
	assert.Nil(t, err)

	cases := map[string]struct {
		json    string
		want    weave.Address
		wantErr *errors.Error
	}{
		"hex": {
			json: `"` + addr.String() + `"`,
			want: addr,
		},
		"condition": {
			json: `"cond:sigs/ed25519/AB"`,
			want: addr,
		},
		"bech32": {
			json: `"bech32:` + b32 + `"`,
			want: addr,
		},
		"empty": {
			json: `""`,
			want: nil,
		},
		"too short": {
			json:    `"ABCD"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"base64:qg=="`,
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got weave.Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}

	raw, err := json.Marshal(addr)
	assert.Nil(t, err)
	var back weave.Address
	assert.Nil(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr, back)
}

func TestAddressSet(t *testing.T) {
	a := weave.NewCondition("sigs", "ed25519", []byte{1}).Address()
	b := weave.NewCondition("sigs", "ed25519", []byte{2}).Address()

	var set weave.AddressSet
	set, added := set.Add(a)
	assert.Equal(t, true, added)
	set, added = set.Add(a)
	assert.Equal(t, false, added)
	set, _ = set.Add(b)
	assert.Equal(t, 2, len(set))
	assert.Nil(t, set.Validate())

	set, removed := set.Remove(a)
	assert.Equal(t, true, removed)
	assert.Equal(t, false, set.Contains(a))
	_, removed = set.Remove(a)
	assert.Equal(t, false, removed)

	dup := weave.AddressSet{b, b}
	assert.FieldError(t, dup.Validate(), "1", errors.ErrDuplicate)
}
