package signers

import (
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	custodian := weavetest.RandomAddr(t)
	s0 := weavetest.RandomAddr(t)
	s1 := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Custodian weave.Address
		Members   []weave.Address
		Threshold uint32
		WantErr   *errors.Error
		WantSize  int
	}{
		"two of two": {
			Custodian: custodian,
			Members:   []weave.Address{s0, s1},
			Threshold: 2,
			WantSize:  2,
		},
		"duplicates are collapsed": {
			Custodian: custodian,
			Members:   []weave.Address{s0, s1, s0},
			Threshold: 2,
			WantSize:  2,
		},
		"threshold above member count": {
			Custodian: custodian,
			Members:   []weave.Address{s0},
			Threshold: 2,
			WantErr:   errors.ErrInput,
		},
		"zero threshold": {
			Custodian: custodian,
			Members:   []weave.Address{s0},
			Threshold: 0,
			WantErr:   errors.ErrInput,
		},
		"missing custodian": {
			Members:   []weave.Address{s0},
			Threshold: 1,
			WantErr:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r, err := NewRegistry(tc.Custodian, tc.Members, tc.Threshold)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr == nil {
				assert.Equal(t, tc.WantSize, len(r.Members))
			}
		})
	}
}

func TestControllerAddRemove(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	custodian := weavetest.RandomAddr(t)
	s0 := weavetest.RandomAddr(t)
	s1 := weavetest.RandomAddr(t)
	s2 := weavetest.RandomAddr(t)

	_, err := ctrl.Registry(db)
	assert.IsErr(t, errors.ErrNotFound, err)

	reg, err := NewRegistry(custodian, []weave.Address{s0, s1}, 2)
	require.NoError(t, err)
	require.NoError(t, ctrl.Save(db, reg))

	added, err := ctrl.AddSigner(db, s2)
	require.NoError(t, err)
	assert.Equal(t, true, added)

	// adding twice is a no-op
	added, err = ctrl.AddSigner(db, s2)
	require.NoError(t, err)
	assert.Equal(t, false, added)

	removed, err := ctrl.RemoveSigner(db, s0)
	require.NoError(t, err)
	assert.Equal(t, true, removed)

	// removing an absent member is a no-op
	removed, err = ctrl.RemoveSigner(db, s0)
	require.NoError(t, err)
	assert.Equal(t, false, removed)

	reg, err = ctrl.Registry(db)
	require.NoError(t, err)
	require.ElementsMatch(t, []weave.Address{s1, s2}, reg.Members)
	assert.Equal(t, false, reg.IsMember(s0))
	assert.Equal(t, uint32(2), reg.Threshold)

	// the roster may shrink below the threshold
	_, err = ctrl.RemoveSigner(db, s1)
	require.NoError(t, err)
	_, err = ctrl.RemoveSigner(db, s2)
	require.NoError(t, err)
	reg, err = ctrl.Registry(db)
	require.NoError(t, err)
	assert.Equal(t, 0, len(reg.Members))

	_, err = ctrl.AddSigner(db, weave.Address("short"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRegistryCopy(t *testing.T) {
	reg, err := NewRegistry(weavetest.RandomAddr(t), []weave.Address{weavetest.RandomAddr(t)}, 1)
	require.NoError(t, err)

	cp := reg.Copy().(*Registry)
	assert.Equal(t, reg, cp)
	cp.Members[0][0] ^= 0xff
	if reg.Members[0].Equals(cp.Members[0]) {
		t.Fatal("copy shares member memory")
	}
}

func TestRegistryCodec(t *testing.T) {
	custodian := weavetest.RandomAddr(t)
	s0 := weavetest.RandomAddr(t)
	s1 := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Model interface {
			Marshal() ([]byte, error)
			Unmarshal([]byte) error
		}
		Empty interface {
			Unmarshal([]byte) error
		}
	}{
		"registry": {
			Model: &Registry{Custodian: custodian, Members: []weave.Address{s0, s1}, Threshold: 2},
			Empty: &Registry{},
		},
		"registry without members": {
			Model: &Registry{Custodian: custodian},
			Empty: &Registry{},
		},
		"add signer": {
			Model: &AddSignerMsg{Signer: s0},
			Empty: &AddSignerMsg{},
		},
		"remove signer": {
			Model: &RemoveSignerMsg{Signer: s1},
			Empty: &RemoveSignerMsg{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := tc.Model.Marshal()
			require.NoError(t, err)
			require.NoError(t, tc.Empty.Unmarshal(raw))
			assert.Equal(t, tc.Model, tc.Empty)
		})
	}
}

func TestRegistryPersists(t *testing.T) {
	db := store.MemStore()
	custodian := weavetest.RandomAddr(t)
	s0 := weavetest.RandomAddr(t)

	ctrl := NewController()
	r, err := NewRegistry(custodian, []weave.Address{s0}, 1)
	require.NoError(t, err)
	require.NoError(t, ctrl.Save(db, r))

	added, err := ctrl.AddSigner(db, weavetest.RandomAddr(t))
	require.NoError(t, err)
	assert.Equal(t, true, added)

	got, err := ctrl.Registry(db)
	require.NoError(t, err)
	assert.Equal(t, 2, len(got.Members))
	assert.Equal(t, custodian, got.Custodian)
	assert.Equal(t, uint32(1), got.Threshold)
}
