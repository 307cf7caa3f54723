package cash

import (
	"testing"

	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletCodec(t *testing.T) {
	cases := map[string]struct {
		Model interface {
			Marshal() ([]byte, error)
			Unmarshal([]byte) error
		}
		Empty interface {
			Unmarshal([]byte) error
		}
	}{
		"escrow wallet": {
			Model: &Wallet{Balance: 600},
			Empty: &Wallet{},
		},
		"empty wallet": {
			Model: &Wallet{},
			Empty: &Wallet{},
		},
		"send with memo": {
			Model: &SendMsg{
				Src:    weavetest.NewCondition().Address(),
				Dest:   weavetest.NewCondition().Address(),
				Amount: 250,
				Memo:   "first installment",
			},
			Empty: &SendMsg{},
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
