package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSetCodec(t *testing.T) {
	cases := map[string]*ResultSet{
		"asset keys":    {Results: [][]byte{[]byte("asset:1"), []byte("asset:2")}},
		"empty value":   {Results: [][]byte{[]byte("asset:1"), {}}},
		"empty results": {},
	}

	for testName, set := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := set.Marshal()
			require.NoError(t, err)
			var got ResultSet
			require.NoError(t, got.Unmarshal(raw))
			assert.Equal(t, set, &got)
		})
	}
}
