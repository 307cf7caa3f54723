package app

import (
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestABCIStore(t *testing.T) {
	app := newTestStoreApp(t)
	app.DeliverStore().Set([]byte("a"), []byte("1"))
	app.DeliverStore().Set([]byte("b"), []byte("2"))
	app.DeliverStore().Set([]byte("c"), []byte("3"))
	app.Commit()

	base := NewBaseApp(app, pathDecoder, NewRouter(), false)
	db := NewABCIStore(base)

	assert.Equal(t, []byte("2"), db.Get([]byte("b")))
	assert.True(t, db.Has([]byte("c")))
	assert.False(t, db.Has([]byte("d")))

	all := orm.ConsumeIterator(db.Iterator(nil, nil))
	require.Len(t, all, 3)
	assert.Equal(t, weave.Pair([]byte("a"), []byte("1")), all[0])

	rev := orm.ConsumeIterator(db.ReverseIterator(nil, nil))
	require.Len(t, rev, 3)
	assert.Equal(t, weave.Pair([]byte("c"), []byte("3")), rev[0])

	assert.Panics(t, func() { db.Iterator([]byte("a"), nil) })
}

func TestJoinResults(t *testing.T) {
	models := []weave.Model{
		weave.Pair([]byte("k1"), []byte("v1")),
		weave.Pair([]byte("k2"), []byte("v2")),
	}
	joined, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(ResultsFromKeys(models), ResultsFromValues(models[:1]))
	assert.Error(t, err)
}
