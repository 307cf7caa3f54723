package weave_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/iov-one/nftsale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	bg := context.Background()

	_, ok := weave.GetHeight(bg)
	assert.False(t, ok)

	ctx := weave.WithHeight(bg, 7)
	h, ok := weave.GetHeight(ctx)
	require.True(t, ok)
	assert.EqualValues(t, 7, h)

	assert.Panics(t, func() { weave.WithHeight(ctx, 8) })
}

func TestContextChainID(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, "", weave.GetChainID(bg))

	assert.Panics(t, func() { weave.WithChainID(bg, "no") })

	ctx := weave.WithChainID(bg, "sale-chain")
	assert.Equal(t, "sale-chain", weave.GetChainID(ctx))
	assert.Panics(t, func() { weave.WithChainID(ctx, "other-chain") })
}

func TestContextBlockTime(t *testing.T) {
	now := time.Now().UTC()
	ctx := weave.WithBlockTime(context.Background(), now)
	got, ok := weave.BlockTime(ctx)
	require.True(t, ok)
	assert.Equal(t, now, got)
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, weave.DefaultLogger, weave.GetLogger(bg))

	var buf bytes.Buffer
	ctx := weave.WithLogger(bg, log.NewTMLogger(&buf))
	ctx = weave.WithLogInfo(ctx, "asset", 111)
	weave.GetLogger(ctx).Info("minted")
	assert.Contains(t, buf.String(), "asset=111")
	assert.Contains(t, buf.String(), "minted")
}
