package weave_test

import (
	"testing"

	"github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/weavetest/assert"
)

func TestLoadMsg(t *testing.T) {
	msg := &weavetest.Msg{RoutePath: "test/load", Serialized: []byte("payload")}
	tx := &weavetest.Tx{Msg: msg}

	var byValue weavetest.Msg
	assert.Nil(t, weave.LoadMsg(tx, &byValue))
	assert.Equal(t, "test/load", byValue.Path())

	var byPointer *weavetest.Msg
	assert.Nil(t, weave.LoadMsg(tx, &byPointer))
	assert.Equal(t, msg, byPointer)

	var wrong string
	assert.IsErr(t, errors.ErrType, weave.LoadMsg(tx, &wrong))

	assert.IsErr(t, errors.ErrHuman, weave.LoadMsg(tx, byValue))

	invalid := &weavetest.Tx{Msg: &weavetest.Msg{Err: errors.ErrInput}}
	var dst *weavetest.Msg
	assert.IsErr(t, errors.ErrInput, weave.LoadMsg(invalid, &dst))

	failing := &weavetest.Tx{Err: errors.ErrSchema}
	assert.IsErr(t, errors.ErrSchema, weave.LoadMsg(failing, &dst))
}

func TestValidatePath(t *testing.T) {
	assert.Nil(t, weave.ValidatePath("asset/mint"))
	assert.IsErr(t, errors.ErrInput, weave.ValidatePath("asset mint"))
	assert.Equal(t, "(missing)", weave.GetPath(&weavetest.Tx{}))
	assert.Equal(t, "asset/sign", weave.GetPath(&weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "asset/sign"}}))
}
