package gconf

import (
	"encoding/json"
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/weavetest/assert"
)

func TestSaveLoad(t *testing.T) {
	owner := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"complete": {
			Conf: &myconfig{Owner: owner, Num: 852151421, Str: "foobar"},
		},
		"owner only": {
			Conf: &myconfig{Owner: owner},
		},
		"invalid owner cannot be saved": {
			Conf:        &myconfig{Owner: weave.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"negative number cannot be saved": {
			Conf:        &myconfig{Owner: owner, Num: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myconfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got myconfig
	err := Load(store.MemStore(), "mypkg", &got)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitConfig(t *testing.T) {
	owner := weavetest.RandomAddr(t)
	raw, err := json.Marshal(map[string]interface{}{
		"mypkg": myconfig{Owner: owner, Num: 7, Str: "seven"},
	})
	assert.Nil(t, err)

	db := store.MemStore()
	opts := weave.Options{"conf": raw}

	var conf myconfig
	assert.Nil(t, InitConfig(db, opts, "mypkg", &conf))

	var got myconfig
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, myconfig{Owner: owner, Num: 7, Str: "seven"}, got)

	err = InitConfig(db, opts, "otherpkg", &conf)
	assert.IsErr(t, errors.ErrNotFound, err)
}

type myconfig struct {
	Owner weave.Address
	Num   int64
	Str   string
}

func (c *myconfig) GetOwner() weave.Address    { return c.Owner }
func (c *myconfig) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *myconfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ weave.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Marshal() ([]byte, error)   { return json.Marshal(msg) }
func (msg *myconfigMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, msg) }
func (msg *myconfigMsg) Path() string               { return "myconfig" }
func (msg *myconfigMsg) Validate() error {
	if msg.Patch == nil {
		return nil
	}
	return msg.Patch.Validate()
}
