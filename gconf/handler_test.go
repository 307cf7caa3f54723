package gconf

import (
	"context"
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/store"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/weavetest/assert"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := weavetest.NewCondition()
	admin := weavetest.NewCondition()

	cases := map[string]struct {
		// Init is the initial state of the configuration, nil for none.
		Init           *myconfig
		InitAdmin      func(weave.ReadOnlyKVStore) (weave.Address, error)
		Msg            weave.Msg
		MsgConditions  []weave.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantConfig     *myconfig
	}{
		"success": {
			Init:          &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg:           &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!"}},
			MsgConditions: []weave.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!"},
		},
		"message must be signed by the configuration owner": {
			Init:           &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg:            &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Num: 1}},
			MsgConditions:  []weave.Condition{weavetest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init:          &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg:           &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Str: "baz"}},
			MsgConditions: []weave.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 5125, Str: "baz"},
		},
		"missing patch is rejected": {
			Init:           &myconfig{Owner: cond.Address()},
			Msg:            &myconfigMsg{},
			MsgConditions:  []weave.Condition{cond},
			WantCheckErr:   errors.ErrState,
			WantDeliverErr: errors.ErrState,
		},
		"missing configuration without init admin": {
			Msg:            &myconfigMsg{Patch: &myconfig{Owner: cond.Address()}},
			MsgConditions:  []weave.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"init admin can create a missing configuration": {
			InitAdmin:     func(weave.ReadOnlyKVStore) (weave.Address, error) { return admin.Address(), nil },
			Msg:           &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Num: 2}},
			MsgConditions: []weave.Condition{admin},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 2},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			var c myconfig
			auth := &weavetest.CtxAuth{Key: "auth"}
			handler := NewUpdateConfigurationHandler("mypkg", &c, auth, tc.InitAdmin)

			ctx := weave.WithHeight(context.Background(), 999)
			ctx = weave.WithChainID(ctx, "mychain-123")
			ctx = auth.SetConditions(ctx, tc.MsgConditions...)

			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := handler.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := handler.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				if err := Load(db, "mypkg", &got); err != nil {
					t.Fatalf("cannot load configuration from the database: %s", err)
				}
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}
