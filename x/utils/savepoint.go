package utils

import (
	weave "github.com/iov-one/nftsale"
)

// Savepoint runs the wrapped handler on a cache of the store. The cache is
// written back only when the handler succeeds, so a rejected sale step
// leaves no partial state behind.
//
// A new Savepoint is inactive. OnCheck and OnDeliver select the phases it
// applies to.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ weave.Decorator = Savepoint{}

// NewSavepoint returns an inactive Savepoint.
func NewSavepoint() Savepoint { return Savepoint{} }

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	var res *weave.CheckResult
	err := isolate(s.check, db, func(kv weave.KVStore) error {
		var err error
		res, err = next.Check(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	var res *weave.DeliverResult
	err := isolate(s.deliver, db, func(kv weave.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache of db when enabled and db supports caching,
// and with db itself otherwise.
func isolate(enabled bool, db weave.KVStore, fn func(weave.KVStore) error) error {
	cacheable, ok := db.(weave.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
