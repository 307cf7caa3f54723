package app

import (
	"reflect"

	weave "github.com/iov-one/nftsale"
)

// Decorators is an ordered list of decorators waiting for the handler
// they will wrap. The first decorator sees a transaction first.
type Decorators struct {
	list []weave.Decorator
}

// ChainDecorators starts a stack. Nil decorators, including typed nil
// pointers, are skipped so that optional decorators can be passed as is:
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
func ChainDecorators(ds ...weave.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a stack with ds appended. The receiver is not modified.
func (d Decorators) Chain(ds ...weave.Decorator) Decorators {
	list := make([]weave.Decorator, 0, len(d.list)+len(ds))
	list = append(list, d.list...)
	for _, dec := range ds {
		if !isNil(dec) {
			list = append(list, dec)
		}
	}
	return Decorators{list: list}
}

func isNil(d weave.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h and returns the resulting handler.
func (d Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(d.list) - 1; i >= 0; i-- {
		h = wrapped{dec: d.list[i], next: h}
	}
	return h
}

// wrapped is one decorator bound to the rest of the stack.
type wrapped struct {
	dec  weave.Decorator
	next weave.Handler
}

func (w wrapped) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return w.dec.Check(ctx, db, tx, w.next)
}

func (w wrapped) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return w.dec.Deliver(ctx, db, tx, w.next)
}
