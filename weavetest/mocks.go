package weavetest

import weave "github.com/iov-one/nftsale"

// calls counts the invocations of a mock. Failed calls are counted too.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a weave.Handler that returns the configured result, or the
// configured error when one is set.
type Handler struct {
	calls

	CheckResult   weave.CheckResult
	CheckErr      error
	DeliverResult weave.DeliverResult
	DeliverErr    error
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler stores Value under Key before failing with Err. A nil Err
// makes it succeed.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ weave.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.CheckResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &weave.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.DeliverResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &weave.DeliverResult{}, nil
}

// Decorator fails with CheckErr or DeliverErr when set and passes the
// transaction on otherwise.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate puts d in front of h.
func Decorate(h weave.Handler, d weave.Decorator) weave.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next weave.Handler
	dec  weave.Decorator
}

func (d decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
