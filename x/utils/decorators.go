package utils

import (
	"fmt"
	"time"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which ActionTagger records the message
// path of every delivered transaction.
const ActionKey = "action"

// Logging writes one log entry per transaction with its message path and
// the time spent in the wrapped handler. Rejected checks are logged at
// error level, accepted ones at debug level so the mempool stays quiet.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging { return Logging{} }

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		logTx(ctx, tx, start, "", err, true)
		return nil, err
	}
	logTx(ctx, tx, start, res.Log, nil, true)
	return res, nil
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		logTx(ctx, tx, start, "", err, false)
		return nil, err
	}
	logTx(ctx, tx, start, res.Log, nil, false)
	return res, nil
}

func logTx(ctx weave.Context, tx weave.Tx, start time.Time, text string, err error, checkOnly bool) {
	log := weave.GetLogger(ctx).With(
		"path", weave.GetPath(tx),
		"micros", int64(time.Since(start)/time.Microsecond),
	)
	if err != nil {
		log.Error(text, "err", err)
		return
	}
	if checkOnly {
		log.Debug(text)
	} else {
		log.Info(text)
	}
}

// Recovery converts a panic in the wrapped handler into ErrPanic. The
// panic value and its stack are logged before the transaction fails.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

func NewRecovery() Recovery { return Recovery{} }

func (Recovery) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (res *weave.CheckResult, err error) {
	defer catchPanic(ctx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (res *weave.DeliverResult, err error) {
	defer catchPanic(ctx, &err)
	return next.Deliver(ctx, db, tx)
}

func catchPanic(ctx weave.Context, dst *error) {
	p := recover()
	if p == nil {
		return
	}
	*dst = errors.Wrapf(errors.ErrPanic, "%v", p)
	weave.GetLogger(ctx).Error("handler panic", "err", fmt.Sprintf("%+v", *dst))
}

// ActionTagger tags every delivered transaction with its message path, so
// that clients can search the block history for deposits or transfers.
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger { return ActionTagger{} }

func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "action tag")
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
