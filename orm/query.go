package orm

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// RegisterQuery serves raw store reads under "/". Keys are used as given,
// with no bucket prefix.
func RegisterQuery(qr weave.QueryRouter) {
	qr.Register("/", storeQuery{})
}

type storeQuery struct{}

func (storeQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		if len(data) == 0 {
			return nil, nil
		}
		if raw := db.Get(data); raw != nil {
			return []weave.Model{weave.Pair(data, raw)}, nil
		}
		return nil, nil
	case weave.PrefixQueryMod:
		return scanPrefix(db, data), nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
}

// ConsumeIterator drains the iterator into a slice and closes it.
func ConsumeIterator(it weave.Iterator) []weave.Model {
	defer it.Close()
	res := []weave.Model{}
	for ; it.Valid(); it.Next() {
		res = append(res, weave.Pair(it.Key(), it.Value()))
	}
	return res
}

func scanPrefix(db weave.ReadOnlyKVStore, prefix []byte) []weave.Model {
	start, end := prefixRange(prefix)
	return ConsumeIterator(db.Iterator(start, end))
}

// prefixRange returns the iteration bounds of all keys starting with
// prefix. The end is nil when no key sorts after the prefix range.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := append([]byte(nil), prefix...)
	for len(end) > 0 {
		last := len(end) - 1
		if end[last] != 0xFF {
			end[last]++
			return prefix, end
		}
		end = end[:last]
	}
	return prefix, nil
}
