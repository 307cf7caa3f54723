package app

import (
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
)

// ResultsFromKeys collects the keys of a query answer.
func ResultsFromKeys(models []weave.Model) *ResultSet {
	set := &ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		set.Results = append(set.Results, m.Key)
	}
	return set
}

// ResultsFromValues collects the values of a query answer.
func ResultsFromValues(models []weave.Model) *ResultSet {
	set := &ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		set.Results = append(set.Results, m.Value)
	}
	return set
}

// JoinResults pairs the keys and values of a query answer back together.
func JoinResults(keys, values *ResultSet) ([]weave.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInput, "query returned %d keys and %d values",
			len(keys.Results), len(values.Results))
	}
	models := make([]weave.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = weave.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a query answer into dest.
// An empty answer is ErrNotFound.
func UnmarshalOneResult(raw []byte, dest weave.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "query result")
	}
	if len(set.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "query returned nothing")
	}
	return dest.Unmarshal(set.Results[0])
}
