package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If any of the provided errors is a collection, its elements are flattened
// into the result. The ABCI code of the result is the code of the first
// error.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (errs multiErr) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = fmt.Sprintf("* %s", e)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(errs), strings.Join(msgs, "\n\t"))
}

// ABCICode returns the code of the first error in the collection.
func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}

// Unpack returns all errors that this collection is made of.
func (errs multiErr) Unpack() []error {
	return errs
}
