package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches err to a model field, so that a client can tell which
// part of a sale message was rejected. Nested fields use dot notation and
// list elements their index, as in "Quorum.Required" or "Members.2".
// A nil err returns nil.
func Field(name string, err error, desc string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		desc = fmt.Sprintf(desc, args...)
	}
	return &fieldError{field: name, desc: desc, parent: err}
}

// AppendField adds the field error of err, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
	}
	return fmt.Sprintf("field %q: %s", e.field, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors returns the errors attached to the named field, searching
// collections and wrapped errors.
func FieldErrors(err error, name string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(interface{ Field() string }); ok && f.Field() == name {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, inner := range u.Unpack() {
				found = append(found, FieldErrors(inner, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
