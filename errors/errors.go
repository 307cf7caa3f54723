package errors

import (
	"fmt"
	"reflect"
)

// Root errors. Every error returned by a handler wraps one of them, and
// their code is the ABCI code a client sees. Code 0 means success.
var (
	ErrInternal           = Register(1, "internal")
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrMsg                = Register(4, "invalid message")
	ErrModel              = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrImmutable          = Register(8, "cannot be modified")
	ErrEmpty              = Register(9, "value is empty")
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrAmount             = Register(12, "invalid amount")
	ErrInsufficientAmount = Register(13, "insufficient amount")
	ErrInput              = Register(14, "invalid input")
	ErrOverflow           = Register(15, "value overflow")
	ErrSchema             = Register(16, "invalid schema")

	// ErrPanic marks a recovered panic. Its message is never sent to a
	// client outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

var registered = map[uint32]*Error{}

// Register declares a root error. Extensions call it from package level
// variables. Reusing a code panics.
func Register(code uint32, desc string) *Error {
	if prev, ok := registered[code]; ok {
		panic(fmt.Sprintf("error code %d already taken by %q", code, prev.desc))
	}
	e := &Error{code: code, desc: desc}
	registered[code] = e
	return e
}

// Error is a root error with an ABCI code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string    { return e.desc }
func (e Error) ABCICode() uint32 { return e.code }

// New is a shortcut for Wrap(e, desc).
func (e *Error) New(desc string) error {
	return Wrap(e, desc)
}

// Is returns true if err is e or wraps e. A collection matches when any of
// its errors does. A nil root matches only nil errors, typed nil pointers
// included.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, inner := range u.Unpack() {
				if e.Is(inner) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

type causer interface {
	Cause() error
}

type unpacker interface {
	Unpack() []error
}
