package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Wrap adds context to err. A stack trace is recorded by the innermost
// wrap only. Wrapping nil returns nil.
func Wrap(err error, desc string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: desc, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string { return e.msg + ": " + e.parent.Error() }
func (e *wrappedError) Cause() error  { return e.parent }

// Format prints the message for %s. %v adds the file and line of the
// innermost wrap and %+v the whole stack.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	io.WriteString(s, e.Error())
	if verb != 'v' {
		return
	}
	st := stackTrace(e)
	switch {
	case len(st) == 0:
	case s.Flag('+'):
		fmt.Fprintf(s, "%+v", st)
	default:
		file, line := frameLocation(st[0])
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}

func stackTrace(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if t, ok := err.(tracer); ok {
			return t.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// frameLocation returns the file of f relative to github.com and its line.
func frameLocation(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	file, line := fn.FileLine(pc)
	if i := strings.Index(file, "github.com/"); i >= 0 {
		file = file[i+len("github.com/"):]
	}
	return file, line
}
