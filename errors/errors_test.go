package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*wrappedError)(nil),
			wantIs: true,
		},
		"field error is matched": {
			a:      ErrEmpty,
			b:      Field("Owner", ErrEmpty, "required"),
			wantIs: true,
		},
		"one of many errors is matched": {
			a:      ErrAmount,
			b:      Append(ErrEmpty, Wrap(ErrAmount, "negative")),
			wantIs: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering a duplicated code must panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "not found twice")
}

func TestWrapAttachesStackOnce(t *testing.T) {
	err := Wrap(Wrap(ErrState, "inner"), "outer")
	if st := stackTrace(err); len(st) == 0 {
		t.Fatal("stack trace expected")
	}
	if got := fmt.Sprintf("%+v", err); !strings.Contains(got, "errors_test.go") {
		t.Fatalf("want creation frame in %q", got)
	}
	if got, want := err.Error(), "outer: inner: invalid state"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := run(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"no error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrNotFound, "asset"),
			wantCode: ErrNotFound.code,
			wantLog:  "asset: not found",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("database password is 123"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib error in debug mode": {
			err:      fmt.Errorf("database password is 123"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "database password is 123",
		},
		"first error code of a collection": {
			err:      Append(ErrEmpty, ErrAmount),
			wantCode: ErrEmpty.code,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if tc.wantLog != "" && log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}
