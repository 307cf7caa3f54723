// Package assert holds the few assertions shared by the module tests. Error
// checks match registered error kinds through wrapping.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/nftsale/errors"
)

// Nil fails the test unless v is nil or a nil pointer, map, slice, chan,
// func or interface.
func Nil(t testing.TB, v interface{}) {
	t.Helper()
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		if rv.IsNil() {
			return
		}
	}
	t.Fatalf("expected nil, got %+v", v)
}

// Equal compares with reflect.DeepEqual.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Fatalf("mismatch\nwant: %T %v\n got: %T %v", want, want, got, got)
}

// Panics fails the test when fn returns normally.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		fn()
		return
	}()
	if !panicked {
		t.Fatal("expected a panic")
	}
}

// IsErr fails the test unless got is want or wraps it.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("expected error %q, got %+v", want, got)
}

// FieldError checks the errors err carries for field. With a nil want the
// field must have no error, otherwise exactly one error of kind want.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	found := errors.FieldErrors(err, field)
	if want == nil && len(found) == 0 {
		return
	}
	if want != nil && len(found) == 1 {
		if !want.Is(found[0]) {
			t.Fatalf("field %q: expected %q, got %q", field, want, found[0])
		}
		return
	}
	for i, e := range found {
		t.Logf("field %q error %d: %v", field, i, e)
	}
	if want == nil {
		t.Fatalf("field %q: expected no error, got %d", field, len(found))
		return
	}
	t.Fatalf("field %q: expected one %q error, got %d", field, want, len(found))
}
