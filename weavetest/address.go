package weavetest

import (
	"crypto/rand"
	"testing"

	weave "github.com/iov-one/nftsale"
)

// ParseAddress takes an address in any of the human readable formats
// accepted by weave.ParseAddress and fails the test on error.
func ParseAddress(t testing.TB, encodedAddress string) weave.Address {
	t.Helper()

	addr, err := weave.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) weave.Address {
	t.Helper()

	raw := make([]byte, weave.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := weave.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not valid: %s", err)
	}
	return a
}
