package weave

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/iov-one/nftsale/crypto/bech32"
	"github.com/iov-one/nftsale/errors"
)

var (
	// AddressLength is the size of every address. It can only be changed
	// before the first address is derived.
	AddressLength = 20

	// AddressPrefix is the human readable part of bech32 addresses.
	AddressPrefix = "sale"
)

// Address identifies a signer, a custodian or a wallet owner. It is a
// truncated sha256 of a Condition.
type Address []byte

// NewAddress derives the address of data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// Validate fails with ErrInput unless the address has AddressLength bytes.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address of %d bytes, want %d", len(a), AddressLength)
	}
	return nil
}

// String returns the upper case hex form.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the address encoded with AddressPrefix.
func (a Address) Bech32() (string, error) {
	return bech32.Encode(AddressPrefix, a)
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "address: %s", err)
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress reads an address written as hex, as "cond:<condition>" or
// as "bech32:<bech32>". An empty value is a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "hex address: %s", err)
		}
		addr = raw
	case "bech32":
		_, raw, err := bech32.Decode(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
		}
		addr = raw
	case "cond":
		var c Condition
		if err := c.parseText(value); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		addr = c.Address()
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// AddressSet is a list of distinct addresses. Order carries no meaning.
type AddressSet []Address

// Contains returns true if a is in the set.
func (s AddressSet) Contains(a Address) bool {
	for _, x := range s {
		if x.Equals(a) {
			return true
		}
	}
	return false
}

// Add appends a unless it is present. The flag reports a change.
func (s AddressSet) Add(a Address) (AddressSet, bool) {
	if s.Contains(a) {
		return s, false
	}
	return append(s, a), true
}

// Remove returns a new set without a. The flag reports a change and the
// receiver is never modified.
func (s AddressSet) Remove(a Address) (AddressSet, bool) {
	for i, x := range s {
		if !x.Equals(a) {
			continue
		}
		out := make(AddressSet, 0, len(s)-1)
		out = append(out, s[:i]...)
		return append(out, s[i+1:]...), true
	}
	return s, false
}

// Validate reports every malformed or repeated address as a field error
// keyed by its position.
func (s AddressSet) Validate() error {
	var errs error
	for i, a := range s {
		field := strconv.Itoa(i)
		if err := a.Validate(); err != nil {
			errs = errors.AppendField(errs, field, err)
		} else if s[:i].Contains(a) {
			errs = errors.AppendField(errs, field, errors.Wrap(errors.ErrDuplicate, "address"))
		}
	}
	return errs
}
