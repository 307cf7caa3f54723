package weave

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/nftsale/errors"
)

// conditionFormat matches "<extension>/<type>/<data>". Data is binary and
// may contain a newline, hence the s flag.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition names what may authorize an action, for example a public key
// signature ("sigs/ed25519/<pubkey hash>"). Signers, custodians and wallet
// owners are the addresses of conditions.
type Condition []byte

// NewCondition builds the condition of an extension.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext+"/"+typ+"/"...)
	return append(c, data...)
}

// Parse splits the condition into its extension, type and data.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "malformed condition %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

// Validate fails with ErrInput on a malformed condition.
func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address returns the address controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String prints the data part hex encoded, as "sigs/ed25519/CAFE".
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("malformed condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "condition: %s", err)
	}
	return c.parseText(s)
}

// parseText reads the String form. An empty text is a nil condition.
func (c *Condition) parseText(s string) error {
	if s == "" {
		*c = nil
		return nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return errors.Wrapf(errors.ErrInput, "condition %q is not ext/type/data", s)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	*c = NewCondition(parts[0], parts[1], data)
	return nil
}
