package fp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// A Token is one entry of a cipher-suite or extension sequence. The low
// 24 bits carry the cipher-suite or extension-type value; pattern tokens
// may additionally carry the optional bit or be the wildcard.
type Token uint32

const (
	// TokenValueMask selects the 24-bit value of a token.
	TokenValueMask Token = 0xffffff

	// TokenOptional marks a pattern token that may be absent from the
	// observed sequence.
	TokenOptional Token = 1 << 24

	// TokenAny is the wildcard pattern token, standing in for any run of
	// observed tokens.
	TokenAny Token = 1 << 25
)

// maxTokens bounds the entries in one pattern. It is a sanity bound on
// signature complexity, not a buffer to grow.
const maxTokens = 128

// A TokenList is an ordered cipher-suite or extension sequence. Lists
// parsed from the wire hold plain values only; registered patterns may
// also hold wildcard and optional tokens.
type TokenList []Token

// NewTokenList returns a token list parsed from a string.
func NewTokenList(s string) (TokenList, error) {
	var a TokenList
	err := a.Parse(s)
	return a, err
}

// Parse a comma-separated token list: '*' for the wildcard, '?'
// directly followed by hex for an optional value, or one to six hex
// digits for an exact value. Values are masked to 24 bits. Signatures
// are operator-curated startup input, so anything else is an error.
func (a *TokenList) Parse(s string) error {
	*a = nil
	if len(s) == 0 {
		return nil
	}
	split := strings.Split(s, ",")
	if len(split) > maxTokens {
		return fmt.Errorf("too many ciphers or extensions: %d", len(split))
	}
	for _, v := range split {
		if v == "*" {
			*a = append(*a, TokenAny)
			continue
		}
		var optional Token
		if strings.HasPrefix(v, "?") {
			optional = TokenOptional
			v = v[1:]
		}
		if len(v) == 0 || len(v) > 6 {
			return fmt.Errorf("invalid token: '%s'", v)
		}
		elem, err := strconv.ParseUint(v, 16, 32)
		if err != nil {
			return fmt.Errorf("invalid token: '%s'", v)
		}
		*a = append(*a, Token(elem)&TokenValueMask|optional)
	}
	return nil
}

// String renders the list in canonical form: lowercase hex values, '?'
// before optional values, '*' for the wildcard.
func (a TokenList) String() string {
	var buf bytes.Buffer
	for idx, t := range a {
		if idx != 0 {
			buf.WriteString(",")
		}
		switch {
		case t == TokenAny:
			buf.WriteString("*")
		case t&TokenOptional != 0:
			fmt.Fprintf(&buf, "?%x", uint32(t&TokenValueMask))
		default:
			fmt.Fprintf(&buf, "%x", uint32(t&TokenValueMask))
		}
	}
	return buf.String()
}

// Equals returns true if a and b are equal.
func (a TokenList) Equals(b TokenList) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx] != b[idx] {
			return false
		}
	}
	return true
}

// Values returns the 24-bit values of all non-wildcard tokens.
func (a TokenList) Values() IntList {
	var list IntList
	for _, t := range a {
		if t == TokenAny {
			continue
		}
		list = append(list, int(t&TokenValueMask))
	}
	return list
}
