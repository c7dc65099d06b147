package fp

import (
	"bytes"
	"fmt"
	"strings"
)

// Signature and pattern strings have the format
//	<version>:<ciphers>:<extensions>:<flags>
// where <version> is "major.minor" in decimal, <ciphers> and
// <extensions> use the token grammar of TokenList.Parse, and <flags> is
// a comma-separated subset of {compr, v2, ver, time, stime}.

const signatureFieldCount = 4

// A Signature holds the characteristics extracted from one ClientHello,
// or a registered pattern those characteristics are compared against.
// Pattern signatures may carry wildcard and optional tokens in their
// cipher and extension lists.
type Signature struct {
	Version    Version
	Flags      Flags
	Ciphers    TokenList
	Extensions TokenList

	// RemoteTime is the client-declared clock in seconds and Drift the
	// local-minus-remote difference. Both are only populated by the
	// SSLv3/TLS parser.
	RemoteTime uint32
	Drift      int32
}

// NewSignature parses a pattern signature from its textual form.
func NewSignature(s string) (Signature, error) {
	var a Signature
	err := a.Parse(s)
	return a, err
}

// Parse a signature from a string and return an error on failure.
func (a *Signature) Parse(s string) error {
	fields := strings.Split(s, ":")
	if len(fields) != signatureFieldCount {
		return fmt.Errorf("bad signature field count '%s': exp %d, got %d", s, signatureFieldCount, len(fields))
	}
	if err := a.Version.Parse(fields[0]); err != nil {
		return err
	}
	if err := a.Ciphers.Parse(fields[1]); err != nil {
		return err
	}
	if err := a.Extensions.Parse(fields[2]); err != nil {
		return err
	}
	if err := a.Flags.Parse(fields[3]); err != nil {
		return err
	}
	return nil
}

// String renders the signature in its textual form, used both for raw
// observed signatures and registered patterns so operators can diff the
// two. Extension type 0 is displayed with a '?' prefix: server name
// indication comes and goes with client configuration.
func (a Signature) String() string {
	var buf bytes.Buffer
	buf.WriteString(a.Version.String())
	buf.WriteString(":")
	buf.WriteString(a.Ciphers.String())
	buf.WriteString(":")
	for idx, t := range a.Extensions {
		if idx != 0 {
			buf.WriteString(",")
		}
		switch {
		case t == TokenAny:
			buf.WriteString("*")
		case t&TokenOptional != 0 || t == 0:
			fmt.Fprintf(&buf, "?%x", uint32(t&TokenValueMask))
		default:
			fmt.Fprintf(&buf, "%x", uint32(t&TokenValueMask))
		}
	}
	buf.WriteString(":")
	buf.WriteString(a.Flags.String())
	return buf.String()
}
