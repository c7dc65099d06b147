package fp

import (
	"bytes"
	"fmt"
	"strings"
)

// Flags is the bitset of signature quirks that must match exactly
// between an observed hello and a registered pattern.
type Flags uint32

const (
	// FlagCompr is set when the client offers deflate compression.
	FlagCompr Flags = 1 << iota

	// FlagV2 is set for SSLv2 CLIENT-HELLO messages.
	FlagV2

	// FlagVer is set when the declared version differs from the record
	// layer version.
	FlagVer

	// FlagTime is set when the client clock is more than five years off.
	FlagTime

	// FlagStime is set when the client clock looks boot-relative.
	FlagStime
)

// flagNames is the flag vocabulary in declaration order, which is also
// the serialization order.
var flagNames = []struct {
	name  string
	value Flags
}{
	{"compr", FlagCompr},
	{"v2", FlagV2},
	{"ver", FlagVer},
	{"time", FlagTime},
	{"stime", FlagStime},
}

// NewFlags parses a flag set from a string.
func NewFlags(s string) (Flags, error) {
	var a Flags
	err := a.Parse(s)
	return a, err
}

// Parse a comma-separated flag list drawn from the fixed vocabulary.
func (a *Flags) Parse(s string) error {
	*a = 0
	if len(s) == 0 {
		return nil
	}
	for _, name := range strings.Split(s, ",") {
		matched := false
		for _, f := range flagNames {
			if name == f.name {
				*a |= f.value
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("unrecognized flag: '%s'", name)
		}
	}
	return nil
}

// String renders the set flags comma-joined in vocabulary order.
func (a Flags) String() string {
	var buf bytes.Buffer
	for _, f := range flagNames {
		if a&f.value == 0 {
			continue
		}
		if buf.Len() != 0 {
			buf.WriteString(",")
		}
		buf.WriteString(f.name)
	}
	return buf.String()
}
