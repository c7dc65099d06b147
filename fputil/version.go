package fp

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a declared SSL/TLS protocol version, major in the high
// byte and minor in the low byte.
type Version uint16

// Wire identities of the versions seen in practice. SSLv2 is 0x0200 on
// the wire even though most SSLv2 hellos carry an SSLv3-style version
// in their header.
const (
	VersionSSL2  Version = 0x0200
	VersionSSL3  Version = 0x0300
	VersionTLS10 Version = 0x0301
	VersionTLS11 Version = 0x0302
	VersionTLS12 Version = 0x0303
	VersionTLS13 Version = 0x0304
)

// NewVersion parses a version from a string.
func NewVersion(s string) (Version, error) {
	var a Version
	err := a.Parse(s)
	return a, err
}

// Parse a "major.minor" decimal version.
func (a *Version) Parse(s string) error {
	maj, min, ok := strings.Cut(s, ".")
	if !ok {
		return fmt.Errorf("invalid version: '%s'", s)
	}
	hi, err := strconv.ParseUint(maj, 10, 8)
	if err != nil {
		return fmt.Errorf("invalid version: '%s'", s)
	}
	lo, err := strconv.ParseUint(min, 10, 8)
	if err != nil {
		return fmt.Errorf("invalid version: '%s'", s)
	}
	*a = Version(hi)<<8 | Version(lo)
	return nil
}

// String returns the "major.minor" form of the version.
func (a Version) String() string {
	return fmt.Sprintf("%d.%d", a>>8, a&0xff)
}
