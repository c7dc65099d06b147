package fp

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// ParseSSLv2 extracts a signature from an SSLv2 CLIENT-HELLO record,
// starting at the two-byte record length. The record must already be
// complete up to its declared length; the caller decides whether more
// bytes may still arrive. A record whose session id or challenge is cut
// off still parses, since a partial signature remains useful.
func (a *Signature) ParseSSLv2(payload []byte) error {
	a.Flags |= FlagV2

	s := cryptobyte.String(payload)
	var (
		msgLength     uint16
		msgType       uint8
		verMaj        uint8
		verMin        uint8
		cipherSpecLen uint16
		sessionIDLen  uint16
		challengeLen  uint16
	)
	if !s.ReadUint16(&msgLength) || !s.ReadUint8(&msgType) ||
		!s.ReadUint8(&verMaj) || !s.ReadUint8(&verMin) ||
		!s.ReadUint16(&cipherSpecLen) || !s.ReadUint16(&sessionIDLen) ||
		!s.ReadUint16(&challengeLen) {
		logger.Debug().Msg("sslv2: frame too short")
		return fmt.Errorf("sslv2: frame too short")
	}

	if verMin == 2 && verMaj == 0 {
		// SSLv2 is actually 0x0200 on the wire.
		a.Version = VersionSSL2
	} else {
		// Most SSLv2 hellos carry an SSLv3-style version here.
		a.Version = Version(verMaj)<<8 | Version(verMin)
	}

	if cipherSpecLen%3 != 0 {
		logger.Debug().Uint16("cipher_spec_len", cipherSpecLen).
			Msg("sslv2: cipher spec length not divisible by 3")
		return fmt.Errorf("sslv2: cipher spec length %d not divisible by 3", cipherSpecLen)
	}
	var cipherSpec cryptobyte.String
	if !s.ReadBytes((*[]byte)(&cipherSpec), int(cipherSpecLen)) {
		logger.Debug().Msg("sslv2: frame too short")
		return fmt.Errorf("sslv2: frame too short")
	}
	a.Ciphers = make(TokenList, 0, cipherSpecLen/3)
	for !cipherSpec.Empty() {
		var c uint32
		cipherSpec.ReadUint24(&c)
		a.Ciphers = append(a.Ciphers, Token(c))
	}

	// Extensions do not exist in SSLv2.
	a.Extensions = TokenList{}

	if len(s) < int(sessionIDLen)+int(challengeLen) {
		logger.Debug().Msg("sslv2: frame truncated (but valid)")
		return nil
	}
	s.Skip(int(sessionIDLen) + int(challengeLen))
	if !s.Empty() {
		logger.Debug().Int("bytes", len(s)).
			Msg("sslv2: trailing bytes after CLIENT-HELLO")
	}
	return nil
}
