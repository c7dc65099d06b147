package fp

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/crypto/cryptobyte"
)

const (
	// msgClientHello is the handshake message type accepted as the
	// first message of a flow.
	msgClientHello = 1

	yearSeconds = 365 * 24 * 60 * 60
)

// ParseSSLv3 extracts a signature from a single SSLv3/TLS handshake
// fragment. recordVersion is the record layer version the fragment
// arrived under and localTime the client's packet timestamp, used to
// compute clock drift. A hello cut off at a packet boundary anywhere
// past the cipher suite length still parses; the signature then carries
// whatever fields were reached.
func (a *Signature) ParseSSLv3(fragment []byte, recordVersion Version, localTime time.Time) error {
	s := cryptobyte.String(fragment)
	var (
		msgType uint8
		msgLen  uint32
	)
	if !s.ReadUint8(&msgType) || !s.ReadUint24(&msgLen) {
		logger.Debug().Msg("sslv3: fragment too short")
		return fmt.Errorf("sslv3: fragment too short")
	}

	// The message may legally continue in the next record, but fragment
	// coalescing is not implemented here.
	if int(msgLen) > len(s) {
		logger.Debug().Int("bytes", int(msgLen)-len(s)).
			Msg("sslv3: fragment coalescing not supported")
		return fmt.Errorf("sslv3: fragment coalescing not supported")
	}
	if msgType != msgClientHello {
		// Handshake messages must be sent in protocol order, so the
		// first message of a flow can only be a ClientHello.
		logger.Debug().Uint8("message_type", msgType).Uint32("bytes", msgLen).
			Msg("sslv3: first message type not supported")
		return fmt.Errorf("sslv3: unsupported first message type 0x%02x", msgType)
	}
	var body cryptobyte.String
	s.ReadBytes((*[]byte)(&body), int(msgLen))

	// Version (2B) + time (4B) + random (28B) + session id length (1B).
	if len(body) < 2+4+28+1 {
		logger.Debug().Msg("sslv3: packet truncated")
		return fmt.Errorf("sslv3: packet truncated")
	}

	var declared uint16
	body.ReadUint16(&declared)
	a.Version = Version(declared)
	if a.Version != recordVersion {
		a.Flags |= FlagVer
	}

	body.ReadUint32(&a.RemoteTime)
	a.Drift = int32(uint32(localTime.Unix()) - a.RemoteTime)
	if a.RemoteTime < yearSeconds {
		// Some legacy clients fill this field with time since boot.
		a.Flags |= FlagStime
	} else if abs32(a.Drift) > 5*yearSeconds {
		// More than five years off - most likely random.
		a.Flags |= FlagTime
		logger.Debug().Int32("drift", a.Drift).Uint32("remote_time", a.RemoteTime).
			Msg("sslv3: client clock looks wrong")
	}

	var random []byte
	body.ReadBytes(&random, 28)
	for i := 0; i+2 <= len(random); i += 2 {
		if w := binary.BigEndian.Uint16(random[i:]); w == 0x0000 || w == 0xffff {
			logger.Debug().Uint16("word", w).Int("offset", i).
				Msg("sslv3: suspicious word in allegedly random blob")
			break
		}
	}

	var sessionIDLen uint8
	body.ReadUint8(&sessionIDLen)
	if len(body) < int(sessionIDLen)+2 {
		logger.Debug().Msg("sslv3: packet truncated")
		return fmt.Errorf("sslv3: packet truncated")
	}
	body.Skip(int(sessionIDLen))

	var cipherSuitesLen uint16
	body.ReadUint16(&cipherSuitesLen)
	if cipherSuitesLen%2 != 0 {
		logger.Debug().Uint16("cipher_suites_len", cipherSuitesLen).
			Msg("sslv3: cipher suites length not even")
		return fmt.Errorf("sslv3: cipher suites length %d not even", cipherSuitesLen)
	}
	var cipherSuites cryptobyte.String
	if !body.ReadBytes((*[]byte)(&cipherSuites), int(cipherSuitesLen)) {
		logger.Debug().Msg("sslv3: packet truncated")
		return fmt.Errorf("sslv3: packet truncated")
	}
	a.Ciphers = make(TokenList, 0, cipherSuitesLen/2)
	for !cipherSuites.Empty() {
		var c uint16
		cipherSuites.ReadUint16(&c)
		a.Ciphers = append(a.Ciphers, Token(c))
	}
	a.Extensions = TokenList{}

	// Everything below may be cut off at a packet boundary.
	var compressionLen uint8
	if !body.ReadUint8(&compressionLen) {
		logger.Debug().Msg("sslv3: packet truncated (but valid)")
		return nil
	}
	var compression cryptobyte.String
	if !body.ReadBytes((*[]byte)(&compression), int(compressionLen)) {
		logger.Debug().Msg("sslv3: packet truncated (but valid)")
		return nil
	}
	for !compression.Empty() {
		var m uint8
		compression.ReadUint8(&m)
		if m == 1 {
			a.Flags |= FlagCompr
		}
	}

	var extensionsLen uint16
	if !body.ReadUint16(&extensionsLen) {
		logger.Debug().Msg("sslv3: packet truncated (but valid)")
		return nil
	}
	ext := cryptobyte.String(body)
	if int(extensionsLen) > len(body) {
		// The declared block overruns the message; keep whatever
		// extensions made it into this packet.
		logger.Debug().Msg("sslv3: packet truncated (but valid)")
		body = nil
	} else {
		ext = ext[:extensionsLen]
		body.Skip(int(extensionsLen))
	}
	for len(ext) >= 4 {
		var extType, extLen uint16
		ext.ReadUint16(&extType)
		ext.ReadUint16(&extLen)
		a.Extensions = append(a.Extensions, Token(extType))
		if !ext.Skip(int(extLen)) {
			// Declared extension length overruns the block; the type
			// still counts, the rest of the scan does not.
			logger.Debug().Int("bytes", int(extLen)-len(ext)).
				Msg("sslv3: malformed extensions")
			return nil
		}
	}
	if !ext.Empty() {
		logger.Debug().Int("bytes", len(ext)).Msg("sslv3: malformed extensions")
	}
	if !body.Empty() {
		logger.Debug().Int("bytes", len(body)).
			Msg("sslv3: bytes remaining after extensions")
	}
	if !s.Empty() {
		logger.Debug().Int("bytes", len(s)).
			Msg("sslv3: bytes remaining after ClientHello message")
	}
	return nil
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
