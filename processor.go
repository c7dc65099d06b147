// Package helloprint passively fingerprints SSL/TLS clients from the
// first bytes of a connection, without active probing, and matches the
// extracted characteristics against a database of known client
// signatures.
package helloprint

import (
	"encoding/binary"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/packetsight/helloprint/db"
	fp "github.com/packetsight/helloprint/fputil"
	"github.com/packetsight/helloprint/loader"
)

// DefaultMaxFlowData bounds the bytes buffered per flow before the flow
// is given up on. It keeps per-flow memory fixed no matter what the
// client sends.
const DefaultMaxFlowData = 8192

const (
	recordHeaderLen = 5

	// ssl2MinRecordLen is the CLIENT-HELLO header minus the record
	// length field itself.
	ssl2MinRecordLen = 9

	recSSL3Handshake = 0x16
	msgClientHello   = 1
)

var logger = zerolog.Nop()

// SetLogger installs the logger used for classification diagnostics,
// here and in the fputil and db packages.
func SetLogger(l zerolog.Logger) {
	logger = l
	fp.SetLogger(l)
	db.SetLogger(l)
}

// FlowState is the classification state of one flow.
type FlowState int8

const (
	// FlowNotSSL is terminal: the flow does not carry SSL.
	FlowNotSSL FlowState = -1

	// FlowUndetermined means no decision has been made yet.
	FlowUndetermined FlowState = 0

	// FlowSSL is terminal: a ClientHello was extracted.
	FlowSSL FlowState = 1
)

// A Flow holds the per-flow state the fingerprinter needs between
// invocations: the accumulated client-to-server bytes, the client's
// most recent packet timestamp, and the resolution state. A Flow is
// owned by the caller's connection bookkeeping and must not be shared
// across flows.
type Flow struct {
	Request  []byte
	LastSeen time.Time

	state FlowState
}

// Append adds newly arrived client-to-server bytes, seen at the given
// client timestamp.
func (f *Flow) Append(data []byte, seen time.Time) {
	f.Request = append(f.Request, data...)
	f.LastSeen = seen
}

// State returns the flow's classification state.
func (f *Flow) State() FlowState {
	return f.state
}

// A Config carries the information needed to initialize a Processor:
// where the signature database lives and how to fetch it, the per-flow
// byte cap, and where observations go.
type Config struct {
	SignatureFileName string
	Loader            loader.Loader // nil reads straight from disk
	MaxFlowData       int           // 0 means DefaultMaxFlowData
	Sink              Sink          // nil discards observations
}

// A Processor classifies flows against a signature database loaded once
// at startup. It is single-threaded and synchronous: each invocation
// examines one flow's buffer to completion before returning.
type Processor struct {
	Database    db.Database
	MaxFlowData int
	Sink        Sink
}

// NewProcessor returns a new Processor initialized from the config.
func NewProcessor(config Config) (Processor, error) {
	a := Processor{MaxFlowData: config.MaxFlowData, Sink: config.Sink}
	input, err := loadFile(config.SignatureFileName, config.Loader)
	if err != nil {
		return a, err
	}
	defer input.Close()
	a.Database, err = db.NewDatabase(input)
	return a, err
}

func loadFile(fileName string, dbReader loader.Loader) (io.ReadCloser, error) {
	if dbReader == nil {
		return os.Open(fileName)
	}
	return dbReader.LoadFile(fileName)
}

// Process examines the flow's buffered request bytes and returns true
// when the classification is still undecided and more input could help;
// the caller should then invoke it again once more bytes arrive.
// Terminal decisions stick: further invocations return false
// immediately. A flow that reaches its byte cap without classifying is
// resolved as not SSL.
func (a *Processor) Process(f *Flow, toServer bool) bool {
	// Already decided this flow?
	if f.state != FlowUndetermined {
		return false
	}

	// Tracking requests only; responses are a placeholder for now.
	if !toServer {
		return false
	}

	maxFlowData := a.MaxFlowData
	if maxFlowData <= 0 {
		maxFlowData = DefaultMaxFlowData
	}
	needMore := func() bool {
		if len(f.Request) < maxFlowData {
			return true
		}
		f.state = FlowNotSSL
		return false
	}

	// An SSLv3 record header is 5 bytes and an SSLv2 CLIENT-HELLO
	// header 11; the top 6 bytes are enough to guess the protocol.
	if len(f.Request) < 6 {
		return needMore()
	}

	msgLength := binary.BigEndian.Uint16(f.Request[0:2])
	fragmentLen := binary.BigEndian.Uint16(f.Request[3:5])

	var sig fp.Signature

	switch {
	case msgLength&0x8000 != 0 &&
		msgLength&^0x8000 >= ssl2MinRecordLen &&
		f.Request[2] == msgClientHello &&
		(f.Request[3] == 3 && f.Request[4] < 4 ||
			f.Request[4] == 2 && f.Request[3] == 0):
		// SSLv2: most significant bit of the record length set, a
		// plausible length, a CLIENT-HELLO message type, and a sane
		// version field.
		msgLength &^= 0x8000
		if len(f.Request) < int(msgLength)+2 {
			return needMore()
		}
		if err := sig.ParseSSLv2(f.Request[:int(msgLength)+2]); err != nil {
			logger.Debug().Err(err).Msg("does not look like SSLv2 nor SSLv3")
			f.state = FlowNotSSL
			return false
		}

	case f.Request[0] == recSSL3Handshake &&
		f.Request[1] == 3 && f.Request[2] < 4 &&
		fragmentLen > 3 && fragmentLen < 1<<14 &&
		f.Request[5] == msgClientHello:
		// SSLv3/TLS: a handshake record under version 3.0-3.3, a
		// fragment length the rfc allows, and a leading ClientHello.
		if len(f.Request) < recordHeaderLen+int(fragmentLen) {
			return needMore()
		}
		recordVersion := fp.Version(f.Request[1])<<8 | fp.Version(f.Request[2])
		fragment := f.Request[recordHeaderLen : recordHeaderLen+int(fragmentLen)]
		if err := sig.ParseSSLv3(fragment, recordVersion, f.LastSeen); err != nil {
			logger.Debug().Err(err).Msg("does not look like SSLv2 nor SSLv3")
			f.state = FlowNotSSL
			return false
		}

	default:
		logger.Debug().Msg("does not look like SSLv2 nor SSLv3")
		f.state = FlowNotSSL
		return false
	}

	f.state = FlowSSL
	logger.Debug().Time("client_time", f.LastSeen).Str("raw_sig", sig.String()).
		Msg("classified ssl request")
	a.observe(&sig, toServer)
	return false
}

// observe runs the database lookup and hands the observation to the
// sink.
func (a *Processor) observe(sig *fp.Signature, toServer bool) {
	var matched *db.Record
	if toServer {
		matched = a.Database.Lookup(*sig)
	}

	r := Report{RawSig: sig.String()}
	if matched != nil {
		r.Matched = matched
		r.App = matched.FullName()
		r.MatchSig = matched.Signature.String()
	}
	if sig.Flags&(fp.FlagTime|fp.FlagStime) == 0 {
		r.Drift = sig.Drift
		r.DriftValid = true
	}
	if a.Sink != nil {
		a.Sink.SSLRequest(r)
	}
}
