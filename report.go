package helloprint

import "github.com/packetsight/helloprint/db"

// EventSSLRequest names the observation emitted once per classified
// client-direction flow.
const EventSSLRequest = "ssl request"

// A Report is the observation payload for one classified flow.
type Report struct {

	// App is the matched application or operating system name, with
	// flavor, or empty when nothing in the database matched.
	App string

	// MatchSig is the matched pattern in its textual form, empty when
	// nothing matched.
	MatchSig string

	// Drift is the local-minus-remote clock difference in seconds. It
	// is only meaningful when DriftValid is set; a flow flagged with a
	// time anomaly reports no drift.
	Drift      int32
	DriftValid bool

	// RawSig is the observed signature in its textual form, always
	// present.
	RawSig string

	// Matched points at the database record behind App and MatchSig, if
	// any.
	Matched *db.Record
}

// A Sink receives observations from the processor.
type Sink interface {
	SSLRequest(Report)
}
