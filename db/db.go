package db

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	fp "github.com/packetsight/helloprint/fputil"
)

// Load-time diagnostics are debug-only; the package stays quiet unless
// a logger is installed.
var logger = zerolog.Nop()

// SetLogger installs the logger used for load-time diagnostics.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// A Database is an insertion-ordered collection of signature records.
// Insertion order is lookup priority: the first structural match wins.
// The database is built once before any flow is classified and is
// read-only afterwards, so lookups need no locking.
type Database struct {
	Records []Record
}

// NewDatabase returns a new Database loaded from input.
func NewDatabase(input io.Reader) (Database, error) {
	a := Database{Records: []Record{}}
	err := a.Load(input)
	return a, err
}

// Load records from input, one per line; '#' starts a comment and blank
// lines are skipped. A malformed line is a fatal configuration error
// carrying its line number: signatures are operator-curated startup
// input, not runtime data.
func (a *Database) Load(input io.Reader) error {
	scanner := bufio.NewScanner(input)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexRune(line, '#'); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var record Record
		if err := record.Parse(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		record.LineNo = lineNo
		a.Register(record)
	}
	return scanner.Err()
}

// Register appends a record to the database. Only client-direction
// records are kept: the matcher has no server-side logic, so anything
// else is dropped, and the drop is logged rather than silent.
func (a *Database) Register(record Record) {
	if record.Direction != DirectionClient {
		logger.Debug().Int("line", record.LineNo).Str("label", record.Label).
			Msg("db: dropping non-client signature")
		return
	}
	a.Records = append(a.Records, record)
}

// Len returns the number of registered records.
func (a *Database) Len() int {
	return len(a.Records)
}

// Lookup returns the first record matching the observed signature, or
// nil if none does. Version and flags must match exactly; the extension
// and cipher patterns are applied in that order, short-circuiting on
// the first failing condition.
func (a *Database) Lookup(sig fp.Signature) *Record {
	for i := range a.Records {
		rs := &a.Records[i].Signature
		if rs.Version != sig.Version {
			continue
		}
		if rs.Flags != sig.Flags {
			continue
		}
		if !rs.Extensions.Match(sig.Extensions) {
			continue
		}
		if !rs.Ciphers.Match(sig.Ciphers) {
			continue
		}
		return &a.Records[i]
	}
	return nil
}

// Dump writes every record back out in its textual form.
func (a Database) Dump(output io.Writer) error {
	for _, record := range a.Records {
		if _, err := fmt.Fprintln(output, record); err != nil {
			return err
		}
	}
	return nil
}
