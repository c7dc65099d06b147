package db_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packetsight/helloprint/db"
	fp "github.com/packetsight/helloprint/fputil"
)

var testDatabase = strings.Join([]string{
	"# client signatures",
	"",
	"cl|s:!:Firefox:3.x|win,lin|3.1:2f,35:?0,a,b:",
	"cl|s:!:Opera:10.x|win|3.1:2f,35:?0,a,b:compr # trailing comment",
	"cl|g:!:Firefox::|win,lin|3.1:2f,*:*:",
	"sv|s:!:Apache:2|unix|3.1:35:*:",
	"cl|s:unix:Linux:2.6|lin|3.1:*:*:",
}, "\n")

func load(t *testing.T) db.Database {
	t.Helper()
	a, err := db.NewDatabase(strings.NewReader(testDatabase))
	assert.NoError(t, err)
	return a
}

func TestDatabaseLoad(t *testing.T) {
	a := load(t)
	// The server record is dropped, comments and blanks are skipped.
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, "Firefox 3.x", a.Records[0].FullName())
	assert.Equal(t, 3, a.Records[0].LineNo)
	assert.Equal(t, 7, a.Records[3].LineNo)
}

func TestDatabaseLoadErrors(t *testing.T) {
	var tests = []struct {
		input string
		want  string
	}{
		{"bogus", "line 1"},
		{"# fine\ncl|s:!:Firefox:3.x|win|3.1:not hex:*:", "line 2"},
		{"cl|s:!:Firefox:3.x|win|3.1:2f:*:\n\nxx|s:!:a:b|win|3.1:*:*:", "line 3"},
	}
	for _, test := range tests {
		var a db.Database
		err := a.Load(strings.NewReader(test.input))
		assert.Error(t, err, test.input)
		assert.Contains(t, err.Error(), test.want, test.input)
	}
}

func TestDatabaseLookup(t *testing.T) {
	a := load(t)
	var tests = []struct {
		name  string
		sig   string
		label string
	}{
		{"exact match", "3.1:2f,35:0,a,b:", "s:!:Firefox:3.x"},
		{"optional extension absent", "3.1:2f,35:a,b:", "s:!:Firefox:3.x"},
		{"flags differ, next record wins", "3.1:2f,35:a,b:compr", "s:!:Opera:10.x"},
		{"generic fallback", "3.1:2f,4,5:ff01:", "g:!:Firefox:"},
		{"full wildcard", "3.1:39,38:23:", "s:unix:Linux:2.6"},
	}
	for _, test := range tests {
		sig, err := fp.NewSignature(test.sig)
		assert.NoError(t, err, test.name)
		record := a.Lookup(sig)
		if assert.NotNil(t, record, test.name) {
			assert.Equal(t, test.label, record.Label, test.name)
		}
	}
}

// The first registered match wins, however specific a later record is.
func TestDatabaseLookupOrder(t *testing.T) {
	input := "cl|g:!:Any::|win|3.1:*:*:\ncl|s:!:Firefox:3.x|win|3.1:2f,35:a,b:"
	a, err := db.NewDatabase(strings.NewReader(input))
	assert.NoError(t, err)

	sig, err := fp.NewSignature("3.1:2f,35:a,b:")
	assert.NoError(t, err)
	record := a.Lookup(sig)
	if assert.NotNil(t, record) {
		assert.Equal(t, "g:!:Any:", record.Label)
	}
}

func TestDatabaseLookupMiss(t *testing.T) {
	a := load(t)
	var tests = []string{
		"3.3:2f,35:0,a,b:",      // no record for this version
		"3.1:2f,35:a,b:v2",      // no record with this flag set
		"3.1:35,2f:0,a,b:compr", // cipher order differs
	}
	for _, test := range tests {
		sig, err := fp.NewSignature(test)
		assert.NoError(t, err, test)
		assert.Nil(t, a.Lookup(sig), test)
	}
}

func TestDatabaseDump(t *testing.T) {
	input := "cl|s:!:Firefox:3.x|win,lin|3.1:2f,35:*,?23:compr\n"
	a, err := db.NewDatabase(strings.NewReader(input))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, a.Dump(&buf))
	assert.Equal(t, input, buf.String())
}
