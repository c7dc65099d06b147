package fp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	fp "github.com/packetsight/helloprint/fputil"
)

func TestTokenListParse(t *testing.T) {
	var tests = []struct {
		in  string
		out fp.TokenList
	}{
		{"", fp.TokenList(nil)},
		{"0", fp.TokenList{0}},
		{"2f", fp.TokenList{0x2f}},
		{"2f,35", fp.TokenList{0x2f, 0x35}},
		{"*", fp.TokenList{fp.TokenAny}},
		{"?a", fp.TokenList{0xa | fp.TokenOptional}},
		{"*,?23,ff01", fp.TokenList{fp.TokenAny, 0x23 | fp.TokenOptional, 0xff01}},
		{"ffffff", fp.TokenList{0xffffff}},
		{"010203", fp.TokenList{0x010203}},
	}
	for _, test := range tests {
		actual, err := fp.NewTokenList(test.in)
		assert.NoError(t, err, test.in)
		assert.Equal(t, test.out, actual, test.in)
	}
}

func TestTokenListParseErrors(t *testing.T) {
	var tests = []string{
		"g",
		"?",
		"?,a",
		",",
		"a,",
		",a",
		"a b",
		"0x2f",
		"1234567", // seven hex digits
		"-1",
		"?*",
	}
	for _, test := range tests {
		var a fp.TokenList
		assert.Error(t, a.Parse(test), test)
	}
}

func TestTokenListParseLimit(t *testing.T) {
	var a fp.TokenList
	max := strings.TrimSuffix(strings.Repeat("1,", 128), ",")
	assert.NoError(t, a.Parse(max))
	assert.Len(t, a, 128)
	assert.Error(t, a.Parse(max+",1"))
}

// Encoding a decoded canonical pattern must reproduce it exactly.
func TestTokenListRoundTrip(t *testing.T) {
	var tests = []string{
		"",
		"*",
		"0",
		"2f,35",
		"?a,b,*",
		"ffffff",
		"*,39,38,33,32,16,13,2f,a,5,4",
		"?0,ff,23,5,a,b,8,6",
	}
	for _, test := range tests {
		a, err := fp.NewTokenList(test)
		assert.NoError(t, err, test)
		assert.Equal(t, test, a.String(), test)
	}
}

func TestTokenListValues(t *testing.T) {
	a, err := fp.NewTokenList("*,?23,ff01,2f")
	assert.NoError(t, err)
	assert.Equal(t, fp.IntList{0x23, 0xff01, 0x2f}, a.Values())
}
