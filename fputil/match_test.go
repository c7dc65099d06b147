package fp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	fp "github.com/packetsight/helloprint/fputil"
)

func tokens(t *testing.T, s string) fp.TokenList {
	t.Helper()
	a, err := fp.NewTokenList(s)
	assert.NoError(t, err, s)
	return a
}

func TestMatchReflexive(t *testing.T) {
	var tests = []string{
		"",
		"a",
		"2f,35",
		"39,38,35,33,32,2f,a,5,4",
	}
	for _, test := range tests {
		concrete := tokens(t, test)
		assert.True(t, concrete.Match(concrete), test)
	}
}

func TestMatchWildcardAbsorbsEverything(t *testing.T) {
	pattern := tokens(t, "*")
	for _, test := range []string{"", "a", "a,b", "2f,35,a,5,4"} {
		assert.True(t, pattern.Match(tokens(t, test)), test)
	}
}

func TestMatchOptionalAbsent(t *testing.T) {
	pattern := tokens(t, "?a")
	var tests = []struct {
		concrete string
		out      bool
	}{
		{"", true},
		{"a", true},
		// An unfulfilled optional is simply skipped; the leftover
		// concrete token then fails the termination check.
		{"b", false},
		{"a,b", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.out, pattern.Match(tokens(t, test.concrete)), test.concrete)
	}
}

func TestMatchOrderSensitive(t *testing.T) {
	pattern := tokens(t, "a,b")
	assert.True(t, pattern.Match(tokens(t, "a,b")))
	assert.False(t, pattern.Match(tokens(t, "b,a")))
}

func TestMatch(t *testing.T) {
	var tests = []struct {
		pattern  string
		concrete string
		out      bool
	}{
		{"", "", true},
		{"", "a", false},
		{"a", "", false},
		{"a,*", "a", true},
		{"a,*", "a,b,c", true},
		{"*,c", "a,b,c", true},
		{"*,c,d", "a,b,c,d", true},
		// Optional after a wildcard commits greedily when found.
		{"*,?b,c", "a,b,c", true},
		{"*,?b,c", "a,c", true},
		// Plain value after a wildcard: a failed forward scan still
		// advances the pattern instead of failing the match.
		{"*,z", "a,b", true},
		{"a,?b,c", "a,c", true},
		{"a,?b,c", "a,b,c", true}, // optional consumed in place
		{"a,b,*", "a,b", true},
		{"a,?b", "a", true},
		{"?a,?b,?c", "", true},
		// Greedy commitment is never undone; a backtracking matcher
		// would accept this one.
		{"*,a,b", "a,a,b", false},
	}
	for _, test := range tests {
		actual := tokens(t, test.pattern).Match(tokens(t, test.concrete))
		assert.Equal(t, test.out, actual, "%s vs %s", test.pattern, test.concrete)
	}
}
