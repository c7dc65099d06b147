package fp

// Match reports whether the concrete token list is accepted by the
// pattern. The walk is greedy and never backtracks: a single
// wildcard-mode flag is the only state, and once a forward scan commits
// to a position that decision stands. Patterns that would need
// backtracking to accept an input are rejected; existing signature
// databases depend on this acceptance behavior, so it must not change.
func (pattern TokenList) Match(concrete TokenList) bool {
	matchAny := false
	pi, ci := 0, 0

	for ; pi < len(pattern) && ci < len(concrete); pi++ {
		t := pattern[pi]

		// Exact value, move on.
		if t&^TokenOptional == concrete[ci] {
			matchAny = false
			ci++
			continue
		}

		// Wildcard, may match anything.
		if t == TokenAny {
			matchAny = true
			continue
		}

		// Optional value, not yet fulfilled.
		if t&TokenOptional != 0 {
			if matchAny {
				// Greedy forward scan for the value.
				for si := ci; si < len(concrete); si++ {
					if t&^TokenOptional == concrete[si] {
						matchAny = false
						ci = si + 1
						break
					}
				}
			}
			// Found, or treated as absent; either way move on.
			continue
		}

		// Exact value somewhere after a wildcard.
		if matchAny {
			for ci < len(concrete) {
				found := concrete[ci] == t
				ci++
				if found {
					break
				}
			}
			// A failed scan still advances the pattern.
			matchAny = false
			continue
		}

		// Plain mismatch.
		return false
	}

	// Trailing optional and wildcard tokens match zero remaining input.
	for pi < len(pattern) && (pattern[pi]&TokenOptional != 0 || pattern[pi] == TokenAny) {
		pi++
	}

	// Both sequences exhausted.
	if pi == len(pattern) && ci == len(concrete) {
		return true
	}
	// A trailing wildcard absorbs whatever input remains.
	if pi == len(pattern) && matchAny {
		return true
	}
	return false
}
