// Package code defines the recovery code credential: its alphabet,
// canonical textual form, secure generation, and tolerant parsing.
//
// A recovery code is the sole credential in this system. It is twelve
// symbols drawn from a restricted alphabet, rendered as three
// hyphen-separated groups of four (AB2C-XY73-MN89). The alphabet
// excludes 0, 1, O, I and L so that a code read off a screen or a
// printout cannot be mistranscribed from visual ambiguity.
package code

import "strings"

const (
	// Alphabet is the full symbol set: uppercase A-Z minus O, I, L and
	// digits 2-9. Generation and validation must agree on this constant
	// byte for byte; it is the single format contract for the package.
	Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	// groupLen is the number of symbols per hyphen-separated group.
	groupLen = 4
	// groupCount is the number of groups in a code.
	groupCount = 3
	// rawLen is the number of meaningful symbols in a code.
	rawLen = groupLen * groupCount
	// canonicalLen is the length of the canonical form including delimiters.
	canonicalLen = rawLen + groupCount - 1

	delimiter = '-'
)

// inAlphabet reports whether b is one of the allowed code symbols.
func inAlphabet(b byte) bool {
	return strings.IndexByte(Alphabet, b) >= 0
}

// format renders exactly rawLen symbols into canonical grouped form.
func format(raw string) string {
	var sb strings.Builder
	sb.Grow(canonicalLen)
	for i := 0; i < rawLen; i += groupLen {
		if i > 0 {
			sb.WriteByte(delimiter)
		}
		sb.WriteString(raw[i : i+groupLen])
	}
	return sb.String()
}
