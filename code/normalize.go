package code

import (
	"strings"
	"unicode"

	"github.com/sigil-auth/sigil/internal/util"
)

// delimiterRunes are the separator characters tolerated on input. Users
// paste codes from emails and PDFs, where a plain hyphen is routinely
// replaced by a typographic dash.
const delimiterRunes = "-‐‑‒–—"

// Validate reports whether s is a recovery code already in canonical
// form: exactly three four-symbol groups joined by single hyphens, every
// symbol in Alphabet. Anything else is false; there is no partial
// acceptance and no error path.
func Validate(s string) bool {
	if len(s) != canonicalLen {
		return false
	}
	for i := 0; i < canonicalLen; i++ {
		if (i+1)%(groupLen+1) == 0 {
			if s[i] != delimiter {
				return false
			}
			continue
		}
		if !inAlphabet(s[i]) {
			return false
		}
	}
	return true
}

// Normalize turns free-form user input into canonical form.
//
// It folds the input with NFKD, drops whitespace and delimiter
// characters, and upper-cases what remains. If exactly twelve symbols
// survive and all of them are in Alphabet, the canonical grouped form is
// returned with ok true. Any other input returns ("", false) so callers
// can render a validation error instead of handling a panic or an error
// value.
//
// Normalize is idempotent: feeding its output back in yields the same
// canonical string, and every spacing/casing/delimiter variant of the
// same twelve symbols normalizes to an identical result.
func Normalize(input string) (canonical string, ok bool) {
	folded := util.Normalize(input)

	var sb strings.Builder
	sb.Grow(rawLen)
	for _, r := range folded {
		if unicode.IsSpace(r) || strings.ContainsRune(delimiterRunes, r) {
			continue
		}
		r = unicode.ToUpper(r)
		if r > 'Z' || !inAlphabet(byte(r)) {
			return "", false
		}
		if sb.Len() == rawLen {
			// Too many symbols; fail rather than truncate.
			return "", false
		}
		sb.WriteByte(byte(r))
	}
	if sb.Len() != rawLen {
		return "", false
	}
	return format(sb.String()), true
}
