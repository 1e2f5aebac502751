package code

import (
	"fmt"
	"strings"

	"github.com/sigil-auth/sigil/internal/util"
)

// Generate mints a new recovery code in canonical form.
//
// Each symbol is an independent, uniform draw from Alphabet via
// crypto/rand. The alphabet has 31 symbols, which does not divide 256,
// so a naive byte-modulo mapping would bias the low symbols;
// util.RandomIntn performs rejection sampling internally and stays
// exactly uniform. If the secure random source fails the error is
// returned as-is — callers must treat that as fatal, never substitute
// a weaker source.
func Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(rawLen)
	for i := 0; i < rawLen; i++ {
		idx, err := util.RandomIntn(len(Alphabet))
		if err != nil {
			return "", fmt.Errorf("generating recovery code: %w", err)
		}
		sb.WriteByte(Alphabet[idx])
	}
	return format(sb.String()), nil
}
