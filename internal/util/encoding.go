package util

import (
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFKD normalization. User-entered codes may
// arrive with compatibility forms (full-width characters, ligatures);
// folding them first keeps the downstream byte-level checks honest.
func Normalize(s string) string {
	return norm.NFKD.String(s)
}

func HexEncode(b []byte) string {
	return hex.EncodeToString(b)
}

func HexDecode(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
