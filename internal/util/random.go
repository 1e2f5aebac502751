package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomIntn returns an unbiased random int in [0, max) drawn from
// crypto/rand. A failing entropy source is a hard error; there is no
// fallback to a weaker generator.
func RandomIntn(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("generating random number: %w", err)
	}
	return int(n.Int64()), nil
}

func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating random bytes: %w", err)
	}
	return b, nil
}
