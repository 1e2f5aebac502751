package code

import (
	"strings"
	"testing"
)

func TestAlphabetExcludesConfusables(t *testing.T) {
	for _, c := range "01OIL" {
		if strings.ContainsRune(Alphabet, c) {
			t.Errorf("alphabet contains confusable character %q", c)
		}
	}
	if strings.ToUpper(Alphabet) != Alphabet {
		t.Error("alphabet must be upper-case")
	}
	seen := make(map[rune]bool)
	for _, c := range Alphabet {
		if seen[c] {
			t.Errorf("duplicate alphabet symbol %q", c)
		}
		seen[c] = true
	}
}

func TestGenerateProducesValidCodes(t *testing.T) {
	for i := 0; i < 100; i++ {
		c, err := Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !Validate(c) {
			t.Fatalf("generated code %q fails Validate", c)
		}
		for _, bad := range "01OIL" {
			if strings.ContainsRune(c, bad) {
				t.Errorf("generated code %q contains excluded character %q", c, bad)
			}
		}
	}
}

func TestGenerateUniform(t *testing.T) {
	// Chi-square goodness-of-fit across a large sample of generated
	// symbols. With 31 symbols there are 30 degrees of freedom; the
	// 0.1% critical value is 59.7, so a threshold of 70 keeps the test
	// deterministic in practice while still catching a biased mapping
	// (naive byte%31 would land far above it).
	const samples = 2000
	counts := make(map[byte]int, len(Alphabet))
	for i := 0; i < samples; i++ {
		c, err := Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for j := 0; j < len(c); j++ {
			if c[j] == '-' {
				continue
			}
			counts[c[j]]++
		}
	}

	total := samples * 12
	expected := float64(total) / float64(len(Alphabet))
	var chi2 float64
	for i := 0; i < len(Alphabet); i++ {
		observed := float64(counts[Alphabet[i]])
		d := observed - expected
		chi2 += d * d / expected
	}
	if chi2 > 70 {
		t.Errorf("chi-square statistic %.2f exceeds threshold; symbol distribution is not uniform: %v", chi2, counts)
	}
}
