package code

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"AB2C-XY73-MN89",
		"AAAA-AAAA-AAAA",
		"9999-9999-9999",
	}
	for _, s := range valid {
		if !Validate(s) {
			t.Errorf("Validate(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"AB2C-XY73-MN8",    // 13 chars
		"AB2C-XY73-MN899",  // 15 chars
		"ab2c-xy73-mn89",   // lower case is not canonical
		"AB2C XY73 MN89",   // wrong delimiter
		"AB2CXY73MN89",     // no delimiters
		"AB2C-XY73-MN8O",   // excluded letter O
		"AB2C-XY73-MN8I",   // excluded letter I
		"AB2C-XY73-MN8L",   // excluded letter L
		"AB2C-XY73-MN80",   // excluded digit 0
		"AB2C-XY73-MN81",   // excluded digit 1
		"AB2C-XY7-3MN89",   // misplaced delimiter
		"-AB2C-XY73-MN8",   // leading delimiter
		"AB2C-XY73-MN8✓", // multi-byte tail
	}
	for _, s := range invalid {
		if Validate(s) {
			t.Errorf("Validate(%q) = true, want false", s)
		}
	}
}

func TestNormalizeVariants(t *testing.T) {
	const want = "AB2C-XY73-MN89"
	variants := []string{
		"AB2C-XY73-MN89",
		"ab2c-xy73-mn89",
		"ab2c xy73 mn89",
		"  AB2C XY73 MN89  ",
		"AB2CXY73MN89",
		"ab2cxy73mn89",
		"AB2C–XY73—MN89", // en/em dashes
		"AB2C - XY73 - MN89",
		"A B 2 C X Y 7 3 M N 8 9",
		"ab2c-XY73-mn89",
	}
	for _, s := range variants {
		got, ok := Normalize(s)
		if !ok {
			t.Errorf("Normalize(%q) rejected, want %q", s, want)
			continue
		}
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", s, got, want)
		}
		if !Validate(got) {
			t.Errorf("Normalize(%q) = %q fails Validate", s, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for i := 0; i < 50; i++ {
		c, err := Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		once, ok := Normalize(c)
		if !ok {
			t.Fatalf("Normalize rejected generated code %q", c)
		}
		if once != c {
			t.Errorf("Normalize(%q) = %q, want unchanged", c, once)
		}
		twice, ok := Normalize(once)
		if !ok || twice != once {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", c, once, twice)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	inputs := []string{
		"",
		"AB2C-XY73",           // too short
		"AB2C-XY73-MN89-QQQQ", // too long
		"AB2C-XY73-MN8O",      // excluded letter
		"AB2C-XY73-MN80",      // excluded digit
		"AB2C-XY73-MN8!",      // punctuation
		"hello world",
		"AB2C_XY73_MN89", // underscore is not a tolerated delimiter
	}
	for _, s := range inputs {
		if got, ok := Normalize(s); ok {
			t.Errorf("Normalize(%q) = %q, want rejection", s, got)
		}
	}
}
