package util

import (
	"bytes"
	"testing"
)

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	b, err := RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("expected 32 bytes, got %d and %d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Error("two random draws should not be equal")
	}
}

func TestRandomIntnBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n, err := RandomIntn(7)
		if err != nil {
			t.Fatalf("RandomIntn: %v", err)
		}
		if n < 0 || n >= 7 {
			t.Fatalf("RandomIntn(7) = %d, out of range", n)
		}
	}
}

func TestArgon2id(t *testing.T) {
	salt, _ := RandomBytes(16)
	params := DefaultArgon2idParams()

	key, err := DeriveArgon2idKey("correct horse", salt, params)
	if err != nil {
		t.Fatalf("DeriveArgon2idKey: %v", err)
	}

	t.Run("Match", func(t *testing.T) {
		ok, err := CompareArgon2idKey("correct horse", salt, params, key)
		if err != nil {
			t.Fatalf("CompareArgon2idKey: %v", err)
		}
		if !ok {
			t.Error("same passphrase should match")
		}
	})

	t.Run("Mismatch", func(t *testing.T) {
		ok, err := CompareArgon2idKey("battery staple", salt, params, key)
		if err != nil {
			t.Fatalf("CompareArgon2idKey: %v", err)
		}
		if ok {
			t.Error("different passphrase should not match")
		}
	})

	t.Run("BadKeyLen", func(t *testing.T) {
		bad := params
		bad.KeyLen = 16
		if _, err := DeriveArgon2idKey("x", salt, bad); err == nil {
			t.Error("expected error for non-32-byte key length")
		}
	})
}

func TestNormalizeNFKD(t *testing.T) {
	// Full-width input folds to ASCII.
	if got := Normalize("ＡＢ２"); got != "AB2" {
		t.Errorf("Normalize full-width = %q, want AB2", got)
	}
}

func TestHexRoundTrip(t *testing.T) {
	b := []byte{0x00, 0xde, 0xad, 0xbe, 0xef}
	decoded, err := HexDecode(HexEncode(b))
	if err != nil {
		t.Fatalf("HexDecode: %v", err)
	}
	if !bytes.Equal(b, decoded) {
		t.Error("hex round trip mismatch")
	}
}
