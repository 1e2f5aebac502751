// Package account defines the user record a recovery code is bound to.
//
// The raw code exists in memory only long enough to be shown to the user
// once at registration; at rest the record carries an argon2id hash plus
// a deterministic SHA-256 lookup digest, never the code itself.
package account

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sigil-auth/sigil/internal/util"
)

const codeSaltLen = 16

// Account is a user record. CodeHash is salted and slow-hashed, so the
// store cannot be indexed by it; LookupDigest is the unsalted SHA-256 of
// the canonical code and serves as the lookup key. A match on the digest
// is always confirmed against the argon2id hash before it counts.
type Account struct {
	ID           uuid.UUID           `json:"id"`
	DisplayName  string              `json:"display_name,omitempty"`
	CodeHash     []byte              `json:"code_hash"`
	CodeSalt     []byte              `json:"code_salt"`
	KDFParams    util.Argon2idParams `json:"kdf_params"`
	LookupDigest string              `json:"lookup_digest"`
	CreatedAt    time.Time           `json:"created_at"`
	LastLoginAt  time.Time           `json:"last_login_at,omitzero"`
}

// New creates an account bound to the given canonical recovery code.
// The caller is responsible for having validated the code first.
func New(displayName, canonicalCode string) (*Account, error) {
	salt, err := util.RandomBytes(codeSaltLen)
	if err != nil {
		return nil, fmt.Errorf("generating code salt: %w", err)
	}
	params := util.DefaultArgon2idParams()
	hash, err := util.DeriveArgon2idKey(canonicalCode, salt, params)
	if err != nil {
		return nil, fmt.Errorf("hashing recovery code: %w", err)
	}
	return &Account{
		ID:           uuid.New(),
		DisplayName:  displayName,
		CodeHash:     hash,
		CodeSalt:     salt,
		KDFParams:    params,
		LookupDigest: LookupDigest(canonicalCode),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyCode reports whether the canonical code matches this account's
// stored hash. The comparison is constant time.
func (a *Account) VerifyCode(canonicalCode string) (bool, error) {
	return util.CompareArgon2idKey(canonicalCode, a.CodeSalt, a.KDFParams, a.CodeHash)
}

// LookupDigest derives the deterministic storage index for a canonical
// code. The digest of a ~59-bit-entropy secret is safe to persist as an
// index; it still never appears in any response or log line.
func LookupDigest(canonicalCode string) string {
	sum := sha256.Sum256([]byte(canonicalCode))
	return util.HexEncode(sum[:])
}
