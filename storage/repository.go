// Package storage provides the persistence abstraction for account records.
package storage

import (
	"errors"

	"github.com/sigil-auth/sigil/account"
)

// ErrNotFound is returned when no account matches the given key.
var ErrNotFound = errors.New("account not found")

// ErrDuplicate is returned when a create would collide on the account ID
// or the code lookup digest.
var ErrDuplicate = errors.New("account already exists")

// Repository defines the interface for account storage. Lookups by code
// go through the deterministic lookup digest; the raw code never reaches
// this layer.
type Repository interface {
	// Create stores a new account. Fails with ErrDuplicate if the ID or
	// the lookup digest is already taken.
	Create(acct *account.Account) error
	// GetByID retrieves an account by its ID.
	GetByID(id string) (*account.Account, error)
	// GetByLookupDigest retrieves the account bound to a code digest.
	GetByLookupDigest(digest string) (*account.Account, error)
	// Update overwrites an existing account record.
	Update(acct *account.Account) error
	// Delete removes an account and its lookup index entry.
	Delete(id string) error
	// List returns all account IDs.
	List() ([]string, error)
}
