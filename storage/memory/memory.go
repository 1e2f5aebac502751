// Package memory provides a thread-safe in-memory implementation of storage.Repository.
package memory

import (
	"sync"

	"github.com/sigil-auth/sigil/account"
	"github.com/sigil-auth/sigil/internal/util"
	"github.com/sigil-auth/sigil/storage"
)

// Repository is a thread-safe in-memory implementation of storage.Repository.
// Suitable for testing, demos, and single-process use cases.
type Repository struct {
	mu       sync.RWMutex
	accounts map[string]*account.Account // keyed by account ID
	byDigest map[string]string           // lookup digest -> account ID
}

var _ storage.Repository = (*Repository)(nil)

// NewRepository creates a new empty in-memory Repository.
func NewRepository() *Repository {
	return &Repository{
		accounts: make(map[string]*account.Account),
		byDigest: make(map[string]string),
	}
}

func cloneAccount(a *account.Account) *account.Account {
	if a == nil {
		return nil
	}
	c := *a
	c.CodeHash = util.CopyBytes(a.CodeHash)
	c.CodeSalt = util.CopyBytes(a.CodeSalt)
	return &c
}

func (r *Repository) Create(acct *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := acct.ID.String()
	if _, ok := r.accounts[id]; ok {
		return storage.ErrDuplicate
	}
	if _, ok := r.byDigest[acct.LookupDigest]; ok {
		return storage.ErrDuplicate
	}
	r.accounts[id] = cloneAccount(acct)
	r.byDigest[acct.LookupDigest] = id
	return nil
}

func (r *Repository) GetByID(id string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneAccount(acct), nil
}

func (r *Repository) GetByLookupDigest(digest string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byDigest[digest]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneAccount(r.accounts[id]), nil
}

func (r *Repository) Update(acct *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := acct.ID.String()
	existing, ok := r.accounts[id]
	if !ok {
		return storage.ErrNotFound
	}
	if existing.LookupDigest != acct.LookupDigest {
		delete(r.byDigest, existing.LookupDigest)
		r.byDigest[acct.LookupDigest] = id
	}
	r.accounts[id] = cloneAccount(acct)
	return nil
}

func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(r.byDigest, acct.LookupDigest)
	delete(r.accounts, id)
	return nil
}

func (r *Repository) List() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	return ids, nil
}
