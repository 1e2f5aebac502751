// Package bbolt provides a BBolt-backed account repository.
package bbolt

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/sigil-auth/sigil/account"
	"github.com/sigil-auth/sigil/storage"
)

var (
	accountsBucket = []byte("accounts")   // account ID -> json record
	digestBucket   = []byte("code_index") // lookup digest -> account ID
)

// Store implements storage.Repository backed by a BBolt database.
type Store struct {
	db *bbolt.DB
}

var _ storage.Repository = (*Store)(nil)

// NewRepository returns a Repository backed by the given BBolt database.
func NewRepository(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(accountsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(digestBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// NewRepositoryFromFile opens a BBolt database at the given path and returns a new Repository.
func NewRepositoryFromFile(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return NewRepository(db)
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Create(acct *account.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return err
	}
	id := []byte(acct.ID.String())
	digest := []byte(acct.LookupDigest)
	return s.db.Update(func(tx *bbolt.Tx) error {
		accounts := tx.Bucket(accountsBucket)
		index := tx.Bucket(digestBucket)
		if accounts.Get(id) != nil || index.Get(digest) != nil {
			return storage.ErrDuplicate
		}
		if err := accounts.Put(id, data); err != nil {
			return err
		}
		return index.Put(digest, id)
	})
}

func (s *Store) GetByID(id string) (*account.Account, error) {
	var acct account.Account
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(accountsBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
		}
		return json.Unmarshal(data, &acct)
	})
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (s *Store) GetByLookupDigest(digest string) (*account.Account, error) {
	var acct account.Account
	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(digestBucket).Get([]byte(digest))
		if id == nil {
			return storage.ErrNotFound
		}
		data := tx.Bucket(accountsBucket).Get(id)
		if data == nil {
			// Dangling index entry; treat the same as absent.
			return storage.ErrNotFound
		}
		return json.Unmarshal(data, &acct)
	})
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (s *Store) Update(acct *account.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return err
	}
	id := []byte(acct.ID.String())
	return s.db.Update(func(tx *bbolt.Tx) error {
		accounts := tx.Bucket(accountsBucket)
		existing := accounts.Get(id)
		if existing == nil {
			return fmt.Errorf("%s: %w", acct.ID, storage.ErrNotFound)
		}
		var prev account.Account
		if err := json.Unmarshal(existing, &prev); err != nil {
			return err
		}
		if prev.LookupDigest != acct.LookupDigest {
			index := tx.Bucket(digestBucket)
			if err := index.Delete([]byte(prev.LookupDigest)); err != nil {
				return err
			}
			if err := index.Put([]byte(acct.LookupDigest), id); err != nil {
				return err
			}
		}
		return accounts.Put(id, data)
	})
}

func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		accounts := tx.Bucket(accountsBucket)
		data := accounts.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
		}
		var acct account.Account
		if err := json.Unmarshal(data, &acct); err != nil {
			return err
		}
		if err := tx.Bucket(digestBucket).Delete([]byte(acct.LookupDigest)); err != nil {
			return err
		}
		return accounts.Delete([]byte(id))
	})
}

func (s *Store) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(accountsBucket).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}
