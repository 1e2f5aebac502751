package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigil-auth/sigil/account"
	"github.com/sigil-auth/sigil/code"
	"github.com/sigil-auth/sigil/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewRepositoryFromFile(filepath.Join(t.TempDir(), "accounts.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newAccount(t *testing.T, name string) (*account.Account, string) {
	t.Helper()
	c, err := code.Generate()
	require.NoError(t, err)
	acct, err := account.New(name, c)
	require.NoError(t, err)
	return acct, c
}

func TestRoundTrip(t *testing.T) {
	s := newStore(t)
	acct, c := newAccount(t, "alice")

	require.NoError(t, s.Create(acct))

	byID, err := s.GetByID(acct.ID.String())
	require.NoError(t, err)
	assert.Equal(t, acct.ID, byID.ID)
	assert.Equal(t, acct.CodeHash, byID.CodeHash)
	assert.Equal(t, acct.CodeSalt, byID.CodeSalt)
	assert.Equal(t, acct.KDFParams, byID.KDFParams)

	byDigest, err := s.GetByLookupDigest(account.LookupDigest(c))
	require.NoError(t, err)
	assert.Equal(t, acct.ID, byDigest.ID)

	// The stored record still verifies the original code.
	ok, err := byDigest.VerifyCode(c)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDuplicateCreate(t *testing.T) {
	s := newStore(t)
	acct, _ := newAccount(t, "")
	require.NoError(t, s.Create(acct))
	assert.ErrorIs(t, s.Create(acct), storage.ErrDuplicate)
}

func TestMissing(t *testing.T) {
	s := newStore(t)
	_, err := s.GetByID("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetByLookupDigest("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.Delete("missing"), storage.ErrNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	s := newStore(t)
	acct, c := newAccount(t, "before")
	require.NoError(t, s.Create(acct))

	acct.DisplayName = "after"
	require.NoError(t, s.Update(acct))

	got, err := s.GetByID(acct.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "after", got.DisplayName)

	require.NoError(t, s.Delete(acct.ID.String()))
	_, err = s.GetByLookupDigest(account.LookupDigest(c))
	assert.ErrorIs(t, err, storage.ErrNotFound, "digest index entry should be removed with the account")
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.db")

	s, err := NewRepositoryFromFile(path, nil)
	require.NoError(t, err)
	acct, c := newAccount(t, "alice")
	require.NoError(t, s.Create(acct))
	require.NoError(t, s.Close())

	s, err = NewRepositoryFromFile(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetByLookupDigest(account.LookupDigest(c))
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)
}

func TestList(t *testing.T) {
	s := newStore(t)
	a1, _ := newAccount(t, "")
	a2, _ := newAccount(t, "")
	require.NoError(t, s.Create(a1))
	require.NoError(t, s.Create(a2))

	ids, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a1.ID.String(), a2.ID.String()}, ids)
}
