package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvisoryRoundTrip(t *testing.T) {
	m := newTestManager(t)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	m.SetAdvisory(rec, userID)

	hint, ok := m.ReadAdvisory(requestWithCookies(t, rec))
	require.True(t, ok)
	assert.Equal(t, userID.String(), hint)
}

func TestAdvisoryClear(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	m.SetAdvisory(rec, uuid.New())
	m.ClearAdvisory(rec)

	_, ok := m.ReadAdvisory(requestWithCookies(t, rec))
	assert.False(t, ok)
}

func TestAdvisoryIsScriptReadable(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	m.SetAdvisory(rec, uuid.New())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "sigil_uid_hint", c.Name)
	assert.False(t, c.HttpOnly, "advisory cookie is deliberately script-readable")
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
}

// The advisory cookie must never authenticate a request, even when it
// carries a plausible user ID: Read only consults the trusted cookie.
func TestAdvisoryCarriesNoAuthority(t *testing.T) {
	m := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: m.cfg.AdvisoryCookieName, Value: uuid.NewString()})

	_, ok := m.Read(req)
	assert.False(t, ok, "advisory cookie must not authenticate")
}

// Issuing and mirroring for one user then letting the client rewrite the
// hint must not change what Read returns.
func TestAdvisoryRewriteDoesNotShadowTrusted(t *testing.T) {
	m := newTestManager(t)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, userID))
	m.SetAdvisory(rec, userID)

	// Client script overwrites the hint with someone else's ID.
	forged := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == m.cfg.AdvisoryCookieName {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: forged})
			continue
		}
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	got, ok := m.Read(req)
	require.True(t, ok)
	assert.Equal(t, userID, got, "trusted identity must be unaffected by the hint")

	hint, _ := m.ReadAdvisory(req)
	assert.Equal(t, forged, hint)
}
