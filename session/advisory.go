package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// The advisory cookie mirrors the user ID in a cookie that page script
// can read and rewrite. It exists purely so the interface can render an
// optimistic "signed in" state before the authoritative check resolves.
//
// It carries no integrity guarantee of any kind. Its value MUST NOT be
// trusted to authorize anything: every protected operation re-derives
// identity from Manager.Read, which never looks at this cookie.

// SetAdvisory mirrors userID into the script-readable hint cookie.
func (m *Manager) SetAdvisory(w http.ResponseWriter, userID uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.AdvisoryCookieName,
		Value:    userID.String(),
		Path:     "/",
		MaxAge:   int(m.cfg.TTL / time.Second),
		HttpOnly: false, // deliberately readable by page script
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ReadAdvisory returns the raw hint value, or ok false when absent.
// The value is client-controlled; treat it as a display hint only.
func (m *Manager) ReadAdvisory(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cfg.AdvisoryCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// ClearAdvisory expires the hint cookie.
func (m *Manager) ClearAdvisory(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.AdvisoryCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: false,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
