// Package session manages the authoritative identity cookie.
//
// There is no server-side session table: the cookie is the session. Its
// value is the user ID plus an HMAC-SHA256 tag computed with a server
// key, so a client can neither mint nor alter an identity, and expiry is
// enforced by the cookie's own max-age. The signing key lives in a
// memguard enclave for the life of the process.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/awnumar/memguard"
	"github.com/google/uuid"

	"github.com/sigil-auth/sigil/internal/util"
)

// KeyLen is the required signing key length in bytes.
const KeyLen = 32

const valueSeparator = "."

// Config carries every deployment-varying knob explicitly. Nothing in
// this package reads the environment at call time; whether cookies are
// Secure is decided once, at construction.
type Config struct {
	// CookieName names the trusted cookie. It must differ from
	// AdvisoryCookieName: the two cookies have opposite trust
	// properties and sharing a name would let the client-writable one
	// shadow the authoritative one.
	CookieName string
	// AdvisoryCookieName names the script-readable mirror cookie.
	AdvisoryCookieName string
	// TTL is the session lifetime, counted from issuance.
	TTL time.Duration
	// Secure restricts both cookies to encrypted transports. True in
	// any real deployment; false only for local plain-HTTP development.
	Secure bool
}

// DefaultConfig returns the production configuration: distinct cookie
// names, 30-day lifetime, Secure on.
func DefaultConfig() Config {
	return Config{
		CookieName:         "sigil_uid",
		AdvisoryCookieName: "sigil_uid_hint",
		TTL:                30 * 24 * time.Hour,
		Secure:             true,
	}
}

func (c Config) validate() error {
	if c.CookieName == "" || c.AdvisoryCookieName == "" {
		return fmt.Errorf("session: cookie names must be set")
	}
	if c.CookieName == c.AdvisoryCookieName {
		return fmt.Errorf("session: trusted and advisory cookies must not share the name %q", c.CookieName)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("session: TTL must be positive")
	}
	return nil
}

// Manager issues, reads, and clears the trusted identity cookie.
// It is safe for concurrent use: the only state is the immutable config
// and the sealed signing key.
type Manager struct {
	cfg Config
	key *memguard.Enclave
}

// NewManager creates a Manager with the given signing key. The key slice
// is moved into a locked enclave and wiped; callers must not reuse it.
func NewManager(cfg Config, key []byte) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(key) != KeyLen {
		return nil, fmt.Errorf("session: signing key must be %d bytes, got %d", KeyLen, len(key))
	}
	return &Manager{
		cfg: cfg,
		key: memguard.NewEnclave(key),
	}, nil
}

// GenerateKey returns a fresh random signing key. A generated key means
// sessions do not survive a process restart; persistent deployments
// should load the key from disk instead.
func GenerateKey() ([]byte, error) {
	return util.RandomBytes(KeyLen)
}

// Issue sets the trusted cookie authenticating userID on this client for
// the configured TTL. The cookie is HttpOnly, SameSite=Strict, scoped to
// the whole site, and Secure per config. Errors (a sealed key that can
// no longer be opened) are returned, never swallowed: a silently failed
// Issue would leave the user believing they are logged in.
func (m *Manager) Issue(w http.ResponseWriter, userID uuid.UUID) error {
	value, err := m.sign(userID.String())
	if err != nil {
		return fmt.Errorf("session: issuing cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Read returns the authenticated user ID carried by the trusted cookie.
// An absent, malformed, or tampered cookie yields ok false; that is the
// ordinary unauthenticated case, not an error. Every authorization
// decision in the system must go through here and nowhere else.
func (m *Manager) Read(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}
	idPart, tagPart, found := strings.Cut(cookie.Value, valueSeparator)
	if !found {
		return uuid.Nil, false
	}
	tag, err := base64.RawURLEncoding.DecodeString(tagPart)
	if err != nil {
		return uuid.Nil, false
	}
	expected, err := m.mac(idPart)
	if err != nil {
		return uuid.Nil, false
	}
	if !hmac.Equal(tag, expected) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Clear expires the trusted cookie immediately.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (m *Manager) sign(id string) (string, error) {
	tag, err := m.mac(id)
	if err != nil {
		return "", err
	}
	return id + valueSeparator + base64.RawURLEncoding.EncodeToString(tag), nil
}

func (m *Manager) mac(id string) ([]byte, error) {
	keyBuf, err := m.key.Open()
	if err != nil {
		return nil, fmt.Errorf("opening signing key: %w", err)
	}
	defer keyBuf.Destroy()

	h := hmac.New(sha256.New, keyBuf.Bytes())
	h.Write([]byte(id))
	return h.Sum(nil), nil
}
