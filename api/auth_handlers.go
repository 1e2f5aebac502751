package api

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/sigil-auth/sigil/account"
	"github.com/sigil-auth/sigil/code"
	"github.com/sigil-auth/sigil/storage"
)

// maxDisplayNameLen bounds the only free-text field an account carries.
const maxDisplayNameLen = 64

// invalidCodeMessage is returned for every failed login, whether the
// input was malformed or simply matched no account. Distinguishing the
// two would tell an attacker which codes are "almost right".
const invalidCodeMessage = "invalid recovery code"

// Register handles POST /auth/register. It mints a recovery code, binds
// a new account to its hash, and logs the client in. The code appears in
// this response and nowhere else, ever.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[RegisterRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}
	if utf8.RuneCountInString(req.DisplayName) > maxDisplayNameLen {
		writeError(w, http.StatusBadRequest, "display name too long")
		return
	}

	recoveryCode, err := code.Generate()
	if err != nil {
		// The secure random source failed; there is no acceptable
		// fallback for credential generation.
		a.writeInternalError(w, r, "recovery code generation failed", err)
		return
	}

	acct, err := account.New(req.DisplayName, recoveryCode)
	if err != nil {
		a.writeInternalError(w, r, "account creation failed", err)
		return
	}
	if err := a.repo.Create(acct); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// A code digest collision. With ~59 bits of entropy this is
			// effectively unreachable; treat it as a server fault rather
			// than retrying silently.
			a.writeInternalError(w, r, "recovery code collision", err)
			return
		}
		a.writeInternalError(w, r, "persisting account failed", err)
		return
	}

	// The session cookie must be fully set before any body implies a
	// successful login.
	if err := a.sessions.Issue(w, acct.ID); err != nil {
		a.audit.logFailure(AuditSessionIssueFailure, r, err.Error())
		a.writeInternalError(w, r, "session issuance failed", err)
		return
	}
	a.sessions.SetAdvisory(w, acct.ID)

	a.audit.logEvent(AuditRegister, r, acct.ID.String())
	writeJSON(w, http.StatusCreated, RegisterResponse{
		UserID:       acct.ID.String(),
		RecoveryCode: recoveryCode,
	})
}

// Login handles POST /auth/login.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}

	canonical, ok := code.Normalize(req.Code)
	if !ok {
		a.audit.logFailure(AuditLoginFailure, r, "malformed code")
		writeError(w, http.StatusUnauthorized, invalidCodeMessage)
		return
	}

	acct, err := a.repo.GetByLookupDigest(account.LookupDigest(canonical))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.audit.logFailure(AuditLoginFailure, r, "unknown code")
			writeError(w, http.StatusUnauthorized, invalidCodeMessage)
			return
		}
		a.writeInternalError(w, r, "account lookup failed", err)
		return
	}

	match, err := acct.VerifyCode(canonical)
	if err != nil {
		a.writeInternalError(w, r, "code verification failed", err)
		return
	}
	if !match {
		a.audit.logFailure(AuditLoginFailure, r, "hash mismatch")
		writeError(w, http.StatusUnauthorized, invalidCodeMessage)
		return
	}

	if err := a.sessions.Issue(w, acct.ID); err != nil {
		a.audit.logFailure(AuditSessionIssueFailure, r, err.Error())
		a.writeInternalError(w, r, "session issuance failed", err)
		return
	}
	a.sessions.SetAdvisory(w, acct.ID)

	acct.LastLoginAt = time.Now().UTC()
	if err := a.repo.Update(acct); err != nil {
		// Login stands either way; the timestamp is best effort.
		a.audit.logFailure(AuditLoginTouchFailure, r, err.Error())
	}

	a.audit.logEvent(AuditLoginSuccess, r, acct.ID.String())
	writeJSON(w, http.StatusOK, SessionResponse{
		UserID:      acct.ID.String(),
		DisplayName: acct.DisplayName,
	})
}

// Logout handles POST /auth/logout. It clears both the trusted cookie
// and the advisory mirror; logging out an unauthenticated client is a
// no-op, not an error.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if userID, ok := a.sessions.Read(r); ok {
		a.audit.logEvent(AuditLogout, r, userID.String())
	}
	a.sessions.Clear(w)
	a.sessions.ClearAdvisory(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session: the authoritative answer to "who am
// I". Identity comes from the trusted cookie alone.
func (a *API) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := a.sessions.Read(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	acct, err := a.repo.GetByID(userID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// A valid cookie for a deleted account: retire the session.
			a.sessions.Clear(w)
			a.sessions.ClearAdvisory(w)
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		a.writeInternalError(w, r, "account lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		UserID:      acct.ID.String(),
		DisplayName: acct.DisplayName,
	})
}

// SessionHint handles GET /auth/session/hint. It echoes the advisory
// cookie for optimistic UI rendering and nothing more; the response says
// so explicitly. Authorization never passes through here.
func (a *API) SessionHint(w http.ResponseWriter, r *http.Request) {
	hint, _ := a.sessions.ReadAdvisory(r)
	writeJSON(w, http.StatusOK, SessionHintResponse{
		UserID:        hint,
		Authoritative: false,
	})
}

// DeleteAccount handles DELETE /auth/account for the authenticated user.
func (a *API) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := a.repo.Delete(userID.String()); err != nil {
		mapError(w, err)
		return
	}
	a.sessions.Clear(w)
	a.sessions.ClearAdvisory(w)
	a.audit.logEvent(AuditAccountDeleted, r, userID.String())
	w.WriteHeader(http.StatusNoContent)
}
