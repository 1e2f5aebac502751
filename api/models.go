package api

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	DisplayName string `json:"display_name,omitempty"`
}

// RegisterResponse is returned from POST /auth/register. RecoveryCode is
// shown exactly once, here; the server retains only its hash.
type RegisterResponse struct {
	UserID       string `json:"user_id"`
	RecoveryCode string `json:"recovery_code"`
}

// LoginRequest is the JSON body for POST /auth/login. Code is free-form:
// casing, spacing and delimiter placement are tolerated.
type LoginRequest struct {
	Code string `json:"code"`
}

// SessionResponse is returned from GET /auth/session and POST /auth/login.
type SessionResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// SessionHintResponse is returned from GET /auth/session/hint. The hint
// comes from a client-writable cookie and carries no authority; it is
// only good for optimistic rendering while the authoritative
// GET /auth/session is in flight.
type SessionHintResponse struct {
	UserID        string `json:"user_id,omitempty"`
	Authoritative bool   `json:"authoritative"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
