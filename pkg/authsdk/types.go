package authsdk

import "github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest is the body for POST /api/auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest is the body for POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by the login and refresh endpoints.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
}

// UserInfoResponse describes an account without sensitive fields.
type UserInfoResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Enabled       bool   `json:"enabled"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at"`
}

// LogoutResponse acknowledges a logout.
type LogoutResponse struct {
	Message string `json:"message"`
}

// LogoutAllResponse reports how many sessions were ended.
type LogoutAllResponse struct {
	Message string `json:"message"`
	Revoked int64  `json:"revoked"`
}

// ErrorResponse mirrors the JSON error envelope for SDK unmarshalling.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the key discovery document.
type JWKSResponse jwtx.JWKS
