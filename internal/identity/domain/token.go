package domain

import "time"

// TokenPair is what the login and refresh endpoints return: a short-lived
// access JWT and the longer-lived refresh JWT that replaces it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`           // always "Bearer"
	ExpiresIn    int64  `json:"expires_in"`           // seconds until the access token expires
	Scope        string `json:"scope,omitempty"`      // space-delimited
}

// RefreshToken models the stored refresh token record. TokenID is the jti
// claim of the issued JWT; revoked rows are kept as tombstones so a replayed
// token stays dead rather than reappearing as unknown.
type RefreshToken struct {
	ID         string
	TokenID    string
	Username   string
	DeviceInfo string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Revoked    bool
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the record's lifetime has elapsed. A record whose
// expiry equals now is already expired.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
