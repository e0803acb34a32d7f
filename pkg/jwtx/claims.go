package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type tags. The type is itself a signed claim so a refresh token can
// never be replayed as an access token or vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// DefaultScope is the scope granted to every access token. Fine-grained
// authorization lives in the downstream services, not here.
const DefaultScope = "openid profile read write"

// Default token lifetimes, overridable per-service via configuration.
const (
	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the wire-level claim set carried by every identity token.
// Access tokens additionally carry scope/email/userId; refresh tokens carry
// only the registered set plus the type tag.
type Claims struct {
	jwt.RegisteredClaims

	TokenType string `json:"type"`
	Scope     string `json:"scope,omitempty"`
	Email     string `json:"email,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

// AccessClaims is the typed view of a verified access token.
type AccessClaims struct {
	Subject   string
	TokenID   string
	Email     string
	UserID    string
	Scope     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshClaims is the typed view of a verified refresh token.
type RefreshClaims struct {
	Subject   string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewAccessClaims builds the claim set for an access token. The token ID
// (jti) is freshly generated per issuance.
func NewAccessClaims(issuer, subject, email, userID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		TokenType: TokenTypeAccess,
		Scope:     DefaultScope,
		Email:     email,
		UserID:    userID,
	}
}

// NewRefreshClaims builds the claim set for a refresh token. The token ID is
// caller-supplied so it can be persisted before the token is even minted.
func NewRefreshClaims(issuer, subject, tokenID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        tokenID,
		},
		TokenType: TokenTypeRefresh,
	}
}

// AsAccess narrows the claim set to the access view, failing with
// ErrTokenType when the type tag does not match exactly.
func (c Claims) AsAccess() (AccessClaims, error) {
	if c.TokenType != TokenTypeAccess {
		return AccessClaims{}, ErrTokenType
	}
	return AccessClaims{
		Subject:   c.Subject,
		TokenID:   c.ID,
		Email:     c.Email,
		UserID:    c.UserID,
		Scope:     c.Scope,
		IssuedAt:  numericTime(c.IssuedAt),
		ExpiresAt: numericTime(c.ExpiresAt),
	}, nil
}

// AsRefresh narrows the claim set to the refresh view, failing with
// ErrTokenType when the type tag does not match exactly.
func (c Claims) AsRefresh() (RefreshClaims, error) {
	if c.TokenType != TokenTypeRefresh {
		return RefreshClaims{}, ErrTokenType
	}
	return RefreshClaims{
		Subject:   c.Subject,
		TokenID:   c.ID,
		IssuedAt:  numericTime(c.IssuedAt),
		ExpiresAt: numericTime(c.ExpiresAt),
	}, nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token has not expired. A token whose expiry
// equals the current instant is already expired, not borderline-valid.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}
