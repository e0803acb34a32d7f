package jwtx

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Codec mints and verifies the two identity token kinds against a single
// signing key. Minting is pure over the key material; nothing here touches
// storage.
type Codec struct {
	Signer     Signer
	Verifier   Verifier
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// MintAccessToken issues a short-lived access token for the subject with a
// freshly generated token ID.
func (c *Codec) MintAccessToken(subject, email, userID string) (string, error) {
	claims := NewAccessClaims(c.Issuer, subject, email, userID, c.AccessTTL, time.Now().UTC())
	return c.Signer.Sign(claims)
}

// MintRefreshToken issues a refresh token carrying the caller-supplied token
// ID, letting callers persist the ID before the token exists.
func (c *Codec) MintRefreshToken(subject, tokenID string) (string, error) {
	claims := NewRefreshClaims(c.Issuer, subject, tokenID, c.RefreshTTL, time.Now().UTC())
	return c.Signer.Sign(claims)
}

// VerifyAccessToken verifies signature, expiry, and that the token is an
// access token. A valid refresh token must not pass here.
func (c *Codec) VerifyAccessToken(token string) (AccessClaims, error) {
	claims, err := c.Verifier.Verify(token)
	if err != nil {
		return AccessClaims{}, err
	}
	return claims.AsAccess()
}

// VerifyRefreshToken verifies signature, expiry, and that the token is a
// refresh token.
func (c *Codec) VerifyRefreshToken(token string) (RefreshClaims, error) {
	claims, err := c.Verifier.Verify(token)
	if err != nil {
		return RefreshClaims{}, err
	}
	return claims.AsRefresh()
}

// ExtractTokenID pulls the jti out of a compact JWT without verifying the
// signature or expiry. The revoke path uses it to locate store records even
// when the presented token has already expired; the store remains the source
// of truth for whether the ID is still live.
func ExtractTokenID(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrMalformed
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var body struct {
		ID string `json:"jti"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if body.ID == "" {
		return "", ErrMalformed
	}

	return body.ID, nil
}
