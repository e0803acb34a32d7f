package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a compact JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrUnknownKID = errors.New("jwtx: unknown kid")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrTokenType  = errors.New("jwtx: token type mismatch")
)

// RS256Verifier validates JWTs signed using RS256 against a KeySet.
type RS256Verifier struct {
	keys   *KeySet
	issuer string
}

// NewVerifierRS256 creates a verifier using a KeySet of RSA public keys.
// Empty issuer means "don't enforce".
func NewVerifierRS256(keys *KeySet, issuer string) *RS256Verifier {
	return &RS256Verifier{keys: keys, issuer: issuer}
}

// Verify checks the signature, structure, issuer, and expiry of the token
// and returns its parsed claims. Revocation is deliberately out of scope
// here; it is a store-level concern layered on top by the auth service.
func (v *RS256Verifier) Verify(tokenStr string) (Claims, error) {
	// Claims are validated manually below so the caller can tell an expired
	// token apart from a forged or mangled one.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrUnknownKID
		}
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(time.Now().UTC()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKID):
		return err
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
