package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign identity tokens.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

// RS256Signer signs tokens with the process KeyMaterial using RSA SHA-256.
type RS256Signer struct {
	material *KeyMaterial
}

// NewSignerRS256 creates an RS256 signer backed by the given key material.
func NewSignerRS256(material *KeyMaterial) (*RS256Signer, error) {
	if material == nil || material.key == nil {
		return nil, errors.New("jwtx: nil key material")
	}
	return &RS256Signer{material: material}, nil
}

func (s *RS256Signer) Alg() string { return jwt.SigningMethodRS256.Alg() }
func (s *RS256Signer) KID() string { return s.material.KID() }

// Sign serializes the claims into a signed compact JWT. The kid header tags
// the signature so verifiers can pick the right public key from the JWKS.
func (s *RS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = s.material.KID()
	return t.SignedString(s.material.key)
}

// PublicJWK returns the JWK published in the key-discovery document.
func (s *RS256Signer) PublicJWK() JWK {
	return NewRSAJWK(s.material.KID(), "sig", s.Alg(), s.material.Public())
}
