package jwtx

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"math/big"
)

// JWK represents a public key in JSON Web Key format (RFC 7517). Only RSA
// signing keys are published; the struct never carries private material.
type JWK struct {
	Kty string `json:"kty"`           // key type: "RSA"
	Use string `json:"use,omitempty"` // what we use it for: "sig"
	Alg string `json:"alg,omitempty"` // algorithm: "RS256"
	Kid string `json:"kid,omitempty"` // key ID

	N string `json:"n,omitempty"` // modulus (base64url)
	E string `json:"e,omitempty"` // exponent (base64url)
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewRSAJWK builds a JWK for an RSA public key.
func NewRSAJWK(kid, use, alg string, pub *rsa.PublicKey) JWK {
	return JWK{
		Kty: "RSA",
		Use: use,
		Alg: alg,
		Kid: kid,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// parseJWKToKey converts a JWK back into an *rsa.PublicKey.
func parseJWKToKey(j JWK) (*rsa.PublicKey, error) {
	if j.Kty != "RSA" {
		return nil, errors.New("jwtx: unsupported kty " + j.Kty)
	}

	nb, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).SetBytes(nb)
	e := new(big.Int).SetBytes(eb).Int64()
	return &rsa.PublicKey{N: n, E: int(e)}, nil
}
