package jwtx

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// RSAKeySize is the modulus size used for generated signing keys.
const RSAKeySize = 2048

// KeyMaterial holds the process-wide RSA signing keypair and its identifier.
// It is constructed once at startup via LoadOrGenerate and treated as
// immutable afterwards, so it can be shared across goroutines without
// locking. The private key never leaves the process.
type KeyMaterial struct {
	kid string
	key *rsa.PrivateKey
}

// KeyConfig carries the externally supplied key material, all fields
// optional. PublicKey and PrivateKey are base64-encoded DER (PKIX and PKCS8
// respectively), the same encoding EncodedPublicKey/EncodedPrivateKey emit.
type KeyConfig struct {
	PublicKey  string
	PrivateKey string
	KeyID      string
}

// LoadOrGenerate adopts the configured keypair when one is supplied, or
// generates a fresh RSA-2048 pair otherwise. The returned bool reports
// whether the material was generated, so the caller can decide how to
// surface it (log it, write it to a secret store). Any malformed configured
// material is an error; callers must treat that as fatal.
func LoadOrGenerate(cfg KeyConfig) (*KeyMaterial, bool, error) {
	if cfg.PublicKey != "" && cfg.PrivateKey != "" {
		m, err := loadFromConfig(cfg)
		if err != nil {
			return nil, false, err
		}
		return m, false, nil
	}

	key, err := rsa.GenerateKey(rand.Reader, RSAKeySize)
	if err != nil {
		return nil, false, fmt.Errorf("jwtx: generate RSA keypair: %w", err)
	}

	kid := cfg.KeyID
	if kid == "" {
		kid = uuid.NewString()
	}

	return &KeyMaterial{kid: kid, key: key}, true, nil
}

func loadFromConfig(cfg KeyConfig) (*KeyMaterial, error) {
	pubDER, err := base64.StdEncoding.DecodeString(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode public key: %w", err)
	}
	privDER, err := base64.StdEncoding.DecodeString(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode private key: %w", err)
	}

	pubAny, err := x509.ParsePKIXPublicKey(pubDER)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse public key: %w", err)
	}
	pub, ok := pubAny.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("jwtx: configured public key is not RSA")
	}

	privAny, err := x509.ParsePKCS8PrivateKey(privDER)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse private key: %w", err)
	}
	priv, ok := privAny.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: configured private key is not RSA")
	}

	// The halves must be a mathematically matched pair.
	if priv.PublicKey.N.Cmp(pub.N) != 0 || priv.PublicKey.E != pub.E {
		return nil, errors.New("jwtx: configured public and private keys do not match")
	}

	kid := cfg.KeyID
	if kid == "" {
		kid = uuid.NewString()
	}

	return &KeyMaterial{kid: kid, key: priv}, nil
}

// KID returns the key identifier embedded in token headers and the JWKS.
func (m *KeyMaterial) KID() string { return m.kid }

// Public returns the public half of the keypair.
func (m *KeyMaterial) Public() *rsa.PublicKey { return &m.key.PublicKey }

// EncodedPublicKey returns the public key as base64 PKIX DER, the format
// KeyConfig.PublicKey accepts.
func (m *KeyMaterial) EncodedPublicKey() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&m.key.PublicKey)
	if err != nil {
		return "", fmt.Errorf("jwtx: marshal public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// EncodedPrivateKey returns the private key as base64 PKCS8 DER, the format
// KeyConfig.PrivateKey accepts. Callers own keeping the result out of
// anything persistent that is not a secret store.
func (m *KeyMaterial) EncodedPrivateKey() (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(m.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: marshal private key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}
