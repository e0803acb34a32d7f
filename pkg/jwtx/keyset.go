package jwtx

import (
	"crypto/rsa"
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the public verification keys in memory. It is thread-safe so
// the identity service (for JWKS publishing) and resource services (for
// verification) can share one instance.
type KeySet struct {
	mu  sync.RWMutex
	jks JWKS
	pub map[string]*rsa.PublicKey // keyed by kid
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]*rsa.PublicKey)}
}

// AddSigner registers a Signer's public JWK into the KeySet.
func (k *KeySet) AddSigner(s Signer) error {
	return k.AddJWK(s.PublicJWK())
}

// AddJWK adds a JWK to the KeySet and parses it into a usable crypto key.
func (k *KeySet) AddJWK(j JWK) error {
	key, err := parseJWKToKey(j)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[j.Kid] = key
	k.jks.Keys = append(k.jks.Keys, j)
	return nil
}

// Get returns the public key for the given kid.
func (k *KeySet) Get(kid string) (*rsa.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// PublicJWKS returns a snapshot of the KeySet's JWKS for HTTP serving.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.jks
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}

// ResetFromJWKS replaces all keys from a JWKS. Resource services use this
// when fetching fresh keys from the identity service's discovery endpoint.
func (k *KeySet) ResetFromJWKS(jwks JWKS) error {
	newMap := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for _, j := range jwks.Keys {
		key, err := parseJWKToKey(j)
		if err != nil {
			return err
		}
		newMap[j.Kid] = key
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub = newMap
	k.jks = jwks
	return nil
}
