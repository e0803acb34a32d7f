package jwtx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, kid string) *RS256Signer {
	t.Helper()

	material, _, err := LoadOrGenerate(KeyConfig{KeyID: kid})
	require.NoError(t, err)

	signer, err := NewSignerRS256(material)
	require.NoError(t, err)
	return signer
}

func TestKeySetPublishesOnlyPublicMaterial(t *testing.T) {
	t.Parallel()

	keys := NewKeySet()
	require.False(t, keys.IsReady())
	require.NoError(t, keys.AddSigner(newTestSigner(t, "key-a")))
	require.True(t, keys.IsReady())

	raw, err := json.Marshal(keys.PublicJWKS())
	require.NoError(t, err)

	var doc struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Keys, 1)

	jwk := doc.Keys[0]
	require.Equal(t, "RSA", jwk["kty"])
	require.Equal(t, "sig", jwk["use"])
	require.Equal(t, "RS256", jwk["alg"])
	require.Equal(t, "key-a", jwk["kid"])
	require.NotEmpty(t, jwk["n"])
	require.NotEmpty(t, jwk["e"])

	// RSA private JWK members must never leak into the published set.
	for _, field := range []string{"d", "p", "q", "dp", "dq", "qi"} {
		require.NotContains(t, jwk, field)
	}
}

func TestKeySetLookupByKID(t *testing.T) {
	t.Parallel()

	a := newTestSigner(t, "key-a")
	b := newTestSigner(t, "key-b")

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(a))
	require.NoError(t, keys.AddSigner(b))

	got, err := keys.Get("key-b")
	require.NoError(t, err)
	require.Equal(t, 0, got.N.Cmp(b.material.Public().N))

	_, err = keys.Get("key-missing")
	require.ErrorIs(t, err, ErrNoKey)
}

func TestKeySetResetFromJWKS(t *testing.T) {
	t.Parallel()

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(newTestSigner(t, "stale")))

	fresh := NewKeySet()
	require.NoError(t, fresh.AddSigner(newTestSigner(t, "current")))

	require.NoError(t, keys.ResetFromJWKS(fresh.PublicJWKS()))

	_, err := keys.Get("stale")
	require.ErrorIs(t, err, ErrNoKey)
	_, err = keys.Get("current")
	require.NoError(t, err)
	require.Len(t, keys.PublicJWKS().Keys, 1)
}

func TestJWKRoundTripRecoversKey(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "round-trip")
	pub, err := parseJWKToKey(signer.PublicJWK())
	require.NoError(t, err)
	require.Equal(t, 0, pub.N.Cmp(signer.material.Public().N))
	require.Equal(t, signer.material.Public().E, pub.E)
}

func TestParseJWKRejectsNonRSA(t *testing.T) {
	t.Parallel()

	_, err := parseJWKToKey(JWK{Kty: "EC", Kid: "ec-key"})
	require.Error(t, err)
}
