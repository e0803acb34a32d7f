package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, kid string) *Codec {
	t.Helper()

	material, _, err := LoadOrGenerate(KeyConfig{KeyID: kid})
	require.NoError(t, err)

	signer, err := NewSignerRS256(material)
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	return &Codec{
		Signer:     signer,
		Verifier:   NewVerifierRS256(keys, "https://identity.test"),
		Issuer:     "https://identity.test",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, "codec-test")

	token, err := codec.MintAccessToken("alice", "alice@example.com", "user-123")
	require.NoError(t, err)

	claims, err := codec.VerifyAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, DefaultScope, claims.Scope)
	require.NotEmpty(t, claims.TokenID)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestRefreshTokenRoundTripPreservesTokenID(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, "codec-test")

	token, err := codec.MintRefreshToken("alice", "jti-42")
	require.NoError(t, err)

	claims, err := codec.VerifyRefreshToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "jti-42", claims.TokenID)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, "codec-test")

	access, err := codec.MintAccessToken("alice", "alice@example.com", "user-123")
	require.NoError(t, err)
	refresh, err := codec.MintRefreshToken("alice", "jti-42")
	require.NoError(t, err)

	_, err = codec.VerifyAccessToken(refresh)
	require.ErrorIs(t, err, ErrTokenType)

	_, err = codec.VerifyRefreshToken(access)
	require.ErrorIs(t, err, ErrTokenType)
}

func TestVerifyRejectsForgedAndMangledTokens(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, "codec-test")

	t.Run("signature from another key", func(t *testing.T) {
		other := newTestCodec(t, "codec-test")
		// Re-key the foreign signer under our kid so lookup succeeds but the
		// signature check fails.
		forged := jwt.NewWithClaims(jwt.SigningMethodRS256,
			NewAccessClaims("https://identity.test", "mallory", "", "", time.Hour, time.Now().UTC()))
		forged.Header["kid"] = "codec-test"
		signed, err := forged.SignedString(other.Signer.(*RS256Signer).material.key)
		require.NoError(t, err)

		_, err = codec.VerifyAccessToken(signed)
		require.ErrorIs(t, err, ErrInvalidSig)
	})

	t.Run("not a jwt", func(t *testing.T) {
		_, err := codec.VerifyAccessToken("definitely.not.a-token")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("unknown kid", func(t *testing.T) {
		other := newTestCodec(t, "some-other-key")
		token, err := other.MintAccessToken("alice", "", "")
		require.NoError(t, err)

		_, err = codec.VerifyAccessToken(token)
		require.ErrorIs(t, err, ErrUnknownKID)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		foreign := &Codec{
			Signer:     codec.Signer,
			Verifier:   codec.Verifier,
			Issuer:     "https://somebody-else.test",
			AccessTTL:  time.Hour,
			RefreshTTL: time.Hour,
		}
		token, err := foreign.MintAccessToken("alice", "", "")
		require.NoError(t, err)

		_, err = codec.VerifyAccessToken(token)
		require.ErrorIs(t, err, ErrIssuer)
	})
}

func TestVerifyRejectsExpiredTokens(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, "codec-test")

	claims := NewAccessClaims(codec.Issuer, "alice", "", "", -time.Minute, time.Now().UTC())
	token, err := codec.Signer.Sign(claims)
	require.NoError(t, err)

	_, err = codec.VerifyAccessToken(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestExpiryBoundaryIsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	claims := NewAccessClaims("iss", "alice", "", "", 0, now)

	// exp == now must read as expired, not borderline-valid.
	require.ErrorIs(t, claims.ValidateExpiry(now), ErrExpired)
	require.NoError(t, claims.ValidateExpiry(now.Add(-time.Second)))
}

func TestExtractTokenID(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, "codec-test")

	t.Run("extracts jti without verification", func(t *testing.T) {
		token, err := codec.MintRefreshToken("alice", "jti-99")
		require.NoError(t, err)

		id, err := ExtractTokenID(token)
		require.NoError(t, err)
		require.Equal(t, "jti-99", id)
	})

	t.Run("works on expired tokens", func(t *testing.T) {
		claims := NewRefreshClaims(codec.Issuer, "alice", "jti-old", -time.Hour, time.Now().UTC())
		token, err := codec.Signer.Sign(claims)
		require.NoError(t, err)

		id, err := ExtractTokenID(token)
		require.NoError(t, err)
		require.Equal(t, "jti-old", id)
	})

	t.Run("rejects structural garbage", func(t *testing.T) {
		for _, in := range []string{"", "onepart", "a.b", "a.!!!.c", "a.aGVsbG8.c"} {
			_, err := ExtractTokenID(in)
			require.ErrorIs(t, err, ErrMalformed)
		}
	})
}
