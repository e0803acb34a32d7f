package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/domain"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/cryptox"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/idx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrExpiredRefresh     = errors.New("expired_refresh_token")
	ErrAccountDisabled    = errors.New("account_disabled")
)

// AuthService implements login, refresh rotation, and revocation.
type AuthService struct {
	Codec *jwtx.Codec
	Store store.Store
}

// Login verifies the credentials and issues a fresh token pair. Unknown
// usernames, wrong passwords, and disabled accounts all collapse into
// ErrInvalidCredentials so the endpoint cannot be used to probe accounts.
func (s *AuthService) Login(ctx context.Context, username, password, deviceInfo string) (*domain.TokenPair, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so the timing of the
			// response does not reveal whether the account exists.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("password verification failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		l.Info("login attempt on disabled account", "username", username)
		return nil, ErrInvalidCredentials
	}

	rec := s.newRefreshRecord(user.Username, deviceInfo, now)
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, rec); err != nil {
		return nil, err
	}

	return s.mintPair(user, rec.TokenID)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued in its place. Of several concurrent presentations of the
// same token, exactly one succeeds; the rest fail with ErrInvalidRefresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, deviceInfo string) (*domain.TokenPair, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	claims, err := s.Codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			return nil, ErrExpiredRefresh
		default:
			return nil, ErrInvalidRefresh
		}
	}

	rec, err := s.Store.RefreshTokens().GetActiveRefreshToken(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Revoked or never issued. A replay of a rotated token
			// lands here too.
			l.Warn("refresh with unknown or revoked token", "token_id", claims.TokenID)
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	if rec.Expired(now) {
		return nil, ErrExpiredRefresh
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, rec.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !user.Enabled {
		return nil, ErrAccountDisabled
	}

	next := s.newRefreshRecord(user.Username, deviceInfo, now)

	// Revoke-then-insert in one transaction. The conditional revoke is the
	// race arbiter: a second rotation of the same token finds no active row
	// to flip and rolls back without issuing anything.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.RefreshTokens().RevokeRefreshToken(ctx, rec.TokenID, now)
		if err != nil {
			return err
		}
		if n != 1 {
			return ErrInvalidRefresh
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	return s.mintPair(user, next.TokenID)
}

// Revoke ends the session behind the presented refresh token. It is total:
// malformed, unknown, expired, and already-revoked tokens all succeed, since
// the caller's goal (that token being unusable) is already met.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	// Extraction skips signature and expiry checks on purpose: an expired
	// token should still be able to end its own session.
	tokenID, err := jwtx.ExtractTokenID(refreshToken)
	if err != nil {
		return nil
	}

	n, err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, tokenID, now)
	if err != nil {
		return err
	}
	if n > 0 {
		l.Info("refresh token revoked", "token_id", tokenID)
	}
	return nil
}

// RevokeAll ends every active session for the user and returns how many
// sessions were closed.
func (s *AuthService) RevokeAll(ctx context.Context, username string) (int64, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	n, err := s.Store.RefreshTokens().RevokeAllForUser(ctx, username, now)
	if err != nil {
		return 0, err
	}
	l.Info("all refresh tokens revoked", "username", username, "count", n)
	return n, nil
}

// ActiveSessionCount reports the user's live session count.
func (s *AuthService) ActiveSessionCount(ctx context.Context, username string) (int64, error) {
	return s.Store.RefreshTokens().CountActiveForUser(ctx, username, time.Now().UTC())
}

func (s *AuthService) newRefreshRecord(username, deviceInfo string, now time.Time) domain.RefreshToken {
	return domain.RefreshToken{
		ID:         idx.New().String(),
		TokenID:    uuid.NewString(),
		Username:   username,
		DeviceInfo: deviceInfo,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.Codec.RefreshTTL),
		CreatedAt:  now,
	}
}

func (s *AuthService) mintPair(user domain.User, refreshTokenID string) (*domain.TokenPair, error) {
	accessToken, err := s.Codec.MintAccessToken(user.Username, user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.Codec.MintRefreshToken(user.Username, refreshTokenID)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.Codec.AccessTTL.Seconds()),
		Scope:        jwtx.DefaultScope,
	}, nil
}
