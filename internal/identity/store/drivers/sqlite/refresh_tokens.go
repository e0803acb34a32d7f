package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/domain"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store"
)

type refreshTokensRepo struct {
	db dbtx
}

const refreshTokenColumns = `id, token_id, username, device_info, issued_at, expires_at, revoked, revoked_at, created_at`

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (`+refreshTokenColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.TokenID, t.Username, t.DeviceInfo,
		t.IssuedAt, t.ExpiresAt, t.Revoked, mapOptionalTime(t.RevokedAt), t.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetActiveRefreshToken(ctx context.Context, tokenID string) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+refreshTokenColumns+`
		FROM refresh_tokens
		WHERE token_id = ? AND revoked = 0`, tokenID)

	var t domain.RefreshToken
	var revokedAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.TokenID,
		&t.Username,
		&t.DeviceInfo,
		&t.IssuedAt,
		&t.ExpiresAt,
		&t.Revoked,
		&revokedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	t.RevokedAt = mapNullTimePtr(revokedAt)
	return t, nil
}

// RevokeRefreshToken conditionally revokes the active record for tokenID.
// The WHERE revoked = 0 guard makes the revocation first-writer-wins: when
// two rotations race on the same token, only one sees an affected row.
func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, tokenID string, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens
		SET revoked = 1, revoked_at = ?
		WHERE token_id = ? AND revoked = 0`,
		now, tokenID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *refreshTokensRepo) RevokeAllForUser(ctx context.Context, username string, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens
		SET revoked = 1, revoked_at = ?
		WHERE username = ? AND revoked = 0`,
		now, username,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *refreshTokensRepo) CountActiveForUser(ctx context.Context, username string, now time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM refresh_tokens
		WHERE username = ? AND revoked = 0 AND expires_at > ?`,
		username, now,
	).Scan(&n)
	return n, err
}

var _ store.RefreshTokens = (*refreshTokensRepo)(nil)
