package sqlite

import (
	"context"
	"time"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/domain"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, enabled, email_verified, created_at, updated_at`

func (r *usersRepo) scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Enabled,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&n)
	return n > 0, err
}

func (r *usersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash,
		u.Enabled, u.EmailVerified, u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET enabled = ?, updated_at = ? WHERE id = ?`,
		enabled, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

var _ store.Users = (*usersRepo)(nil)
