package store

import (
	"context"
	"errors"
	"time"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep the surface per-aggregate and make it
// obvious when a call is running inside a transaction and when it isn't.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A nil return commits, an
	// error rolls back. This is the recommended way to run multi-step
	// operations that must be atomic, such as refresh token rotation.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and refresh.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UsernameExists reports whether a username is already taken.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether an email address is already registered.
	EmailExists(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetEnabled flips the account's enabled flag and bumps updated_at.
	SetEnabled(ctx context.Context, userID string, enabled bool) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetActiveRefreshToken returns the unrevoked record for a token ID.
	// Revoked and unknown IDs both come back as ErrNotFound.
	GetActiveRefreshToken(ctx context.Context, tokenID string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1 on the unrevoked record for the
	// token ID and returns how many rows changed. Rotation relies on the
	// count: of several racers presenting the same token, exactly one
	// observes 1.
	RevokeRefreshToken(ctx context.Context, tokenID string, now time.Time) (int64, error)

	// RevokeAllForUser revokes every active record for a username and
	// returns the number of sessions ended.
	RevokeAllForUser(ctx context.Context, username string, now time.Time) (int64, error)

	// CountActiveForUser returns how many unrevoked, unexpired records a
	// user currently has.
	CountActiveForUser(ctx context.Context, username string, now time.Time) (int64, error)
}
