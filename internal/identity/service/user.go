package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/domain"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/cryptox"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/idx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

var (
	ErrUsernameTaken = errors.New("username_taken")
	ErrEmailTaken    = errors.New("email_taken")
	ErrInvalidInput  = errors.New("invalid_input")
	ErrUserNotFound  = errors.New("user_not_found")
)

// RegisterInput carries the registration form. Validation tags are enforced
// before anything touches the store.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserService handles account registration and lookup.
type UserService struct {
	Store    store.Store
	validate *validator.Validate
}

func NewUserService(s store.Store) *UserService {
	return &UserService{
		Store:    s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register creates a new account. Username and email collisions are checked
// up front for friendly errors; the unique indexes remain the real guard, so
// a race between two identical registrations still leaves only one row.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if err := s.validate.Struct(in); err != nil {
		return domain.User{}, errors.Join(ErrInvalidInput, err)
	}

	if taken, err := s.Store.Users().UsernameExists(ctx, in.Username); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, ErrUsernameTaken
	}

	if taken, err := s.Store.Users().EmailExists(ctx, in.Email); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, ErrEmailTaken
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race against an identical registration.
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	l.Info("user registered", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// GetByUsername returns the account behind a username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
