package service

import (
	"context"
	"testing"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesAccount(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.True(t, user.Enabled)
	require.False(t, user.EmailVerified)

	// Password is stored hashed, never plaintext.
	require.NotContains(t, user.PasswordHash, "correct horse battery")
	require.NoError(t, cryptox.VerifyPassword("correct horse battery", user.PasswordHash))

	got, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "another password!",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "another password!",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"empty", RegisterInput{}},
		{"short username", RegisterInput{Username: "ab", Email: "a@example.com", Password: "long enough pass"}},
		{"non alphanumeric username", RegisterInput{Username: "al ice!", Email: "a@example.com", Password: "long enough pass"}},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "long enough pass"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@example.com", Password: "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByUsernameUnknown(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	_, err := svc.GetByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}
