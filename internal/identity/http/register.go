package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/domain"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/service"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

// RegisterHandler serves POST /api/users/register.
type RegisterHandler struct {
	UserService *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequestBody.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			authsdk.InvalidRequest("username, email or password does not meet requirements").WriteError(w)
		case errors.Is(err, service.ErrUsernameTaken):
			authsdk.ErrUsernameTaken.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			authsdk.ErrEmailTaken.WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userInfoResponse(user))
}

func userInfoResponse(u domain.User) authsdk.UserInfoResponse {
	return authsdk.UserInfoResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Enabled:       u.Enabled,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
