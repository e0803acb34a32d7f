package http

import (
	"errors"
	"net/http"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/service"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

// UserInfoHandler serves GET /api/users/me for the authenticated subject.
type UserInfoHandler struct {
	UserService *service.UserService
}

func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromContext(ctx)
	if username == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Valid token for an account that no longer exists.
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("userinfo lookup failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfoResponse(user))
}
