package http

import (
	"errors"
	"net/http"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/service"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

// RefreshHandler serves POST /api/auth/refresh. The presented refresh token
// is rotated: it stops working and a new pair comes back.
type RefreshHandler struct {
	AuthService *service.AuthService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequestBody.WriteError(w)
		return
	}
	if req.RefreshToken == "" {
		authsdk.InvalidRequest("refresh_token is required").WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, req.RefreshToken, r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpiredRefresh),
			errors.Is(err, service.ErrInvalidRefresh),
			errors.Is(err, service.ErrAccountDisabled):
			// One answer for every failure cause. Expired, revoked,
			// forged and disabled-account tokens must be
			// indistinguishable to whoever holds them; the cause
			// stays in the logs.
			log.Info("refresh rejected", "reason", err)
			authsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("refresh failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}
