package http

import (
	"net/http"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/service"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

// LogoutHandler serves POST /api/auth/logout. Revocation is best effort and
// deliberately total: unknown, expired and already-revoked tokens all get a
// 200 so the endpoint cannot be used to probe which tokens exist.
type LogoutHandler struct {
	AuthService *service.AuthService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LogoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequestBody.WriteError(w)
		return
	}
	if req.RefreshToken == "" {
		authsdk.InvalidRequest("refresh_token is required").WriteError(w)
		return
	}

	if err := h.AuthService.Revoke(ctx, req.RefreshToken); err != nil {
		log.Error("logout failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LogoutResponse{Message: "Logged out successfully."})
}

// LogoutAllHandler serves POST /api/auth/logout-all. It requires a valid
// access token and ends every session belonging to its subject.
type LogoutAllHandler struct {
	AuthService *service.AuthService
}

func (h *LogoutAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := httpx.UsernameFromContext(ctx)
	if username == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	n, err := h.AuthService.RevokeAll(ctx, username)
	if err != nil {
		log.Error("logout-all failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LogoutAllResponse{
		Message: "All sessions ended.",
		Revoked: n,
	})
}
