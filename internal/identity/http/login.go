package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/domain"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/service"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

// LoginHandler serves POST /api/auth/login. Bad passwords, unknown usernames
// and disabled accounts all return the same 401 so the endpoint cannot be
// used to enumerate accounts.
type LoginHandler struct {
	AuthService *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequestBody.WriteError(w)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		authsdk.InvalidRequest("username and password are required").WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(ctx, req.Username, req.Password, r.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			authsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

func tokenResponse(pair *domain.TokenPair) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		Scope:        pair.Scope,
	}
}
