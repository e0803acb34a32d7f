package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

// AccessTokenVerifier is the slice of the token codec the middleware needs.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (jwtx.AccessClaims, error)
}

// AuthnMiddleware requires a valid bearer access token. Subject, user ID and
// the full claim set are injected into the request context for handlers.
func AuthnMiddleware(v AccessTokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.VerifyAccessToken(raw)
			if err != nil {
				switch {
				case errors.Is(err, jwtx.ErrExpired):
					writeBearerError(w, "token expired")
				case errors.Is(err, jwtx.ErrTokenType):
					writeBearerError(w, "not an access token")
				default:
					writeBearerError(w, "token verification failed")
					log.Warn("jwt verify failed", "err", err)
				}
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.AccessClaims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
