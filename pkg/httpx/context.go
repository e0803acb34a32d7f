package httpx

import (
	"context"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUsername ctxKey = "username"
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyClaims   ctxKey = "claims"
)

// UsernameFromContext returns the authenticated subject, or "" when the
// request carried no verified token.
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUsername).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified access claims for the request.
func ClaimsFromContext(ctx context.Context) (jwtx.AccessClaims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.AccessClaims)
	return c, ok
}
