package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/service"
	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	keys *jwtx.KeySet,
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		corsMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerDiscovery()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	refresh := &RefreshHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(refresh,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logout := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	logoutAll := &LogoutAllHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/logout-all",
		httpx.Chain(logoutAll,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	register := &RegisterHandler{UserService: r.UserService}
	r.Mux.Handle("POST /api/users/register",
		httpx.Chain(register,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	me := &UserInfoHandler{UserService: r.UserService}
	r.Mux.Handle("GET /api/users/me",
		httpx.Chain(me,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDiscovery() {
	jwks := httpx.Chain(JWKSHandler(r.keys),
		httpx.RateLimitByIP(httpx.PublicLimit),
	)

	// Both paths serve the same document; gateways expect the well-known
	// location while older clients were built against /jwks.
	r.Mux.Handle("GET /.well-known/jwks.json", jwks)
	r.Mux.Handle("GET /jwks", jwks)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
