package http

import (
	"net/http"
	"time"

	"github.com/nhattaihuynh/badmintonSocialNetwork/internal/identity/store"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/jwtx"
)

// ReadyzHandler is the readiness probe. It degrades to 503 when the database
// is unreachable or no signing key is loaded.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
