package http

import (
	"net/http"
	"time"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/httpx"
)

// LivezHandler is the liveness probe. It answers 200 whenever the process is
// up, regardless of dependency health.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
