package identity_test

import (
	"testing"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
)

// TestRateLimitLoginEndpoint verifies that the login endpoint is rate
// limited. Credential endpoints carry the strict limit (5 req/min) to slow
// down brute force attempts.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupIdentityContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	// Make requests until we hit the rate limit. The strict burst is 5, so
	// the 6th rapid request must be turned away.
	var lastErr error
	for i := range 6 {
		_, err := client.Login(t.Context(), "wronguser", "wrongpass")
		if i < 5 {
			// First 5 fail on credentials, not on the limiter.
			requireAPIError(t, err, 401, "invalid_credentials")
		} else {
			lastErr = err
		}
	}

	requireAPIError(t, lastErr, 429, "rate_limit_exceeded")
	t.Logf("Successfully rate limited after 5 requests to the login endpoint")
}
