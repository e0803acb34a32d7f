package identity_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for identity service end-to-end
 * tests. This includes container setup, account helpers, and assertions.
 */

const (
	testImageName = "identity-service-test:latest"

	testIssuer   = "identity-e2e"
	testUsername = "alice"
	testEmail    = "alice@example.com"
	testPassword = "correct-horse-battery"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Identity Service Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	// Run all tests
	exitCode := m.Run()

	// Clean up the Docker image after all tests complete
	fmt.Fprintf(os.Stdout, "Cleaning up Identity Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/identity/Dockerfile",
		"../../../")
	cmd.Dir = "." // Ensure we're in the test directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupIdentityContainer starts the identity service in a container and
// returns the base URL. Rate limits are raised well above anything the
// tests can hit; use setupIdentityContainerWithDefaultRateLimits to test
// rate limiting itself.
func setupIdentityContainer(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, map[string]string{
		"IDENTITY_DATABASE_FILE": "/data/identity.db",
		"IDENTITY_PEPPER_FILE":   "/data/pepper",
		"IDENTITY_ISSUER":        testIssuer,
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
		// Increase rate limits for E2E tests to prevent test failures.
		// Tests often make many rapid requests which would otherwise hit
		// the strict production limits.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	})
}

// setupIdentityContainerWithDefaultRateLimits starts the identity service
// with PRODUCTION rate limits. Only the rate limiting tests should use this.
func setupIdentityContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, map[string]string{
		"IDENTITY_DATABASE_FILE": "/data/identity.db",
		"IDENTITY_PEPPER_FILE":   "/data/pepper",
		"IDENTITY_ISSUER":        testIssuer,
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
		// NOTE: No rate limit overrides - using production defaults.
	})
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerAndLogin creates the standard test account and logs it in.
func registerAndLogin(t *testing.T, client *authsdk.Client) *authsdk.TokenResponse {
	t.Helper()

	_, err := client.Register(t.Context(), testUsername, testEmail, testPassword)
	require.NoError(t, err, "Registration should succeed on a fresh container")

	pair, err := client.Login(t.Context(), testUsername, testPassword)
	require.NoError(t, err, "Login should succeed with the registered credentials")
	assertTokenResponse(t, pair)

	return pair
}

// assertTokenResponse checks the shape every token grant must have.
func assertTokenResponse(t *testing.T, pair *authsdk.TokenResponse) {
	t.Helper()

	require.NotNil(t, pair)
	require.NotEmpty(t, pair.AccessToken, "Access token should be present")
	require.NotEmpty(t, pair.RefreshToken, "Refresh token should be present")
	require.Equal(t, "Bearer", pair.TokenType)
	require.Positive(t, pair.ExpiresIn, "Access token lifetime should be positive")
}
