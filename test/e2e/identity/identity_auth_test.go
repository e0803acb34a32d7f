package identity_test

import (
	"testing"

	"github.com/nhattaihuynh/badmintonSocialNetwork/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginMe tests the complete account flow:
// 1. Register a new account
// 2. Login with the new credentials
// 3. Fetch the account behind the access token
func TestRegisterLoginMe(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	created, err := client.Register(t.Context(), testUsername, testEmail, testPassword)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, testUsername, created.Username)
	require.Equal(t, testEmail, created.Email)
	require.True(t, created.Enabled)

	t.Logf("Registered account %s", created.ID)

	pair, err := client.Login(t.Context(), testUsername, testPassword)
	require.NoError(t, err)
	assertTokenResponse(t, pair)

	me, err := client.Me(t.Context(), pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, created.ID, me.ID)
	require.Equal(t, testUsername, me.Username)

	t.Logf("Access token resolves to account %s", me.ID)
}

// TestRegisterDuplicate verifies that a taken username or email is rejected
// with a conflict, not a server error.
func TestRegisterDuplicate(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Register(t.Context(), testUsername, testEmail, testPassword)
	require.NoError(t, err)

	_, err = client.Register(t.Context(), testUsername, "other@example.com", testPassword)
	requireAPIError(t, err, 409, "username_taken")

	_, err = client.Register(t.Context(), "someoneelse", testEmail, testPassword)
	requireAPIError(t, err, 409, "email_taken")
}

// TestLoginRejectsBadCredentials verifies that a wrong password and an
// unknown username produce the same opaque error.
func TestLoginRejectsBadCredentials(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Register(t.Context(), testUsername, testEmail, testPassword)
	require.NoError(t, err)

	_, err = client.Login(t.Context(), testUsername, "not-the-password")
	requireAPIError(t, err, 401, "invalid_credentials")

	_, err = client.Login(t.Context(), "nobody", testPassword)
	requireAPIError(t, err, 401, "invalid_credentials")
}

// TestMeRequiresAccessToken verifies the userinfo endpoint rejects missing
// and malformed credentials.
func TestMeRequiresAccessToken(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Me(t.Context(), "")
	requireStatus(t, err, 401)

	_, err = client.Me(t.Context(), "not-a-jwt")
	requireStatus(t, err, 401)
}

// requireAPIError asserts that err is a service error with the given status
// and error code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	require.Error(t, err)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr, "Error should carry the service's error envelope")
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

// requireStatus asserts the HTTP status alone. Bearer challenges answer with
// a WWW-Authenticate header and no body, so there is no envelope to inspect.
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
}
