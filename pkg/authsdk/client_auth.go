package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login",
		LoginRequest{Username: username, Password: password},
		"", &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh rotates a refresh token for a new pair. The presented token stops
// working whether or not the call succeeds on the caller's side.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh",
		RefreshRequest{RefreshToken: refreshToken},
		"", &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the session behind a refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout",
		LogoutRequest{RefreshToken: refreshToken},
		"", nil, http.StatusOK)
}

// LogoutAll revokes every session for the access token's subject and reports
// how many were ended.
func (c *Client) LogoutAll(ctx context.Context, accessToken string) (int64, error) {
	var out LogoutAllResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout-all",
		nil, accessToken, &out, http.StatusOK)
	if err != nil {
		return 0, err
	}
	return out.Revoked, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) (*UserInfoResponse, error) {
	var out UserInfoResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/users/register",
		RegisterRequest{Username: username, Email: email, Password: password},
		"", &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind an access token.
func (c *Client) Me(ctx context.Context, accessToken string) (*UserInfoResponse, error) {
	var out UserInfoResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/users/me",
		nil, accessToken, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
