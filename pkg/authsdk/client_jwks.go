package authsdk

import (
	"context"
	"net/http"
)

// GetJWKS retrieves the JSON Web Key Set for token verification.
func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	var jwks JWKSResponse
	err := c.doJSON(ctx, http.MethodGet, "/.well-known/jwks.json",
		nil, "", &jwks, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &jwks, nil
}

// GetHealth retrieves the readiness report.
func (c *Client) GetHealth(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz",
		nil, "", &health, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &health, nil
}
