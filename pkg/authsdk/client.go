package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the identity service. It covers the public
// endpoints directly; authenticated calls take the access token explicitly
// so callers control their own token lifecycle.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the identity service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a request with an optional JSON body and optional bearer
// token, decoding the response into target when the status matches.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	body any,
	accessToken string,
	target any,
	expectedStatus int,
) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseErrorResponse turns an error body into a typed *APIError. Responses
// that are not the standard envelope still come back as an APIError with the
// raw body in the description.
func parseErrorResponse(statusCode int, body []byte) error {
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        envelope.Error,
			Description: envelope.Description,
		}
	}
	return &APIError{
		StatusCode:  statusCode,
		Code:        ErrorCodeServerError,
		Description: strings.TrimSpace(string(body)),
	}
}
