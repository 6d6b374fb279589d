// Package backend holds clients for the managed backend's HTTP surfaces:
// the identity provider and the private object storage. Tables are reached
// separately through the store package.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// ErrSignInRejected is returned when the identity provider rejects the
// presented credentials.
var ErrSignInRejected = errors.New("identity provider rejected credentials")

// IdentityClient talks to the managed identity provider's password-grant
// and logout endpoints.
type IdentityClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewIdentityClient creates a client for the identity provider at baseURL,
// authenticating with the project API key.
func NewIdentityClient(baseURL, apiKey string) *IdentityClient {
	return &IdentityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// SignIn verifies the credentials and returns the provider's access token.
// A 4xx response maps to ErrSignInRejected; transport and 5xx failures are
// returned as-is so callers can distinguish bad credentials from an
// unreachable provider.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal sign-in request: %w", err)
	}

	url := c.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", ErrSignInRejected
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("sign in: identity provider returned %d", resp.StatusCode)
	}

	var decoded signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode sign-in response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", errors.New("sign in: empty access token")
	}
	return decoded.AccessToken, nil
}

// SignOut revokes the provider session for the given access token. Revoking
// an already-dead session is not an error.
func (c *IdentityClient) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("build sign-out request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer resp.Body.Close()

	// 401 means the session was already gone; logout stays idempotent.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("sign out: identity provider returned %d", resp.StatusCode)
	}
	return nil
}
