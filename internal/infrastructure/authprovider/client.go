// Package authprovider calls the external session-exchange service.
package authprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"centime/internal/domain/session"
	"centime/internal/shared/config"
)

// Client implements session.Provider against the provider's HTTP API.
// Exchange makes a single attempt; any transport error or non-2xx status
// collapses into session.ErrNotAuthenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.AuthProviderConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Exchange(ctx context.Context, sessionID string) (*session.Identity, error) {
	url := c.baseURL + "/auth/v1/env/oauth/session-data"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build session-data request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: auth provider unreachable: %v", session.ErrNotAuthenticated, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: auth provider returned %d", session.ErrNotAuthenticated, resp.StatusCode)
	}

	var identity session.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("%w: invalid session-data response: %v", session.ErrNotAuthenticated, err)
	}
	return &identity, nil
}
