// Package providerhttp is the JSON-over-HTTP plumbing shared by the weather
// and imagery provider clients.
package providerhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

const maxErrorBody = 512

// Client issues GET requests against one provider base URL.
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
}

// New returns a client for baseURL. The timeout caps a single request; the
// engine's per-query deadline still applies through the context.
func New(baseURL string, timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: headers,
	}
}

// GetJSON fetches path with query and decodes the body into out. A 404 or 204
// maps to port.ErrProviderUnavailable.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return fmt.Errorf("%s returned %d: %w", path, resp.StatusCode, port.ErrProviderUnavailable)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
