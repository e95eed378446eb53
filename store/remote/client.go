// Package remote implements the store interfaces against the hosted
// Supabase/PostgREST backend. All expected failure modes (network
// unreachable, non-2xx, malformed body) are normalized to store errors and
// logged; nothing here panics past the store boundary.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/roteirolab/roteiro-backend/config"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/store"
	"go.uber.org/zap"
)

// Client wraps the PostgREST endpoint shared by the remote stores.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewClient builds a REST client from the Supabase configuration.
func NewClient(cfg *config.SupabaseConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.GetLogger(),
	}
}

// do issues one PostgREST request. rawQuery carries the equality filter
// (exactly one of id/public_id/key per call); prefer sets the Prefer header
// when non-empty. The response body is returned for 2xx statuses; anything
// else is a soft failure wrapped in store.ErrUnavailable.
func (c *Client) do(ctx context.Context, method, table, rawQuery string, payload interface{}, prefer string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("PostgREST request failed", "method", method, "table", table, "error", err)
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", store.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warnw("PostgREST returned non-2xx status",
			"method", method, "table", table, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", store.ErrUnavailable, resp.StatusCode)
	}

	return respBody, nil
}
