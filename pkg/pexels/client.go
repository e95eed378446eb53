// Package pexels is a minimal client for the Pexels photo search API, used
// to seed a hero image when a destination has no curated assets yet.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/roteirolab/roteiro-backend/logger"
)

const pexelsAPIBaseURL = "https://api.pexels.com/v1"

// ClientInterface defines the interface for Pexels client operations
type ClientInterface interface {
	SearchDestinationImage(ctx context.Context, query string) (string, error)
}

type Client struct {
	apiKey     string
	httpClient *http.Client
}

type searchResponse struct {
	Photos []photo `json:"photos"`
}

type photo struct {
	ID     int    `json:"id"`
	Source source `json:"src"`
}

type source struct {
	Landscape string `json:"landscape"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// SearchDestinationImage returns a landscape photo URL for the query, or an
// empty string when nothing was found.
func (c *Client) SearchDestinationImage(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("per_page", "1")
	params.Add("orientation", "landscape")

	finalURL := fmt.Sprintf("%s/search?%s", pexelsAPIBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.GetLogger().Warnw("Pexels API returned non-OK status", "statusCode", resp.StatusCode)
		return "", fmt.Errorf("pexels API returned status: %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Photos) == 0 {
		logger.GetLogger().Debugw("No photos found in Pexels response", "query", query)
		return "", nil
	}
	return searchResp.Photos[0].Source.Landscape, nil
}
