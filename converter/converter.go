// Package converter turns Shopee product links into affiliate-tracked
// links. The actual conversion happens in an external console session; this
// package defines the boundary and a client for a remote conversion
// service.
package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Converter resolves one Shopee URL to its affiliate equivalent. A failed
// conversion returns an error and must leave the stored link untouched.
type Converter interface {
	Convert(ctx context.Context, shopeeURL string) (string, error)
}

// Result is the wire shape shared by the conversion API and its clients.
type Result struct {
	Success       bool   `json:"success"`
	AffiliateLink string `json:"affiliate_link,omitempty"`
	OriginalLink  string `json:"original_link"`
	Error         string `json:"error,omitempty"`
}

// HTTPConverter calls a remote conversion service's /api/convert endpoint.
type HTTPConverter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPConverter creates a converter client for the given base endpoint,
// e.g. "http://localhost:8000".
func NewHTTPConverter(endpoint string, timeout time.Duration) *HTTPConverter {
	return &HTTPConverter{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Convert posts the Shopee URL to the remote service and returns the
// affiliate link it resolved.
func (c *HTTPConverter) Convert(ctx context.Context, shopeeURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"shopee_url": shopeeURL})
	if err != nil {
		return "", fmt.Errorf("failed to encode convert request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/convert", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build convert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("convert request failed: %w", err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode convert response: %w", err)
	}

	if !result.Success || result.AffiliateLink == "" {
		if result.Error != "" {
			return "", fmt.Errorf("conversion failed for %s: %s", shopeeURL, result.Error)
		}
		return "", fmt.Errorf("conversion failed for %s: status %d", shopeeURL, resp.StatusCode)
	}

	return result.AffiliateLink, nil
}
