package codes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// DefaultCatalogURL is the NHTSA ncodes endpoint the catalog is sourced
// from by default.
const DefaultCatalogURL = "https://nrd.api.nhtsa.dot.gov/nhtsa/nhtsadb/api/v1/ncodes"

// APIError represents a failure talking to the catalog API. It includes
// the HTTP status code when one was received.
type APIError struct {
	// URL is the endpoint that failed.
	URL string

	// StatusCode is the HTTP status code (0 if the request never
	// completed).
	StatusCode int

	// Message describes the failure.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("catalog API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog API error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// ClientConfig contains configuration for the catalog client.
type ClientConfig struct {
	// URL is the catalog endpoint. Default: DefaultCatalogURL.
	URL string

	// Timeout is the per-request timeout. Default: 10s, matching the
	// upstream API's documented expectations.
	Timeout time.Duration
}

// Client fetches the valid code catalog from the NHTSA API.
type Client struct {
	config ClientConfig
	client *http.Client
	logger *slog.Logger
}

// catalogResponse is the wire shape of the ncodes endpoint.
type catalogResponse struct {
	Results []CatalogRecord `json:"results"`
}

// NewClient creates a catalog client.
func NewClient(config ClientConfig) *Client {
	if config.URL == "" {
		config.URL = DefaultCatalogURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: slog.Default().With("component", "codes.client"),
	}
}

// Probe validates the catalog endpoint before it is relied on: the
// endpoint must be reachable, return JSON with a "results" array, and
// the first result must carry a code. It returns the decoded records so
// a successful probe doubles as a fetch.
func (c *Client) Probe(ctx context.Context) ([]CatalogRecord, error) {
	body, status, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	var resp catalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &APIError{
			URL:        c.config.URL,
			StatusCode: status,
			Message:    "response is not valid JSON",
			Cause:      err,
		}
	}
	if resp.Results == nil {
		return nil, &APIError{
			URL:        c.config.URL,
			StatusCode: status,
			Message:    "unexpected JSON structure (missing 'results')",
		}
	}
	if len(resp.Results) == 0 || resp.Results[0].Code == "" {
		return nil, &APIError{
			URL:        c.config.URL,
			StatusCode: status,
			Message:    "no 'code' field found in API response",
		}
	}

	return resp.Results, nil
}

// Fetch retrieves the catalog and returns its records sorted by
// (CodeName, Code) for deterministic downstream output.
func (c *Client) Fetch(ctx context.Context) ([]CatalogRecord, error) {
	records, err := c.Probe(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CodeName != records[j].CodeName {
			return records[i].CodeName < records[j].CodeName
		}
		return records[i].Code < records[j].Code
	})

	c.logger.Info("catalog fetched",
		"url", c.config.URL,
		"records", len(records),
	)

	return records, nil
}

// get performs the HTTP request and returns the raw body.
func (c *Client) get(ctx context.Context) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return nil, 0, &APIError{URL: c.config.URL, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, &APIError{URL: c.config.URL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &APIError{
			URL:        c.config.URL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &APIError{
			URL:        c.config.URL,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response body",
			Cause:      err,
		}
	}
	return body, resp.StatusCode, nil
}
