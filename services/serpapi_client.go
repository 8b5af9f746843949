package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/healthsnap/summarizer/models"
)

// SearchProvider runs a web search and returns the raw structured page.
type SearchProvider interface {
	Query(ctx context.Context, q string) (*models.SearchResponse, error)
}

// SerpAPIClient queries Google through SerpAPI.
type SerpAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// SerpAPIOption configures a SerpAPIClient.
type SerpAPIOption func(*SerpAPIClient)

// WithSerpAPIBaseURL overrides https://serpapi.com.
func WithSerpAPIBaseURL(baseURL string) SerpAPIOption {
	return func(c *SerpAPIClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithSerpAPIHTTPClient sets the HTTP client (and with it the timeout).
func WithSerpAPIHTTPClient(client *http.Client) SerpAPIOption {
	return func(c *SerpAPIClient) {
		c.httpClient = client
	}
}

// NewSerpAPIClient creates a SerpAPI search provider.
func NewSerpAPIClient(apiKey string, opts ...SerpAPIOption) *SerpAPIClient {
	c := &SerpAPIClient{
		apiKey:     apiKey,
		baseURL:    "https://serpapi.com",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query calls GET /search?engine=google.
func (c *SerpAPIClient) Query(ctx context.Context, q string) (*models.SearchResponse, error) {
	if c.apiKey == "" {
		return nil, newProviderError("serpapi", "search", 0, ErrMissingAPIKey)
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", q)
	params.Set("api_key", c.apiKey)
	searchURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, newProviderError("serpapi", "search", 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newProviderError("serpapi", "search", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, newProviderError("serpapi", "search", resp.StatusCode, fmt.Errorf("body: %s", string(bodyBytes)))
	}

	var searchResp models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, newProviderError("serpapi", "search", resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	// SerpAPI reports "no results" as a 200 with an error field; that is an
	// empty page, not a failure.
	return &searchResp, nil
}
