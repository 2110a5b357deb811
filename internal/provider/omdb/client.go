// Package omdb implements the primary metadata provider client.
//
// Lookup order is fixed: an exact title match first, then a fuzzy search
// whose best candidate is re-fetched by its IMDb ID. The fuzzy path only
// runs after the exact lookup reports no match, never in parallel with it.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/filmlens/filmlens/internal/provider"
	"github.com/filmlens/filmlens/internal/ratelimit"
)

const providerName = "omdb"

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// The free OMDb tier allows 1000 requests/day; one request a second keeps
// bursts of hover lookups well inside that.
const defaultRequestsPerSecond = 1

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string

	// HTTPClient overrides the default client. Useful for tests. The
	// default carries a bounded timeout so a hung provider cannot stall a
	// resolution indefinitely.
	HTTPClient *http.Client

	// Timeout applies to the default HTTP client only (ignored when
	// HTTPClient is set). Zero means 5s.
	Timeout time.Duration

	Limiter *ratelimit.Limiter
}

// Client issues OMDb lookups and maps the provider envelope into the
// canonical record shape.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *ratelimit.Limiter
}

// New creates a Client. The API key is required.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("omdb: api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = ratelimit.New(providerName, defaultRequestsPerSecond)
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		limiter:    limiter,
	}, nil
}

// FetchByTitle resolves a cleaned title into a record. It returns a
// NOT_FOUND error only after both the exact lookup and the fuzzy fallback
// (including its detail sub-call) come up empty; network and parse faults
// surface as TRANSIENT instead.
func (c *Client) FetchByTitle(ctx context.Context, title string) (*provider.MovieRecord, error) {
	var data titlePayload
	err := c.query(ctx, url.Values{"t": {title}, "plot": {"short"}}, &data)
	if err != nil {
		return nil, provider.NewTransient(providerName, err)
	}

	if !data.found() {
		return c.searchAndFetch(ctx, title)
	}

	return data.toRecord(), nil
}

// searchAndFetch is the fuzzy fallback: search, take the most relevant
// candidate, then fetch its full record by IMDb ID.
func (c *Client) searchAndFetch(ctx context.Context, title string) (*provider.MovieRecord, error) {
	var results searchPayload
	err := c.query(ctx, url.Values{"s": {title}}, &results)
	if err != nil {
		return nil, provider.NewTransient(providerName, err)
	}

	if results.Response != "True" || len(results.Search) == 0 {
		return nil, provider.NewNotFound(providerName, fmt.Sprintf("no match for %q", title))
	}

	first := results.Search[0]

	var detail titlePayload
	err = c.query(ctx, url.Values{"i": {first.ImdbID}, "plot": {"short"}}, &detail)
	if err != nil {
		return nil, provider.NewTransient(providerName, err)
	}

	if !detail.found() {
		return nil, provider.NewNotFound(providerName, fmt.Sprintf("no match for %q", title))
	}

	return detail.toRecord(), nil
}

// query issues one GET against the OMDb endpoint with the api key applied
// and decodes the JSON body into target.
func (c *Client) query(ctx context.Context, params url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	params.Set("apikey", c.apiKey)
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("omdb: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
