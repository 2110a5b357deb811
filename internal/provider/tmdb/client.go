// Package tmdb implements the secondary enrichment provider client.
//
// Every operation resolves an opaque numeric catalog ID through a title
// search before the real call. Reviews and detail are cosmetic: they
// degrade to empty values on any fault and never fail a resolution. The
// fallback path is the exception; it is the resolver's last resort and
// reports NOT_FOUND when the catalog has no match.
package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	tmdb "github.com/ryanbradynd05/go-tmdb"

	"github.com/filmlens/filmlens/internal/provider"
	"github.com/filmlens/filmlens/internal/ratelimit"
)

const providerName = "tmdb"

// DefaultBaseURL is the TMDB v3 API root, used for the raw review feed.
const DefaultBaseURL = "https://api.themoviedb.org/3"

const (
	// TMDB allows roughly 40 requests per 10 seconds.
	defaultRequestsPerSecond = 4

	maxReviews                  = 3
	defaultReviewTruncateLength = 200
	memoExpiration              = 30 * time.Minute
	memoCleanupInterval         = 10 * time.Minute
)

// CatalogAPI is the subset of *tmdb.TMDb the client uses. Declared as an
// interface so tests can substitute a fake.
type CatalogAPI interface {
	SearchMovie(name string, options map[string]string) (*tmdb.MovieSearchResults, error)
	GetMovieInfo(id int, options map[string]string) (*tmdb.Movie, error)
	GetMovieCredits(id int, options map[string]string) (*tmdb.MovieCredits, error)
}

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string

	// HTTPClient serves the raw review feed; the catalog API has its own
	// transport. The default carries a bounded timeout.
	HTTPClient *http.Client

	// Timeout applies to the default HTTP client only. Zero means 5s.
	Timeout time.Duration

	Limiter *ratelimit.Limiter

	// ReviewTruncateLength bounds review bodies (runes). Zero means 200.
	ReviewTruncateLength int

	// API overrides the go-tmdb client. Useful for tests.
	API CatalogAPI
}

// Client talks to the secondary catalog for reviews, detail and backup
// resolution.
type Client struct {
	api        CatalogAPI
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *ratelimit.Limiter
	truncateAt int

	// memo short-circuits the repeated search + detail calls that the
	// reviews, detail and fallback operations would otherwise each pay.
	memo *gocache.Cache
}

// New creates a Client. The API key is required unless a CatalogAPI
// override is supplied.
func New(cfg Config) (*Client, error) {
	api := cfg.API
	if api == nil {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("tmdb: api key is required")
		}
		api = tmdb.Init(tmdb.Config{APIKey: cfg.APIKey})
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

	truncateAt := cfg.ReviewTruncateLength
	if truncateAt <= 0 {
		truncateAt = defaultReviewTruncateLength
	}

	return &Client{
		api:        api,
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		limiter:    limiter,
		truncateAt: truncateAt,
		memo:       gocache.New(memoExpiration, memoCleanupInterval),
	}, nil
}

// FindCatalogID returns the catalog ID of the first search result for
// title, or 0 when the search has no results. Network faults are returned
// as TRANSIENT errors; enrichment callers degrade them, the fallback path
// converts them into its terminal NOT_FOUND.
func (c *Client) FindCatalogID(ctx context.Context, title string) (int, error) {
	memoKey := "id:" + title
	if cached, found := c.memo.Get(memoKey); found {
		return cached.(int), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, provider.NewTransient(providerName, err)
	}

	results, err := c.api.SearchMovie(title, map[string]string{})
	if err != nil {
		return 0, provider.NewTransient(providerName, err)
	}

	if results == nil || len(results.Results) == 0 {
		return 0, nil
	}

	id := results.Results[0].ID
	c.memo.Set(memoKey, id, gocache.DefaultExpiration)
	return id, nil
}

// FetchReviews returns up to three formatted reviews for title. Reviews
// are cosmetic: missing catalog ID, network faults and bad payloads all
// degrade to an empty slice, never an error.
func (c *Client) FetchReviews(ctx context.Context, title string) []provider.UserReview {
	reviews := []provider.UserReview{}

	id, err := c.FindCatalogID(ctx, title)
	if err != nil {
		slog.Warn("review lookup degraded", "title", title, "error", err)
		return reviews
	}
	if id == 0 {
		return reviews
	}

	feed, err := c.fetchReviewFeed(ctx, id)
	if err != nil {
		slog.Warn("review feed fetch degraded", "title", title, "error", err)
		return reviews
	}

	for _, raw := range feed.Results {
		if len(reviews) >= maxReviews {
			break
		}
		reviews = append(reviews, provider.UserReview{
			Author:    raw.Author,
			Content:   truncate(raw.Content, c.truncateAt),
			Rating:    reviewRating(raw.AuthorDetails.Rating),
			URL:       raw.URL,
			CreatedAt: formatReviewDate(raw.CreatedAt),
		})
	}

	return reviews
}

// FetchDetail returns the popularity/vote/box-office bag for title. Any
// fault degrades to the zero DetailedInfo.
func (c *Client) FetchDetail(ctx context.Context, title string) provider.DetailedInfo {
	var info provider.DetailedInfo

	id, err := c.FindCatalogID(ctx, title)
	if err != nil {
		slog.Warn("detail lookup degraded", "title", title, "error", err)
		return info
	}
	if id == 0 {
		return info
	}

	movie, err := c.movieInfo(ctx, id)
	if err != nil {
		slog.Warn("detail fetch degraded", "title", title, "error", err)
		return info
	}

	if revenue := int64(movie.Revenue); revenue > 0 {
		budget := int64(movie.Budget)
		info.BoxOffice = &provider.BoxOffice{
			Revenue:   revenue,
			Budget:    budget,
			Formatted: FormatBoxOffice(revenue, budget),
		}
	}

	info.Popularity = float64(movie.Popularity)
	info.VoteAverage = float64(movie.VoteAverage)
	info.VoteCount = int(movie.VoteCount)

	return info
}

// FetchAsFallback resolves title entirely through the catalog when the
// primary provider has no record: search, detail by ID, then field-by-field
// translation into the canonical shape. Fields the catalog cannot supply
// map to "N/A".
func (c *Client) FetchAsFallback(ctx context.Context, title string) (*provider.MovieRecord, error) {
	id, err := c.FindCatalogID(ctx, title)
	if err != nil {
		slog.Warn("fallback search failed", "title", title, "error", err)
		return nil, provider.NewNotFound(providerName, fmt.Sprintf("no catalog match for %q", title))
	}
	if id == 0 {
		return nil, provider.NewNotFound(providerName, fmt.Sprintf("no catalog match for %q", title))
	}

	movie, err := c.movieInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	// Credits are best-effort: without them the director and actor fields
	// fall back to "N/A" like every other gap.
	var credits *tmdb.MovieCredits
	if err := c.limiter.Wait(ctx); err == nil {
		credits, err = c.api.GetMovieCredits(id, map[string]string{})
		if err != nil {
			slog.Warn("fallback credits degraded", "title", title, "error", err)
			credits = nil
		}
	}

	return recordFromMovie(movie, credits), nil
}

// movieInfo fetches (and memoizes) the full catalog detail for id.
func (c *Client) movieInfo(ctx context.Context, id int) (*tmdb.Movie, error) {
	memoKey := fmt.Sprintf("movie:%d", id)
	if cached, found := c.memo.Get(memoKey); found {
		return cached.(*tmdb.Movie), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, provider.NewTransient(providerName, err)
	}

	movie, err := c.api.GetMovieInfo(id, map[string]string{})
	if err != nil {
		return nil, provider.NewTransient(providerName, err)
	}
	if movie == nil {
		return nil, provider.NewTransient(providerName, fmt.Errorf("empty detail payload for id %d", id))
	}

	c.memo.Set(memoKey, movie, gocache.DefaultExpiration)
	return movie, nil
}
