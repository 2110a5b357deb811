// Package resolver orchestrates a movie lookup across the primary and
// enrichment providers.
//
// A resolution runs five stages: cache check, concurrent fan-out to the
// primary record lookup plus the two enrichment calls, fallback through
// the enrichment catalog when the primary produced nothing, merge of the
// cosmetic extras onto the base record, and cache store. Enrichment
// failures never fail a lookup; the only hard error is both providers
// coming up empty.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/filmlens/filmlens/internal/cache"
	"github.com/filmlens/filmlens/internal/provider"
	"github.com/filmlens/filmlens/internal/titles"
)

const defaultProviderTimeout = 5 * time.Second

// PrimaryClient is the canonical record source.
type PrimaryClient interface {
	FetchByTitle(ctx context.Context, title string) (*provider.MovieRecord, error)
}

// EnrichmentClient supplies reviews, extended detail and the backup
// resolution path.
type EnrichmentClient interface {
	FetchReviews(ctx context.Context, title string) []provider.UserReview
	FetchDetail(ctx context.Context, title string) provider.DetailedInfo
	FetchAsFallback(ctx context.Context, title string) (*provider.MovieRecord, error)
}

// Config configures a Resolver.
type Config struct {
	Primary   PrimaryClient
	Secondary EnrichmentClient

	// Cache holds finished records. Nil means a fresh store with the
	// default TTL and capacity.
	Cache *cache.Store

	// ProviderTimeout bounds each individual provider call, not the whole
	// resolution. Zero means 5s.
	ProviderTimeout time.Duration
}

// Resolver coordinates lookups and owns the result cache.
type Resolver struct {
	primary   PrimaryClient
	secondary EnrichmentClient
	cache     *cache.Store
	timeout   time.Duration
}

// New creates a Resolver. Both providers are required.
func New(cfg Config) (*Resolver, error) {
	if cfg.Primary == nil {
		return nil, errors.New("resolver: primary client is required")
	}
	if cfg.Secondary == nil {
		return nil, errors.New("resolver: secondary client is required")
	}

	store := cfg.Cache
	if store == nil {
		store = cache.New(0, 0)
	}

	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}

	return &Resolver{
		primary:   cfg.Primary,
		secondary: cfg.Secondary,
		cache:     store,
		timeout:   timeout,
	}, nil
}

// Resolve produces the full record for rawTitle. Cache hits skip the
// providers entirely. The cache key is the lowercased raw title, so
// distinct raw spellings that normalize identically still cache
// separately.
func (r *Resolver) Resolve(ctx context.Context, rawTitle string) (*provider.MovieRecord, error) {
	key := strings.ToLower(rawTitle)
	if rec, ok := r.cache.Get(key); ok {
		slog.Debug("cache hit", "title", rawTitle)
		return rec, nil
	}

	normalized := titles.Normalize(rawTitle)
	if normalized == "" {
		return nil, provider.ErrInvalidTitle
	}

	var (
		base    *provider.MovieRecord
		baseErr error
		reviews []provider.UserReview
		detail  provider.DetailedInfo
	)

	// Join-all fan-out: every branch runs to completion and parks its
	// result; classification happens after the join.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, r.timeout)
		defer cancel()
		base, baseErr = r.primary.FetchByTitle(fctx, normalized)
		return nil
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, r.timeout)
		defer cancel()
		reviews = r.secondary.FetchReviews(fctx, normalized)
		return nil
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, r.timeout)
		defer cancel()
		detail = r.secondary.FetchDetail(fctx, normalized)
		return nil
	})
	_ = g.Wait()

	if baseErr != nil {
		slog.Warn("primary lookup failed, trying backup", "title", normalized, "error", baseErr)
		base = nil
	}

	if !base.Resolved() {
		fctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		backup, err := r.secondary.FetchAsFallback(fctx, normalized)
		if err != nil {
			return nil, err
		}
		base = backup
	}

	if reviews == nil {
		reviews = []provider.UserReview{}
	}
	base.UserReviews = reviews
	base.DetailedInfo = detail

	r.cache.Set(key, base)
	slog.Info("resolved", "title", rawTitle, "normalized", normalized, "record", base.Title)

	return base, nil
}

// ResetCache drops every cached record.
func (r *Resolver) ResetCache() {
	r.cache.Clear()
}
