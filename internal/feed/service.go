// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package feed assembles ranked listings. Each call fetches a bounded pool
// from the article store, hands it to an engine and caches the result.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/cache"
	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/database"
	"github.com/tomtom215/touchline/internal/metrics"
	"github.com/tomtom215/touchline/internal/ranking"
	"github.com/tomtom215/touchline/internal/signals"
	"github.com/tomtom215/touchline/internal/similarity"
	"github.com/tomtom215/touchline/internal/trending"
)

var (
	// ErrUnavailable means the article store is rejecting calls.
	ErrUnavailable = database.ErrUnavailable
	// ErrNotFound means the reference article does not exist.
	ErrNotFound = database.ErrNotFound
	// ErrUnknownProfile means no weight profile has the requested name.
	ErrUnknownProfile = errors.New("unknown ranking profile")
)

// Config bounds pools and result sizes.
type Config struct {
	PoolSize           int
	SimilarityPoolSize int
	DefaultLimit       int
	MaxLimit           int
	CacheEnabled       bool
	CacheTTL           time.Duration
}

// Listing is a ranked result and whether it came from the cache.
type Listing struct {
	Posts  []content.ScoredItem
	Cached bool
}

// Page is one page of a ranked category listing.
type Page struct {
	Posts  []content.ScoredItem
	Total  int
	Page   int
	Limit  int
	Cached bool
}

// Health summarizes store reachability.
type Health struct {
	DatabaseOK bool
	Articles   int
	Breaker    string
}

type entry struct {
	posts      []content.ScoredItem
	categories []trending.CategoryTrend
}

// Service is safe for concurrent use.
type Service struct {
	store      database.PoolSource
	ranking    *ranking.Engine
	similarity *similarity.Engine
	cache      *cache.Cache[entry]
	cfg        Config
	logger     zerolog.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source for the trending window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the store and engines together.
//
//nolint:gocritic // Config is copied once at construction
func NewService(store database.PoolSource, rank *ranking.Engine, sim *similarity.Engine,
	cfg Config, logger zerolog.Logger, opts ...Option) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = database.DefaultPoolLimit
	}
	if cfg.SimilarityPoolSize <= 0 {
		cfg.SimilarityPoolSize = cfg.PoolSize
	}

	s := &Service{
		store:      store,
		ranking:    rank,
		similarity: sim,
		cfg:        cfg,
		logger:     logger.With().Str("component", "feed").Logger(),
		now:        time.Now,
	}
	if cfg.CacheEnabled && cfg.CacheTTL > 0 {
		s.cache = cache.New[entry](cfg.CacheTTL)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheSweeper returns a supervisor service that purges expired listings,
// or nil when caching is disabled.
func (s *Service) CacheSweeper() *cache.Sweeper {
	if s.cache == nil {
		return nil
	}
	return cache.NewSweeper("listing-cache", s.cache, s.cfg.CacheTTL)
}

// ClearCache drops every cached listing.
func (s *Service) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Profiles returns the ranking profile registry.
func (s *Service) Profiles() ranking.Profiles {
	return s.ranking.Profiles()
}

// HasProfile reports whether a weight profile is registered under name.
func (s *Service) HasProfile(name string) bool {
	_, ok := s.ranking.Profiles().Get(name)
	return ok
}

// Limit clamps a requested size to [1, MaxLimit]; 0 selects DefaultLimit.
func (s *Service) Limit(requested int) int {
	switch {
	case requested <= 0:
		return s.cfg.DefaultLimit
	case requested > s.cfg.MaxLimit:
		return s.cfg.MaxLimit
	default:
		return requested
	}
}

// Surface ranks the recent pool with the named profile.
func (s *Service) Surface(ctx context.Context, profile string, limit int) (Listing, error) {
	if !s.HasProfile(profile) {
		return Listing{}, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}
	limit = s.Limit(limit)

	key := cache.Key("surface", map[string]interface{}{"profile": profile, "limit": limit})
	posts, cached, err := s.cached(ctx, profile, key, func() (entry, error) {
		pool, err := s.list(ctx, "surface_pool", database.PoolQuery{Limit: s.cfg.PoolSize})
		if err != nil {
			return entry{}, err
		}
		start := time.Now()
		ranked := s.ranking.Rank(pool, profile, limit)
		metrics.RecordRanking(profile, len(pool), time.Since(start))
		return entry{posts: ranked}, nil
	})
	if err != nil {
		return Listing{}, err
	}
	return Listing{Posts: posts.posts, Cached: cached}, nil
}

// Category ranks every published article in a category with the
// categoryPage profile and returns one page of the result. Pages are
// numbered from 1.
func (s *Service) Category(ctx context.Context, slug string, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	limit = s.Limit(limit)
	const surface = "category"

	key := cache.Key(surface, map[string]interface{}{"slug": slug})
	ranked, cached, err := s.cached(ctx, surface, key, func() (entry, error) {
		total, err := s.store.CountPublished(ctx, slug)
		if err != nil {
			s.storeError("count_published", err)
			return entry{}, err
		}
		if total == 0 {
			return entry{posts: []content.ScoredItem{}}, nil
		}
		pool, err := s.list(ctx, "category_pool", database.PoolQuery{CategorySlug: slug, Limit: total})
		if err != nil {
			return entry{}, err
		}
		start := time.Now()
		all := s.ranking.CategoryPosts(pool, slug, len(pool))
		metrics.RecordRanking(surface, len(pool), time.Since(start))
		return entry{posts: all}, nil
	})
	if err != nil {
		return Page{}, err
	}

	all := ranked.posts
	from := (page - 1) * limit
	if from > len(all) {
		from = len(all)
	}
	to := from + limit
	if to > len(all) {
		to = len(all)
	}
	return Page{
		Posts:  append([]content.ScoredItem{}, all[from:to]...),
		Total:  len(all),
		Page:   page,
		Limit:  limit,
		Cached: cached,
	}, nil
}

// TrendingCategories rolls up trending velocity per category over the
// recent pool.
func (s *Service) TrendingCategories(ctx context.Context) ([]trending.CategoryTrend, bool, error) {
	const surface = "trendingCategories"
	res, cached, err := s.cached(ctx, surface, cache.Key(surface, nil), func() (entry, error) {
		pool, err := s.list(ctx, "trending_pool", database.PoolQuery{Limit: s.cfg.PoolSize})
		if err != nil {
			return entry{}, err
		}
		start := time.Now()
		cats := s.ranking.TrendingCategories(pool)
		metrics.RecordRanking(surface, len(pool), time.Since(start))
		return entry{categories: cats}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.categories, cached, nil
}

// Related ranks recent articles by similarity to the article with slug.
func (s *Service) Related(ctx context.Context, slug string, limit int) (Listing, error) {
	limit = s.Limit(limit)
	const surface = "related"

	key := cache.Key(surface, map[string]interface{}{"slug": slug, "limit": limit})
	res, cached, err := s.cached(ctx, surface, key, func() (entry, error) {
		ref, err := s.reference(ctx, slug)
		if err != nil {
			return entry{}, err
		}
		pool, err := s.list(ctx, "related_pool", database.PoolQuery{Limit: s.cfg.SimilarityPoolSize})
		if err != nil {
			return entry{}, err
		}
		start := time.Now()
		posts := s.similarity.RelatedPosts(ref, pool, limit)
		metrics.RecordRanking(surface, len(pool), time.Since(start))
		return entry{posts: posts}, nil
	})
	if err != nil {
		return Listing{}, err
	}
	return Listing{Posts: res.posts, Cached: cached}, nil
}

// RelatedByCategory lists the newest articles sharing the reference
// article's category.
func (s *Service) RelatedByCategory(ctx context.Context, slug string, limit int) (Listing, error) {
	limit = s.Limit(limit)
	const surface = "relatedByCategory"

	key := cache.Key(surface, map[string]interface{}{"slug": slug, "limit": limit})
	res, cached, err := s.cached(ctx, surface, key, func() (entry, error) {
		ref, err := s.reference(ctx, slug)
		if err != nil {
			return entry{}, err
		}
		// One extra so dropping the reference still fills the limit.
		pool, err := s.list(ctx, "related_category_pool",
			database.PoolQuery{CategorySlug: ref.Category.Slug, Limit: limit + 1})
		if err != nil {
			return entry{}, err
		}
		start := time.Now()
		posts := s.similarity.RelatedPostsByCategory(ref.Category.Slug, ref.ID, pool, limit)
		metrics.RecordRanking(surface, len(pool), time.Since(start))
		return entry{posts: posts}, nil
	})
	if err != nil {
		return Listing{}, err
	}
	return Listing{Posts: res.posts, Cached: cached}, nil
}

// TrendingPosts lists the most viewed articles of the last week.
func (s *Service) TrendingPosts(ctx context.Context, limit int) (Listing, error) {
	limit = s.Limit(limit)
	const surface = "trendingPosts"

	key := cache.Key(surface, map[string]interface{}{"limit": limit})
	res, cached, err := s.cached(ctx, surface, key, func() (entry, error) {
		since := s.now().Add(-signals.FreshnessDays * 24 * time.Hour)
		pool, err := s.list(ctx, "trending_posts_pool",
			database.PoolQuery{Since: since, Limit: s.cfg.PoolSize})
		if err != nil {
			return entry{}, err
		}
		start := time.Now()
		posts := s.similarity.TrendingPosts(pool, limit)
		metrics.RecordRanking(surface, len(pool), time.Since(start))
		return entry{posts: posts}, nil
	})
	if err != nil {
		return Listing{}, err
	}
	return Listing{Posts: res.posts, Cached: cached}, nil
}

// Health pings the store and counts published articles.
func (s *Service) Health(ctx context.Context) Health {
	h := Health{Breaker: "none"}
	if b, ok := s.store.(interface{ State() string }); ok {
		h.Breaker = b.State()
	}
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Store ping failed")
		return h
	}
	h.DatabaseOK = true
	n, err := s.store.CountPublished(ctx, "")
	if err != nil {
		s.storeError("count_published", err)
		return h
	}
	h.Articles = n
	return h
}

func (s *Service) cached(_ context.Context, surface, key string, build func() (entry, error)) (entry, bool, error) {
	if s.cache != nil {
		if e, ok := s.cache.Get(key); ok {
			metrics.RecordCacheLookup(surface, true)
			return e, true, nil
		}
		metrics.RecordCacheLookup(surface, false)
	}
	e, err := build()
	if err != nil {
		return entry{}, false, err
	}
	if s.cache != nil {
		s.cache.Set(key, e)
	}
	return e, false, nil
}

func (s *Service) list(ctx context.Context, op string, q database.PoolQuery) ([]content.Item, error) {
	pool, err := s.store.ListPublished(ctx, q)
	if err != nil {
		s.storeError(op, err)
		return nil, err
	}
	return pool, nil
}

func (s *Service) reference(ctx context.Context, slug string) (content.Item, error) {
	ref, err := s.store.GetArticleBySlug(ctx, slug)
	if err != nil {
		s.storeError("get_article_by_slug", err)
		return content.Item{}, err
	}
	return ref, nil
}

func (s *Service) storeError(op string, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) {
		return
	}
	metrics.StoreErrors.WithLabelValues(op).Inc()
	s.logger.Error().Err(err).Str("operation", op).Msg("Article store call failed")
}
