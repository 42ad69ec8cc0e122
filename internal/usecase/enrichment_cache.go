package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
	"github.com/wardrobelens/backend/internal/metrics"
)

const defaultEnrichmentTTL = 720 * time.Hour

// EnrichmentCache stores enrichment results per product ID on top of any
// CacheRepository. Synchronization is the repository's job.
type EnrichmentCache struct {
	store domain.CacheRepository
	ttl   time.Duration
}

// NewEnrichmentCache creates a cache; a zero ttl means 30 days
func NewEnrichmentCache(store domain.CacheRepository, ttl time.Duration) *EnrichmentCache {
	if ttl <= 0 {
		ttl = defaultEnrichmentTTL
	}
	return &EnrichmentCache{store: store, ttl: ttl}
}

func enrichmentKey(productID uint64) string {
	return fmt.Sprintf("enrich:%d", productID)
}

// Get returns cached features or domain.ErrCacheMiss
func (c *EnrichmentCache) Get(ctx context.Context, productID uint64) (*domain.AnchorFeatures, error) {
	data, err := c.store.Get(ctx, enrichmentKey(productID))
	if err != nil {
		return nil, err
	}

	var f domain.AnchorFeatures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode cached enrichment: %w", err)
	}
	return &f, nil
}

// Put stores features for a product
func (c *EnrichmentCache) Put(ctx context.Context, productID uint64, f domain.AnchorFeatures) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode enrichment: %w", err)
	}
	return c.store.Set(ctx, enrichmentKey(productID), data, c.ttl)
}

// CachedEnricher is a read-through cache in front of a FeatureEnricher
type CachedEnricher struct {
	next  domain.FeatureEnricher
	cache *EnrichmentCache
}

// NewCachedEnricher wraps next with a read-through cache
func NewCachedEnricher(next domain.FeatureEnricher, cache *EnrichmentCache) *CachedEnricher {
	return &CachedEnricher{next: next, cache: cache}
}

// Enrich returns cached features or asks next and caches the result
func (e *CachedEnricher) Enrich(ctx context.Context, productID uint64, name string) (*domain.AnchorFeatures, error) {
	cached, err := e.cache.Get(ctx, productID)
	if err == nil {
		metrics.EnrichmentCacheHits.Inc()
		return cached, nil
	}
	metrics.EnrichmentCacheMisses.Inc()
	if !errors.Is(err, domain.ErrCacheMiss) {
		logging.Warn().Err(err).Uint64("product_id", productID).Msg("[ENRICH] cache read failed")
	}

	f, err := e.next.Enrich(ctx, productID, name)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrMalformedEnrichment
	}

	if err := e.cache.Put(ctx, productID, *f); err != nil {
		logging.Warn().Err(err).Uint64("product_id", productID).Msg("[ENRICH] cache write failed")
	}
	return f, nil
}
