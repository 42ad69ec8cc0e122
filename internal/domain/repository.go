package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductSearchProvider finds catalog products for a free-text query.
// An empty result is not an error.
type ProductSearchProvider interface {
	Search(ctx context.Context, query string, page, pageSize int) ([]ProductCard, error)
}

// FeatureEnricher classifies a product by an external model
type FeatureEnricher interface {
	Enrich(ctx context.Context, productID uint64, name string) (*AnchorFeatures, error)
}

// ImageSource returns the primary image of a product
type ImageSource interface {
	Fetch(ctx context.Context, productID uint64) ([]byte, error)
}
