package cache

import (
	"context"
	"fmt"

	"github.com/wardrobelens/backend/internal/domain"
)

// Store is a CacheRepository that owns resources
type Store interface {
	domain.CacheRepository
	Close() error
}

// Config selects and configures a cache backend
type Config struct {
	Type       string // memory, redis or badger
	RedisURL   string
	BadgerPath string
}

// New opens the configured cache backend
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryCache(), nil
	case "redis":
		return NewRedisCache(ctx, cfg.RedisURL, defaultKeyPrefix)
	case "badger":
		return NewBadgerCache(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
