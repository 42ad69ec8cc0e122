// Package bootstrap wires configuration into the running components shared
// by the HTTP server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/wardrobelens/backend/config"
	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/infrastructure/cache"
	"github.com/wardrobelens/backend/internal/infrastructure/llm"
	"github.com/wardrobelens/backend/internal/infrastructure/wb"
	"github.com/wardrobelens/backend/internal/infrastructure/wbimage"
	"github.com/wardrobelens/backend/internal/logging"
	"github.com/wardrobelens/backend/internal/usecase"
)

// App holds the long-lived components built from a Config
type App struct {
	Config   *config.Config
	Store    cache.Store
	Search   *wb.Client
	Enricher domain.FeatureEnricher // nil when enrichment is disabled
	Capsules *usecase.CapsuleService
}

// InitLogging configures the global logger from cfg
func InitLogging(cfg *config.Config) {
	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
}

// New builds the search client, the enrichment chain and the capsule service
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := cache.New(ctx, cache.Config{
		Type:       cfg.Cache.Type,
		RedisURL:   cfg.Cache.RedisURL,
		BadgerPath: cfg.Cache.BadgerPath,
	})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	logging.Info().Str("type", cfg.Cache.Type).Dur("ttl", cfg.Cache.TTL).Msg("[BOOT] cache ready")

	search := wb.NewClient(wb.ClientConfig{
		BaseURL:       cfg.Search.BaseURL,
		AuthToken:     cfg.Search.AuthToken,
		Dest:          cfg.Search.Dest,
		Timeout:       cfg.Search.Timeout,
		MaxRetries:    cfg.Search.MaxRetries,
		RatePerSecond: cfg.Search.RatePerSecond,
		Burst:         cfg.Search.Burst,
	})

	enricher, err := newEnricher(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	capsules := usecase.NewCapsuleService(search, enricher, usecase.CapsuleServiceConfig{
		CapsuleCount:  cfg.Capsule.Count,
		PoolLimit:     cfg.Capsule.PoolLimit,
		FallbackLimit: cfg.Capsule.FallbackLimit,
		PageSize:      cfg.Search.PageSize,
		ShuffleSeed:   cfg.Capsule.ShuffleSeed,
	})

	return &App{
		Config:   cfg,
		Store:    store,
		Search:   search,
		Enricher: enricher,
		Capsules: capsules,
	}, nil
}

func newEnricher(cfg *config.Config, store cache.Store) (domain.FeatureEnricher, error) {
	if !cfg.Enrichment.Enabled {
		logging.Info().Msg("[BOOT] enrichment disabled, using heuristics only")
		return nil, nil
	}

	model, err := llm.NewEnricher(llm.Config{
		APIKey:  cfg.Enrichment.APIKey,
		BaseURL: cfg.Enrichment.BaseURL,
		Model:   cfg.Enrichment.Model,
		Timeout: cfg.Enrichment.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create enricher: %w", err)
	}

	logging.Info().Str("model", cfg.Enrichment.Model).Msg("[BOOT] enrichment enabled")
	return usecase.NewCachedEnricher(model, usecase.NewEnrichmentCache(store, cfg.Cache.TTL)), nil
}

// NewImageLoader loads the image host table and builds a loader over it.
// A failed table load leaves the loader empty: every image then reports not found.
func NewImageLoader(ctx context.Context, cfg *config.Config) *wbimage.Loader {
	client := &http.Client{Timeout: cfg.Images.Timeout}
	table, err := wbimage.LoadHostTable(ctx, client, cfg.Images.HostsURL)
	if err != nil {
		logging.Warn().Err(err).Msg("[BOOT] image host table unavailable")
		table = wbimage.NewHostTable(nil)
	}

	return wbimage.NewLoader(table, wbimage.LoaderConfig{
		Size:    cfg.Images.Size,
		Format:  cfg.Images.Format,
		Timeout: cfg.Images.Timeout,
	})
}

// Close releases the cache backend
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
