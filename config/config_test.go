package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// chdirTemp moves the test into an empty directory so no config.yaml or .env is picked up
func chdirTemp(t *testing.T) {
	t.Helper()
	originalDir, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(originalDir) })
	os.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdirTemp(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "chrome-extension://*" {
			t.Errorf("Server.AllowedOrigins = %v, want [chrome-extension://*]", cfg.Server.AllowedOrigins)
		}
		if cfg.Search.BaseURL != "https://search.wb.ru/exactmatch/ru/common/v18/search" {
			t.Errorf("Search.BaseURL = %s", cfg.Search.BaseURL)
		}
		if cfg.Search.PageSize != 30 {
			t.Errorf("Search.PageSize = %d, want 30", cfg.Search.PageSize)
		}
		if cfg.Search.Timeout != 20*time.Second {
			t.Errorf("Search.Timeout = %v, want 20s", cfg.Search.Timeout)
		}
		if cfg.Search.Dest != -1257786 {
			t.Errorf("Search.Dest = %d, want -1257786", cfg.Search.Dest)
		}
		if cfg.Images.Format != "webp" {
			t.Errorf("Images.Format = %s, want webp", cfg.Images.Format)
		}
		if cfg.Enrichment.Enabled {
			t.Error("Enrichment.Enabled = true, want false")
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 720*time.Hour {
			t.Errorf("Cache.TTL = %v, want 720h", cfg.Cache.TTL)
		}
		if cfg.Capsule.Count != 3 || cfg.Capsule.PoolLimit != 12 || cfg.Capsule.FallbackLimit != 6 {
			t.Errorf("Capsule = %+v, want count 3, pool 12, fallback 6", cfg.Capsule)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("WARDROBE_SERVER_PORT", "9090")
		t.Setenv("WARDROBE_SERVER_ENVIRONMENT", "production")
		t.Setenv("WARDROBE_SEARCH_PAGE_SIZE", "50")
		t.Setenv("WARDROBE_SEARCH_AUTH_TOKEN", "token")
		t.Setenv("WARDROBE_ENRICHMENT_ENABLED", "true")
		t.Setenv("WARDROBE_ENRICHMENT_API_KEY", "llm-key")
		t.Setenv("WARDROBE_CACHE_TYPE", "redis")
		t.Setenv("WARDROBE_CACHE_REDIS_URL", "redis://localhost:6379")
		t.Setenv("WARDROBE_CACHE_TTL", "24h")
		t.Setenv("WARDROBE_CAPSULE_COUNT", "5")
		t.Setenv("WARDROBE_CAPSULE_SHUFFLE_SEED", "42")
		t.Setenv("WARDROBE_LOG_FORMAT", "json")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Search.PageSize != 50 {
			t.Errorf("Search.PageSize = %d, want 50", cfg.Search.PageSize)
		}
		if cfg.Search.AuthToken != "token" {
			t.Errorf("Search.AuthToken = %s, want token", cfg.Search.AuthToken)
		}
		if !cfg.Enrichment.Enabled || cfg.Enrichment.APIKey != "llm-key" {
			t.Errorf("Enrichment = %+v, want enabled with key", cfg.Enrichment)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Capsule.Count != 5 {
			t.Errorf("Capsule.Count = %d, want 5", cfg.Capsule.Count)
		}
		if cfg.Capsule.ShuffleSeed != 42 {
			t.Errorf("Capsule.ShuffleSeed = %d, want 42", cfg.Capsule.ShuffleSeed)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Log.Format = %s, want json", cfg.Log.Format)
		}
	})

	t.Run("reads config.yaml", func(t *testing.T) {
		chdirTemp(t)
		yaml := "search:\n  page_size: 20\ncapsule:\n  count: 2\n"
		if err := os.WriteFile("config.yaml", []byte(yaml), 0644); err != nil {
			t.Fatalf("Failed to write config.yaml: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Search.PageSize != 20 {
			t.Errorf("Search.PageSize = %d, want 20", cfg.Search.PageSize)
		}
		if cfg.Capsule.Count != 2 {
			t.Errorf("Capsule.Count = %d, want 2", cfg.Capsule.Count)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("WARDROBE_CACHE_TYPE", "invalid")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when enrichment enabled without key", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("WARDROBE_ENRICHMENT_ENABLED", "true")

		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "WARDROBE_ENRICHMENT_API_KEY") {
			t.Errorf("Load() error = %v, want missing enrichment key", err)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirTemp(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		chdirTemp(t)

		envContent := `
# Comment line
TEST_VAR_1=value1

TEST_VAR_2=value2
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_COMMENTED")
		t.Cleanup(func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
		})

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Search:  SearchConfig{PageSize: 30},
			Cache:   CacheConfig{Type: "memory"},
			Capsule: CapsuleConfig{Count: 3},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid memory config", func(c *Config) {}, false},
		{"invalid cache type", func(c *Config) { c.Cache.Type = "invalid-type" }, true},
		{"redis with URL", func(c *Config) { c.Cache.Type = "redis"; c.Cache.RedisURL = "redis://localhost:6379" }, false},
		{"redis without URL", func(c *Config) { c.Cache.Type = "redis" }, true},
		{"badger with path", func(c *Config) { c.Cache.Type = "badger"; c.Cache.BadgerPath = "/tmp/wardrobe" }, false},
		{"badger without path", func(c *Config) { c.Cache.Type = "badger" }, true},
		{"enrichment without model", func(c *Config) { c.Enrichment = EnrichmentConfig{Enabled: true, APIKey: "k"} }, true},
		{"enrichment complete", func(c *Config) { c.Enrichment = EnrichmentConfig{Enabled: true, APIKey: "k", Model: "m"} }, false},
		{"zero page size", func(c *Config) { c.Search.PageSize = 0 }, true},
		{"zero capsule count", func(c *Config) { c.Capsule.Count = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
