package wb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
	"github.com/wardrobelens/backend/internal/metrics"
)

const (
	DefaultBaseURL = "https://search.wb.ru/exactmatch/ru/common/v18/search"
	DefaultDest    = -1257786

	breakerName = "wb-search"
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36"
)

// ClientConfig configures the catalog search client
type ClientConfig struct {
	BaseURL        string
	AuthToken      string
	Dest           int
	Timeout        time.Duration
	MaxRetries     int
	RatePerSecond  float64
	Burst          int
	RetryDelay     time.Duration // multiplied by the attempt number
	RateLimitDelay time.Duration // used instead of RetryDelay after HTTP 429
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Dest == 0 {
		c.Dest = DefaultDest
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RatePerSecond <= 0 {
		c.RatePerSecond = 5
	}
	if c.Burst <= 0 {
		c.Burst = 10
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 400 * time.Millisecond
	}
	if c.RateLimitDelay <= 0 {
		c.RateLimitDelay = 600 * time.Millisecond
	}
	return c
}

// Client talks to the marketplace catalog search endpoint.
// It implements domain.ProductSearchProvider.
type Client struct {
	httpClient  *http.Client
	cfg         ClientConfig
	rateLimiter *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[[]domain.ProductCard]
}

// NewClient creates a new search client
func NewClient(cfg ClientConfig) *Client {
	cfg = cfg.withDefaults()

	metrics.SetCircuitBreakerState(breakerName, 0)

	breaker := gobreaker.NewCircuitBreaker[[]domain.ProductCard](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// a cancelled caller says nothing about upstream health
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[WB] circuit breaker state change")
			metrics.SetCircuitBreakerState(name, breakerStateValue(to))
		},
	})

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		cfg:         cfg,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		breaker:     breaker,
	}
}

func breakerStateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Search runs one catalog search and returns the mapped product cards
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) ([]domain.ProductCard, error) {
	if page < 1 {
		page = 1
	}
	start := time.Now()

	cards, err := c.breaker.Execute(func() ([]domain.ProductCard, error) {
		return c.searchWithRetry(ctx, query, page, pageSize)
	})
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			outcome = "circuit_open"
		case errors.Is(err, domain.ErrRateLimited):
			outcome = "rate_limited"
		}
		metrics.RecordSearch(outcome, time.Since(start))
		if errors.Is(err, domain.ErrSearchFailure) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailure, err)
	}

	metrics.RecordSearch("success", time.Since(start))
	logging.Debug().Str("query", query).Int("page", page).Int("count", len(cards)).Msg("[WB] search done")
	return cards, nil
}

// searchWithRetry performs the request with linear backoff between attempts
func (c *Client) searchWithRetry(ctx context.Context, query string, page, pageSize int) ([]domain.ProductCard, error) {
	reqURL := c.buildURL(query, page, pageSize)

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Warn().Err(err).Int("attempt", attempt).Str("query", query).Msg("[WB] request error")
			lastErr = fmt.Errorf("%w: %v", domain.ErrSearchFailure, err)
			if err := sleep(ctx, c.cfg.RetryDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		// Upstream throttling backs off longer than other failures
		if resp.StatusCode == http.StatusTooManyRequests {
			logging.Warn().Int("attempt", attempt).Str("query", query).Msg("[WB] rate limited by upstream")
			lastErr = fmt.Errorf("%w: %w: status 429", domain.ErrSearchFailure, domain.ErrRateLimited)
			if err := sleep(ctx, c.cfg.RateLimitDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode != http.StatusOK || readErr != nil {
			logging.Warn().Int("attempt", attempt).Int("status", resp.StatusCode).Str("query", query).Msg("[WB] unexpected response")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSearchFailure, resp.StatusCode)
			if err := sleep(ctx, c.cfg.RetryDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		// Parse response
		var searchResp domain.WBSearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			logging.Warn().Err(err).Int("attempt", attempt).Str("query", query).Msg("[WB] decode error")
			lastErr = fmt.Errorf("%w: decode response: %v", domain.ErrSearchFailure, err)
			if err := sleep(ctx, c.cfg.RetryDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		return MapProducts(&searchResp), nil
	}

	logging.Error().Err(lastErr).Str("query", query).Msg("[WB] all retries failed")
	return nil, lastErr
}

// buildURL builds the search URL with the catalog query parameters
func (c *Client) buildURL(query string, page, pageSize int) string {
	params := url.Values{}
	params.Set("ab_testid", "new_benefit_sort")
	params.Set("appType", "1")
	params.Set("curr", "rub")
	params.Set("dest", strconv.Itoa(c.cfg.Dest))
	params.Set("inheritFilters", "false")
	params.Set("lang", "ru")
	params.Set("page", strconv.Itoa(page))
	params.Set("query", query)
	params.Set("resultset", "catalog")
	params.Set("sort", "popular")
	params.Set("spp", strconv.Itoa(pageSize))
	params.Set("suppressSpellcheck", "false")
	return c.cfg.BaseURL + "?" + params.Encode()
}

// doRequest sends a GET with browser-like headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}
	return c.httpClient.Do(req)
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
