package wbimage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
	"github.com/wardrobelens/backend/internal/metrics"
)

// LoaderConfig configures image downloads
type LoaderConfig struct {
	Size    string // e.g. c246x328
	Format  string // e.g. webp
	Timeout time.Duration
}

// Loader fetches the first picture of a product.
// It implements domain.ImageSource.
type Loader struct {
	httpClient *http.Client
	table      *HostTable
	size       string
	format     string
}

// NewLoader creates an image loader over a host table
func NewLoader(table *HostTable, cfg LoaderConfig) *Loader {
	if cfg.Size == "" {
		cfg.Size = "c246x328"
	}
	if cfg.Format == "" {
		cfg.Format = "webp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Loader{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		table:      table,
		size:       cfg.Size,
		format:     cfg.Format,
	}
}

// ContentType is the MIME type of the images this loader returns
func (l *Loader) ContentType() string {
	return "image/" + l.format
}

// ImageURL builds the first-picture URL for productID, if a host serves it
func (l *Loader) ImageURL(productID uint64) (string, bool) {
	base, ok := l.table.HostFor(productID)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s/vol%d/part%d/%d/images/%s/1.%s",
		base, productID/productsPerVolume, productID/1000, productID, l.size, l.format), true
}

// Fetch downloads the first picture of a product
func (l *Loader) Fetch(ctx context.Context, productID uint64) ([]byte, error) {
	imageURL, ok := l.ImageURL(productID)
	if !ok {
		metrics.ImageFetches.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%w: no host for product %d", domain.ErrImageNotFound, productID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		metrics.ImageFetches.WithLabelValues("error").Inc()
		logging.Warn().Err(err).Str("url", imageURL).Msg("[IMAGE] request failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrImageNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ImageFetches.WithLabelValues("not_found").Inc()
		logging.Debug().Int("status", resp.StatusCode).Str("url", imageURL).Msg("[IMAGE] unexpected status")
		return nil, fmt.Errorf("%w: status %d", domain.ErrImageNotFound, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ImageFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrImageNotFound, err)
	}

	metrics.ImageFetches.WithLabelValues("success").Inc()
	return data, nil
}
