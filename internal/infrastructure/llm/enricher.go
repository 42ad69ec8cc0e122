package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
	"github.com/wardrobelens/backend/internal/metrics"
)

const maxResponseTokens = 200

const promptTemplate = `Ты стилист и эксперт по одежде. Определи характеристики товара по его названию.
Ответь ровно одним JSON-объектом без пояснений, markdown и лишнего текста.

Поля объекта:
- "category": одно из "tops", "bottoms", "outerwear", "footwear", "accessories", "dress"
- "style": одно из "casual", "sport", "office", "streetwear", "elegant", "other"
- "season": одно из "winter", "summer", "spring", "autumn", "all-season"
- "color": основной цвет по-русски или "неизвестно"
- "gender": одно из "male", "female", "unisex"
- "age_group": "adult" или "child"

Пол: сначала ищи прямые слова ("мужской", "женская"). Если их нет, учитывай косвенные
признаки: тактические, армейские и камуфляжные вещи, галстуки, слаксы и чиносы чаще мужские;
платья, юбки, блузки, туфли на каблуке, балетки, рюши, банты и ажур чаще женские.
"unisex" ставь только когда признаков нет совсем.

Возраст: "child", если есть слова "детский", "для детей", "мальчик", "девочка", "подросток",
детский рост или возраст в годах. Иначе "adult".

Пример ответа:
{"category": "bottoms", "style": "casual", "season": "spring", "color": "синий", "gender": "male", "age_group": "adult"}

Название товара: «%s»`

// Config configures the OpenAI-compatible enrichment backend
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Enricher classifies product names with a language model.
// It implements domain.FeatureEnricher. After the backend answers with a
// rate limit, every later call fails fast for the lifetime of the process.
type Enricher struct {
	model       llms.Model
	timeout     time.Duration
	rateLimited atomic.Bool
}

// NewEnricher creates an enricher backed by an OpenAI-compatible endpoint
func NewEnricher(cfg Config) (*Enricher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key required", domain.ErrEnrichmentUnavailable)
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}

	e := NewEnricherWithModel(model)
	if cfg.Timeout > 0 {
		e.timeout = cfg.Timeout
	}
	return e, nil
}

// NewEnricherWithModel wraps an existing langchaingo model
func NewEnricherWithModel(model llms.Model) *Enricher {
	return &Enricher{model: model, timeout: 30 * time.Second}
}

// Disabled reports whether the enricher has switched itself off
func (e *Enricher) Disabled() bool {
	return e.rateLimited.Load()
}

// Enrich asks the model to classify a product name
func (e *Enricher) Enrich(ctx context.Context, productID uint64, name string) (*domain.AnchorFeatures, error) {
	if e.rateLimited.Load() {
		metrics.EnrichmentRequests.WithLabelValues("disabled").Inc()
		return nil, fmt.Errorf("%w: disabled after rate limit", domain.ErrEnrichmentUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	output, err := llms.GenerateFromSinglePrompt(callCtx, e.model, BuildPrompt(name),
		llms.WithTemperature(0),
		llms.WithMaxTokens(maxResponseTokens),
	)
	if err != nil {
		if isRateLimit(err) {
			e.rateLimited.Store(true)
			metrics.EnrichmentRequests.WithLabelValues("rate_limited").Inc()
			logging.Warn().Uint64("product_id", productID).Msg("[ENRICH] rate limited, disabling enrichment")
			return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}
		metrics.EnrichmentRequests.WithLabelValues("error").Inc()
		logging.Warn().Err(err).Uint64("product_id", productID).Msg("[ENRICH] model call failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrEnrichmentUnavailable, err)
	}

	features, err := ParseFeatures(output)
	if err != nil {
		metrics.EnrichmentRequests.WithLabelValues("malformed").Inc()
		logging.Warn().Err(err).Uint64("product_id", productID).Str("output", truncate(output, 200)).Msg("[ENRICH] unusable model output")
		return nil, err
	}

	metrics.EnrichmentRequests.WithLabelValues("success").Inc()
	logging.Debug().Uint64("product_id", productID).Str("category", string(features.Category)).Msg("[ENRICH] classified")
	return features, nil
}

// BuildPrompt renders the classification prompt for one product name
func BuildPrompt(name string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(name))
}

func isRateLimit(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit")
}

// truncate shortens s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
