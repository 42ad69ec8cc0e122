package usecase

import (
	"context"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
	"github.com/wardrobelens/backend/internal/metrics"
)

const defaultSearchPageSize = 30

// CandidateCollector fills a pool of relevant products for one complementary
// category by running planned queries one after another.
type CandidateCollector struct {
	search   domain.ProductSearchProvider
	planner  *QueryPlanner
	pageSize int
}

// NewCandidateCollector creates a collector; pageSize <= 0 uses the default
func NewCandidateCollector(search domain.ProductSearchProvider, planner *QueryPlanner, pageSize int) *CandidateCollector {
	if pageSize <= 0 {
		pageSize = defaultSearchPageSize
	}
	return &CandidateCollector{search: search, planner: planner, pageSize: pageSize}
}

// Collect returns at most limit relevant candidates in retrieval order. A
// failing query is logged and contributes nothing. The anchor is never included.
func (c *CandidateCollector) Collect(
	ctx context.Context,
	category domain.Category,
	features domain.AnchorFeatures,
	anchorID uint64,
	limit int,
) []domain.ProductCard {
	queries := c.planner.BuildQueries(category, features.Gender, features.Season, features.Style, features.AgeGroup)
	pool := make([]domain.ProductCard, 0, limit)
	seen := map[uint64]bool{anchorID: true}

	for _, query := range queries {
		if len(pool) >= limit {
			break
		}
		if ctx.Err() != nil {
			logging.Warn().Err(ctx.Err()).Str("category", string(category)).Msg("[COLLECT] context done, returning partial pool")
			break
		}

		cards, err := c.search.Search(ctx, query, 1, c.pageSize)
		if err != nil {
			metrics.CollectorQueryFailures.WithLabelValues(string(category)).Inc()
			logging.Warn().Err(err).Str("query", query).Msg("[COLLECT] query failed, skipping")
			continue
		}

		for _, card := range cards {
			if seen[card.ID] {
				continue
			}
			seen[card.ID] = true

			if !IsRelevant(card.Name, features, category) {
				metrics.CandidatesRejected.WithLabelValues(string(category)).Inc()
				continue
			}
			metrics.CandidatesAccepted.WithLabelValues(string(category)).Inc()
			pool = append(pool, card)
			if len(pool) >= limit {
				break
			}
		}
	}

	logging.Debug().
		Str("category", string(category)).
		Int("queries", len(queries)).
		Int("pool", len(pool)).
		Msg("[COLLECT] pool collected")
	return pool
}
