package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
)

const defaultPoolLimit = 12

// CapsuleServiceConfig holds configuration for the capsule service
type CapsuleServiceConfig struct {
	CapsuleCount  int
	PoolLimit     int
	FallbackLimit int
	PageSize      int
	ShuffleSeed   uint64
}

// CapsuleService composes outfit capsules around an anchor product
type CapsuleService struct {
	search    domain.ProductSearchProvider
	resolver  *AttributeResolver
	planner   *QueryPlanner
	collector *CandidateCollector
	assembler *CapsuleAssembler
	count     int
	poolLimit int
	pageSize  int
}

// NewCapsuleService creates a capsule service with dependencies. enricher may be nil.
func NewCapsuleService(
	search domain.ProductSearchProvider,
	enricher domain.FeatureEnricher,
	config CapsuleServiceConfig,
) *CapsuleService {
	return NewCapsuleServiceWithPlanner(search, enricher, NewQueryPlanner(config.ShuffleSeed), config)
}

// NewCapsuleServiceWithPlanner is NewCapsuleService with an explicit query planner
func NewCapsuleServiceWithPlanner(
	search domain.ProductSearchProvider,
	enricher domain.FeatureEnricher,
	planner *QueryPlanner,
	config CapsuleServiceConfig,
) *CapsuleService {
	count := config.CapsuleCount
	if count <= 0 {
		count = defaultCapsuleCount
	}
	poolLimit := config.PoolLimit
	if poolLimit <= 0 {
		poolLimit = defaultPoolLimit
	}
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = defaultSearchPageSize
	}

	collector := NewCandidateCollector(search, planner, pageSize)

	return &CapsuleService{
		search:    search,
		resolver:  NewAttributeResolver(enricher),
		planner:   planner,
		collector: collector,
		assembler: NewCapsuleAssembler(collector, config.FallbackLimit),
		count:     count,
		poolLimit: poolLimit,
		pageSize:  pageSize,
	}
}

// CreateCapsules runs the whole pipeline for one request.
// Flow: anchor search -> select anchor -> resolve features -> collect pools -> assemble
func (s *CapsuleService) CreateCapsules(ctx context.Context, request *domain.CapsuleRequest) ([]domain.Capsule, error) {
	if request == nil || strings.TrimSpace(request.Query) == "" {
		return nil, domain.ErrInvalidRequest
	}
	start := time.Now()
	anchorName := strings.TrimSpace(request.AnchorName())

	// Search for the anchor
	cards, err := s.search.Search(ctx, anchorName, 1, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: anchor search: %v", domain.ErrSearchFailure, err)
	}

	anchor, err := SelectAnchor(cards, request.ProductID)
	if err != nil {
		return nil, err
	}

	// Resolve attributes; the selected card's name can still settle gender
	features := s.resolver.Resolve(ctx, anchorName, request.ProductID, request.Hints)
	if features.Gender == domain.GenderUnisex {
		if g := GenderOf(anchor.Name); g != domain.GenderUnisex {
			features.Gender = g
		}
	}

	// Collect one pool per complementary category
	isDress := isDressAnchor(anchor, features)
	needed := NeededCategories(features.Category, isDress)

	pools := make(Pools, len(needed))
	for _, category := range needed {
		pools[category] = s.collector.Collect(ctx, category, features, anchor.ID, s.poolLimit)
	}

	// Assemble capsules
	capsules := s.assembler.Assemble(ctx, anchor, features, needed, pools, isDress, s.count)

	logging.Info().
		Uint64("anchor_id", anchor.ID).
		Str("category", string(features.Category)).
		Str("gender", string(features.Gender)).
		Str("season", string(features.Season)).
		Str("style", string(features.Style)).
		Dur("elapsed", time.Since(start)).
		Msg("[CAPSULE] capsules created")

	return capsules, nil
}

// ResolveFeatures exposes attribute resolution without the search pipeline
func (s *CapsuleService) ResolveFeatures(ctx context.Context, name string, productID *uint64, hints domain.QueryHintOverrides) domain.AnchorFeatures {
	return s.resolver.Resolve(ctx, name, productID, hints)
}

// PlanQueries exposes the query plan for a category and set of features
func (s *CapsuleService) PlanQueries(category domain.Category, f domain.AnchorFeatures) []string {
	return s.planner.BuildQueries(category, f.Gender, f.Season, f.Style, f.AgeGroup)
}
