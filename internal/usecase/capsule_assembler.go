package usecase

import (
	"context"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
	"github.com/wardrobelens/backend/internal/metrics"
)

const (
	defaultCapsuleCount  = 3
	defaultFallbackLimit = 6
	dressCapsuleSize     = 3
	regularCapsuleSize   = 4
)

// fallbackOrder is the category order used to backfill short capsules
var fallbackOrder = []domain.Category{
	domain.CategoryTops, domain.CategoryBottoms, domain.CategoryOuterwear, domain.CategoryFootwear,
}

// Pools maps a complementary category to its candidate pool. A present key
// with an empty slice means the category was collected and yielded nothing.
type Pools map[domain.Category][]domain.ProductCard

// PoolCollector fills a pool on demand for the backfill pass
type PoolCollector interface {
	Collect(ctx context.Context, category domain.Category, features domain.AnchorFeatures, anchorID uint64, limit int) []domain.ProductCard
}

// CapsuleAssembler builds several distinct outfits from candidate pools.
// Variety comes from rotating the pool offset per capsule, not from randomness.
type CapsuleAssembler struct {
	collector     PoolCollector
	fallbackLimit int
}

// NewCapsuleAssembler creates an assembler; fallbackLimit <= 0 uses the default
func NewCapsuleAssembler(collector PoolCollector, fallbackLimit int) *CapsuleAssembler {
	if fallbackLimit <= 0 {
		fallbackLimit = defaultFallbackLimit
	}
	return &CapsuleAssembler{collector: collector, fallbackLimit: fallbackLimit}
}

// Assemble returns count capsules, each starting with the anchor. Pools
// collected during backfill are added to pools and reused by later capsules.
func (a *CapsuleAssembler) Assemble(
	ctx context.Context,
	anchor domain.ProductCard,
	features domain.AnchorFeatures,
	needed []domain.Category,
	pools Pools,
	isDress bool,
	count int,
) []domain.Capsule {
	if count <= 0 {
		count = defaultCapsuleCount
	}
	if pools == nil {
		pools = Pools{}
	}
	target := regularCapsuleSize
	if isDress {
		target = dressCapsuleSize
	}

	capsules := make([]domain.Capsule, 0, count)
	for i := 0; i < count; i++ {
		capsule := domain.Capsule{
			Outfit:      []domain.ProductCard{anchor},
			AnchorStyle: features.Style,
		}

		for _, category := range needed {
			if pick, ok := pickRotated(pools[category], i, &capsule, features, category); ok {
				capsule.Outfit = append(capsule.Outfit, pick)
			}
		}

		if len(capsule.Outfit) < target {
			a.backfill(ctx, &capsule, anchor, features, pools, isDress, target)
		}

		metrics.CapsulesAssembled.Inc()
		capsules = append(capsules, capsule)
	}

	logging.Debug().Int("capsules", len(capsules)).Msg("[CAPSULE] assembled")
	return capsules
}

// pickRotated scans pool circularly from offset and returns the first unused relevant card
func pickRotated(
	pool []domain.ProductCard,
	offset int,
	capsule *domain.Capsule,
	features domain.AnchorFeatures,
	category domain.Category,
) (domain.ProductCard, bool) {
	n := len(pool)
	for j := 0; j < n; j++ {
		card := pool[(offset+j)%n]
		if capsule.Contains(card.ID) {
			continue
		}
		if IsRelevant(card.Name, features, category) {
			return card, true
		}
	}
	return domain.ProductCard{}, false
}

func (a *CapsuleAssembler) backfill(
	ctx context.Context,
	capsule *domain.Capsule,
	anchor domain.ProductCard,
	features domain.AnchorFeatures,
	pools Pools,
	isDress bool,
	target int,
) {
	for _, category := range fallbackOrder {
		if len(capsule.Outfit) >= target {
			return
		}
		if category == features.Category {
			continue
		}
		if isDress && category != domain.CategoryOuterwear && category != domain.CategoryFootwear {
			continue
		}

		pool, collected := pools[category]
		if !collected && a.collector != nil {
			pool = a.collector.Collect(ctx, category, features, anchor.ID, a.fallbackLimit)
			pools[category] = pool
		}

		for _, card := range pool {
			if capsule.Contains(card.ID) {
				continue
			}
			if IsRelevant(card.Name, features, category) {
				capsule.Outfit = append(capsule.Outfit, card)
				metrics.FallbackPicks.WithLabelValues(string(category)).Inc()
				break
			}
		}
	}
}
