package usecase

import (
	"context"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
)

// AttributeResolver merges enrichment, caller hints and keyword heuristics into
// one fully populated AnchorFeatures. Priority: hints, then enrichment, then
// heuristics.
type AttributeResolver struct {
	enricher domain.FeatureEnricher
}

// NewAttributeResolver creates a resolver; enricher may be nil
func NewAttributeResolver(enricher domain.FeatureEnricher) *AttributeResolver {
	return &AttributeResolver{enricher: enricher}
}

// Resolve never fails. Enrichment problems fall back to heuristics.
func (r *AttributeResolver) Resolve(
	ctx context.Context,
	anchorName string,
	productID *uint64,
	hints domain.QueryHintOverrides,
) domain.AnchorFeatures {
	resolved, ok := r.enrich(ctx, anchorName, productID)
	if !ok {
		resolved = InferFeatures(anchorName)
	}

	resolved = applyHints(resolved, hints)

	if resolved.Gender == domain.GenderUnisex || !resolved.Gender.Valid() {
		if g := GenderOf(anchorName); g != domain.GenderUnisex {
			logging.Debug().Str("gender", string(g)).Msg("[CAPSULE] gender promoted from anchor name")
			resolved.Gender = g
		}
	}

	return resolved.WithDefaults()
}

func (r *AttributeResolver) enrich(ctx context.Context, name string, productID *uint64) (domain.AnchorFeatures, bool) {
	if r.enricher == nil || productID == nil {
		return domain.AnchorFeatures{}, false
	}

	f, err := r.enricher.Enrich(ctx, *productID, name)
	if err != nil {
		logging.Warn().Err(err).Uint64("product_id", *productID).Msg("[ENRICH] falling back to heuristics")
		return domain.AnchorFeatures{}, false
	}
	if f == nil || !f.Category.Valid() {
		logging.Warn().Uint64("product_id", *productID).Msg("[ENRICH] incomplete enrichment, falling back to heuristics")
		return domain.AnchorFeatures{}, false
	}
	return *f, true
}

// applyHints overlays valid caller hints. A unisex gender hint is ignored so it
// cannot mask a definite inferred gender.
func applyHints(f domain.AnchorFeatures, hints domain.QueryHintOverrides) domain.AnchorFeatures {
	if g, ok := domain.ParseGender(hints.Gender); ok && g != domain.GenderUnisex {
		f.Gender = g
	}
	if a, ok := domain.ParseAgeGroup(hints.AgeGroup); ok {
		f.AgeGroup = a
	}
	if s, ok := domain.ParseSeason(hints.Season); ok {
		f.Season = s
	}
	if s, ok := domain.ParseStyle(hints.Style); ok {
		f.Style = s
	}
	return f
}
