package wb

import (
	"strings"

	"github.com/wardrobelens/backend/internal/domain"
)

const kopecksPerRuble = 100

// MapProducts converts a catalog search response into product cards.
// Products without an ID are skipped.
func MapProducts(resp *domain.WBSearchResponse) []domain.ProductCard {
	if resp == nil {
		return nil
	}

	cards := make([]domain.ProductCard, 0, len(resp.Products))
	for _, p := range resp.Products {
		if p.ID == 0 {
			continue
		}
		cards = append(cards, mapProduct(p))
	}
	return cards
}

func mapProduct(p domain.WBProduct) domain.ProductCard {
	card := domain.ProductCard{
		ID:            p.ID,
		Name:          strings.TrimSpace(p.Name),
		Brand:         strings.TrimSpace(p.Brand),
		Rating:        p.Rating,
		FeedbackCount: p.Feedbacks,
		Link:          domain.ProductLink(p.ID),
	}

	// prices are taken from the first size only
	if len(p.Sizes) > 0 && p.Sizes[0].Price != nil {
		card.Price = toRubles(p.Sizes[0].Price.Product)
		card.BasePrice = toRubles(p.Sizes[0].Price.Basic)
	}
	return card
}

func toRubles(kopecks *int64) *float64 {
	if kopecks == nil {
		return nil
	}
	rubles := float64(*kopecks) / kopecksPerRuble
	return &rubles
}
