package usecase

import (
	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
)

// SelectAnchor picks the anchor among the anchor search results: the card
// whose ID equals the caller-provided product ID, otherwise the first card.
func SelectAnchor(cards []domain.ProductCard, productID *uint64) (domain.ProductCard, error) {
	if len(cards) == 0 {
		return domain.ProductCard{}, domain.ErrAnchorNotFound
	}

	if productID != nil {
		for _, card := range cards {
			if card.ID == *productID {
				return card, nil
			}
		}
		logging.Debug().Uint64("product_id", *productID).Msg("[CAPSULE] product id not among anchor results, using first")
	}
	return cards[0], nil
}

// isDressAnchor reports whether the anchor should be treated as a dress
func isDressAnchor(anchor domain.ProductCard, features domain.AnchorFeatures) bool {
	return features.Category == domain.CategoryDress || containsAny(normalizeText(anchor.Name), dressTerms)
}
