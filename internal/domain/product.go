package domain

import "fmt"

// ProductCard is a single catalog product as returned by the search service.
// The product ID doubles as the image reference.
type ProductCard struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	BasePrice     *float64 `json:"base_price,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	FeedbackCount *int     `json:"feedback_count,omitempty"`
	Link          string   `json:"link"`
}

// ProductLink returns the canonical detail page for a product ID
func ProductLink(id uint64) string {
	return fmt.Sprintf("https://www.wildberries.ru/catalog/%d/detail.aspx", id)
}

// Capsule is one outfit: the anchor first, followed by complements
type Capsule struct {
	Outfit      []ProductCard `json:"outfit"`
	AnchorStyle Style         `json:"anchor_style"`
}

// Contains reports whether a product with the given ID is already in the outfit
func (c *Capsule) Contains(id uint64) bool {
	for _, p := range c.Outfit {
		if p.ID == id {
			return true
		}
	}
	return false
}

// CapsuleRequest carries everything needed to compose capsules for one anchor
type CapsuleRequest struct {
	Query       string
	ProductName string
	ProductID   *uint64
	Hints       QueryHintOverrides
}

// AnchorName returns the product name override, falling back to the query
func (r *CapsuleRequest) AnchorName() string {
	if r.ProductName != "" {
		return r.ProductName
	}
	return r.Query
}
