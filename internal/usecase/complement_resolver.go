package usecase

import "github.com/wardrobelens/backend/internal/domain"

const maxComplements = 3

var complementTable = map[domain.Category][]domain.Category{
	domain.CategoryBottoms:     {domain.CategoryTops, domain.CategoryOuterwear, domain.CategoryFootwear},
	domain.CategoryTops:        {domain.CategoryBottoms, domain.CategoryOuterwear, domain.CategoryFootwear},
	domain.CategoryOuterwear:   {domain.CategoryTops, domain.CategoryBottoms, domain.CategoryFootwear},
	domain.CategoryFootwear:    {domain.CategoryTops, domain.CategoryBottoms, domain.CategoryOuterwear},
	domain.CategoryAccessories: {domain.CategoryTops, domain.CategoryBottoms},
}

var defaultComplements = []domain.Category{
	domain.CategoryTops, domain.CategoryBottoms, domain.CategoryFootwear, domain.CategoryOuterwear,
}

var dressComplements = []domain.Category{domain.CategoryOuterwear, domain.CategoryFootwear}

// NeededCategories returns the complementary categories for an anchor.
// The anchor's own category is never included and at most three are returned.
// A dress anchor recognised by name only keeps its resolved category out too.
func NeededCategories(category domain.Category, isDress bool) []domain.Category {
	var base []domain.Category
	if isDress {
		base = dressComplements
	} else {
		var ok bool
		if base, ok = complementTable[category]; !ok {
			base = defaultComplements
		}
	}

	needed := make([]domain.Category, 0, maxComplements)
	for _, c := range base {
		if c == category {
			continue
		}
		needed = append(needed, c)
		if len(needed) == maxComplements {
			break
		}
	}
	return needed
}
