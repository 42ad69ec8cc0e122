package usecase

import (
	"reflect"
	"testing"

	"github.com/wardrobelens/backend/internal/domain"
)

func TestNeededCategories(t *testing.T) {
	testCases := []struct {
		name     string
		category domain.Category
		isDress  bool
		want     []domain.Category
	}{
		{
			name:     "footwear anchor",
			category: domain.CategoryFootwear,
			want:     []domain.Category{domain.CategoryTops, domain.CategoryBottoms, domain.CategoryOuterwear},
		},
		{
			name:     "bottoms anchor",
			category: domain.CategoryBottoms,
			want:     []domain.Category{domain.CategoryTops, domain.CategoryOuterwear, domain.CategoryFootwear},
		},
		{
			name:     "accessories anchor",
			category: domain.CategoryAccessories,
			want:     []domain.Category{domain.CategoryTops, domain.CategoryBottoms},
		},
		{
			name:     "dress flag wins over category",
			category: domain.CategoryTops,
			isDress:  true,
			want:     []domain.Category{domain.CategoryOuterwear, domain.CategoryFootwear},
		},
		{
			name:     "dress by name on a footwear anchor drops footwear",
			category: domain.CategoryFootwear,
			isDress:  true,
			want:     []domain.Category{domain.CategoryOuterwear},
		},
		{
			name:     "dress by name on an outerwear anchor drops outerwear",
			category: domain.CategoryOuterwear,
			isDress:  true,
			want:     []domain.Category{domain.CategoryFootwear},
		},
		{
			name:     "dress category without flag uses default table",
			category: domain.CategoryDress,
			want:     []domain.Category{domain.CategoryTops, domain.CategoryBottoms, domain.CategoryFootwear},
		},
		{
			name:     "unknown category",
			category: domain.Category("hats"),
			want:     []domain.Category{domain.CategoryTops, domain.CategoryBottoms, domain.CategoryFootwear},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NeededCategories(tc.category, tc.isDress)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("NeededCategories(%q, %v) = %v, want %v", tc.category, tc.isDress, got, tc.want)
			}
		})
	}
}

func TestNeededCategories_Invariants(t *testing.T) {
	categories := []domain.Category{
		domain.CategoryTops, domain.CategoryBottoms, domain.CategoryOuterwear,
		domain.CategoryFootwear, domain.CategoryAccessories, domain.CategoryDress,
	}

	for _, c := range categories {
		for _, isDress := range []bool{false, true} {
			got := NeededCategories(c, isDress)

			limit := 3
			if isDress {
				limit = 2
			}
			if len(got) > limit {
				t.Errorf("%s/%v: %d categories, limit %d", c, isDress, len(got), limit)
			}
			for _, n := range got {
				if n == c {
					t.Errorf("%s/%v: anchor category among complements", c, isDress)
				}
			}
		}
	}
}

func TestNeededCategories_ReturnsCopy(t *testing.T) {
	got := NeededCategories(domain.CategoryTops, true)
	got[0] = domain.CategoryAccessories

	again := NeededCategories(domain.CategoryTops, true)
	if again[0] != domain.CategoryOuterwear {
		t.Errorf("dress complements were mutated: %v", again)
	}
}
