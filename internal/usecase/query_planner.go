package usecase

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/wardrobelens/backend/internal/domain"
)

var categoryQueries = map[domain.Category][]string{
	domain.CategoryTops: {
		"футболка", "лонгслив", "рубашка", "поло", "свитшот", "худи",
		"толстовка", "свитер", "водолазка", "кардиган", "блузка", "топ",
	},
	domain.CategoryBottoms:     {"джинсы", "брюки", "чиносы", "карго", "шорты", "юбка"},
	domain.CategoryOuterwear:   {"куртка", "пуховик", "пальто", "парка", "ветровка", "плащ", "тренч", "бомбер", "жилет"},
	domain.CategoryFootwear:    {"кроссовки", "кеды", "ботинки", "челси", "туфли", "лоферы", "сапоги", "сандалии"},
	domain.CategoryAccessories: {"шапка", "шарф", "ремень", "сумка", "рюкзак"},
}

var (
	fallbackQueries     = []string{"одежда"}
	sportLegwearQueries = []string{"леггинсы", "лосины", "тайтсы"}
	sandalQueries       = []string{"сандалии"}
	winterFootwearFirst = []string{"ботинки", "сапоги", "челси", "кроссовки"}
)

var genderPrefixes = map[domain.Gender][]string{
	domain.GenderMale:   {"мужская", "мужские", "для мужчин"},
	domain.GenderFemale: {"женская", "женские", "для женщин"},
	domain.GenderUnisex: {""},
}

var childPrefixes = []string{"детская", "детский", "для детей", "подростковая"}

// QueryPlanner turns anchor attributes into catalog search queries for a
// complementary category. Term order is shuffled so repeated requests surface
// different products; the random source is injectable for reproducible plans.
type QueryPlanner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQueryPlanner creates a planner. A zero seed seeds from the clock.
func NewQueryPlanner(seed uint64) *QueryPlanner {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewQueryPlannerWithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewQueryPlannerWithRand creates a planner around an existing random source
func NewQueryPlannerWithRand(rng *rand.Rand) *QueryPlanner {
	return &QueryPlanner{rng: rng}
}

// BuildQueries returns the ordered, deduplicated queries for a category
func (p *QueryPlanner) BuildQueries(
	category domain.Category,
	gender domain.Gender,
	season domain.Season,
	style domain.Style,
	ageGroup domain.AgeGroup,
) []string {
	terms, ok := categoryQueries[category]
	if !ok {
		terms = fallbackQueries
	}
	terms = append([]string(nil), terms...)

	var pinned []string
	switch category {
	case domain.CategoryBottoms:
		if style == domain.StyleSport {
			terms = append(terms, sportLegwearQueries...)
		}
	case domain.CategoryFootwear:
		if !(gender == domain.GenderFemale && season == domain.SeasonSummer && style == domain.StyleCasual) {
			terms = without(terms, sandalQueries)
		}
		if season == domain.SeasonWinter {
			pinned = intersect(winterFootwearFirst, terms)
			terms = without(terms, pinned)
		}
	}

	terms = dedupe(terms)
	p.shuffle(terms)
	terms = append(pinned, terms...)

	prefixes, ok := genderPrefixes[gender]
	if !ok {
		prefixes = genderPrefixes[domain.GenderUnisex]
	}

	queries := make([]string, 0, len(terms)*len(prefixes))
	for _, term := range terms {
		for _, prefix := range prefixes {
			queries = append(queries, strings.TrimSpace(prefix+" "+term))
		}
	}
	queries = dedupe(queries)

	if ageGroup == domain.AgeGroupChild {
		expanded := make([]string, 0, len(queries)*len(childPrefixes))
		for _, q := range queries {
			for _, cp := range childPrefixes {
				expanded = append(expanded, cp+" "+q)
			}
		}
		queries = dedupe(expanded)
	}

	return queries
}

func (p *QueryPlanner) shuffle(terms []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rng.Shuffle(len(terms), func(i, j int) {
		terms[i], terms[j] = terms[j], terms[i]
	})
}

// without returns items minus anything in drop, order preserved
func without(items, drop []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !contains(drop, item) {
			out = append(out, item)
		}
	}
	return out
}

// intersect returns the items of first that also appear in second, in first's order
func intersect(first, second []string) []string {
	out := make([]string, 0, len(first))
	for _, item := range first {
		if contains(second, item) {
			out = append(out, item)
		}
	}
	return out
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
