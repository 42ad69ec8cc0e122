package usecase

import (
	"math/rand/v2"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/wardrobelens/backend/internal/domain"
)

func newTestPlanner() *QueryPlanner {
	return NewQueryPlannerWithRand(rand.New(rand.NewPCG(42, 7)))
}

func TestBuildQueries_UnisexUsesBareTerms(t *testing.T) {
	p := newTestPlanner()

	got := p.BuildQueries(domain.CategoryTops, domain.GenderUnisex, domain.SeasonAllSeason, domain.StyleOther, domain.AgeGroupAdult)

	want := append([]string(nil), categoryQueries[domain.CategoryTops]...)
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	sort.Strings(want)
	if !reflect.DeepEqual(sorted, want) {
		t.Errorf("BuildQueries() terms = %v, want permutation of %v", got, want)
	}
}

func TestBuildQueries_GenderPrefixesTermMajor(t *testing.T) {
	p := newTestPlanner()

	got := p.BuildQueries(domain.CategoryAccessories, domain.GenderMale, domain.SeasonAllSeason, domain.StyleOther, domain.AgeGroupAdult)

	if len(got) != 5*3 {
		t.Fatalf("expected 15 queries, got %d: %v", len(got), got)
	}
	for i := 0; i < len(got); i += 3 {
		term := strings.TrimPrefix(got[i], "мужская ")
		want := []string{"мужская " + term, "мужские " + term, "для мужчин " + term}
		if !reflect.DeepEqual(got[i:i+3], want) {
			t.Errorf("queries[%d:%d] = %v, want %v", i, i+3, got[i:i+3], want)
		}
	}
}

func TestBuildQueries_Footwear(t *testing.T) {
	t.Run("sandals dropped unless female summer casual", func(t *testing.T) {
		p := newTestPlanner()
		got := p.BuildQueries(domain.CategoryFootwear, domain.GenderFemale, domain.SeasonSummer, domain.StyleElegant, domain.AgeGroupAdult)
		for _, q := range got {
			if strings.Contains(q, "сандалии") {
				t.Errorf("unexpected sandal query %q", q)
			}
		}
	})

	t.Run("sandals kept for female summer casual", func(t *testing.T) {
		p := newTestPlanner()
		got := p.BuildQueries(domain.CategoryFootwear, domain.GenderFemale, domain.SeasonSummer, domain.StyleCasual, domain.AgeGroupAdult)
		found := false
		for _, q := range got {
			if q == "женские сандалии" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected sandal query in %v", got)
		}
	})

	t.Run("winter front-loads boots", func(t *testing.T) {
		p := newTestPlanner()
		got := p.BuildQueries(domain.CategoryFootwear, domain.GenderUnisex, domain.SeasonWinter, domain.StyleOther, domain.AgeGroupAdult)
		want := []string{"ботинки", "сапоги", "челси", "кроссовки"}
		if !reflect.DeepEqual(got[:4], want) {
			t.Errorf("first queries = %v, want %v", got[:4], want)
		}
		if len(got) != 7 {
			t.Errorf("expected 7 queries without sandals, got %d: %v", len(got), got)
		}
	})
}

func TestBuildQueries_SportLegwear(t *testing.T) {
	p := newTestPlanner()

	sport := p.BuildQueries(domain.CategoryBottoms, domain.GenderUnisex, domain.SeasonAllSeason, domain.StyleSport, domain.AgeGroupAdult)
	casual := p.BuildQueries(domain.CategoryBottoms, domain.GenderUnisex, domain.SeasonAllSeason, domain.StyleCasual, domain.AgeGroupAdult)

	if !contains(sport, "леггинсы") || !contains(sport, "тайтсы") {
		t.Errorf("expected legwear terms for sport, got %v", sport)
	}
	if contains(casual, "леггинсы") {
		t.Errorf("unexpected legwear term for casual: %v", casual)
	}
}

func TestBuildQueries_ChildExpansion(t *testing.T) {
	p := newTestPlanner()

	got := p.BuildQueries(domain.CategoryAccessories, domain.GenderUnisex, domain.SeasonAllSeason, domain.StyleOther, domain.AgeGroupChild)

	if len(got) != 5*4 {
		t.Fatalf("expected 20 queries, got %d", len(got))
	}
	for i, q := range got {
		prefix := childPrefixes[i%len(childPrefixes)]
		if !strings.HasPrefix(q, prefix+" ") {
			t.Errorf("query %q should start with %q", q, prefix)
		}
	}
}

func TestBuildQueries_UnknownCategory(t *testing.T) {
	p := newTestPlanner()

	got := p.BuildQueries(domain.CategoryDress, domain.GenderFemale, domain.SeasonSummer, domain.StyleOther, domain.AgeGroupAdult)

	want := []string{"женская одежда", "женские одежда", "для женщин одежда"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildQueries() = %v, want %v", got, want)
	}
}

func TestBuildQueries_DeterministicPerSeed(t *testing.T) {
	a := NewQueryPlanner(99).BuildQueries(domain.CategoryTops, domain.GenderFemale, domain.SeasonWinter, domain.StyleCasual, domain.AgeGroupAdult)
	b := NewQueryPlanner(99).BuildQueries(domain.CategoryTops, domain.GenderFemale, domain.SeasonWinter, domain.StyleCasual, domain.AgeGroupAdult)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different plans:\n%v\n%v", a, b)
	}
}

func TestBuildQueries_NoDuplicates(t *testing.T) {
	p := newTestPlanner()
	categories := []domain.Category{
		domain.CategoryTops, domain.CategoryBottoms, domain.CategoryOuterwear, domain.CategoryFootwear, domain.CategoryAccessories,
	}

	for _, c := range categories {
		got := p.BuildQueries(c, domain.GenderMale, domain.SeasonWinter, domain.StyleSport, domain.AgeGroupChild)
		seen := map[string]bool{}
		for _, q := range got {
			if seen[q] {
				t.Errorf("%s: duplicate query %q", c, q)
			}
			seen[q] = true
		}
	}
}
