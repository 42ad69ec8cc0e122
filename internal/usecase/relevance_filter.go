package usecase

import (
	"regexp"
	"strconv"

	"github.com/wardrobelens/backend/internal/domain"
)

// Gender markers. Required markers are what a candidate must carry to match a
// gendered anchor, the opposing lists are what disqualifies it.
var (
	maleRequiredMarkers   = []string{"мужск", "для мужчин"}
	femaleRequiredMarkers = []string{"женск", "для женщин", "для девочек"}
	maleOpposingMarkers   = []string{"женск", "для женщин", "для девочек", "женская", "женские", "женской", "женское"}
	femaleOpposingMarkers = []string{"мужск", "для мужчин", "для мальчиков", "мужская", "мужские", "мужской", "мужское"}
)

var (
	skirtTerms    = []string{"юбк", "skirt"}
	highRiseTerms = []string{"высок"}
	riseTerms     = []string{"посадк"}
	skinnyTerms   = []string{"скинни", "заужен"}
	heelTerms     = []string{"каблук", "каблуке", "heel"}
)

var (
	sandalTerms       = []string{"сандал", "босонож", "шлеп", "шлёп", "сланц", "вьетнамк"}
	leggingsTerms     = []string{"лосин", "леггин", "тайт", "tights"}
	sportLabeledTerms = []string{"спорт", "спортив", "трениров"}
)

// formalExclusions apply to elegant and office anchors
var formalExclusions = map[domain.Category][]string{
	domain.CategoryBottoms: {
		"фитнес", "fitness", "для фитнеса", "трениров", "спорт", "спортив",
		"охот", "hunting", "для охоты", "камуфляж", "camouflage", "камуфл",
		"тактическ", "милитар", "армейск", "военн", "рабоч", "утилитарн", "спецодежд",
	},
	domain.CategoryTops: {
		"фитнес", "fitness", "для фитнеса", "трениров", "спорт", "спортив", "рабоч", "утилитарн",
	},
	domain.CategoryOuterwear: {
		"тактическ", "милитар", "армейск", "камуфляж", "camouflage", "камуфл",
		"охот", "hunting", "для охоты", "рабоч", "утилитарн", "спецодежд",
	},
	domain.CategoryFootwear: {
		"резин", "эва", "сапог резин", "резиновые", "утилитарн", "рабоч",
		"фитнес", "fitness", "для фитнеса", "трениров", "спорт", "спортив",
	},
}

// sizeTokenPattern finds sizes such as "размер 36" or "р. 28"
var sizeTokenPattern = regexp.MustCompile(`(?:размер|р\.?)\s*(\d{2})`)

const (
	childShoeSizeMin = 20
	childShoeSizeMax = 35
)

var (
	sportFootwearTerms  = []string{"спортив", "running", "для бега", "трениров", "фитнес"}
	winterFootwearTerms = []string{"зимн", "утепл", "мех", "шерст", "термо"}
)

var (
	winterMarkers    = []string{"зимн", "утепл", "пухов", "мех", "осень-зим", "осень–зим"}
	summerMarkers    = []string{"летн", "лето", "весна-лет", "весна–лет"}
	allSeasonMarkers = []string{"демисез", "круглогод", "всесезон", "весна-осен", "осень-весн"}
)

// IsRelevant decides whether a candidate of the given category may join an
// outfit built around an anchor with the given features. Missing markers never
// reject a candidate except where a gender or age marker is required.
func IsRelevant(name string, features domain.AnchorFeatures, category domain.Category) bool {
	text := normalizeText(name)

	return genderMatches(text, features.Gender, category) &&
		ageMatches(text, features.AgeGroup) &&
		sandalAllowed(text, features, category) &&
		legwearAllowed(text, features.Style, category) &&
		formalAllowed(text, features.Style, category) &&
		sizeAllowed(text, features.AgeGroup, category) &&
		winterFootwearAllowed(text, features.Season, category) &&
		seasonMatches(text, features.Season)
}

func genderMatches(text string, gender domain.Gender, category domain.Category) bool {
	switch gender {
	case domain.GenderMale:
		if containsAny(text, maleOpposingMarkers) {
			return false
		}
		if category == domain.CategoryBottoms {
			if containsAny(text, skirtTerms) {
				return false
			}
			if containsAny(text, highRiseTerms) && containsAny(text, riseTerms) && containsAny(text, skinnyTerms) {
				return false
			}
		}
		if category == domain.CategoryFootwear && containsAny(text, heelTerms) {
			return false
		}
		return containsAny(text, maleRequiredMarkers)
	case domain.GenderFemale:
		if containsAny(text, femaleOpposingMarkers) {
			return false
		}
		return containsAny(text, femaleRequiredMarkers)
	}
	return true
}

func ageMatches(text string, ageGroup domain.AgeGroup) bool {
	isChild := containsAny(text, childMarkers)
	if ageGroup == domain.AgeGroupChild {
		return isChild
	}
	return !isChild
}

func sandalAllowed(text string, f domain.AnchorFeatures, category domain.Category) bool {
	if category != domain.CategoryFootwear || !containsAny(text, sandalTerms) {
		return true
	}
	return f.Gender == domain.GenderFemale && f.Season == domain.SeasonSummer && f.Style == domain.StyleCasual
}

func legwearAllowed(text string, style domain.Style, category domain.Category) bool {
	if category != domain.CategoryBottoms || style == domain.StyleSport {
		return true
	}
	return !containsAny(text, leggingsTerms) && !containsAny(text, sportLabeledTerms)
}

func formalAllowed(text string, style domain.Style, category domain.Category) bool {
	if style != domain.StyleElegant && style != domain.StyleOffice {
		return true
	}
	return !containsAny(text, formalExclusions[category])
}

func sizeAllowed(text string, ageGroup domain.AgeGroup, category domain.Category) bool {
	if category != domain.CategoryFootwear || ageGroup != domain.AgeGroupAdult {
		return true
	}
	for _, m := range sizeTokenPattern.FindAllStringSubmatch(text, -1) {
		size, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if size >= childShoeSizeMin && size <= childShoeSizeMax {
			return false
		}
	}
	return true
}

func winterFootwearAllowed(text string, season domain.Season, category domain.Category) bool {
	if category != domain.CategoryFootwear || season != domain.SeasonWinter {
		return true
	}
	if !containsAny(text, sportFootwearTerms) {
		return true
	}
	return containsAny(text, winterFootwearTerms)
}

func seasonMatches(text string, season domain.Season) bool {
	hasWinter := containsAny(text, winterMarkers)
	hasSummer := containsAny(text, summerMarkers)
	hasAll := containsAny(text, allSeasonMarkers)

	switch season {
	case domain.SeasonWinter:
		return !hasSummer || hasWinter || hasAll
	case domain.SeasonSummer:
		return !hasWinter || hasSummer || hasAll
	case domain.SeasonSpring, domain.SeasonAutumn:
		return !(hasWinter || hasSummer) || hasAll
	}
	return true
}
