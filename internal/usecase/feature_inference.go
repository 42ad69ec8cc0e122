package usecase

import "github.com/wardrobelens/backend/internal/domain"

// categoryRule is one keyword group of the category classifier
type categoryRule struct {
	Category domain.Category
	Terms    []string
}

type genderRule struct {
	Gender domain.Gender
	Terms  []string
}

type seasonRule struct {
	Season domain.Season
	Terms  []string
}

type styleRule struct {
	Style domain.Style
	Terms []string
}

// dressTerms short-circuit category inference
var dressTerms = []string{"плать", "dress"}

// categoryRules are scored by hit count; ties go to the earlier rule.
var categoryRules = []categoryRule{
	{domain.CategoryBottoms, []string{"брюк", "джинс", "штаны", "леггин", "юбк", "шорт", "карго", "банан"}},
	{domain.CategoryTops, []string{"футболк", "рубашк", "свитшот", "худи", "толстовк", "лонгслив", "топ", "блуз", "свитер", "джемпер"}},
	{domain.CategoryOuterwear, []string{"куртк", "пальт", "пухов", "плащ", "ветровк", "жилет", "бомбер", "парка", "шуб"}},
	{domain.CategoryFootwear, []string{"кроссов", "ботин", "туфл", "сапог", "кед", "лофер", "слип", "сандал", "шлеп", "тапк"}},
	{domain.CategoryAccessories, []string{"шапк", "шарф", "ремень", "перчат", "сумк", "рюкзак", "очк", "зонт"}},
}

// genderRules are evaluated in order: explicit markers first, then indirect terms.
var genderRules = []genderRule{
	{domain.GenderMale, []string{"мужск", "мужская", "мужское", "мужские", "для мужчин"}},
	{domain.GenderFemale, []string{"женск", "женская", "женское", "женские", "для женщин"}},
	{domain.GenderMale, []string{
		"тактическ", "милитар", "армейск", "камуфляж", "военн", "слаксы", "чиносы",
		"классическ брюк", "классическ костюм", "галстук", "жилет классическ", "брюки классическ",
	}},
	{domain.GenderFemale, []string{
		"кимоно", "платье", "юбка", "блузка", "балетки", "на каблуке", "каблук",
		"туфли на", "туфли с каблуком", "с рюшами", "с бантами", "ажурн", "декор",
	}},
}

var childMarkers = []string{
	"детск", "для детей", "ребен", "ребён", "мальчик", "девочк", "для девочек",
	"подрост", "малыш", "ясел", "детсад", "садик", "в сад", "в школу", "школьн",
	"kids", "kid", "junior", "teen", "рост ", "лет ",
}

// seasonRules put compound ranges before single-season markers.
var seasonRules = []seasonRule{
	{domain.SeasonSummer, []string{"весна-лет", "весна / лет", "весна–лет"}},
	{domain.SeasonWinter, []string{"осень-зим", "осень / зим", "осень–зим"}},
	{domain.SeasonAllSeason, []string{"весна-осен", "осень-весн", "весна / осен", "осень / весн"}},
	{domain.SeasonAllSeason, []string{"демисез"}},
	{domain.SeasonAllSeason, []string{"круглогод", "всесезон", "all-season"}},
	{domain.SeasonWinter, []string{"зимн", "пухов", "утепл", "на мех", "мех"}},
	{domain.SeasonSummer, []string{"летн", "лето"}},
	{domain.SeasonSpring, []string{"весенн"}},
	{domain.SeasonAutumn, []string{"осенн"}},
}

var styleRules = []styleRule{
	{domain.StyleSport, []string{"спорт", "спортивн", "трениров", "фитнес", "fitness", "running", "бег", "зал"}},
	{domain.StyleOffice, []string{"офис", "делов", "классич", "строг", "формал", "official"}},
	{domain.StyleElegant, []string{"вечерн", "элегант", "коктейль", "празднич", "нарядн"}},
	{domain.StyleStreetwear, []string{"street", "стрит", "oversize", "оверсайз", "urban", "гранж"}},
	{domain.StyleCasual, []string{"повседнев", "casual", "на каждый день", "базов"}},
}

// CategoryOf classifies a product name into a garment category
func CategoryOf(name string) domain.Category {
	text := normalizeText(name)
	if containsAny(text, dressTerms) {
		return domain.CategoryDress
	}

	best := domain.CategoryTops
	bestScore := 0
	for _, rule := range categoryRules {
		if score := countHits(text, rule.Terms); score > bestScore {
			best, bestScore = rule.Category, score
		}
	}
	return best
}

// GenderOf infers the intended wearer's gender, unisex when nothing matches
func GenderOf(text string) domain.Gender {
	t := normalizeText(text)
	for _, rule := range genderRules {
		if containsAny(t, rule.Terms) {
			return rule.Gender
		}
	}
	return domain.GenderUnisex
}

// AgeGroupOf returns child when any child marker is present
func AgeGroupOf(text string) domain.AgeGroup {
	if containsAny(normalizeText(text), childMarkers) {
		return domain.AgeGroupChild
	}
	return domain.AgeGroupAdult
}

// SeasonOf infers the season, all-season when nothing matches
func SeasonOf(text string) domain.Season {
	t := normalizeText(text)
	for _, rule := range seasonRules {
		if containsAny(t, rule.Terms) {
			return rule.Season
		}
	}
	return domain.SeasonAllSeason
}

// StyleOf infers the style, other when nothing matches
func StyleOf(text string) domain.Style {
	t := normalizeText(text)
	for _, rule := range styleRules {
		if containsAny(t, rule.Terms) {
			return rule.Style
		}
	}
	return domain.StyleOther
}

// InferFeatures runs every heuristic classifier over a product name
func InferFeatures(name string) domain.AnchorFeatures {
	return domain.AnchorFeatures{
		Category: CategoryOf(name),
		Gender:   GenderOf(name),
		AgeGroup: AgeGroupOf(name),
		Season:   SeasonOf(name),
		Style:    StyleOf(name),
		Color:    domain.UnknownColor,
	}
}
