package domain

import "strings"

// Category is a garment category
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryOuterwear   Category = "outerwear"
	CategoryFootwear    Category = "footwear"
	CategoryAccessories Category = "accessories"
	CategoryDress       Category = "dress"
)

// Gender of the intended wearer
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// AgeGroup of the intended wearer
type AgeGroup string

const (
	AgeGroupAdult AgeGroup = "adult"
	AgeGroupChild AgeGroup = "child"
)

// Season a garment is meant for
type Season string

const (
	SeasonWinter    Season = "winter"
	SeasonSummer    Season = "summer"
	SeasonSpring    Season = "spring"
	SeasonAutumn    Season = "autumn"
	SeasonAllSeason Season = "all-season"
)

// Style of a garment
type Style string

const (
	StyleCasual     Style = "casual"
	StyleSport      Style = "sport"
	StyleOffice     Style = "office"
	StyleStreetwear Style = "streetwear"
	StyleElegant    Style = "elegant"
	StyleOther      Style = "other"
)

// UnknownColor is reported when the color of a product could not be determined
const UnknownColor = "неизвестно"

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryOuterwear, CategoryFootwear, CategoryAccessories, CategoryDress:
		return true
	}
	return false
}

// Valid reports whether g is a known gender
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

// Valid reports whether a is a known age group
func (a AgeGroup) Valid() bool {
	return a == AgeGroupAdult || a == AgeGroupChild
}

// Valid reports whether s is a known season
func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSummer, SeasonSpring, SeasonAutumn, SeasonAllSeason:
		return true
	}
	return false
}

// Valid reports whether s is a known style
func (s Style) Valid() bool {
	switch s {
	case StyleCasual, StyleSport, StyleOffice, StyleStreetwear, StyleElegant, StyleOther:
		return true
	}
	return false
}

// ParseCategory parses a category name, reporting whether it is known
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// ParseGender parses a gender name, reporting whether it is known
func ParseGender(s string) (Gender, bool) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	return g, g.Valid()
}

// ParseAgeGroup parses an age group name, reporting whether it is known
func ParseAgeGroup(s string) (AgeGroup, bool) {
	a := AgeGroup(strings.ToLower(strings.TrimSpace(s)))
	return a, a.Valid()
}

// ParseSeason parses a season name, reporting whether it is known
func ParseSeason(s string) (Season, bool) {
	v := Season(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

// ParseStyle parses a style name, reporting whether it is known
func ParseStyle(s string) (Style, bool) {
	v := Style(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

// AnchorFeatures are the resolved attributes of the anchor product.
// Once resolved every field is populated.
type AnchorFeatures struct {
	Category Category `json:"category"`
	Gender   Gender   `json:"gender"`
	AgeGroup AgeGroup `json:"age_group"`
	Season   Season   `json:"season"`
	Style    Style    `json:"style"`
	Color    string   `json:"color,omitempty"`
}

// WithDefaults fills every invalid or empty field with its default value
func (f AnchorFeatures) WithDefaults() AnchorFeatures {
	if !f.Category.Valid() {
		f.Category = CategoryTops
	}
	if !f.Gender.Valid() {
		f.Gender = GenderUnisex
	}
	if !f.AgeGroup.Valid() {
		f.AgeGroup = AgeGroupAdult
	}
	if !f.Season.Valid() {
		f.Season = SeasonAllSeason
	}
	if !f.Style.Valid() {
		f.Style = StyleOther
	}
	if f.Color == "" {
		f.Color = UnknownColor
	}
	return f
}

// QueryHintOverrides are caller-supplied attribute hints. Each field is
// validated on its own and ignored when empty or unknown.
type QueryHintOverrides struct {
	Gender   string `json:"gender,omitempty"`
	AgeGroup string `json:"age_group,omitempty"`
	Season   string `json:"season,omitempty"`
	Style    string `json:"style,omitempty"`
}

// IsEmpty reports whether no hint was supplied
func (h QueryHintOverrides) IsEmpty() bool {
	return h.Gender == "" && h.AgeGroup == "" && h.Season == "" && h.Style == ""
}
