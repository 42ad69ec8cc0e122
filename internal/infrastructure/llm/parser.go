package llm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/wardrobelens/backend/internal/domain"
)

var (
	fencedBlockPattern   = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	trailingCommaPattern = regexp.MustCompile(`,\s*}`)

	validate = validator.New(validator.WithRequiredStructEnabled())

	requiredFields = []string{"category", "style", "season", "color", "gender", "age_group"}
)

// record is the object the model is asked to return
type record struct {
	Category string `json:"category" validate:"required,oneof=tops bottoms outerwear footwear accessories dress"`
	Style    string `json:"style" validate:"required,oneof=casual sport office streetwear elegant other"`
	Season   string `json:"season" validate:"required,oneof=winter summer spring autumn all-season"`
	Color    string `json:"color"`
	Gender   string `json:"gender" validate:"required,oneof=male female unisex"`
	AgeGroup string `json:"age_group" validate:"required,oneof=adult child"`
}

// ParseFeatures extracts a feature record from raw model output.
// The output may wrap the object in a code fence or surrounding prose.
func ParseFeatures(output string) (*domain.AnchorFeatures, error) {
	object := extractObject(output)
	if object == "" {
		return nil, fmt.Errorf("%w: no JSON object in output", domain.ErrMalformedEnrichment)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEnrichment, err)
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", domain.ErrMalformedEnrichment, name)
		}
	}

	var rec record
	if err := json.Unmarshal([]byte(object), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEnrichment, err)
	}
	rec.normalize()

	if err := validate.Struct(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEnrichment, err)
	}

	features := domain.AnchorFeatures{
		Category: domain.Category(rec.Category),
		Gender:   domain.Gender(rec.Gender),
		AgeGroup: domain.AgeGroup(rec.AgeGroup),
		Season:   domain.Season(rec.Season),
		Style:    domain.Style(rec.Style),
		Color:    rec.Color,
	}.WithDefaults()
	return &features, nil
}

func (r *record) normalize() {
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Style = strings.ToLower(strings.TrimSpace(r.Style))
	r.Season = strings.ToLower(strings.TrimSpace(r.Season))
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.AgeGroup = strings.ToLower(strings.TrimSpace(r.AgeGroup))
	r.Color = strings.TrimSpace(r.Color)

	// models often answer with a gender outside the enum; that is never fatal
	if _, ok := domain.ParseGender(r.Gender); !ok {
		r.Gender = string(domain.GenderUnisex)
	}
}

// extractObject returns the first balanced JSON object in s
func extractObject(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "\ufeff")
	if m := fencedBlockPattern.FindStringSubmatch(s); len(m) > 1 {
		s = m[1]
	}

	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	object := balancedBraces(s[start:])
	if object == "" {
		return ""
	}
	return trailingCommaPattern.ReplaceAllString(object, "}")
}

func balancedBraces(s string) string {
	depth := 0
	inString := false
	escape := false

	for i, ch := range s {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
