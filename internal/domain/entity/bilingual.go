package entity

import (
	"fmt"
	"strings"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
)

// ParseLanguage reads the lang query parameter. ok is false when the
// parameter is absent, in which case callers return the raw bilingual object.
func ParseLanguage(raw string) (lang Language, ok bool, err error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "":
		return "", false, nil
	case string(LanguageEnglish):
		return LanguageEnglish, true, nil
	case string(LanguageTamil):
		return LanguageTamil, true, nil
	}
	return "", false, fmt.Errorf("unsupported language %q", raw)
}

// Bilingual is the {en, ta} shape stored for every translatable field.
type Bilingual struct {
	En string `json:"en" bson:"en"`
	Ta string `json:"ta,omitempty" bson:"ta,omitempty"`
}

// Resolve picks the requested language, falling back to English.
func (b Bilingual) Resolve(lang Language) string {
	if lang == LanguageTamil && b.Ta != "" {
		return b.Ta
	}
	return b.En
}

func (b Bilingual) IsEmpty() bool {
	return strings.TrimSpace(b.En) == "" && strings.TrimSpace(b.Ta) == ""
}

// Trimmed returns a copy with surrounding whitespace removed.
func (b Bilingual) Trimmed() Bilingual {
	return Bilingual{En: strings.TrimSpace(b.En), Ta: strings.TrimSpace(b.Ta)}
}
