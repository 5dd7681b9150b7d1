package domain

import (
	"strings"

	"golang.org/x/text/language"
)

type Language string

const (
	LanguageEnglish Language = "en-US"
	LanguageSpanish Language = "es-ES"

	DefaultLanguage = LanguageEnglish
)

type LanguageOption struct {
	Code Language
	Name string
}

// SupportedLanguages is the closed set offered by the language selector.
var SupportedLanguages = []LanguageOption{
	{Code: LanguageEnglish, Name: "English"},
	{Code: LanguageSpanish, Name: "Español"},
}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.EuropeanSpanish,
})

// ParseLanguage accepts only the exact codes of SupportedLanguages.
func ParseLanguage(raw string) (Language, bool) {
	for _, opt := range SupportedLanguages {
		if string(opt.Code) == strings.TrimSpace(raw) {
			return opt.Code, true
		}
	}
	return "", false
}

// ResolveLanguage picks the startup language: a saved code wins, then each
// hint (Accept-Language values, POSIX locales such as "es_ES.UTF-8") is
// negotiated against the supported set.
func ResolveLanguage(saved string, hints ...string) Language {
	if lang, ok := ParseLanguage(saved); ok {
		return lang
	}

	for _, hint := range hints {
		hint = normalizeLocale(hint)
		if hint == "" {
			continue
		}

		tags, _, err := language.ParseAcceptLanguage(hint)
		if err != nil || len(tags) == 0 {
			continue
		}

		_, idx, confidence := languageMatcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		return SupportedLanguages[idx].Code
	}

	return DefaultLanguage
}

func normalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "C" || raw == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(raw, "_", "-")
}
