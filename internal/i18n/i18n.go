// Package i18n resolves user-facing strings for the supported languages.
package i18n

import (
	"log/slog"

	"vocalcart/internal/domain"
)

// Entry is a catalog value: either a static Text or a Format taking
// positional arguments.
type Entry interface {
	render(args []string) string
}

type Text string

func (t Text) render(_ []string) string { return string(t) }

type Format func(args ...string) string

func (f Format) render(args []string) string { return f(args...) }

type Catalog map[domain.Language]map[string]Entry

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// Translator looks keys up for one language, falling back to
// domain.DefaultLanguage and finally to the key itself.
type Translator struct {
	lang    domain.Language
	catalog Catalog
	logger  *slog.Logger
}

func New(lang domain.Language, logger *slog.Logger) Translator {
	return newTranslator(lang, defaultCatalog, logger)
}

func newTranslator(lang domain.Language, catalog Catalog, logger *slog.Logger) Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return Translator{lang: lang, catalog: catalog, logger: logger}
}

func (t Translator) T(key string, args ...string) string {
	if entry, ok := t.catalog[t.lang][key]; ok {
		return entry.render(args)
	}

	t.logger.Warn("translation key not found", "key", key, "language", t.lang)

	if entry, ok := t.catalog[domain.DefaultLanguage][key]; ok {
		return entry.render(args)
	}
	return key
}
