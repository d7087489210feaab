package render

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-calcform/pkg/validation"
)

// ErrMissingTranslation is returned when neither the locale nor its base
// language defines a key.
var ErrMissingTranslation = errors.New("render: missing translation")

// Catalog is an in-memory message catalog keyed by locale, then message key.
// Entries are format strings receiving the same operands as
// validation.Messages. It satisfies validation.Translator.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

var _ validation.Translator = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{messages: make(map[string]map[string]string)}
}

// Add merges entries for locale.
func (c *Catalog) Add(locale string, entries map[string]string) {
	locale = normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string, len(entries))
	}
	for key, value := range entries {
		c.messages[locale][strings.TrimSpace(key)] = value
	}
}

// LoadCatalog reads a YAML document shaped as `locale: {key: format}` from
// fsys.
//
//	es:
//	  validation.required: "%s es obligatorio"
func LoadCatalog(fsys fs.FS, path string) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("render: read catalog %s: %w", path, err)
	}
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("render: parse catalog %s: %w", path, err)
	}
	c := NewCatalog()
	for locale, entries := range doc {
		c.Add(locale, entries)
	}
	return c, nil
}

// Translate looks key up for locale, then for its base language ("es" for
// "es-MX"), and formats the entry with args.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	locale = normalizeLocale(locale)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range []string{locale, baseLanguage(locale)} {
		if entry, ok := c.messages[candidate][key]; ok && strings.TrimSpace(entry) != "" {
			if len(args) == 0 {
				return entry, nil
			}
			return fmt.Sprintf(entry, args...), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

// Locales returns the locales with at least one entry.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// normalizeLocale returns the canonical BCP 47 form ("es_mx" becomes
// "es-MX"). Unparseable values are only trimmed and lowercased.
func normalizeLocale(locale string) string {
	raw := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return tag.String()
}

func baseLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		if idx := strings.Index(locale, "-"); idx > 0 {
			return locale[:idx]
		}
		return locale
	}
	base, _ := tag.Base()
	return base.String()
}
