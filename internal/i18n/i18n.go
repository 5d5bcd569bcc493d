// Package i18n provides the message substitution used by the Markdown
// templates. Catalogs are YAML mappings (source string -> translation)
// compiled into the binary.
package i18n

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"steinschliff/internal/logger"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Catalog translates source messages for one locale.
type Catalog struct {
	Locale   string
	messages map[string]string
}

// Load returns the catalog for locale. An unknown locale or a broken
// catalog yields an identity catalog.
func Load(locale string) *Catalog {
	c := &Catalog{Locale: locale, messages: map[string]string{}}
	data, err := localesFS.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		logger.Warn("translations for %q not found, using source strings", locale)
		return c
	}
	if err := yaml.Unmarshal(data, &c.messages); err != nil {
		logger.Warn("translations for %q unreadable: %v", locale, err)
		c.messages = map[string]string{}
		return c
	}
	logger.Debug("loaded %d translations for %q", len(c.messages), locale)
	return c
}

// Gettext returns the translation of msg, or msg itself.
func (c *Catalog) Gettext(msg string) string {
	if c == nil {
		return msg
	}
	if t, ok := c.messages[msg]; ok && t != "" {
		return t
	}
	return msg
}

// Len returns the number of translated messages.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.messages)
}

// Locales lists the compiled-in locales, sorted.
func Locales() []string {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Missing returns source messages from msgs that locale does not translate.
func Missing(locale string, msgs []string) ([]string, error) {
	if _, err := localesFS.ReadFile("locales/" + locale + ".yaml"); err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	c := Load(locale)
	var out []string
	for _, m := range msgs {
		if _, ok := c.messages[m]; !ok {
			out = append(out, m)
		}
	}
	return out, nil
}
