// Package i18n renders validation violations in the caller's language.
package i18n

import (
	_ "embed"
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"dmvcalc/internal/taxcalc"
)

//go:embed messages.yaml
var defaultCatalog []byte

type locale struct {
	Fields   map[string]string       `yaml:"fields"`
	Messages map[taxcalc.Kind]string `yaml:"messages"`
}

// LocalizedViolation is a violation as shown to a user.
type LocalizedViolation struct {
	Field      string       `json:"field"`
	FieldLabel string       `json:"fieldLabel"`
	Kind       taxcalc.Kind `json:"kind"`
	Message    string       `json:"message"`
}

// Catalog holds the message tables of every supported language.
type Catalog struct {
	locales  map[string]locale
	fallback string
	matcher  language.Matcher
	tags     []language.Tag
}

// Load parses the embedded catalog. fallback must be one of its languages.
func Load(fallback string) (*Catalog, error) {
	return Parse(defaultCatalog, fallback)
}

// Parse builds a Catalog from YAML keyed by BCP 47 language tag.
func Parse(data []byte, fallback string) (*Catalog, error) {
	var locales map[string]locale
	if err := yaml.Unmarshal(data, &locales); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}
	if _, ok := locales[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %q not in catalog", fallback)
	}

	// The matcher returns the first tag when nothing matches, so the fallback
	// goes first.
	names := make([]string, 0, len(locales))
	for name := range locales {
		if name != fallback {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{fallback}, names...)

	tags := make([]language.Tag, 0, len(names))
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q in catalog: %w", name, err)
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		locales:  locales,
		fallback: fallback,
		matcher:  language.NewMatcher(tags),
		tags:     tags,
	}, nil
}

// Languages lists the catalog's languages, fallback first.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tags))
	for _, t := range c.tags {
		out = append(out, t.String())
	}
	return out
}

// Negotiate picks the best supported language for an Accept-Language value.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return c.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx].String()
}

// Message returns the text for kind in lang, falling back to the default
// language and then to the core's English message.
func (c *Catalog) Message(lang string, kind taxcalc.Kind) string {
	if m, ok := c.locales[lang].Messages[kind]; ok {
		return m
	}
	if m, ok := c.locales[c.fallback].Messages[kind]; ok {
		return m
	}
	return taxcalc.DefaultMessage(kind)
}

// FieldLabel returns the display label of a wire field name.
func (c *Catalog) FieldLabel(lang, field string) string {
	if l, ok := c.locales[lang].Fields[field]; ok {
		return l
	}
	if l, ok := c.locales[c.fallback].Fields[field]; ok {
		return l
	}
	return field
}

// Localize renders violations in lang.
func (c *Catalog) Localize(lang string, vs taxcalc.Violations) []LocalizedViolation {
	out := make([]LocalizedViolation, 0, len(vs))
	for _, v := range vs {
		out = append(out, LocalizedViolation{
			Field:      v.Field,
			FieldLabel: c.FieldLabel(lang, v.Field),
			Kind:       v.Kind,
			Message:    c.Message(lang, v.Kind),
		})
	}
	return out
}
