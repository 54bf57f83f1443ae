package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the storefront's source language.
const DefaultLanguage = "zh"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadFromFS(embeddedLocales)
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded catalogs: %v", err))
	}
	return b
}

// Bundle holds a flat key → message table per locale.
type Bundle struct {
	messages map[string]map[string]string
}

// LoadFromFS reads every locales/<lang>.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{messages: make(map[string]map[string]string, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var msgs map[string]string
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		locale := strings.TrimSuffix(path.Base(p), path.Ext(p))
		b.messages[locale] = msgs
	}

	if _, ok := b.messages[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("catalog for %s is missing", DefaultLanguage)
	}
	return b, nil
}

// Lookup returns the message for key in lang.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	msgs, ok := b.messages[lang]
	if !ok {
		return "", false
	}
	msg, ok := msgs[key]
	return msg, ok
}

// T returns the message for key in lang, or key itself when absent.
func (b *Bundle) T(lang, key string) string {
	if msg, ok := b.Lookup(lang, key); ok {
		return msg
	}
	return key
}

// Locales lists the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.messages))
	for l := range b.messages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Keys lists the keys defined for lang, sorted.
func (b *Bundle) Keys(lang string) []string {
	msgs := b.messages[lang]
	out := make([]string, 0, len(msgs))
	for k := range msgs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Localizer binds a Bundle to one language.
type Localizer struct {
	bundle *Bundle
	lang   string
}

// For returns a Localizer for lang.
func (b *Bundle) For(lang string) Localizer {
	return Localizer{bundle: b, lang: lang}
}

// Language returns the bound language.
func (l Localizer) Language() string { return l.lang }

// T returns the message for key, or key itself when absent.
func (l Localizer) T(key string) string { return l.bundle.T(l.lang, key) }

// Lookup returns the message for key and whether it exists.
func (l Localizer) Lookup(key string) (string, bool) { return l.bundle.Lookup(l.lang, key) }
