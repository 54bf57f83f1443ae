package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Base returns the ISO 639 base code of a language tag, e.g. "zh" for
// "zh-Hans-CN".
func Base(tag string) (string, error) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", tag, err)
	}
	base, _ := t.Base()
	return base.String(), nil
}

// Matcher picks the closest supported language for a request.
type Matcher struct {
	supported []string
	matcher   language.Matcher
}

// NewMatcher builds a Matcher over supported base codes. The first entry
// is the fallback.
func NewMatcher(supported ...string) *Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = language.Make(s)
	}
	return &Matcher{supported: supported, matcher: language.NewMatcher(tags)}
}

// Match returns the supported code closest to the requested tags or
// Accept-Language values.
func (m *Matcher) Match(requested ...string) string {
	var tags []language.Tag
	for _, r := range requested {
		parsed, _, err := language.ParseAcceptLanguage(r)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return m.supported[0]
	}
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return m.supported[0]
	}
	return m.supported[idx]
}

// Supports reports whether code is one of the matcher's languages.
func (m *Matcher) Supports(code string) bool {
	for _, s := range m.supported {
		if s == code {
			return true
		}
	}
	return false
}

// Languages returns the supported codes.
func (m *Matcher) Languages() []string {
	out := make([]string, len(m.supported))
	copy(out, m.supported)
	return out
}
