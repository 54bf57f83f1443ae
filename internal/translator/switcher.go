package translator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lukman83/showcase/internal/logging"
	"github.com/lukman83/showcase/internal/page"
	"github.com/lukman83/showcase/internal/session"
)

// Report describes one language switch.
type Report struct {
	Language  string
	Collected int
	Applied   int
	Unchanged int
	Failed    int
	Restored  int
}

// Switcher moves a document between the source language and machine
// translations, one switch at a time.
type Switcher struct {
	translator *Translator
	store      session.Store
	maxLen     int
	logger     *slog.Logger

	switching atomic.Bool
	mu        sync.RWMutex
	current   string
}

// NewSwitcher creates a Switcher. maxLen is the longest text, in runes,
// that is sent for translation.
func NewSwitcher(t *Translator, store session.Store, maxLen int, logger *slog.Logger) *Switcher {
	return &Switcher{
		translator: t,
		store:      store,
		maxLen:     maxLen,
		logger:     logging.OrDiscard(logger),
		current:    t.SourceLanguage(),
	}
}

// Current returns the language of the last switch.
func (s *Switcher) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Switch translates doc into lang and records lang as the preferred
// auto-translate language. Switching to the source language restores the
// original texts. Individual translation failures leave their elements
// untouched and are counted in the report.
func (s *Switcher) Switch(ctx context.Context, doc *page.Document, lang string) (Report, error) {
	if !IsSupported(lang) {
		return Report{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if !s.switching.CompareAndSwap(false, true) {
		return Report{}, ErrSwitchInProgress
	}
	defer s.switching.Store(false)

	s.mu.Lock()
	s.current = lang
	s.mu.Unlock()
	if s.store != nil {
		if err := s.store.SetTranslateLanguage(lang); err != nil {
			s.logger.Warn("failed to save translate language", "lang", lang, "error", err)
		}
	}

	report := Report{Language: lang}
	if lang == s.translator.SourceLanguage() {
		report.Restored = doc.Restore()
		return report, nil
	}

	return s.translator.TranslateDocument(ctx, doc, lang, s.maxLen), nil
}

// Resume re-applies the saved auto-translate language, if any. It returns
// false when nothing was saved.
func (s *Switcher) Resume(ctx context.Context, doc *page.Document) (Report, bool, error) {
	if s.store == nil {
		return Report{}, false, nil
	}
	lang := s.store.TranslateLanguage()
	if lang == "" || !IsSupported(lang) {
		return Report{}, false, nil
	}
	r, err := s.Switch(ctx, doc, lang)
	return r, true, err
}

// TranslateDocument translates the collectable elements of doc into lang
// from their original texts. Successful translations replace the element
// text; failures leave the element untouched and are counted.
func (t *Translator) TranslateDocument(ctx context.Context, doc *page.Document, lang string, maxLen int) Report {
	report := Report{Language: lang}
	targets := doc.Collect(maxLen)
	report.Collected = len(targets)
	if len(targets) == 0 {
		return report
	}

	texts := make([]string, len(targets))
	for i, tg := range targets {
		texts[i] = tg.Original
	}
	for i, r := range t.TranslateBatch(ctx, texts, lang) {
		switch {
		case r.Err != nil:
			report.Failed++
			t.logger.Debug("element translation failed", "text", r.Text, "error", r.Err)
		case r.Changed():
			doc.SetText(targets[i], r.Translated)
			report.Applied++
		default:
			if targets[i].Text() != r.Text {
				doc.SetText(targets[i], r.Text)
			}
			report.Unchanged++
		}
	}
	return report
}
