package featured

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lukman83/showcase/internal/logging"
	"github.com/lukman83/showcase/internal/models"
)

// Variant selects which public featured-products API the storefront reads.
type Variant string

const (
	// VariantLegacy reads GET /featured-products as a bare array.
	VariantLegacy Variant = "legacy"
	// VariantMultilingual reads GET /featured-products/ for the source
	// language and the /language/{lang} envelope otherwise.
	VariantMultilingual Variant = "multilingual"
)

// ParseVariant validates a configured variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantLegacy, VariantMultilingual:
		return v, nil
	}
	return "", fmt.Errorf("unknown featured api variant %q", s)
}

// ShowcaseBackend is the public featured-products part of the API client.
type ShowcaseBackend interface {
	PublicFeatured(ctx context.Context) ([]models.FeaturedDisplay, error)
	PublicFeaturedList(ctx context.Context) ([]models.FeaturedDisplay, error)
	LocalizedFeatured(ctx context.Context, lang string) ([]models.FeaturedDisplay, error)
}

// Card is one filled storefront position.
type Card struct {
	Position      int     `json:"position"`
	ProductID     int     `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
}

// View is the storefront featured section. Empty is set when there is
// nothing to show, including after a failed load.
type View struct {
	Language string `json:"language"`
	Cards    []Card `json:"cards"`
	Empty    bool   `json:"empty"`
}

// Showcase builds the public featured section.
type Showcase struct {
	backend    ShowcaseBackend
	variant    Variant
	sourceLang string
	logger     *slog.Logger
}

// NewShowcase creates a Showcase reading the given API variant.
func NewShowcase(backend ShowcaseBackend, variant Variant, sourceLang string, logger *slog.Logger) *Showcase {
	if variant == "" {
		variant = VariantLegacy
	}
	return &Showcase{
		backend:    backend,
		variant:    variant,
		sourceLang: sourceLang,
		logger:     logging.OrDiscard(logger),
	}
}

// Variant returns the API variant in use.
func (s *Showcase) Variant() Variant { return s.variant }

// Load fetches the positions for lang and drops the empty ones. On failure
// the returned view is the empty state and the error is returned alongside.
func (s *Showcase) Load(ctx context.Context, lang string) (View, error) {
	slots, err := s.fetch(ctx, lang)
	if err != nil {
		s.logger.Warn("featured products unavailable", "variant", s.variant, "lang", lang, "error", err)
		return View{Language: lang, Empty: true}, err
	}

	view := View{Language: lang}
	for _, slot := range slots {
		if slot.Product == nil {
			continue
		}
		p := slot.Product
		desc := p.Description
		if lang == "en" && p.DescriptionEN != "" {
			desc = p.DescriptionEN
		}
		view.Cards = append(view.Cards, Card{
			Position:      slot.Position,
			ProductID:     p.ID,
			Name:          p.DisplayName(lang),
			Description:   desc,
			ImageURL:      p.ImageURL,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
		})
	}
	sort.SliceStable(view.Cards, func(i, j int) bool {
		return view.Cards[i].Position < view.Cards[j].Position
	})
	view.Empty = len(view.Cards) == 0
	return view, nil
}

func (s *Showcase) fetch(ctx context.Context, lang string) ([]models.FeaturedDisplay, error) {
	if s.variant == VariantMultilingual {
		if lang == "" || lang == s.sourceLang {
			return s.backend.PublicFeaturedList(ctx)
		}
		return s.backend.LocalizedFeatured(ctx, lang)
	}
	return s.backend.PublicFeatured(ctx)
}
