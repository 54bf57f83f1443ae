package carousel

import (
	"context"
	"strconv"

	"github.com/lukman83/showcase/internal/models"
)

// Slide is one hero carousel entry.
type Slide struct {
	ID          string
	Title       string
	Subtitle    string
	ButtonText  string
	ButtonLink  string
	ImageURL    string
	Placeholder bool
}

// Loader fetches the active slides for a language.
type Loader interface {
	Slides(ctx context.Context, lang string) ([]Slide, error)
}

// ImageSource is the part of the API client the APILoader needs.
type ImageSource interface {
	BackgroundImages(ctx context.Context, lang string) ([]models.BackgroundImage, error)
}

// APILoader reads slides from the background image endpoints.
type APILoader struct {
	source ImageSource
}

func NewAPILoader(source ImageSource) *APILoader {
	return &APILoader{source: source}
}

// Slides returns the active background images as slides, in API order.
func (l *APILoader) Slides(ctx context.Context, lang string) ([]Slide, error) {
	images, err := l.source.BackgroundImages(ctx, lang)
	if err != nil {
		return nil, err
	}
	slides := make([]Slide, 0, len(images))
	for _, img := range images {
		if !img.IsActive {
			continue
		}
		slides = append(slides, Slide{
			ID:         strconv.Itoa(img.ID),
			Title:      pick(lang, img.Title, img.TitleEN),
			Subtitle:   pick(lang, img.Subtitle, img.SubtitleEN),
			ButtonText: pick(lang, img.ButtonText, img.ButtonTextEN),
			ButtonLink: img.ButtonLink,
			ImageURL:   img.ImageURL,
		})
	}
	return slides, nil
}

func pick(lang, base, en string) string {
	if lang == "en" && en != "" {
		return en
	}
	return base
}

// Messages resolves static catalog keys. i18n.Bundle satisfies it.
type Messages interface {
	T(lang, key string) string
}

// placeholderLink is where placeholder slide buttons point.
const placeholderLink = "#products"

// Placeholders returns the three default slides shown when no background
// images are active. English gets English texts, every other language the
// Chinese ones.
func Placeholders(msgs Messages, lang string) []Slide {
	if lang != "en" {
		lang = "zh"
	}
	out := make([]Slide, 3)
	for i := range out {
		prefix := "carousel.slide" + strconv.Itoa(i+1) + "."
		out[i] = Slide{
			ID:          "default-" + strconv.Itoa(i+1),
			Title:       msgs.T(lang, prefix+"title"),
			Subtitle:    msgs.T(lang, prefix+"subtitle"),
			ButtonText:  msgs.T(lang, prefix+"button"),
			ButtonLink:  placeholderLink,
			Placeholder: true,
		}
	}
	return out
}
