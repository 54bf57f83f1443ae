package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lukman83/showcase/internal/carousel"
)

// CarouselRenderer draws the hero carousel as a text panel, redrawing in
// place on every render.
type CarouselRenderer struct {
	mu    sync.Mutex
	w     io.Writer
	lines int
	// Raw terminals need explicit carriage returns.
	Raw bool
}

func NewCarouselRenderer(w io.Writer) *CarouselRenderer {
	return &CarouselRenderer{w: w}
}

func (r *CarouselRenderer) Render(v carousel.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	if r.lines > 0 {
		fmt.Fprintf(&b, "\033[%dA", r.lines)
	}
	out := FormatCarousel(v)
	for _, line := range out {
		b.WriteString("\r\033[K")
		b.WriteString(line)
		b.WriteString("\n")
	}
	text := b.String()
	if r.Raw {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	fmt.Fprint(r.w, text)
	r.lines = len(out)
}

// FormatCarousel lays a view out as text lines.
func FormatCarousel(v carousel.View) []string {
	if len(v.Slides) == 0 {
		return []string{"(no slides)"}
	}
	lines := []string{
		"┌" + strings.Repeat("─", 58),
		"│ " + v.Title,
		"│ " + v.Subtitle,
	}
	button := "│ [ " + v.Button + " ]"
	if v.ButtonLink != "" {
		button += " → " + v.ButtonLink
	}
	lines = append(lines, button)

	cur := v.Slides[v.Index]
	if cur.ImageURL != "" {
		lines = append(lines, "│ image: "+cur.ImageURL)
	} else {
		lines = append(lines, "│ image: (default background)")
	}
	lines = append(lines, "└"+strings.Repeat("─", 58))

	if v.Controls {
		dots := make([]string, len(v.Slides))
		for i, s := range v.Slides {
			if s.Active {
				dots[i] = "●"
			} else {
				dots[i] = "○"
			}
		}
		state := "playing"
		if !v.Playing {
			state = "paused"
		}
		lines = append(lines, fmt.Sprintf("  ‹ %s ›  %d/%d  %s", strings.Join(dots, " "), v.Index+1, len(v.Slides), state))
	}
	return lines
}
