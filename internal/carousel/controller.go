// Package carousel drives the storefront hero carousel: slide selection,
// transition cooldown, autoplay and placeholder fallback.
package carousel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lukman83/showcase/internal/logging"
)

// Keys understood by HandleKey.
const (
	KeyLeft  = "ArrowLeft"
	KeyRight = "ArrowRight"
)

// SlideView is one slide as rendered.
type SlideView struct {
	Slide
	Active bool
}

// View is what a Renderer draws.
type View struct {
	Slides     []SlideView
	Index      int
	Title      string
	Subtitle   string
	Button     string
	ButtonLink string
	// Controls is false when there is at most one slide; prev, next and
	// indicators are hidden then.
	Controls bool
	Playing  bool
}

// Renderer applies a View.
type Renderer interface {
	Render(View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

func (f RendererFunc) Render(v View) { f(v) }

// Options tunes a Controller.
type Options struct {
	Interval time.Duration // 5s
	Cooldown time.Duration // 1s
	Clock    Clock
	// Language returns the UI language for Refresh. Nil means "zh".
	Language func() string
	Messages Messages
	Logger   *slog.Logger
}

// Controller owns the carousel state. It is safe for concurrent use;
// Render is called with the controller locked, so renderers must not call
// back into it.
type Controller struct {
	loader   Loader
	renderer Renderer
	interval time.Duration
	cooldown time.Duration
	clock    Clock
	language func() string
	messages Messages
	logger   *slog.Logger

	mu        sync.Mutex
	slides    []Slide
	index     int
	busyUntil time.Time
	stop      chan struct{}
	gen       int
}

func New(loader Loader, renderer Renderer, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Second
	}
	if opts.Cooldown < 0 {
		opts.Cooldown = 0
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Language == nil {
		opts.Language = func() string { return "zh" }
	}
	if renderer == nil {
		renderer = RendererFunc(func(View) {})
	}
	return &Controller{
		loader:   loader,
		renderer: renderer,
		interval: opts.Interval,
		cooldown: opts.Cooldown,
		clock:    opts.Clock,
		language: opts.Language,
		messages: opts.Messages,
		logger:   logging.OrDiscard(opts.Logger),
	}
}

// Refresh stops autoplay, reloads the slides for the current language and
// shows the first one. A failed load or no active slides falls back to the
// placeholder slides. Autoplay restarts when there is more than one slide.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.stopAutoplayLocked()
	c.mu.Unlock()

	lang := c.language()
	slides, err := c.loader.Slides(ctx, lang)
	if err != nil {
		c.logger.Warn("failed to load carousel slides, using placeholders", "error", err)
		slides = nil
	}
	if len(slides) == 0 && c.messages != nil {
		slides = Placeholders(c.messages, lang)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.slides = slides
	c.index = 0
	c.busyUntil = time.Time{}
	c.startAutoplayLocked()
	c.renderLocked()
}

// GoToSlide shows slide i. It does nothing when i is the current slide,
// is out of range, or a transition started less than the cooldown ago.
func (c *Controller) GoToSlide(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(i)
}

func (c *Controller) goToLocked(i int) bool {
	if i == c.index || i < 0 || i >= len(c.slides) {
		return false
	}
	now := c.clock.Now()
	if now.Before(c.busyUntil) {
		return false
	}
	c.index = i
	c.busyUntil = now.Add(c.cooldown)
	c.renderLocked()
	return true
}

// Next advances one slide, wrapping to the first.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(1)
}

// Prev goes back one slide, wrapping to the last.
func (c *Controller) Prev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(-1)
}

func (c *Controller) stepLocked(delta int) bool {
	n := len(c.slides)
	if n <= 1 {
		return false
	}
	return c.goToLocked((c.index + delta + n) % n)
}

// PointerEnter pauses autoplay while the pointer is over the carousel.
func (c *Controller) PointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAutoplayLocked()
	c.renderLocked()
}

// PointerLeave resumes autoplay.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startAutoplayLocked()
	c.renderLocked()
}

// HandleKey moves on ArrowLeft and ArrowRight and ignores other keys.
func (c *Controller) HandleKey(key string) bool {
	switch key {
	case KeyLeft:
		return c.Prev()
	case KeyRight:
		return c.Next()
	}
	return false
}

// Index returns the current slide index.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Playing reports whether autoplay is running.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// View returns the current view model.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Close stops autoplay.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAutoplayLocked()
}

func (c *Controller) startAutoplayLocked() {
	if len(c.slides) <= 1 {
		return
	}
	c.stopAutoplayLocked()
	c.gen++
	stop := make(chan struct{})
	c.stop = stop
	go c.autoplay(c.gen, stop, c.clock.NewTicker(c.interval))
}

func (c *Controller) stopAutoplayLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Controller) autoplay(gen int, stop <-chan struct{}, ticker Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			c.mu.Lock()
			// a tick that raced with stop belongs to a finished run
			if c.gen == gen && c.stop != nil {
				c.stepLocked(1)
			}
			c.mu.Unlock()
		}
	}
}

func (c *Controller) renderLocked() {
	c.renderer.Render(c.viewLocked())
}

func (c *Controller) viewLocked() View {
	v := View{
		Index:    c.index,
		Controls: len(c.slides) > 1,
		Playing:  c.stop != nil,
		Slides:   make([]SlideView, len(c.slides)),
	}
	for i, s := range c.slides {
		v.Slides[i] = SlideView{Slide: s, Active: i == c.index}
	}
	if c.index < len(c.slides) {
		cur := c.slides[c.index]
		v.Title = cur.Title
		v.Subtitle = cur.Subtitle
		v.Button = cur.ButtonText
		v.ButtonLink = cur.ButtonLink
	}
	return v
}
