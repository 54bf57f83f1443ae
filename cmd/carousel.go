package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lukman83/showcase/internal/app"
	"github.com/lukman83/showcase/internal/carousel"
	"github.com/lukman83/showcase/internal/ui"
)

var carouselCmd = &cobra.Command{
	Use:   "carousel",
	Short: "Preview the hero carousel in the terminal",
	Long: "Preview the hero carousel. Keys: left/right arrows move, 1-9 jump to a slide, " +
		"space pauses autoplay, l switches between zh and en, q quits.",
	RunE: runCarousel,
}

func init() {
	carouselCmd.Flags().Duration("interval", 0, "Autoplay interval (default from $SHOWCASE_SLIDE_INTERVAL)")
	carouselCmd.Flags().Duration("cooldown", 0, "Minimum time between transitions")
	carouselCmd.Flags().Bool("once", false, "Render the first slide and exit")
	rootCmd.AddCommand(carouselCmd)
}

func runCarousel(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	cooldown, _ := cmd.Flags().GetDuration("cooldown")
	once, _ := cmd.Flags().GetBool("once")

	fd := int(os.Stdin.Fd())
	interactive := !once && term.IsTerminal(fd)

	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		renderer := ui.NewCarouselRenderer(cmd.OutOrStdout())
		c := a.Carousel(renderer, interval, cooldown)
		defer c.Close()

		if !interactive {
			c.Refresh(ctx)
			return nil
		}

		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		defer term.Restore(fd, state)
		renderer.Raw = true

		c.Refresh(ctx)
		return carouselLoop(ctx, os.Stdin, a, c)
	})
}

// carouselLoop feeds keypresses to the controller until q, Ctrl-C, EOF or
// cancellation.
func carouselLoop(ctx context.Context, in io.Reader, a *app.App, c *carousel.Controller) error {
	keys := make(chan []byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 8)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				k := make([]byte, n)
				copy(k, buf[:n])
				select {
				case keys <- k:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	paused := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			switch key := string(k); {
			case key == "q" || key == "\x03":
				return nil
			case key == "\x1b[D":
				c.HandleKey(carousel.KeyLeft)
			case key == "\x1b[C":
				c.HandleKey(carousel.KeyRight)
			case key == " ":
				if paused {
					c.PointerLeave()
				} else {
					c.PointerEnter()
				}
				paused = !paused
			case key == "l":
				next := "en"
				if a.Language() == "en" {
					next = "zh"
				}
				if _, err := a.SetLanguage(next); err != nil {
					return err
				}
				c.Refresh(ctx)
				paused = false
			case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
				c.GoToSlide(int(key[0] - '1'))
			}
		}
	}
}
