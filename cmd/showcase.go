package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/internal/app"
)

var showcaseCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Show the storefront featured section",
	RunE:  runShowcase,
}

func init() {
	rootCmd.AddCommand(showcaseCmd)
}

func runShowcase(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		lang := a.Language()
		view, err := a.Showcase.Load(ctx, lang)
		if err != nil {
			logger.Debug("showcase load failed", "error", err)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, a.Messages.T(lang, "featured.title"))
		if view.Empty {
			fmt.Fprintln(w, a.Messages.T(lang, "data.no_products"))
			return nil
		}
		tw := newTable(w)
		for _, c := range view.Cards {
			price := formatPrice(c.Price)
			if c.OriginalPrice > c.Price {
				price += " (was " + formatPrice(c.OriginalPrice) + ")"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", c.Position, truncate(c.Name, 40), price)
		}
		return tw.Flush()
	})
}
