package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Bool("refresh", false, "Bypass the client cache")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		s, err := a.Catalog.GetCachedStats(ctx, refresh)
		if err != nil {
			return err
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintf(tw, "Categories:\t%d\n", s.CategoriesCount)
		fmt.Fprintf(tw, "Products:\t%d\n", s.ProductsCount)
		fmt.Fprintf(tw, "Active products:\t%d\n", s.ActiveProductsCount)
		fmt.Fprintf(tw, "Total stock:\t%d\n", s.TotalStock)
		return tw.Flush()
	})
}
