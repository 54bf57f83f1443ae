package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/internal/api"
	"github.com/lukman83/showcase/internal/app"
	"github.com/lukman83/showcase/internal/models"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE:  runProductsList,
}

var productsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the public catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsList,
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE:  runProductsCreate,
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsUpdate,
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsDelete,
}

func init() {
	for _, c := range []*cobra.Command{productsListCmd, productsSearchCmd} {
		c.Flags().IntP("category", "c", 0, "Filter by category ID")
		c.Flags().Bool("featured", false, "Only featured products")
		c.Flags().Float64("min-price", 0, "Minimum price")
		c.Flags().Float64("max-price", 0, "Maximum price")
		c.Flags().String("sort", "", "Sort by: created_at, price, name, sales_count, view_count")
		c.Flags().String("order", "", "Sort order: asc, desc")
		c.Flags().IntP("page", "p", 1, "Page number")
		c.Flags().IntP("size", "s", 20, "Page size")
	}
	productsListCmd.Flags().Bool("public", false, "List the public storefront view instead of the admin view")
	productsListCmd.Flags().Bool("refresh", false, "Bypass the client cache")

	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		c.Flags().String("name", "", "Name")
		c.Flags().String("name-en", "", "English name")
		c.Flags().String("description", "", "Description")
		c.Flags().String("description-en", "", "English description")
		c.Flags().Float64("price", 0, "Price")
		c.Flags().Float64("original-price", 0, "Original price")
		c.Flags().String("image-url", "", "Main image URL")
		c.Flags().String("sku", "", "SKU")
		c.Flags().Int("stock", 0, "Stock quantity")
		c.Flags().String("tags", "", "Comma-separated tags")
		c.Flags().Int("category", 0, "Category ID")
		c.Flags().Int("sort-order", 0, "Sort order")
		c.Flags().Bool("featured", false, "Mark as featured")
		c.Flags().Bool("active", true, "Whether the product is shown")
	}
	productsCreateCmd.MarkFlagRequired("name")
	productsCreateCmd.MarkFlagRequired("price")

	productsCmd.AddCommand(productsListCmd, productsSearchCmd, productsCreateCmd, productsUpdateCmd, productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}

func productQuery(cmd *cobra.Command, args []string) api.ProductQuery {
	f := cmd.Flags()
	var q api.ProductQuery
	q.CategoryID, _ = f.GetInt("category")
	q.MinPrice, _ = f.GetFloat64("min-price")
	q.MaxPrice, _ = f.GetFloat64("max-price")
	q.SortBy, _ = f.GetString("sort")
	q.SortOrder, _ = f.GetString("order")
	q.Page, _ = f.GetInt("page")
	q.Size, _ = f.GetInt("size")
	if f.Changed("featured") {
		v, _ := f.GetBool("featured")
		q.IsFeatured = &v
	}
	if len(args) > 0 {
		q.Query = args[0]
	}
	return q
}

func runProductsList(cmd *cobra.Command, args []string) error {
	q := productQuery(cmd, args)
	public := cmd.Name() == "search"
	if !public {
		public, _ = cmd.Flags().GetBool("public")
	}
	refresh, _ := cmd.Flags().GetBool("refresh")

	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		var (
			page *models.ProductPage
			err  error
		)
		if public {
			page, err = a.Catalog.PublicProducts(ctx, q)
		} else {
			page, err = a.Catalog.GetCachedProducts(ctx, q, refresh)
		}
		if err != nil {
			return err
		}
		printProductsTable(cmd.OutOrStdout(), page, a.Language())
		return nil
	})
}

func productInput(cmd *cobra.Command) models.ProductInput {
	f := cmd.Flags()
	in := models.ProductInput{
		Name:          changedString(cmd, "name"),
		NameEN:        changedString(cmd, "name-en"),
		Description:   changedString(cmd, "description"),
		DescriptionEN: changedString(cmd, "description-en"),
		ImageURL:      changedString(cmd, "image-url"),
		SKU:           changedString(cmd, "sku"),
		Tags:          changedString(cmd, "tags"),
		Price:         changedFloat(cmd, "price"),
		OriginalPrice: changedFloat(cmd, "original-price"),
		Stock:         changedInt(cmd, "stock"),
		CategoryID:    changedInt(cmd, "category"),
		SortOrder:     changedInt(cmd, "sort-order"),
	}
	if f.Changed("featured") {
		v, _ := f.GetBool("featured")
		in.IsFeatured = &v
	}
	if f.Changed("active") || cmd.Name() == "create" {
		v, _ := f.GetBool("active")
		in.IsActive = &v
	}
	return in
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func changedFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func runProductsCreate(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		p, err := a.Catalog.CreateProduct(ctx, productInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created product %d (%s).\n", p.ID, p.Name)
		return nil
	})
}

func runProductsUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		p, err := a.Catalog.UpdateProduct(ctx, id, productInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated product %d (%s).\n", p.ID, p.Name)
		return nil
	})
}

func runProductsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if err := a.Catalog.DeleteProduct(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %d.\n", id)
		return nil
	})
}
