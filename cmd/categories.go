package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/internal/app"
	"github.com/lukman83/showcase/internal/models"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage product categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE:  runCategoriesList,
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	RunE:  runCategoriesCreate,
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesUpdate,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

func init() {
	categoriesListCmd.Flags().Bool("public", false, "List the public storefront view instead of the admin view")
	categoriesListCmd.Flags().Bool("refresh", false, "Bypass the client cache")

	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().String("name", "", "Name")
		c.Flags().String("name-en", "", "English name")
		c.Flags().String("description", "", "Description")
		c.Flags().String("description-en", "", "English description")
		c.Flags().String("icon-url", "", "Icon URL")
		c.Flags().Int("sort-order", 0, "Sort order")
		c.Flags().Bool("active", true, "Whether the category is shown")
	}
	categoriesCreateCmd.MarkFlagRequired("name")

	categoriesCmd.AddCommand(categoriesListCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	public, _ := cmd.Flags().GetBool("public")
	refresh, _ := cmd.Flags().GetBool("refresh")

	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		var (
			cats []models.Category
			err  error
		)
		if public {
			cats, err = a.Catalog.PublicCategories(ctx)
		} else {
			cats, err = a.Catalog.GetCachedCategories(ctx, refresh)
		}
		if err != nil {
			return err
		}
		printCategories(cmd.OutOrStdout(), cats)
		return nil
	})
}

// categoryInput collects only the flags the user set.
func categoryInput(cmd *cobra.Command) models.CategoryInput {
	var in models.CategoryInput
	f := cmd.Flags()
	in.Name = changedString(cmd, "name")
	in.NameEN = changedString(cmd, "name-en")
	in.Description = changedString(cmd, "description")
	in.DescriptionEN = changedString(cmd, "description-en")
	in.IconURL = changedString(cmd, "icon-url")
	if f.Changed("sort-order") {
		v, _ := f.GetInt("sort-order")
		in.SortOrder = &v
	}
	if f.Changed("active") || cmd.Name() == "create" {
		v, _ := f.GetBool("active")
		in.IsActive = &v
	}
	return in
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func runCategoriesCreate(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		cat, err := a.Catalog.CreateCategory(ctx, categoryInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created category %d (%s).\n", cat.ID, cat.Name)
		return nil
	})
}

func runCategoriesUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		cat, err := a.Catalog.UpdateCategory(ctx, id, categoryInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated category %d (%s).\n", cat.ID, cat.Name)
		return nil
	})
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if err := a.Catalog.DeleteCategory(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d.\n", id)
		return nil
	})
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
