package api

import (
	"context"

	"github.com/lukman83/showcase/internal/models"
	"golang.org/x/sync/errgroup"
)

// DashboardStats derives catalog counts from the admin category and product
// listings, fetched concurrently. An expired session is returned as an
// error; any other failure is logged and yields zero stats.
func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var (
		categories []models.Category
		products   []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = c.AdminCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = c.allAdminProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if IsUnauthorized(err) || ctx.Err() != nil {
			return models.DashboardStats{}, err
		}
		c.logger.Warn("dashboard stats unavailable", "error", err)
		return models.DashboardStats{}, nil
	}

	stats := models.DashboardStats{
		CategoriesCount: len(categories),
		ProductsCount:   len(products),
	}
	for _, p := range products {
		if p.IsActive {
			stats.ActiveProductsCount++
		}
		stats.TotalStock += p.Quantity()
	}
	return stats, nil
}

// allAdminProducts walks every page of the admin product listing.
func (c *Client) allAdminProducts(ctx context.Context) ([]models.Product, error) {
	var all []models.Product
	for page := 1; ; page++ {
		res, err := c.AdminProducts(ctx, ProductQuery{Page: page, Size: MaxPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Items...)
		if len(res.Items) == 0 || page >= res.Pagination.Pages {
			return all, nil
		}
	}
}
