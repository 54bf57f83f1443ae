package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lukman83/showcase/internal/models"
)

// FeaturedProducts lists every featured-product record.
func (c *Client) FeaturedProducts(ctx context.Context) ([]models.FeaturedProduct, error) {
	var records []models.FeaturedProduct
	if _, err := c.getList(ctx, "/admin/featured-products/", nil, true, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FeaturedPositions returns the occupant of each active position. Positions
// without an active record map to nil or are absent.
func (c *Client) FeaturedPositions(ctx context.Context) (map[int]*models.PositionSlot, error) {
	var raw map[string]*models.PositionSlot
	if err := c.get(ctx, "/admin/featured-products/positions", nil, true, &raw); err != nil {
		return nil, err
	}
	out := make(map[int]*models.PositionSlot, len(raw))
	for key, slot := range raw {
		pos, err := strconv.Atoi(key)
		if err != nil {
			c.logger.Debug("ignoring non-numeric position", "key", key)
			continue
		}
		out[pos] = slot
	}
	return out, nil
}

// CreateFeatured binds a product to an empty position.
func (c *Client) CreateFeatured(ctx context.Context, in models.FeaturedInput) (*models.FeaturedProduct, error) {
	var fp models.FeaturedProduct
	if err := c.send(ctx, http.MethodPost, "/admin/featured-products/", in, &fp); err != nil {
		return nil, err
	}
	return &fp, nil
}

// UpdateFeatured changes a featured-product record in place.
func (c *Client) UpdateFeatured(ctx context.Context, id int, in models.FeaturedUpdate) (*models.FeaturedProduct, error) {
	var fp models.FeaturedProduct
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/featured-products/%d", id), in, &fp); err != nil {
		return nil, err
	}
	return &fp, nil
}

// DeleteFeatured removes a featured-product record, freeing its position.
func (c *Client) DeleteFeatured(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/featured-products/%d", id), nil, nil)
}

// PublicFeatured fetches the storefront positions as a bare array.
func (c *Client) PublicFeatured(ctx context.Context) ([]models.FeaturedDisplay, error) {
	var slots []models.FeaturedDisplay
	if err := c.get(ctx, "/featured-products", nil, false, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// PublicFeaturedList fetches the storefront positions from the collection
// endpoint used alongside the language mirrors.
func (c *Client) PublicFeaturedList(ctx context.Context) ([]models.FeaturedDisplay, error) {
	var slots []models.FeaturedDisplay
	if err := c.get(ctx, "/featured-products/", nil, false, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// LocalizedFeatured fetches the storefront positions from the language mirror.
func (c *Client) LocalizedFeatured(ctx context.Context, lang string) ([]models.FeaturedDisplay, error) {
	var slots []models.FeaturedDisplay
	if err := c.localized(ctx, lang, "featured-products", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
