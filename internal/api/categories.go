package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lukman83/showcase/internal/models"
)

// Categories lists the public, active categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if _, err := c.getList(ctx, "/categories/", nil, false, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// AdminCategories lists every category, active or not.
func (c *Client) AdminCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if _, err := c.getList(ctx, "/admin/categories/", nil, true, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Category fetches one public category.
func (c *Client) Category(ctx context.Context, id int) (*models.Category, error) {
	var cat models.Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, false, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	var cat models.Category
	if err := c.send(ctx, http.MethodPost, "/admin/categories/", in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, in models.CategoryInput) (*models.Category, error) {
	var cat models.Category
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/categories/%d", id), in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", id), nil, nil)
}
