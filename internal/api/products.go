package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lukman83/showcase/internal/models"
)

// MaxPageSize is the largest page the backend serves.
const MaxPageSize = 100

// ProductQuery filters and pages a product listing. Zero values are omitted.
type ProductQuery struct {
	CategoryID int
	Query      string
	IsFeatured *bool
	MinPrice   float64
	MaxPrice   float64
	SortBy     string // created_at, price, name, sales_count, view_count
	SortOrder  string // asc, desc
	Page       int
	Size       int
}

// Values encodes the query parameters.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.CategoryID > 0 {
		v.Set("category_id", strconv.Itoa(q.CategoryID))
	}
	if q.Query != "" {
		v.Set("q", q.Query)
	}
	if q.IsFeatured != nil {
		v.Set("is_featured", strconv.FormatBool(*q.IsFeatured))
	}
	if q.MinPrice > 0 {
		v.Set("min_price", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		v.Set("max_price", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", q.SortOrder)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		size := q.Size
		if size > MaxPageSize {
			size = MaxPageSize
		}
		v.Set("size", strconv.Itoa(size))
	}
	return v
}

// Key is the canonical serialization of the query, sorted by parameter name.
func (q ProductQuery) Key() string {
	return q.Values().Encode()
}

// Products lists public products.
func (c *Client) Products(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	return c.productPage(ctx, "/products/", q, false)
}

// SearchProducts lists public products matching term.
func (c *Client) SearchProducts(ctx context.Context, term string, q ProductQuery) (*models.ProductPage, error) {
	q.Query = term
	return c.Products(ctx, q)
}

// AdminProducts lists products including inactive ones.
func (c *Client) AdminProducts(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	return c.productPage(ctx, "/admin/products/", q, true)
}

func (c *Client) productPage(ctx context.Context, endpoint string, q ProductQuery, auth bool) (*models.ProductPage, error) {
	var items []models.Product
	page, err := c.getList(ctx, endpoint, q.Values(), auth, &items)
	if err != nil {
		return nil, err
	}
	out := &models.ProductPage{Items: items}
	if page != nil {
		out.Pagination = *page
	} else {
		out.Pagination = models.Pagination{Total: len(items), Page: 1, Size: len(items), Pages: 1}
	}
	return out, nil
}

// Product fetches one public product.
func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, false, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	var p models.Product
	if err := c.send(ctx, http.MethodPost, "/admin/products/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, in models.ProductInput) (*models.Product, error) {
	var p models.Product
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d", id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d", id), nil, nil)
}
