package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lukman83/showcase/internal/models"
	"github.com/tidwall/gjson"
)

// localized reads /language/{lang}/{resource}. The mirrors answer
// {success, data} or, for background images, {success, items}.
func (c *Client) localized(ctx context.Context, lang, resource string, out any) error {
	endpoint := fmt.Sprintf("/language/%s/%s", url.PathEscape(lang), resource)
	raw, err := c.do(ctx, endpoint, RequestOptions{})
	if err != nil {
		return err
	}

	root := gjson.ParseBytes(raw)
	if ok := root.Get("success"); ok.Exists() && !ok.Bool() {
		msg := root.Get("message").String()
		if msg == "" {
			msg = "request failed"
		}
		return &Error{Kind: KindHTTP, StatusCode: 200, Message: msg}
	}

	payload := root.Get("data")
	if !payload.Exists() {
		payload = root.Get("items")
	}
	if !payload.Exists() {
		return &Error{Kind: KindDecode, Message: "unexpected response from server"}
	}
	if err := json.Unmarshal([]byte(payload.Raw), out); err != nil {
		return &Error{Kind: KindDecode, Message: "unexpected response from server", Err: err}
	}
	return nil
}

// LocalizedProducts lists products with names resolved for lang.
func (c *Client) LocalizedProducts(ctx context.Context, lang string) ([]models.Product, error) {
	var products []models.Product
	if err := c.localized(ctx, lang, "products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// LocalizedCategories lists categories with names resolved for lang.
func (c *Client) LocalizedCategories(ctx context.Context, lang string) ([]models.Category, error) {
	var cats []models.Category
	if err := c.localized(ctx, lang, "categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
