package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/lukman83/showcase/internal/models"
	"github.com/tidwall/gjson"
)

// listPayload extracts the item array and pagination from a list response.
// The backend answers lists as a bare array or wrapped in items, products
// or data.
func listPayload(raw []byte) ([]byte, *models.Pagination) {
	root := gjson.ParseBytes(raw)
	if root.IsArray() {
		return raw, nil
	}

	items := []byte("[]")
	for _, key := range []string{"items", "products", "data"} {
		if r := root.Get(key); r.IsArray() {
			items = []byte(r.Raw)
			break
		}
	}

	var page *models.Pagination
	if p := root.Get("pagination"); p.IsObject() {
		page = &models.Pagination{
			Total: int(p.Get("total").Int()),
			Page:  int(p.Get("page").Int()),
			Size:  int(p.Get("size").Int()),
			Pages: int(p.Get("pages").Int()),
		}
	}
	return items, page
}

// getList fetches a list endpoint and decodes its items into out.
func (c *Client) getList(ctx context.Context, endpoint string, query url.Values, auth bool, out any) (*models.Pagination, error) {
	raw, err := c.do(ctx, endpoint, RequestOptions{Query: query, Auth: auth})
	if err != nil {
		return nil, err
	}
	items, page := listPayload(raw)
	if err := json.Unmarshal(items, out); err != nil {
		return nil, &Error{Kind: KindDecode, Message: "unexpected response from server", Err: err}
	}
	return page, nil
}
