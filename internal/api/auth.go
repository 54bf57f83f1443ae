package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lukman83/showcase/internal/models"
)

const loginEndpoint = "/admin/login"

// Login authenticates an administrator and stores the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Token, error) {
	var tok models.Token
	err := c.Request(ctx, loginEndpoint, RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"username": username, "password": password},
	}, &tok)
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, &Error{Kind: KindDecode, Message: "login response carried no token"}
	}
	if err := c.store.SetToken(tok.AccessToken); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &tok, nil
}

// Logout ends the session. The stored token is cleared even when the
// backend call fails; that failure is still returned.
func (c *Client) Logout(ctx context.Context) error {
	defer func() {
		if err := c.store.ClearToken(); err != nil {
			c.logger.Warn("clear token failed", "error", err)
		}
	}()
	if !c.IsAuthenticated() {
		return nil
	}
	return c.send(ctx, http.MethodPost, "/admin/logout", nil, nil)
}

// CurrentAdmin returns the logged-in administrator.
func (c *Client) CurrentAdmin(ctx context.Context) (*models.Admin, error) {
	var admin models.Admin
	if err := c.get(ctx, "/admin/me", nil, true, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Admins lists administrator accounts.
func (c *Client) Admins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := c.get(ctx, "/admin/admins", nil, true, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// CreateAdmin adds an administrator account.
func (c *Client) CreateAdmin(ctx context.Context, in models.AdminInput) (*models.Admin, error) {
	var admin models.Admin
	if err := c.send(ctx, http.MethodPost, "/admin/admins", in, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}
