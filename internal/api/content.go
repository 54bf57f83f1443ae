package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lukman83/showcase/internal/models"
)

// BackgroundImages lists the hero slides for lang. English uses the
// language mirror; every other language reads the default collection.
func (c *Client) BackgroundImages(ctx context.Context, lang string) ([]models.BackgroundImage, error) {
	var images []models.BackgroundImage
	if lang == "en" {
		if err := c.localized(ctx, lang, "background-images", &images); err != nil {
			return nil, err
		}
		return images, nil
	}
	if _, err := c.getList(ctx, "/background-images/", nil, false, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// AdminBackgroundImages lists every slide including inactive ones.
func (c *Client) AdminBackgroundImages(ctx context.Context) ([]models.BackgroundImage, error) {
	var images []models.BackgroundImage
	if _, err := c.getList(ctx, "/admin/background-images/", nil, true, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (c *Client) CreateBackgroundImage(ctx context.Context, in models.BackgroundImageInput) (*models.BackgroundImage, error) {
	var img models.BackgroundImage
	if err := c.send(ctx, http.MethodPost, "/admin/background-images/", in, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (c *Client) UpdateBackgroundImage(ctx context.Context, id int, in models.BackgroundImageInput) (*models.BackgroundImage, error) {
	var img models.BackgroundImage
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/background-images/%d", id), in, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (c *Client) DeleteBackgroundImage(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/background-images/%d", id), nil, nil)
}

// FooterInfo returns the storefront footer.
func (c *Client) FooterInfo(ctx context.Context) (*models.FooterInfo, error) {
	var info models.FooterInfo
	if err := c.get(ctx, "/footer-info/", nil, false, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// AboutUs returns the about section; English reads the language mirror.
func (c *Client) AboutUs(ctx context.Context, lang string) (*models.AboutUs, error) {
	var about models.AboutUs
	if lang == "en" {
		if err := c.localized(ctx, lang, "about-us", &about); err != nil {
			return nil, err
		}
		return &about, nil
	}
	if err := c.get(ctx, "/about-us/", nil, false, &about); err != nil {
		return nil, err
	}
	return &about, nil
}
