package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukman83/showcase/internal/carousel"
	"github.com/lukman83/showcase/internal/featured"
	"github.com/lukman83/showcase/internal/models"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "¥0.00", formatPrice(0))
	assert.Equal(t, "¥999.90", formatPrice(999.9))
	assert.Equal(t, "¥1,234.50", formatPrice(1234.5))
	assert.Equal(t, "¥1,000,000.00", formatPrice(1e6))
	assert.Equal(t, "-¥12.00", formatPrice(-12))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "儿童...", truncate("儿童运动鞋套装", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestParsePosition(t *testing.T) {
	p, err := parsePosition("6")
	require.NoError(t, err)
	assert.Equal(t, 6, p)

	p, err = parsePosition("7")
	require.NoError(t, err, "range is checked by the backend")
	assert.Equal(t, 7, p)

	for _, bad := range []string{"x", "", "2.5"} {
		_, err := parsePosition(bad)
		assert.Error(t, err, bad)
	}
}

func TestFeaturedSetOutOfRangeShowsBackendMessage(t *testing.T) {
	var posted atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/featured-products/positions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("POST /api/admin/featured-products/", func(w http.ResponseWriter, r *http.Request) {
		posted.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Position must be between 1 and 6"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("SHOWCASE_TRANSLATION_CACHE", "memory")
	rootCmd.SetArgs([]string{
		"featured", "set", "9", "42",
		"--api-url", srv.URL + "/api",
		"--state-file", filepath.Join(t.TempDir(), "state.json"),
	})
	rootCmd.SetOut(io.Discard)
	err := rootCmd.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.Equal(t, int32(1), posted.Load())
	assert.Contains(t, errorMessage(err), "Position must be between 1 and 6")
}

func TestPrintPositions(t *testing.T) {
	var buf bytes.Buffer
	printPositions(&buf, []featured.Slot{
		{Position: 1, State: featured.Empty},
		{Position: 2, State: featured.Occupied, Record: &models.PositionSlot{ID: 9, ProductID: 42, ProductName: "小熊卫衣"}},
	})
	out := buf.String()
	assert.Contains(t, out, "POSITION")
	assert.Contains(t, out, "empty")
	assert.Contains(t, out, "#42 小熊卫衣")
}

func TestPrintProductsTable(t *testing.T) {
	var buf bytes.Buffer
	printProductsTable(&buf, &models.ProductPage{
		Items: []models.Product{
			{ID: 1, Name: "卫衣", NameEN: "Hoodie", Price: 99, OriginalPrice: 129, Stock: 5, IsActive: true},
		},
		Pagination: models.Pagination{Total: 1, Page: 1, Size: 20, Pages: 1},
	}, "en")
	out := buf.String()
	assert.Contains(t, out, "Hoodie")
	assert.Contains(t, out, "¥99.00 (was ¥129.00)")
	assert.Contains(t, out, "Page 1 of 1 (1 products)")

	buf.Reset()
	printProductsTable(&buf, nil, "zh")
	assert.Equal(t, "No products found.\n", buf.String())
}

func TestPromptConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		c := &cobra.Command{}
		c.SetIn(strings.NewReader(tt.input))
		c.SetErr(io.Discard)
		ok, err := promptConfirm(c)(context.Background(), "Remove?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "input %q", tt.input)
	}
}

type staticSlides []carousel.Slide

func (s staticSlides) Slides(context.Context, string) ([]carousel.Slide, error) { return s, nil }

func TestCarouselLoop(t *testing.T) {
	c := carousel.New(staticSlides{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil, carousel.Options{Interval: time.Hour})
	defer c.Close()
	c.Refresh(context.Background())

	r, w := io.Pipe()
	done := make(chan error, 1)
	go func() { done <- carouselLoop(context.Background(), r, nil, c) }()

	_, err := w.Write([]byte("3"))
	require.NoError(t, err)
	_, err = w.Write([]byte(" "))
	require.NoError(t, err)
	_, err = w.Write([]byte("q"))
	require.NoError(t, err)
	w.Close()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("carousel loop did not exit")
	}
	assert.Equal(t, 2, c.Index())
	assert.False(t, c.Playing())
}
