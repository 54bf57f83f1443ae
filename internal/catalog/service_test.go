package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lukman83/showcase/internal/api"
	"github.com/lukman83/showcase/internal/models"
	"github.com/lukman83/showcase/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendStub is a storefront backend that counts requests per route.
type backendStub struct {
	mu       sync.Mutex
	hits     map[string]int
	failNext bool
}

func (b *backendStub) count(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

func (b *backendStub) handler() http.Handler {
	mux := http.NewServeMux()
	record := func(route string, body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			b.hits[route]++
			fail := b.failNext
			b.failNext = false
			b.mu.Unlock()
			if fail {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"detail":"rejected"}`))
				return
			}
			w.Write([]byte(body))
		}
	}
	mux.HandleFunc("GET /api/admin/categories/", record("list categories", `[{"id":1,"name":"茶具"}]`))
	mux.HandleFunc("POST /api/admin/categories/", record("create category", `{"id":2,"name":"new"}`))
	mux.HandleFunc("PUT /api/admin/categories/{id}", record("update category", `{"id":1,"name":"renamed"}`))
	mux.HandleFunc("DELETE /api/admin/categories/{id}", record("delete category", `{"message":"ok"}`))
	mux.HandleFunc("GET /api/admin/products/", record("list products", `{"items":[{"id":1,"name":"cup","is_active":true,"stock":2}],"pagination":{"total":1,"page":1,"size":20,"pages":1}}`))
	mux.HandleFunc("POST /api/admin/products/", record("create product", `{"id":2,"name":"pot"}`))
	mux.HandleFunc("GET /api/categories/", record("public categories", `[{"id":1,"name":"茶具"}]`))
	mux.HandleFunc("GET /api/products/", record("public products", `{"items":[],"pagination":{"total":0,"page":1,"size":20,"pages":0}}`))
	return mux
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newService(t *testing.T) (*Service, *backendStub, *clock) {
	t.Helper()
	stub := &backendStub{hits: map[string]int{}}
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	client := api.New(srv.URL+"/api", srv.Client(), session.NewMemoryStore(session.State{Token: "tok"}))
	clk := &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(client, Options{Now: clk.Now}), stub, clk
}

func TestGetCachedCategoriesHitsBackendOnce(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	first, err := svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)
	second, err := svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.count("list categories"))
}

func TestCategoriesRefetchAfterTTL(t *testing.T) {
	svc, stub, clk := newService(t)
	ctx := context.Background()

	_, err := svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)
	clk.Advance(3 * time.Minute)
	_, err = svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, 2, stub.count("list categories"))
}

func TestForceRefreshBypassesCache(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	_, err := svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)
	_, err = svc.GetCachedCategories(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, 2, stub.count("list categories"))
}

func TestCategoryMutationsInvalidate(t *testing.T) {
	name := "renamed"
	mutations := map[string]func(context.Context, *Service) error{
		"create": func(ctx context.Context, s *Service) error {
			_, err := s.CreateCategory(ctx, models.CategoryInput{Name: &name})
			return err
		},
		"update": func(ctx context.Context, s *Service) error {
			_, err := s.UpdateCategory(ctx, 1, models.CategoryInput{Name: &name})
			return err
		},
		"delete": func(ctx context.Context, s *Service) error {
			return s.DeleteCategory(ctx, 1)
		},
	}
	for op, mutate := range mutations {
		t.Run(op, func(t *testing.T) {
			svc, stub, _ := newService(t)
			ctx := context.Background()

			_, err := svc.LoadCategoriesData(ctx)
			require.NoError(t, err)
			require.NoError(t, mutate(ctx, svc))
			_, err = svc.LoadCategoriesData(ctx)
			require.NoError(t, err)

			assert.Equal(t, 2, stub.count("list categories"))
		})
	}
}

func TestFailedMutationKeepsCache(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	_, err := svc.LoadCategoriesData(ctx)
	require.NoError(t, err)

	stub.mu.Lock()
	stub.failNext = true
	stub.mu.Unlock()
	err = svc.DeleteCategory(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "rejected", err.Error())

	_, err = svc.LoadCategoriesData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.count("list categories"))
}

func TestProductCacheKeyedByQuery(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	_, err := svc.GetCachedProducts(ctx, api.ProductQuery{Page: 1, Size: 20}, false)
	require.NoError(t, err)
	_, err = svc.GetCachedProducts(ctx, api.ProductQuery{Size: 20, Page: 1}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.count("list products"))

	_, err = svc.GetCachedProducts(ctx, api.ProductQuery{Page: 2, Size: 20}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.count("list products"))
}

func TestProductMutationLeavesCategoriesCached(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	_, err := svc.LoadCategoriesData(ctx)
	require.NoError(t, err)
	_, err = svc.GetCachedProducts(ctx, api.ProductQuery{}, false)
	require.NoError(t, err)

	name := "pot"
	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: &name})
	require.NoError(t, err)

	_, err = svc.LoadCategoriesData(ctx)
	require.NoError(t, err)
	_, err = svc.GetCachedProducts(ctx, api.ProductQuery{}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.count("list categories"))
	assert.Equal(t, 2, stub.count("list products"))
}

func TestStatsCachedAndInvalidatedByMutation(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	st, err := svc.GetCachedStats(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, st.CategoriesCount)
	_, err = svc.GetCachedStats(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.count("list products"))

	require.NoError(t, svc.DeleteCategory(ctx, 1))
	_, err = svc.GetCachedStats(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.count("list products"))
}

func TestPublicCachesUseLongerTTL(t *testing.T) {
	svc, stub, clk := newService(t)
	ctx := context.Background()

	_, err := svc.PublicCategories(ctx)
	require.NoError(t, err)
	clk.Advance(4 * time.Minute)
	_, err = svc.PublicCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.count("public categories"))

	clk.Advance(time.Minute)
	_, err = svc.PublicCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.count("public categories"))
}

func TestClearDropsEverything(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	_, err := svc.LoadCategoriesData(ctx)
	require.NoError(t, err)
	_, err = svc.PublicProducts(ctx, api.ProductQuery{})
	require.NoError(t, err)

	svc.Clear()

	_, err = svc.LoadCategoriesData(ctx)
	require.NoError(t, err)
	_, err = svc.PublicProducts(ctx, api.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, stub.count("list categories"))
	assert.Equal(t, 2, stub.count("public products"))
}

// slowCategories blocks the first AdminCategories call until released and
// answers later calls with the current list. Other Backend methods are not
// used by the tests that take it.
type slowCategories struct {
	Backend
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (b *slowCategories) AdminCategories(ctx context.Context) ([]models.Category, error) {
	b.mu.Lock()
	b.calls++
	n := b.calls
	b.mu.Unlock()
	if n == 1 {
		close(b.started)
		<-b.release
		return []models.Category{{ID: 1, Name: "old"}}, nil
	}
	return []models.Category{{ID: 1, Name: "new"}}, nil
}

func TestFetchRacingInvalidationIsNotCached(t *testing.T) {
	backend := &slowCategories{started: make(chan struct{}), release: make(chan struct{})}
	svc := New(backend, Options{})
	ctx := context.Background()

	done := make(chan []models.Category, 1)
	go func() {
		cats, _ := svc.GetCachedCategories(ctx, false)
		done <- cats
	}()
	<-backend.started
	svc.Invalidate(ResourceCategories)
	close(backend.release)
	assert.Equal(t, "old", (<-done)[0].Name)

	cats, err := svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "new", cats[0].Name)
	assert.Equal(t, 2, backend.calls)
}

func TestCachedResultsAreCopies(t *testing.T) {
	svc, stub, _ := newService(t)
	ctx := context.Background()

	cats, err := svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)
	cats[0].Name = "edited"
	cats, err = svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "茶具", cats[0].Name)
	cats[0].Name = "edited again"

	page, err := svc.GetCachedProducts(ctx, api.ProductQuery{}, false)
	require.NoError(t, err)
	page.Items[0].Name = "edited"
	page.Pagination.Total = 99
	page, err = svc.GetCachedProducts(ctx, api.ProductQuery{}, false)
	require.NoError(t, err)
	assert.Equal(t, "cup", page.Items[0].Name)
	assert.Equal(t, 1, page.Pagination.Total)

	again, err := svc.GetCachedCategories(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "茶具", again[0].Name)
	assert.Equal(t, 1, stub.count("list categories"))
	assert.Equal(t, 1, stub.count("list products"))
}
