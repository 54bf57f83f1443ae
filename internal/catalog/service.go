package catalog

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/lukman83/showcase/internal/api"
	"github.com/lukman83/showcase/internal/cache"
	"github.com/lukman83/showcase/internal/logging"
	"github.com/lukman83/showcase/internal/models"
)

// Backend is the subset of the API client the catalog caches in front of.
type Backend interface {
	Categories(ctx context.Context) ([]models.Category, error)
	AdminCategories(ctx context.Context) ([]models.Category, error)
	Products(ctx context.Context, q api.ProductQuery) (*models.ProductPage, error)
	AdminProducts(ctx context.Context, q api.ProductQuery) (*models.ProductPage, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)

	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// Resource names a cached admin resource.
type Resource string

const (
	ResourceCategories Resource = "categories"
	ResourceProducts   Resource = "products"
	ResourceStats      Resource = "stats"
)

// singleton is the key for resources that take no parameters.
const singleton = ""

// Options configures a Service.
type Options struct {
	AdminTTL  time.Duration // default 3 minutes
	PublicTTL time.Duration // default 5 minutes
	Now       func() time.Time
	Logger    *slog.Logger
}

// Service serves categories, products and stats through per-resource TTL
// caches and invalidates them on every admin mutation.
type Service struct {
	backend Backend
	logger  *slog.Logger

	categories *cache.TTL[[]models.Category]
	products   *cache.TTL[*models.ProductPage]
	stats      *cache.TTL[models.DashboardStats]

	publicCategories *cache.TTL[[]models.Category]
	publicProducts   *cache.TTL[*models.ProductPage]
}

// New creates a Service in front of backend.
func New(backend Backend, opts Options) *Service {
	if opts.AdminTTL <= 0 {
		opts.AdminTTL = 3 * time.Minute
	}
	if opts.PublicTTL <= 0 {
		opts.PublicTTL = 5 * time.Minute
	}
	var cacheOpts []cache.Option
	if opts.Now != nil {
		cacheOpts = append(cacheOpts, cache.WithClock(opts.Now))
	}
	return &Service{
		backend:          backend,
		logger:           logging.OrDiscard(opts.Logger),
		categories:       cache.NewTTL[[]models.Category](opts.AdminTTL, cacheOpts...),
		products:         cache.NewTTL[*models.ProductPage](opts.AdminTTL, cacheOpts...),
		stats:            cache.NewTTL[models.DashboardStats](opts.AdminTTL, cacheOpts...),
		publicCategories: cache.NewTTL[[]models.Category](opts.PublicTTL, cacheOpts...),
		publicProducts:   cache.NewTTL[*models.ProductPage](opts.PublicTTL, cacheOpts...),
	}
}

// GetCachedCategories returns the admin category list, fetching it when the
// cache is cold, expired or force is set.
func (s *Service) GetCachedCategories(ctx context.Context, force bool) ([]models.Category, error) {
	if !force {
		if cats, ok := s.categories.Get(singleton); ok {
			s.logger.Debug("cache hit", "resource", ResourceCategories)
			return slices.Clone(cats), nil
		}
	}
	gen := s.categories.Generation()
	cats, err := s.backend.AdminCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.store(s.categories.SetIfCurrent(singleton, slices.Clone(cats), gen), ResourceCategories)
	return cats, nil
}

// LoadCategoriesData is the admin categories screen load.
func (s *Service) LoadCategoriesData(ctx context.Context) ([]models.Category, error) {
	return s.GetCachedCategories(ctx, false)
}

// GetCachedProducts returns an admin product page for q.
func (s *Service) GetCachedProducts(ctx context.Context, q api.ProductQuery, force bool) (*models.ProductPage, error) {
	key := q.Key()
	if !force {
		if page, ok := s.products.Get(key); ok {
			s.logger.Debug("cache hit", "resource", ResourceProducts, "key", key)
			return clonePage(page), nil
		}
	}
	gen := s.products.Generation()
	page, err := s.backend.AdminProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	s.store(s.products.SetIfCurrent(key, clonePage(page), gen), ResourceProducts)
	return page, nil
}

// GetCachedStats returns the dashboard stats.
func (s *Service) GetCachedStats(ctx context.Context, force bool) (models.DashboardStats, error) {
	if !force {
		if st, ok := s.stats.Get(singleton); ok {
			return st, nil
		}
	}
	gen := s.stats.Generation()
	st, err := s.backend.DashboardStats(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	s.store(s.stats.SetIfCurrent(singleton, st, gen), ResourceStats)
	return st, nil
}

// PublicCategories returns the storefront category list.
func (s *Service) PublicCategories(ctx context.Context) ([]models.Category, error) {
	if cats, ok := s.publicCategories.Get(singleton); ok {
		return slices.Clone(cats), nil
	}
	gen := s.publicCategories.Generation()
	cats, err := s.backend.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.publicCategories.SetIfCurrent(singleton, slices.Clone(cats), gen)
	return cats, nil
}

// PublicProducts returns a storefront product page for q.
func (s *Service) PublicProducts(ctx context.Context, q api.ProductQuery) (*models.ProductPage, error) {
	key := q.Key()
	if page, ok := s.publicProducts.Get(key); ok {
		return clonePage(page), nil
	}
	gen := s.publicProducts.Generation()
	page, err := s.backend.Products(ctx, q)
	if err != nil {
		return nil, err
	}
	s.publicProducts.SetIfCurrent(key, clonePage(page), gen)
	return page, nil
}

// store logs a fetch result dropped because the resource was invalidated
// while it was in flight.
func (s *Service) store(stored bool, r Resource) {
	if !stored {
		s.logger.Debug("discarding result fetched before invalidation", "resource", r)
	}
}

// clonePage copies the page and its item slice so callers cannot edit the
// cached value.
func clonePage(p *models.ProductPage) *models.ProductPage {
	if p == nil {
		return nil
	}
	out := *p
	out.Items = slices.Clone(p.Items)
	return &out
}

// Invalidate drops the named admin resources.
func (s *Service) Invalidate(resources ...Resource) {
	for _, r := range resources {
		switch r {
		case ResourceCategories:
			s.categories.Invalidate()
		case ResourceProducts:
			s.products.Invalidate()
		case ResourceStats:
			s.stats.Invalidate()
		}
		s.logger.Debug("cache invalidated", "resource", r)
	}
}

// Clear drops every cached value, admin and public. Called on logout.
func (s *Service) Clear() {
	s.Invalidate(ResourceCategories, ResourceProducts, ResourceStats)
	s.publicCategories.Invalidate()
	s.publicProducts.Invalidate()
}

func (s *Service) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	cat, err := s.backend.CreateCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ResourceCategories, ResourceStats)
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int, in models.CategoryInput) (*models.Category, error) {
	cat, err := s.backend.UpdateCategory(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ResourceCategories, ResourceStats)
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int) error {
	if err := s.backend.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ResourceCategories, ResourceStats)
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	p, err := s.backend.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ResourceProducts, ResourceStats)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int, in models.ProductInput) (*models.Product, error) {
	p, err := s.backend.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ResourceProducts, ResourceStats)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int) error {
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ResourceProducts, ResourceStats)
	return nil
}
