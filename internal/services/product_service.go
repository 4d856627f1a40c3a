package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrProductNotFound is returned when a product id matches nothing.
var ErrProductNotFound = errors.New("product not found")

// AllCategories matches every category in a ProductFilter.
const AllCategories = "All"

// ProductFilter narrows a catalog listing. Zero values match everything.
type ProductFilter struct {
	Category     string
	MaxPrice     float64
	Query        string
	FeaturedOnly bool
	NewOnly      bool
}

func (f ProductFilter) match(p models.Product) bool {
	if f.Category != "" && f.Category != AllCategories && string(p.Category) != f.Category {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.FeaturedOnly && !p.IsFeatured {
		return false
	}
	if f.NewOnly && !p.IsNew {
		return false
	}
	return true
}

// CategoryCount is a category with the number of products in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProductService handles catalog queries.
type ProductService struct {
	repo    repositories.ProductRepository
	metrics *metrics.AppMetrics
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, m *metrics.AppMetrics) *ProductService {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &ProductService{
		repo:    repo,
		metrics: m,
	}
}

// ListProducts returns the products matching f in catalog order.
func (s *ProductService) ListProducts(f ProductFilter) ([]models.Product, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	s.metrics.ProductsViewed.Add(ctx, 1, metric.WithAttributes(attribute.String("product.category", string(p.Category))))
	return p, nil
}

// Categories lists every known category with its product count, in the
// catalog's category order. Unknown categories follow alphabetically.
func (s *ProductService) Categories() ([]CategoryCount, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	counts := make(map[string]int)
	for _, p := range all {
		counts[string(p.Category)]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for _, c := range catalog.Categories {
		name := string(c)
		out = append(out, CategoryCount{Name: name, Count: counts[name]})
		delete(counts, name)
	}
	extra := make([]string, 0, len(counts))
	for name := range counts {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, CategoryCount{Name: name, Count: counts[name]})
	}
	return out, nil
}
