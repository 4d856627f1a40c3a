package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

var sampleProducts = []models.Product{
	{ID: "PS-0", Name: "Zurhem Signature Cotton Shirt", Category: "Premium Shirts", Price: 12000, IsNew: true, IsFeatured: true},
	{ID: "PS-1", Name: "Velmor Classic Linen Shirt", Category: "Premium Shirts", Price: 8000, IsNew: true},
	{ID: "LS-0", Name: "Korrin Urban Suede Sneaker", Category: "Leather Shoes", Price: 30000, IsNew: true, IsFeatured: true},
	{ID: "LS-4", Name: "Korrin Heritage Leather Sneaker", Category: "Leather Shoes", Price: 25000},
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	mockRepo.On("GetAll").Return(sampleProducts, nil)

	tests := []struct {
		name   string
		filter services.ProductFilter
		want   []string
	}{
		{"no filter", services.ProductFilter{}, []string{"PS-0", "PS-1", "LS-0", "LS-4"}},
		{"all category", services.ProductFilter{Category: services.AllCategories}, []string{"PS-0", "PS-1", "LS-0", "LS-4"}},
		{"category", services.ProductFilter{Category: "Leather Shoes"}, []string{"LS-0", "LS-4"}},
		{"price ceiling inclusive", services.ProductFilter{MaxPrice: 12000}, []string{"PS-0", "PS-1"}},
		{"query ignores case", services.ProductFilter{Query: "SNEAKER"}, []string{"LS-0", "LS-4"}},
		{"featured", services.ProductFilter{FeaturedOnly: true}, []string{"PS-0", "LS-0"}},
		{"new in category", services.ProductFilter{Category: "Leather Shoes", NewOnly: true}, []string{"LS-0"}},
		{"no match", services.ProductFilter{Query: "umbrella"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := service.ListProducts(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(products))
		})
	}
}

func TestProductService_ListProducts_RepositoryError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	mockRepo.On("GetAll").Return(nil, errors.New("boom")).Once()

	_, err := service.ListProducts(services.ProductFilter{})
	assert.ErrorContains(t, err, "boom")
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := &sampleProducts[0]

	// Test successful retrieval
	mockRepo.On("GetByID", "PS-0").Return(expected, nil).Once()
	product, err := service.GetProduct(ctx, "PS-0")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "XX-9").Return(nil, fmt.Errorf("product with ID XX-9: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProduct(ctx, "XX-9")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Categories(t *testing.T) {
	extra := append([]models.Product{}, sampleProducts...)
	extra = append(extra, models.Product{ID: "ZZ-0", Category: "Zebra Socks"})

	repo := repositories.NewMemoryProductRepository(extra)
	service := services.NewProductService(repo, nil)

	categories, err := service.Categories()
	require.NoError(t, err)
	require.Len(t, categories, len(catalog.Categories)+1)

	counts := make(map[string]int)
	for _, c := range categories {
		counts[c.Name] = c.Count
	}
	assert.Equal(t, 2, counts["Premium Shirts"])
	assert.Equal(t, 2, counts["Leather Shoes"])
	assert.Equal(t, 0, counts[string(catalog.Categories[len(catalog.Categories)-1])])
	assert.Equal(t, services.CategoryCount{Name: "Zebra Socks", Count: 1}, categories[len(categories)-1])
	assert.Equal(t, string(catalog.Categories[0]), categories[0].Name)
}

func TestProductService_GeneratedCatalog(t *testing.T) {
	products := catalog.NewGenerator(42, 3).Generate()
	service := services.NewProductService(repositories.NewMemoryProductRepository(products), nil)

	featured, err := service.ListProducts(services.ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Len(t, featured, len(catalog.Categories))

	categories, err := service.Categories()
	require.NoError(t, err)
	for _, c := range categories {
		assert.Equal(t, 3, c.Count, c.Name)
	}
}
