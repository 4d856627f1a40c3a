package repositories

import (
	"fmt"

	"storefront/internal/models"
)

// MemoryProductRepository serves a catalog generated at startup. It is
// immutable after construction, so reads need no locking.
type MemoryProductRepository struct {
	products []models.Product
	byID     map[string]int
}

// NewMemoryProductRepository indexes products by ID, keeping their order.
func NewMemoryProductRepository(products []models.Product) *MemoryProductRepository {
	r := &MemoryProductRepository{
		products: append([]models.Product(nil), products...),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

// GetAll returns all products in catalog order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	return append([]models.Product(nil), r.products...), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product := r.products[i]
	return &product, nil
}
