package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for read-only catalog access.
type ProductRepository interface {
	// GetAll returns every product in catalog order.
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
}
