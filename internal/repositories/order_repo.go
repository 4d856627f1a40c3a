package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(userID string) ([]models.Order, error)
	UpdateStatus(id string, status string) error
}
