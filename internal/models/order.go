package models

import "time"

// Order statuses in fulfilment order.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
)

// OrderItem represents a single line within an order.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   string  `json:"orderId" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"productId" gorm:"type:varchar(64)"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // Price at the time of order
	Quantity  int     `json:"quantity"`
}

// Order represents a customer order.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNo   string      `json:"orderNo" gorm:"index;type:varchar(64)"`
	UserID    string      `json:"userId" gorm:"index;type:varchar(36)"`
	Total     float64     `json:"total"`
	Status    string      `json:"status" gorm:"type:varchar(32)"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// OrderItemRequest is one line of an order placement request.
type OrderItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

// OrderRequest is the body of an order placement request.
type OrderRequest struct {
	OrderNo string             `json:"orderNo" validate:"omitempty,max=64"`
	Total   float64            `json:"total" validate:"gte=0"`
	Items   []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}
