package models

import "time"

// EventOrderCreated is the routing key of order creation events.
const EventOrderCreated = "order.created"

// OrderEvent is published to the broker when an order changes.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	OrderNo    string    `json:"orderNo"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	Items      int       `json:"items"`
	OccurredAt time.Time `json:"occurredAt"`
}
