package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrOrderNotFound is returned when an order id matches nothing.
var ErrOrderNotFound = errors.New("order not found")

// OrderEventPublisher publishes order lifecycle events. *rabbitmq.Client satisfies it.
type OrderEventPublisher interface {
	PublishOrderCreated(event models.OrderEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher OrderEventPublisher
	logger    *zap.Logger
	metrics   *metrics.AppMetrics
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are emitted.
func NewOrderService(orderRepo repositories.OrderRepository, publisher OrderEventPublisher, logger *zap.Logger, m *metrics.AppMetrics) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNoop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// CreateOrder stores a PENDING order for userID. A blank order number
// defaults to VM-<unix ms>; a zero total is computed from the items.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req models.OrderRequest) (*models.Order, error) {
	now := s.now()

	orderNo := strings.TrimSpace(req.OrderNo)
	if orderNo == "" {
		orderNo = fmt.Sprintf("VM-%d", now.UnixMilli())
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	total := req.Total
	if total == 0 {
		total = ItemsTotal(items)
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		OrderNo:   orderNo,
		UserID:    userID,
		Total:     total,
		Status:    models.OrderStatusPending,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.metrics.RecordOrder(ctx, order.Total, len(order.Items))
	s.publishCreated(order)
	return order, nil
}

func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		s.logger.Debug("no event publisher configured, skipping order event", zap.String("order_id", order.ID))
		return
	}

	event := models.OrderEvent{
		Type:       models.EventOrderCreated,
		OrderID:    order.ID,
		OrderNo:    order.OrderNo,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		Items:      len(order.Items),
		OccurredAt: order.CreatedAt,
	}
	// The order is already stored; a broker outage must not fail the request.
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		s.logger.Warn("failed to publish order created event", zap.String("order_id", order.ID), zap.Error(err))
	}
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrder returns one of the user's orders. Orders of other users are reported as not found.
func (s *OrderService) GetOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// HandleOrderEvent processes a broker message. A created order still PENDING
// moves to PROCESSING; any other state is left alone.
func (s *OrderService) HandleOrderEvent(body []byte) error {
	var event models.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode order event: %w", err)
	}
	if event.Type != models.EventOrderCreated {
		s.logger.Debug("ignoring order event", zap.String("type", event.Type))
		return nil
	}

	order, err := s.orderRepo.GetByID(event.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", event.OrderID, err)
	}
	if order.Status != models.OrderStatusPending {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusProcessing); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", order.ID, err)
	}
	s.logger.Info("order moved to processing", zap.String("order_id", order.ID), zap.String("order_no", order.OrderNo))
	return nil
}

// ItemsTotal sums price times quantity over items in exact decimal arithmetic.
func ItemsTotal(items []models.OrderItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.InexactFloat64()
}
