package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jumx0202/ordersvc/domain"
)

// OrderServiceImpl implements domain.OrderService. Orders are the only
// durable output of the engine; everything goes through the order repository.
type OrderServiceImpl struct {
	orderRepo domain.OrderRepository
	audit     domain.AuditLogger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo domain.OrderRepository, audit domain.AuditLogger) domain.OrderService {
	return &OrderServiceImpl{orderRepo: orderRepo, audit: audit}
}

// CreateOrder persists a new order in the unpaid state and returns its id.
// The item ids are stored joined with "-", the legacy storage format.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, businessID int, userPhone string, itemIDs []int, price decimal.Decimal) (int, error) {
	parts := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		parts[i] = strconv.Itoa(id)
	}

	order := &domain.Order{
		BusinessID: businessID,
		UserPhone:  userPhone,
		Items:      strings.Join(parts, "-"),
		Price:      price,
		State:      domain.OrderStateUnpaid,
		CreatedAt:  time.Now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return 0, err
	}
	s.logEvent(ctx, domain.NewAuditEvent(domain.OrderCreatedEvent, userPhone).
		WithMetadata("order_id", order.ID))
	return order.ID, nil
}

// MarkPaid transitions an order to paid. Absent orders and repository
// failures both come back as false; repeating the call on a paid order
// re-persists state 1 without complaint.
func (s *OrderServiceImpl) MarkPaid(ctx context.Context, orderID int) bool {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil || order == nil {
		return false
	}
	order.State = domain.OrderStatePaid
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return false
	}
	s.logEvent(ctx, domain.NewAuditEvent(domain.OrderPaidEvent, order.UserPhone).
		WithMetadata("order_id", order.ID))
	return true
}

// GetOrderDetail is a pure read projection; nil when the id is missing.
func (s *OrderServiceImpl) GetOrderDetail(ctx context.Context, orderID int) *domain.OrderDetail {
	if orderID <= 0 {
		return nil
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil || order == nil {
		return nil
	}
	return &domain.OrderDetail{
		ID:         order.ID,
		BusinessID: order.BusinessID,
		UserPhone:  order.UserPhone,
		Items:      order.Items,
		Price:      order.Price,
		State:      order.State,
		CreatedAt:  order.CreatedAt,
	}
}

// ListByUser returns the user's orders; insertion order is not guaranteed.
func (s *OrderServiceImpl) ListByUser(ctx context.Context, phone string) ([]domain.Order, error) {
	return s.orderRepo.FindAllByUserPhone(ctx, phone)
}

func (s *OrderServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	if s.audit != nil {
		_ = s.audit.LogEvent(ctx, event)
	}
}
