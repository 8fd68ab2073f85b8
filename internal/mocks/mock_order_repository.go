package mocks

import (
	"context"

	"github.com/jumx0202/ordersvc/domain"
)

// MockOrderRepository implements domain.OrderRepository interface for testing
type MockOrderRepository struct {
	CreateFunc             func(ctx context.Context, order *domain.Order) error
	FindByIDFunc           func(ctx context.Context, id int) (*domain.Order, error)
	UpdateFunc             func(ctx context.Context, order *domain.Order) error
	FindAllByUserPhoneFunc func(ctx context.Context, phone string) ([]domain.Order, error)
}

// NewMockOrderRepository creates a new MockOrderRepository with default behaviors
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

// Create creates a new order
func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	// Default behavior: success
	return nil
}

// FindByID finds an order by id
func (m *MockOrderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrOrderNotFound
}

// Update updates an existing order
func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, order)
	}
	// Default behavior: success
	return nil
}

// FindAllByUserPhone lists orders for a user
func (m *MockOrderRepository) FindAllByUserPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	if m.FindAllByUserPhoneFunc != nil {
		return m.FindAllByUserPhoneFunc(ctx, phone)
	}
	// Default behavior: empty
	return []domain.Order{}, nil
}

// Compile-time interface compliance verification
var _ domain.OrderRepository = (*MockOrderRepository)(nil)
