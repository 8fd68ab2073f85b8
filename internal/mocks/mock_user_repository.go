package mocks

import (
	"context"

	"github.com/jumx0202/ordersvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                 func(ctx context.Context, user *domain.User) error
	FindByPhoneFunc            func(ctx context.Context, phone string) (*domain.User, error)
	FindByPhoneAndPasswordFunc func(ctx context.Context, phone, password string) (*domain.User, error)
	ExistsByPhoneFunc          func(ctx context.Context, phone string) (bool, error)
	UpdateFunc                 func(ctx context.Context, user *domain.User) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByPhoneAndPassword finds a user by credentials
func (m *MockUserRepository) FindByPhoneAndPassword(ctx context.Context, phone, password string) (*domain.User, error) {
	if m.FindByPhoneAndPasswordFunc != nil {
		return m.FindByPhoneAndPasswordFunc(ctx, phone, password)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// ExistsByPhone reports whether a user exists under the phone
func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if m.ExistsByPhoneFunc != nil {
		return m.ExistsByPhoneFunc(ctx, phone)
	}
	// Default behavior: not registered
	return false, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
