package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jumx0202/ordersvc/domain"
)

func newOrder(phone string) *domain.Order {
	return &domain.Order{
		BusinessID: 2,
		UserPhone:  phone,
		Items:      "1-2-3",
		Price:      decimal.RequireFromString("42.50"),
		State:      domain.OrderStateUnpaid,
		CreatedAt:  time.Now(),
	}
}

func TestOrderRepositoryImpl_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newOrder("13812345678")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected assigned id")
	}

	found, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Items != "1-2-3" {
		t.Errorf("expected items 1-2-3, got %q", found.Items)
	}
	if !found.Price.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("expected price 42.50, got %s", found.Price)
	}
	if found.State != domain.OrderStateUnpaid {
		t.Errorf("expected unpaid state, got %d", found.State)
	}

	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderRepositoryImpl_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newOrder("13812345678")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	order.State = domain.OrderStatePaid
	if err := repo.Update(ctx, order); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.State != domain.OrderStatePaid {
		t.Errorf("expected paid state persisted, got %d", found.State)
	}
}

func TestOrderRepositoryImpl_FindAllByUserPhone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Create(ctx, newOrder("13812345678")); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if err := repo.Create(ctx, newOrder("13900000000")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	orders, err := repo.FindAllByUserPhone(ctx, "13812345678")
	if err != nil {
		t.Fatalf("FindAllByUserPhone failed: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}

	orders, err = repo.FindAllByUserPhone(ctx, "13911111111")
	if err != nil {
		t.Fatalf("FindAllByUserPhone failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %d", len(orders))
	}
}
