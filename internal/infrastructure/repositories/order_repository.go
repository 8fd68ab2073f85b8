package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jumx0202/ordersvc/domain"
)

// OrderRepositoryImpl implements domain.OrderRepository using GORM
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// DBOrder represents the database model for Order (with GORM tags)
type DBOrder struct {
	ID         int             `gorm:"primaryKey"`
	BusinessID int             `gorm:"index"`
	UserPhone  string          `gorm:"index;size:32"`
	Items      string          `gorm:"column:order_list;size:512"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2)"`
	State      int             `gorm:"index"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBOrder) TableName() string {
	return "user_orders"
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create implements domain.OrderRepository
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *domain.Order) error {
	dbOrder := r.domainToDB(order)
	if err := r.db.WithContext(ctx).Create(dbOrder).Error; err != nil {
		return err
	}
	order.ID = dbOrder.ID
	return nil
}

// FindByID implements domain.OrderRepository
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	var dbOrder DBOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbOrder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOrder), nil
}

// Update implements domain.OrderRepository
func (r *OrderRepositoryImpl) Update(ctx context.Context, order *domain.Order) error {
	dbOrder := r.domainToDB(order)
	return r.db.WithContext(ctx).Save(dbOrder).Error
}

// FindAllByUserPhone implements domain.OrderRepository
func (r *OrderRepositoryImpl) FindAllByUserPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	var dbOrders []DBOrder
	err := r.db.WithContext(ctx).Where("user_phone = ?", phone).Find(&dbOrders).Error
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, len(dbOrders))
	for i := range dbOrders {
		orders[i] = *r.dbToDomain(&dbOrders[i])
	}
	return orders, nil
}

// domainToDB converts domain order to database order
func (r *OrderRepositoryImpl) domainToDB(order *domain.Order) *DBOrder {
	return &DBOrder{
		ID:         order.ID,
		BusinessID: order.BusinessID,
		UserPhone:  order.UserPhone,
		Items:      order.Items,
		Price:      order.Price,
		State:      order.State,
		CreatedAt:  order.CreatedAt,
	}
}

// dbToDomain converts database order to domain order
func (r *OrderRepositoryImpl) dbToDomain(dbOrder *DBOrder) *domain.Order {
	return &domain.Order{
		ID:         dbOrder.ID,
		BusinessID: dbOrder.BusinessID,
		UserPhone:  dbOrder.UserPhone,
		Items:      dbOrder.Items,
		Price:      dbOrder.Price,
		State:      dbOrder.State,
		CreatedAt:  dbOrder.CreatedAt,
	}
}
