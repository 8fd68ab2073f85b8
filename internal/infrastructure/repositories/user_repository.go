package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jumx0202/ordersvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID            uint           `gorm:"primaryKey"`
	Phone         string         `gorm:"uniqueIndex;size:32"`
	Password      string         `gorm:"size:64"`
	Name          string         `gorm:"size:64"`
	Email         string         `gorm:"size:255"`
	Gender        string         `gorm:"size:16"`
	LoginAttempts int
	AccountLocked bool           `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhoneAndPassword implements domain.UserRepository. The credential
// match is an opaque equality lookup; the stored value is whatever the
// legacy schema holds.
func (r *UserRepositoryImpl) FindByPhoneAndPassword(ctx context.Context, phone, password string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ? AND password = ?", phone, password).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// ExistsByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("phone = ?", phone).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Phone:         user.Phone,
		Password:      user.Password,
		Name:          user.Name,
		Email:         user.Email,
		Gender:        user.Gender,
		LoginAttempts: user.LoginAttempts,
		AccountLocked: user.AccountLocked,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Phone:         dbUser.Phone,
		Password:      dbUser.Password,
		Name:          dbUser.Name,
		Email:         dbUser.Email,
		Gender:        dbUser.Gender,
		LoginAttempts: dbUser.LoginAttempts,
		AccountLocked: dbUser.AccountLocked,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
