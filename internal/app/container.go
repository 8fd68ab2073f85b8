package app

import (
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jumx0202/ordersvc/domain"
	"github.com/jumx0202/ordersvc/internal/audit"
	"github.com/jumx0202/ordersvc/internal/config"
	"github.com/jumx0202/ordersvc/internal/infrastructure/auth"
	"github.com/jumx0202/ordersvc/internal/infrastructure/database"
	"github.com/jumx0202/ordersvc/internal/infrastructure/notifications"
	"github.com/jumx0202/ordersvc/internal/infrastructure/repositories"
	"github.com/jumx0202/ordersvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo    domain.UserRepository
	OrderRepo   domain.OrderRepository
	SessionRepo domain.SessionRepository

	// Services
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuditLogger     domain.AuditLogger
	CaptchaSvc      *services.CaptchaServiceImpl
	EmailSvc        *services.EmailServiceImpl
	CartSvc         domain.CartService
	AccountSvc      domain.AccountService
	OrderSvc        domain.OrderService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OrderRepo = repositories.NewOrderRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
}

func (c *Container) initServices() {
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Config.EmailFrom,
	)
	c.AuditLogger = audit.NewLogAuditLogger(log.Default())

	c.CaptchaSvc = services.NewCaptchaService(services.CaptchaConfig{
		Length:        c.Config.CaptchaLength,
		TTL:           c.Config.CaptchaTTL,
		SweepInterval: c.Config.CaptchaSweep,
	})
	c.EmailSvc = services.NewEmailService(c.NotificationSvc, services.EmailVerificationConfig{
		Length:        c.Config.EmailCodeLength,
		TTL:           c.Config.EmailCodeTTL,
		SweepInterval: c.Config.EmailCodeSweep,
		Subject:       c.Config.EmailCodeSubject,
	})

	c.CartSvc = services.NewCartService()
	c.AccountSvc = services.NewAccountService(c.UserRepo, c.AuditLogger)
	c.OrderSvc = services.NewOrderService(c.OrderRepo, c.AuditLogger)
}

// Close closes all connections and stops background sweepers
func (c *Container) Close() error {
	if c.CaptchaSvc != nil {
		c.CaptchaSvc.Close()
	}
	if c.EmailSvc != nil {
		c.EmailSvc.Close()
	}

	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
