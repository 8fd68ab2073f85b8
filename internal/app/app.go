package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jumx0202/ordersvc/internal/config"
	httpx "github.com/jumx0202/ordersvc/internal/http"
	"github.com/jumx0202/ordersvc/internal/http/handlers"
	"github.com/jumx0202/ordersvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AccountSvc, c.EmailSvc, c.TokenSvc, c.SessionRepo, cfg.AccessTTL, cfg.RefreshTTL)
	cartH := handlers.NewCartHandlers(c.CartSvc)
	orderH := handlers.NewOrderHandlers(c.OrderSvc, c.CartSvc)
	captchaH := handlers.NewCaptchaHandlers(c.CaptchaSvc, nil)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)

	r := httpx.BuildRouter(authH, cartH, orderH, captchaH, jwtMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
