package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/jumx0202/ordersvc/internal/http/handlers"
	"github.com/jumx0202/ordersvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.CartHandlers, oh *handlers.OrderHandlers, ph *handlers.CaptchaHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/email-code/send", ah.SendEmailCode)
	auth.POST("/email-code/verify", ah.VerifyEmailCode)

	captcha := r.Group("/captcha")
	captcha.GET("/new", ph.Create)
	captcha.POST("/verify", ph.Verify)

	v := r.Group("/").Use(jwtmw.WithJWT())
	v.POST("/auth/logout", ah.Logout)
	v.GET("/auth/credit", ah.CreditLevel)

	cart := r.Group("/cart").Use(jwtmw.WithJWT())
	cart.POST("/items", ch.Add)
	cart.PUT("/items/:id/quantity", ch.UpdateQuantity)
	cart.DELETE("/items/:id", ch.Remove)
	cart.GET("/items", ch.List)
	cart.DELETE("/items", ch.Clear)
	cart.GET("/total", ch.Total)
	cart.GET("/checkout-check", ch.ValidateCheckout)

	orders := r.Group("/orders").Use(jwtmw.WithJWT())
	orders.POST("", oh.Create)
	orders.POST("/:id/pay", oh.Pay)
	orders.GET("/:id", oh.Detail)
	orders.GET("", oh.List)

	return r
}
