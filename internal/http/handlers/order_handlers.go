package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jumx0202/ordersvc/domain"
)

// OrderHandlers handles order HTTP requests
type OrderHandlers struct {
	orderSvc domain.OrderService
	cartSvc  domain.CartService
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(orderSvc domain.OrderService, cartSvc domain.CartService) *OrderHandlers {
	return &OrderHandlers{orderSvc: orderSvc, cartSvc: cartSvc}
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	BusinessID int    `json:"business_id" binding:"required"`
	ItemIDs    []int  `json:"item_ids" binding:"required"`
	Price      string `json:"price" binding:"required"`
}

// Create places a new unpaid order after a checkout-readiness check
func (h *OrderHandlers) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	phone := c.GetString("phone")
	if !h.cartSvc.ValidateForCheckout(phone) {
		c.JSON(http.StatusConflict, gin.H{"error": "cart is not ready for checkout"})
		return
	}

	id, err := h.orderSvc.CreateOrder(c.Request.Context(), req.BusinessID, phone, req.ItemIDs, price)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}
	h.cartSvc.ClearCart(phone)
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"order_id": id}})
}

// Pay marks an order as paid
func (h *OrderHandlers) Pay(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	if !h.orderSvc.MarkPaid(c.Request.Context(), orderID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"paid": true}})
}

// Detail returns the order projection
func (h *OrderHandlers) Detail(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	detail := h.orderSvc.GetOrderDetail(c.Request.Context(), orderID)
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": detail})
}

// List returns the caller's orders
func (h *OrderHandlers) List(c *gin.Context) {
	orders, err := h.orderSvc.ListByUser(c.Request.Context(), c.GetString("phone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}
