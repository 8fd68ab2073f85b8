package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jumx0202/ordersvc/domain"
)

// CartHandlers handles cart HTTP requests. The authenticated phone from the
// JWT middleware is the cart key, and line ids in the path are checked
// against the caller's own cart before any mutation.
type CartHandlers struct {
	cartSvc domain.CartService
}

// NewCartHandlers creates new cart handlers
func NewCartHandlers(cartSvc domain.CartService) *CartHandlers {
	return &CartHandlers{cartSvc: cartSvc}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	FoodID     int    `json:"food_id" binding:"required"`
	FoodName   string `json:"food_name" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	UnitPrice  string `json:"unit_price" binding:"required"`
	BusinessID int    `json:"business_id" binding:"required"`
}

// UpdateQuantityRequest represents a quantity change
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// Add handles adding an item to the caller's cart
func (h *CartHandlers) Add(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit price"})
		return
	}

	item := &domain.CartItem{
		UserPhone:  c.GetString("phone"),
		FoodID:     req.FoodID,
		FoodName:   req.FoodName,
		Quantity:   req.Quantity,
		UnitPrice:  price,
		BusinessID: req.BusinessID,
	}
	respondCartOutcome(c, h.cartSvc.AddToCart(item))
}

// UpdateQuantity handles changing a line's quantity
func (h *CartHandlers) UpdateQuantity(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.ownsLine(c.GetString("phone"), itemID) {
		respondCartOutcome(c, domain.CartItemNotFound)
		return
	}
	respondCartOutcome(c, h.cartSvc.UpdateQuantity(itemID, req.Quantity))
}

// Remove handles deleting a single line
func (h *CartHandlers) Remove(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if !h.ownsLine(c.GetString("phone"), itemID) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": false}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": h.cartSvc.RemoveFromCart(itemID)}})
}

// List returns the caller's valid cart lines
func (h *CartHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.cartSvc.GetCartItems(c.GetString("phone"))})
}

// Clear empties the caller's cart
func (h *CartHandlers) Clear(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": h.cartSvc.ClearCart(c.GetString("phone"))}})
}

// Total returns the cart sum, flagging an over-limit cart
func (h *CartHandlers) Total(c *gin.Context) {
	total, overLimit := h.cartSvc.CalculateTotal(c.GetString("phone"))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"total":      total.StringFixed(2),
		"over_limit": overLimit,
	}})
}

// ValidateCheckout reports whether the caller's cart may proceed to checkout
func (h *CartHandlers) ValidateCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"ready": h.cartSvc.ValidateForCheckout(c.GetString("phone"))}})
}

// ownsLine reports whether the line id belongs to the caller's cart.
// A foreign or unknown id looks the same to the caller.
func (h *CartHandlers) ownsLine(phone string, itemID int64) bool {
	for _, item := range h.cartSvc.GetCartItems(phone) {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func respondCartOutcome(c *gin.Context, outcome domain.CartOutcome) {
	switch outcome {
	case domain.CartOK:
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"outcome": outcome.String()}})
	case domain.CartSystemError:
		c.JSON(http.StatusInternalServerError, gin.H{"error": outcome.String()})
	case domain.CartItemNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": outcome.String()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": outcome.String()})
	}
}
