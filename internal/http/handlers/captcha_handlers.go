package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jumx0202/ordersvc/domain"
)

// CaptchaHandlers handles captcha HTTP requests. Rendering is an optional
// collaborator; without one the endpoint only hands out the challenge id.
type CaptchaHandlers struct {
	captchaSvc domain.CaptchaService
	renderer   domain.CaptchaRenderer
}

// NewCaptchaHandlers creates new captcha handlers
func NewCaptchaHandlers(captchaSvc domain.CaptchaService, renderer domain.CaptchaRenderer) *CaptchaHandlers {
	return &CaptchaHandlers{captchaSvc: captchaSvc, renderer: renderer}
}

// CaptchaVerifyRequest represents a captcha answer
type CaptchaVerifyRequest struct {
	ID    string `json:"id" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// Create issues a new challenge
func (h *CaptchaHandlers) Create(c *gin.Context) {
	id, code, err := h.captchaSvc.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create captcha"})
		return
	}
	if h.renderer == nil {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id}})
		return
	}
	data, contentType, err := h.renderer.Render(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render captcha"})
		return
	}
	c.Header("X-Captcha-Id", id)
	c.Data(http.StatusOK, contentType, data)
}

// Verify checks a challenge answer; challenges are single-use
func (h *CaptchaHandlers) Verify(c *gin.Context) {
	var req CaptchaVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"valid": h.captchaSvc.Verify(req.ID, req.Value)}})
}
