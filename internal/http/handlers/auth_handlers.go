package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jumx0202/ordersvc/domain"
)

// AuthHandlers handles account HTTP requests
type AuthHandlers struct {
	accountSvc  domain.AccountService
	emailSvc    domain.EmailVerificationService
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
	accessTTL   time.Duration
	sessionTTL  time.Duration
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(accountSvc domain.AccountService, emailSvc domain.EmailVerificationService,
	tokenSvc domain.TokenService, sessionRepo domain.SessionRepository,
	accessTTL, sessionTTL time.Duration) *AuthHandlers {
	return &AuthHandlers{
		accountSvc:  accountSvc,
		emailSvc:    emailSvc,
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
		accessTTL:   accessTTL,
		sessionTTL:  sessionTTL,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailCodeRequest represents a verification code request
type EmailCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

// EmailVerifyRequest represents a verification code check
type EmailVerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.accountSvc.Register(c.Request.Context(), req.Phone, req.Password, req.ConfirmPassword, req.Name, req.Email)
	switch outcome {
	case domain.RegisterOK:
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"message": "registered"}})
	case domain.RegisterPhoneTaken:
		c.JSON(http.StatusConflict, gin.H{"error": outcome.String()})
	case domain.RegisterSystemError:
		c.JSON(http.StatusInternalServerError, gin.H{"error": outcome.String()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": outcome.String()})
	}
}

// Login handles user login; a success opens a session and issues tokens
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accountSvc.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		switch err {
		case domain.ErrAccountLocked:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is locked"})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		}
		return
	}

	session := &domain.Session{
		ID:        fmt.Sprintf("sess_%s_%d", user.Phone, time.Now().UnixNano()),
		UserPhone: user.Phone,
		ExpiresAt: time.Now().Add(h.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := h.sessionRepo.Create(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	accessToken, err := h.tokenSvc.GenerateAccessToken(user.Phone, session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	refreshToken, err := h.tokenSvc.GenerateRefreshToken(user.Phone, session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"token_type":    "Bearer",
			"expires_in":    int64(h.accessTTL.Seconds()),
			"user": gin.H{
				"phone": user.Phone,
				"name":  user.Name,
				"email": user.Email,
			},
		},
	})
}

// Logout deletes the caller's session
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No active session"})
		return
	}
	if err := h.sessionRepo.Delete(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "logged out"}})
}

// SendEmailCode issues and delivers a verification code
func (h *AuthHandlers) SendEmailCode(c *gin.Context) {
	var req EmailCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.emailSvc.SendCode(c.Request.Context(), req.Email); err != nil {
		switch err {
		case domain.ErrInvalidEmail:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send code"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "code sent"}})
}

// VerifyEmailCode checks a verification code; codes are single-use
func (h *AuthHandlers) VerifyEmailCode(c *gin.Context) {
	var req EmailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"verified": h.emailSvc.VerifyCode(req.Email, req.Code)}})
}

// CreditLevel reports the caller's credit projection
func (h *AuthHandlers) CreditLevel(c *gin.Context) {
	phone := c.GetString("phone")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"credit_level": h.accountSvc.CreditLevel(c.Request.Context(), phone)}})
}
