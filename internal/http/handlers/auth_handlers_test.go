package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jumx0202/ordersvc/domain"
	"github.com/jumx0202/ordersvc/internal/mocks"
	"github.com/jumx0202/ordersvc/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newAuthRouter builds a minimal router around real services with an
// in-memory user record behind the repository mocks.
func newAuthRouter(t *testing.T, stored *domain.User) (*gin.Engine, *mocks.MockSessionRepository) {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		if stored != nil && stored.Phone == phone {
			copied := *stored
			return &copied, nil
		}
		return nil, domain.ErrUserNotFound
	}
	userRepo.FindByPhoneAndPasswordFunc = func(ctx context.Context, phone, password string) (*domain.User, error) {
		if stored != nil && stored.Phone == phone && stored.Password == password {
			copied := *stored
			return &copied, nil
		}
		return nil, domain.ErrUserNotFound
	}
	userRepo.ExistsByPhoneFunc = func(ctx context.Context, phone string) (bool, error) {
		return stored != nil && stored.Phone == phone, nil
	}

	accountSvc := services.NewAccountService(userRepo, mocks.NewMockAuditLogger())
	emailSvc := services.NewEmailService(mocks.NewMockNotificationService(), services.DefaultEmailVerificationConfig())
	t.Cleanup(emailSvc.Close)
	sessionRepo := mocks.NewMockSessionRepository()
	tokenSvc := mocks.NewMockTokenService()

	h := NewAuthHandlers(accountSvc, emailSvc, tokenSvc, sessionRepo, 15*time.Minute, time.Hour)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/email-code/send", h.SendEmailCode)
	return r, sessionRepo
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           RegisterRequest
		stored         *domain.User
		expectedStatus int
	}{
		{
			name: "successful registration",
			body: RegisterRequest{
				Phone:           "13812345678",
				Password:        "abc123",
				ConfirmPassword: "abc123",
				Name:            "alice",
				Email:           "alice@example.com",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate phone",
			body: RegisterRequest{
				Phone:           "13812345678",
				Password:        "abc123",
				ConfirmPassword: "abc123",
				Name:            "alice",
				Email:           "alice@example.com",
			},
			stored:         &domain.User{Phone: "13812345678", Password: "abc123"},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "weak password",
			body: RegisterRequest{
				Phone:           "13812345678",
				Password:        "letters",
				ConfirmPassword: "letters",
				Name:            "alice",
				Email:           "alice@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed phone",
			body: RegisterRequest{
				Phone:           "12812345678",
				Password:        "abc123",
				ConfirmPassword: "abc123",
				Name:            "alice",
				Email:           "alice@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newAuthRouter(t, tt.stored)
			w := postJSON(t, r, "/auth/register", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_Register_MissingFields(t *testing.T) {
	r, _ := newAuthRouter(t, nil)
	w := postJSON(t, r, "/auth/register", map[string]string{"phone": "13812345678"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	stored := &domain.User{
		ID:       1,
		Phone:    "13812345678",
		Password: "abc123",
		Name:     "alice",
		Email:    "alice@example.com",
	}

	t.Run("successful login issues tokens and opens a session", func(t *testing.T) {
		r, sessionRepo := newAuthRouter(t, stored)
		var createdSession *domain.Session
		sessionRepo.CreateFunc = func(ctx context.Context, session *domain.Session) error {
			createdSession = session
			return nil
		}

		w := postJSON(t, r, "/auth/login", LoginRequest{Phone: "13812345678", Password: "abc123"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
		}
		if createdSession == nil {
			t.Fatal("expected a session to be created")
		}
		if createdSession.UserPhone != "13812345678" {
			t.Errorf("session bound to %q", createdSession.UserPhone)
		}

		var resp struct {
			Data struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
				TokenType    string `json:"token_type"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Data.AccessToken == "" || resp.Data.RefreshToken == "" {
			t.Error("expected both tokens in the response")
		}
		if resp.Data.TokenType != "Bearer" {
			t.Errorf("token type = %q", resp.Data.TokenType)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		r, _ := newAuthRouter(t, stored)
		w := postJSON(t, r, "/auth/login", LoginRequest{Phone: "13812345678", Password: "wrong1"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("locked account", func(t *testing.T) {
		locked := *stored
		locked.AccountLocked = true
		r, _ := newAuthRouter(t, &locked)
		w := postJSON(t, r, "/auth/login", LoginRequest{Phone: "13812345678", Password: "abc123"})
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})
}

func TestAuthHandlers_SendEmailCode(t *testing.T) {
	r, _ := newAuthRouter(t, nil)

	w := postJSON(t, r, "/auth/email-code/send", EmailCodeRequest{Email: "alice@example.com"})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d; body: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/auth/email-code/send", EmailCodeRequest{Email: "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
