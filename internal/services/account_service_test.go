package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jumx0202/ordersvc/domain"
	"github.com/jumx0202/ordersvc/internal/mocks"
)

const (
	testPassword = "abc123"
)

// newAccountFixture wires a user repository mock backed by a single in-memory
// record, so the lockout counter survives across calls.
func newAccountFixture(t *testing.T, stored *domain.User) (*mocks.MockUserRepository, *mocks.MockAuditLogger) {
	t.Helper()
	repo := mocks.NewMockUserRepository()
	repo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		if stored != nil && stored.Phone == phone {
			copied := *stored
			return &copied, nil
		}
		return nil, domain.ErrUserNotFound
	}
	repo.FindByPhoneAndPasswordFunc = func(ctx context.Context, phone, password string) (*domain.User, error) {
		if stored != nil && stored.Phone == phone && stored.Password == password {
			copied := *stored
			return &copied, nil
		}
		return nil, domain.ErrUserNotFound
	}
	repo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		if stored != nil && stored.Phone == user.Phone {
			*stored = *user
		}
		return nil
	}
	repo.ExistsByPhoneFunc = func(ctx context.Context, phone string) (bool, error) {
		return stored != nil && stored.Phone == phone, nil
	}
	return repo, mocks.NewMockAuditLogger()
}

func storedUser() *domain.User {
	return &domain.User{
		ID:       1,
		Phone:    testPhone,
		Password: testPassword,
		Name:     "alice",
		Email:    "alice@example.com",
		Gender:   "unknown",
	}
}

func TestAccountServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		phone         string
		password      string
		stored        *domain.User
		expectedError error
	}{
		{
			name:          "successful login",
			phone:         testPhone,
			password:      testPassword,
			stored:        storedUser(),
			expectedError: nil,
		},
		{
			name:          "malformed phone",
			phone:         "12812345678",
			password:      testPassword,
			stored:        storedUser(),
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:          "malformed password",
			phone:         testPhone,
			password:      "short",
			stored:        storedUser(),
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:          "wrong password",
			phone:         testPhone,
			password:      "wrong1pass",
			stored:        storedUser(),
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:          "unknown user",
			phone:         "13999999999",
			password:      testPassword,
			stored:        storedUser(),
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "locked account",
			phone:    testPhone,
			password: testPassword,
			stored: func() *domain.User {
				u := storedUser()
				u.AccountLocked = true
				u.LoginAttempts = 5
				return u
			}(),
			expectedError: domain.ErrAccountLocked,
		},
		{
			name:     "counter at threshold locks even with correct credentials",
			phone:    testPhone,
			password: testPassword,
			stored: func() *domain.User {
				u := storedUser()
				u.LoginAttempts = 5
				return u
			}(),
			expectedError: domain.ErrAccountLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, audit := newAccountFixture(t, tt.stored)
			svc := NewAccountService(repo, audit)

			user, err := svc.Login(context.Background(), tt.phone, tt.password)
			if !errors.Is(err, tt.expectedError) {
				t.Errorf("Login error = %v, want %v", err, tt.expectedError)
			}
			if tt.expectedError == nil && user == nil {
				t.Error("expected user on successful login")
			}
			if tt.expectedError != nil && user != nil {
				t.Error("expected nil user on failed login")
			}
		})
	}
}

func TestAccountServiceImpl_Login_LockoutAfterFiveFailures(t *testing.T) {
	stored := storedUser()
	repo, audit := newAccountFixture(t, stored)
	svc := NewAccountService(repo, audit)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := svc.Login(ctx, testPhone, "wrong1pass")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: error = %v, want ErrInvalidCredentials", i, err)
		}
	}
	if stored.LoginAttempts != 5 {
		t.Errorf("expected 5 recorded failures, got %d", stored.LoginAttempts)
	}
	if !stored.AccountLocked {
		t.Error("expected account locked after the fifth failure")
	}

	// Correct credentials no longer help once the account is locked.
	if _, err := svc.Login(ctx, testPhone, testPassword); !errors.Is(err, domain.ErrAccountLocked) {
		t.Errorf("post-lockout login error = %v, want ErrAccountLocked", err)
	}

	if got := len(audit.EventsOfType(domain.AccountLockedEvent)); got == 0 {
		t.Error("expected a lockout audit event")
	}
}

func TestAccountServiceImpl_Login_SuccessResetsCounter(t *testing.T) {
	stored := storedUser()
	repo, audit := newAccountFixture(t, stored)
	svc := NewAccountService(repo, audit)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := svc.Login(ctx, testPhone, "wrong1pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if stored.LoginAttempts != 4 {
		t.Fatalf("expected 4 failures, got %d", stored.LoginAttempts)
	}

	user, err := svc.Login(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected user")
	}
	if stored.LoginAttempts != 0 {
		t.Errorf("expected counter reset, got %d", stored.LoginAttempts)
	}
	if stored.AccountLocked {
		t.Error("expected account unlocked")
	}
	if got := len(audit.EventsOfType(domain.UserLoginEvent)); got != 1 {
		t.Errorf("expected one login event, got %d", got)
	}
}

func TestAccountServiceImpl_Login_RepositoryFailureIsInvalidCredentials(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	repo.FindByPhoneAndPasswordFunc = func(ctx context.Context, phone, password string) (*domain.User, error) {
		return nil, errors.New("database down")
	}
	svc := NewAccountService(repo, mocks.NewMockAuditLogger())

	_, err := svc.Login(context.Background(), testPhone, testPassword)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAccountServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		password string
		confirm  string
		username string
		email    string
		stored   *domain.User
		expected domain.RegisterOutcome
	}{
		{
			name:     "successful registration",
			phone:    "13900000000",
			password: testPassword,
			confirm:  testPassword,
			username: "bob_2",
			email:    "bob@example.com",
			expected: domain.RegisterOK,
		},
		{
			name:     "malformed phone checked first",
			phone:    "12800000000",
			password: "",
			confirm:  "",
			username: "",
			email:    "",
			expected: domain.RegisterBadPhone,
		},
		{
			name:     "duplicate phone",
			phone:    testPhone,
			password: testPassword,
			confirm:  testPassword,
			username: "bob_2",
			email:    "bob@example.com",
			stored:   storedUser(),
			expected: domain.RegisterPhoneTaken,
		},
		{
			name:     "duplicate check precedes password strength",
			phone:    testPhone,
			password: "weak",
			confirm:  "weak",
			username: "bob_2",
			email:    "bob@example.com",
			stored:   storedUser(),
			expected: domain.RegisterPhoneTaken,
		},
		{
			name:     "weak password",
			phone:    "13900000000",
			password: "letters",
			confirm:  "letters",
			username: "bob_2",
			email:    "bob@example.com",
			expected: domain.RegisterWeakPassword,
		},
		{
			name:     "password mismatch",
			phone:    "13900000000",
			password: testPassword,
			confirm:  "abc124",
			username: "bob_2",
			email:    "bob@example.com",
			expected: domain.RegisterPasswordMismatch,
		},
		{
			name:     "bad email",
			phone:    "13900000000",
			password: testPassword,
			confirm:  testPassword,
			username: "bob_2",
			email:    "not-an-email",
			expected: domain.RegisterBadEmail,
		},
		{
			name:     "bad username",
			phone:    "13900000000",
			password: testPassword,
			confirm:  testPassword,
			username: "x",
			email:    "bob@example.com",
			expected: domain.RegisterBadUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, audit := newAccountFixture(t, tt.stored)
			svc := NewAccountService(repo, audit)

			outcome := svc.Register(context.Background(), tt.phone, tt.password, tt.confirm, tt.username, tt.email)
			if outcome != tt.expected {
				t.Errorf("Register = %v, want %v", outcome, tt.expected)
			}
		})
	}
}

func TestAccountServiceImpl_Register_DefaultsAndPersistence(t *testing.T) {
	repo, audit := newAccountFixture(t, nil)
	var created *domain.User
	repo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		created = user
		return nil
	}
	svc := NewAccountService(repo, audit)

	outcome := svc.Register(context.Background(), "13900000000", testPassword, testPassword, "bob_2", "bob@example.com")
	if outcome != domain.RegisterOK {
		t.Fatalf("Register failed with %v", outcome)
	}
	if created == nil {
		t.Fatal("expected user persisted")
	}
	if created.Gender != "unknown" {
		t.Errorf("expected default gender unknown, got %q", created.Gender)
	}
	if created.LoginAttempts != 0 || created.AccountLocked {
		t.Error("expected fresh lockout state")
	}
	if got := len(audit.EventsOfType(domain.UserRegistrationEvent)); got != 1 {
		t.Errorf("expected one registration event, got %d", got)
	}
}

func TestAccountServiceImpl_Register_SystemError(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	repo.ExistsByPhoneFunc = func(ctx context.Context, phone string) (bool, error) {
		return false, errors.New("database down")
	}
	svc := NewAccountService(repo, mocks.NewMockAuditLogger())

	outcome := svc.Register(context.Background(), "13900000000", testPassword, testPassword, "bob_2", "bob@example.com")
	if outcome != domain.RegisterSystemError {
		t.Errorf("Register = %v, want RegisterSystemError", outcome)
	}
}

func TestAccountServiceImpl_CreditLevel(t *testing.T) {
	tests := []struct {
		name     string
		stored   *domain.User
		phone    string
		expected string
	}{
		{
			name:     "unknown account",
			stored:   nil,
			phone:    testPhone,
			expected: "no credit record",
		},
		{
			name:     "clean history",
			stored:   storedUser(),
			phone:    testPhone,
			expected: "excellent",
		},
		{
			name: "few failures",
			stored: func() *domain.User {
				u := storedUser()
				u.LoginAttempts = 2
				return u
			}(),
			phone:    testPhone,
			expected: "good",
		},
		{
			name: "several failures",
			stored: func() *domain.User {
				u := storedUser()
				u.LoginAttempts = 4
				return u
			}(),
			phone:    testPhone,
			expected: "fair",
		},
		{
			name: "locked account",
			stored: func() *domain.User {
				u := storedUser()
				u.AccountLocked = true
				return u
			}(),
			phone:    testPhone,
			expected: "bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, audit := newAccountFixture(t, tt.stored)
			svc := NewAccountService(repo, audit)
			if got := svc.CreditLevel(context.Background(), tt.phone); got != tt.expected {
				t.Errorf("CreditLevel = %q, want %q", got, tt.expected)
			}
		})
	}
}
