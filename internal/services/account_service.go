package services

import (
	"context"
	"time"

	"github.com/jumx0202/ordersvc/domain"
	"github.com/jumx0202/ordersvc/internal/validation"
)

// AccountServiceImpl implements domain.AccountService. It owns the
// login-attempt lockout state machine; the counters themselves live on the
// persisted user record.
type AccountServiceImpl struct {
	userRepo domain.UserRepository
	audit    domain.AuditLogger
}

// NewAccountService creates a new account service
func NewAccountService(userRepo domain.UserRepository, audit domain.AuditLogger) domain.AccountService {
	return &AccountServiceImpl{userRepo: userRepo, audit: audit}
}

// Login authenticates by (phone, password) lookup and drives the lockout
// state machine. It never panics on repository failure; every failure path
// collapses to a nil user with a sentinel error.
func (s *AccountServiceImpl) Login(ctx context.Context, phone, password string) (*domain.User, error) {
	if res := validation.Phone(phone); !res.OK {
		return nil, domain.ErrInvalidCredentials
	}
	if res := validation.Password(password); !res.OK {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByPhoneAndPassword(ctx, phone, password)
	if err != nil || user == nil {
		// Wrong password or repository failure: both count as a failed
		// attempt against whatever record exists under the phone.
		s.recordFailure(ctx, phone)
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, phone).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if user.AccountLocked {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, phone).WithError(domain.ErrAccountLocked))
		return nil, domain.ErrAccountLocked
	}

	if res := validation.LoginAttempts(&user.LoginAttempts); !res.OK {
		// Counter already at the threshold but the lock flag lagged
		// behind: force the lock transition now.
		s.lockAccount(ctx, phone)
		s.logEvent(ctx, domain.NewAuditEvent(domain.AccountLockedEvent, phone).WithError(domain.ErrAccountLocked))
		return nil, domain.ErrAccountLocked
	}

	s.resetFailures(ctx, phone)
	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, phone))
	return user, nil
}

// Register creates a new account after running the full check sequence.
// Check order is part of the contract: phone format, duplicate phone,
// password strength, confirmation, email, username.
func (s *AccountServiceImpl) Register(ctx context.Context, phone, password, confirm, name, email string) domain.RegisterOutcome {
	if res := validation.Phone(phone); !res.OK {
		return domain.RegisterBadPhone
	}

	exists, err := s.userRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return domain.RegisterSystemError
	}
	if exists {
		return domain.RegisterPhoneTaken
	}

	if res := validation.Password(password); !res.OK {
		return domain.RegisterWeakPassword
	}
	if res := validation.PasswordConfirmation(password, confirm); !res.OK {
		return domain.RegisterPasswordMismatch
	}
	if res := validation.Email(email); !res.OK {
		return domain.RegisterBadEmail
	}
	if res := validation.Username(name); !res.OK {
		return domain.RegisterBadUsername
	}

	now := time.Now()
	user := &domain.User{
		Phone:         phone,
		Password:      password,
		Name:          name,
		Email:         email,
		Gender:        "unknown",
		LoginAttempts: 0,
		AccountLocked: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return domain.RegisterSystemError
	}
	s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, phone))
	return domain.RegisterOK
}

// CreditLevel projects a coarse credit rating from the account's login
// history. Pure read; unknown accounts have no record.
func (s *AccountServiceImpl) CreditLevel(ctx context.Context, phone string) string {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil || user == nil {
		return "no credit record"
	}
	switch {
	case user.AccountLocked:
		return "bad"
	case user.LoginAttempts == 0:
		return "excellent"
	case user.LoginAttempts <= 2:
		return "good"
	case user.LoginAttempts <= 4:
		return "fair"
	default:
		return "poor"
	}
}

// recordFailure increments the failure counter and, when it reaches the
// threshold, sets the lock flag. Best-effort: repository failures here are
// swallowed so the caller still gets its authentication result.
func (s *AccountServiceImpl) recordFailure(ctx context.Context, phone string) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil || user == nil {
		return
	}
	user.LoginAttempts++
	if user.LoginAttempts >= validation.MaxLoginAttempts {
		user.AccountLocked = true
		s.logEvent(ctx, domain.NewAuditEvent(domain.AccountLockedEvent, phone).
			WithMetadata("attempts", user.LoginAttempts))
	}
	_ = s.userRepo.Update(ctx, user)
}

// resetFailures zeroes the counter and clears the lock flag. Best-effort.
func (s *AccountServiceImpl) resetFailures(ctx context.Context, phone string) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil || user == nil {
		return
	}
	user.LoginAttempts = 0
	user.AccountLocked = false
	_ = s.userRepo.Update(ctx, user)
}

// lockAccount sets the lock flag without touching the counter. Best-effort.
func (s *AccountServiceImpl) lockAccount(ctx context.Context, phone string) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil || user == nil {
		return
	}
	user.AccountLocked = true
	_ = s.userRepo.Update(ctx, user)
}

func (s *AccountServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	if s.audit != nil {
		_ = s.audit.LogEvent(ctx, event)
	}
}
