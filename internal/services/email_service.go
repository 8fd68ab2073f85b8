package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jumx0202/ordersvc/domain"
	"github.com/jumx0202/ordersvc/internal/tokenstore"
	"github.com/jumx0202/ordersvc/internal/validation"
)

// EmailVerificationConfig describes the e-mail code shape and lifetime.
type EmailVerificationConfig struct {
	Length        int
	TTL           time.Duration
	SweepInterval time.Duration
	Subject       string
}

// DefaultEmailVerificationConfig matches the production settings: 6 digits,
// 5 minute lifetime.
func DefaultEmailVerificationConfig() EmailVerificationConfig {
	return EmailVerificationConfig{
		Length:        6,
		TTL:           5 * time.Minute,
		SweepInterval: time.Minute,
		Subject:       "Registration verification code",
	}
}

// EmailServiceImpl implements domain.EmailVerificationService. Codes live in
// a dedicated token store keyed by address; delivery goes through the
// notification collaborator.
type EmailServiceImpl struct {
	store    *tokenstore.Store
	notifier domain.NotificationService
	cfg      EmailVerificationConfig
}

// NewEmailService creates an e-mail verification service owning its own store.
func NewEmailService(notifier domain.NotificationService, cfg EmailVerificationConfig) *EmailServiceImpl {
	return &EmailServiceImpl{
		store: tokenstore.New(tokenstore.Config{
			Alphabet:      tokenstore.DigitAlphabet,
			Length:        cfg.Length,
			TTL:           cfg.TTL,
			SweepInterval: cfg.SweepInterval,
		}),
		notifier: notifier,
		cfg:      cfg,
	}
}

// SendCode issues a code for the address and delivers it. A failed delivery
// rolls the issuance back so the address holds no live code.
func (s *EmailServiceImpl) SendCode(ctx context.Context, email string) error {
	if res := validation.Email(email); !res.OK {
		return domain.ErrInvalidEmail
	}

	code, err := s.store.Issue(email)
	if err != nil {
		return fmt.Errorf("failed to issue verification code: %w", err)
	}

	body := fmt.Sprintf("Your verification code is: %s\nThe code is valid for %d minutes.",
		code, int(s.cfg.TTL.Minutes()))
	if err := s.notifier.SendEmail(email, s.cfg.Subject, body); err != nil {
		s.store.Drop(email)
		return fmt.Errorf("%w: %v", domain.ErrCodeDelivery, err)
	}
	return nil
}

// VerifyCode consumes the code for the address; exact match only. A consumed
// or expired code never verifies again.
func (s *EmailServiceImpl) VerifyCode(email, code string) bool {
	return s.store.Verify(email, code)
}

// Close stops the expiry sweeper.
func (s *EmailServiceImpl) Close() {
	s.store.Close()
}

var _ domain.EmailVerificationService = (*EmailServiceImpl)(nil)
