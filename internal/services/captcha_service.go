package services

import (
	"time"

	"github.com/jumx0202/ordersvc/domain"
	"github.com/jumx0202/ordersvc/internal/tokenstore"
)

// CaptchaConfig describes the captcha code shape and lifetime.
type CaptchaConfig struct {
	Length        int
	TTL           time.Duration
	SweepInterval time.Duration
}

// DefaultCaptchaConfig matches the production settings: 4 characters from
// the confusable-free alphabet, 5 minute lifetime, 5 minute sweep.
func DefaultCaptchaConfig() CaptchaConfig {
	return CaptchaConfig{Length: 4, TTL: 5 * time.Minute, SweepInterval: 5 * time.Minute}
}

// CaptchaServiceImpl implements domain.CaptchaService on top of a dedicated
// token store instance.
type CaptchaServiceImpl struct {
	store *tokenstore.Store
}

// NewCaptchaService creates a captcha service owning its own store.
func NewCaptchaService(cfg CaptchaConfig) *CaptchaServiceImpl {
	return &CaptchaServiceImpl{
		store: tokenstore.New(tokenstore.Config{
			Alphabet:      tokenstore.CaptchaAlphabet,
			Length:        cfg.Length,
			TTL:           cfg.TTL,
			SweepInterval: cfg.SweepInterval,
			IgnoreCase:    true,
		}),
	}
}

// Create issues a new challenge and returns its correlation id plus the
// code to render.
func (s *CaptchaServiceImpl) Create() (string, string, error) {
	return s.store.IssueKeyed()
}

// Verify consumes the challenge; comparison ignores case. A consumed or
// expired challenge never verifies again.
func (s *CaptchaServiceImpl) Verify(id, code string) bool {
	return s.store.Verify(id, code)
}

// Close stops the expiry sweeper.
func (s *CaptchaServiceImpl) Close() {
	s.store.Close()
}

var _ domain.CaptchaService = (*CaptchaServiceImpl)(nil)
