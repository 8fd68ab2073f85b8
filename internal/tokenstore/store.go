// Package tokenstore provides an in-memory, single-use, TTL-bound code store.
// It backs both captcha challenges and e-mail verification codes; each use
// case owns its own configured instance, there are no package-level globals.
package tokenstore

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Alphabets used by the two store instances the service wires up.
const (
	// CaptchaAlphabet omits characters that are easy to confuse,
	// such as 0/O and 1/I.
	CaptchaAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	DigitAlphabet   = "0123456789"
)

// Config describes one store instance.
type Config struct {
	Alphabet      string
	Length        int
	TTL           time.Duration
	SweepInterval time.Duration
	IgnoreCase    bool
	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time
}

type entry struct {
	code     string
	issuedAt time.Time
}

// Store is a concurrency-safe map of key -> single-use code. Verify consumes
// the entry atomically; a background sweeper drops entries older than TTL.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	cfg     Config
	done    chan struct{}
	closed  bool
}

// New creates a store and starts its sweeper when SweepInterval is positive.
func New(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	s := &Store{
		entries: make(map[string]entry),
		cfg:     cfg,
		done:    make(chan struct{}),
	}
	if cfg.SweepInterval > 0 {
		go s.run()
	}
	return s
}

// Issue generates a fresh code for key, overwriting any prior unconsumed
// entry for the same key.
func (s *Store) Issue(key string) (string, error) {
	code, err := s.generate()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.entries[key] = entry{code: code, issuedAt: s.cfg.Clock()}
	s.mu.Unlock()
	return code, nil
}

// IssueKeyed generates both a correlation key and a code. Used by the
// captcha flow, where the caller has no natural key.
func (s *Store) IssueKeyed() (key, code string, err error) {
	key = uuid.NewString()
	code, err = s.Issue(key)
	if err != nil {
		return "", "", err
	}
	return key, code, nil
}

// Verify consumes the entry for key when candidate matches. The lookup,
// comparison and delete happen under one lock, so a code verifies at most
// once no matter how many callers race on it. A mismatch leaves the entry
// in place.
func (s *Store) Verify(key, candidate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	if !s.matches(e.code, candidate) {
		return false
	}
	delete(s.entries, key)
	return true
}

// Drop removes the entry for key regardless of its code. Used to roll back
// an issuance whose delivery failed.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Sweep removes every entry whose age exceeds the TTL. The sweeper calls
// this on its interval; tests may call it directly.
func (s *Store) Sweep() {
	now := s.cfg.Clock()
	s.mu.Lock()
	for key, e := range s.entries {
		if now.Sub(e.issuedAt) > s.cfg.TTL {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the background sweeper. The store remains usable for
// issue/verify after Close; only expiry stops running.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

func (s *Store) run() {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) matches(code, candidate string) bool {
	if s.cfg.IgnoreCase {
		return strings.EqualFold(code, candidate)
	}
	return code == candidate
}

func (s *Store) generate() (string, error) {
	chars := make([]byte, s.cfg.Length)
	max := big.NewInt(int64(len(s.cfg.Alphabet)))
	for i := 0; i < s.cfg.Length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		chars[i] = s.cfg.Alphabet[n.Int64()]
	}
	return string(chars), nil
}
