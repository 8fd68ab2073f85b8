package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jumx0202/ordersvc/domain"
)

const sessionKeyPrefix = "session:"

// sessionRecord is the wire form stored in Redis (with JSON tags)
type sessionRecord struct {
	ID        string    `json:"id"`
	UserPhone string    `json:"user_phone"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// Keys expire with the session itself, so an idle store drains on its own.
type SessionRepositoryImpl struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, defaultTTL time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{client: client, defaultTTL: defaultTTL}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id must not be empty")
	}
	data, err := json.Marshal(r.domainToRecord(session))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(session.ID), data, r.ttlFor(session)).Err()
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	// The Redis TTL is a fallback; the record's own deadline wins so a
	// session never outlives its ExpiresAt.
	if rec.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, sessionKey(sessionID))
		return nil, domain.ErrSessionExpired
	}

	return r.recordToDomain(&rec), nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

// ttlFor aligns the Redis key expiry with the session deadline, falling
// back to the configured default when the deadline is unset or already past.
func (r *SessionRepositoryImpl) ttlFor(session *domain.Session) time.Duration {
	if remaining := time.Until(session.ExpiresAt); remaining > 0 {
		return remaining
	}
	return r.defaultTTL
}

func (r *SessionRepositoryImpl) domainToRecord(session *domain.Session) *sessionRecord {
	return &sessionRecord{
		ID:        session.ID,
		UserPhone: session.UserPhone,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
}

func (r *SessionRepositoryImpl) recordToDomain(rec *sessionRecord) *domain.Session {
	return &domain.Session{
		ID:        rec.ID,
		UserPhone: rec.UserPhone,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
